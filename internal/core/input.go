package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with directional intents and commands rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - slide up
	ActionDown           // S, Down arrow - slide down
	ActionLeft           // A, Left arrow - slide left
	ActionRight          // D, Right arrow - slide right
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game

	// Debug actions are only mapped when the platform runs with --debug.
	ActionDebugWin
	ActionDebugBlock
	ActionDebugBurn
	ActionDebugFreeze
	ActionDebugGhost
	ActionDebugShuffle
	ActionDebugDelete
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionDebugWin:
		return "DebugWin"
	case ActionDebugBlock:
		return "DebugBlock"
	case ActionDebugBurn:
		return "DebugBurn"
	case ActionDebugFreeze:
		return "DebugFreeze"
	case ActionDebugGhost:
		return "DebugGhost"
	case ActionDebugShuffle:
		return "DebugShuffle"
	case ActionDebugDelete:
		return "DebugDelete"
	default:
		return "Unknown"
	}
}

// IsDebug reports whether the action is one of the debug hooks.
func (a Action) IsDebug() bool {
	return a >= ActionDebugWin && a <= ActionDebugDelete
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
