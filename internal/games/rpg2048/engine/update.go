package engine

import "time"

// UpdateKind classifies a view update.
type UpdateKind int

const (
	UpdateLevel    UpdateKind = iota // A level started: fresh board and enemy
	UpdateMove                       // A move was committed
	UpdateNoMove                     // A move changed nothing
	UpdateSpawn                      // A tile spawned after a move
	UpdateAttack                     // An attack started
	UpdateEffect                     // A delayed attack effect resolved
	UpdateRevert                     // A blocked or ghost cell was restored
	UpdateDefeat                     // The enemy was defeated
	UpdateGameOver                   // No moves or no pieces left
	UpdateWin                        // The win tile appeared
	UpdatePause                      // Pause was toggled
)

// String returns the update kind name.
func (k UpdateKind) String() string {
	switch k {
	case UpdateLevel:
		return "level"
	case UpdateMove:
		return "move"
	case UpdateNoMove:
		return "no-move"
	case UpdateSpawn:
		return "spawn"
	case UpdateAttack:
		return "attack"
	case UpdateEffect:
		return "effect"
	case UpdateRevert:
		return "revert"
	case UpdateDefeat:
		return "defeat"
	case UpdateGameOver:
		return "game-over"
	case UpdateWin:
		return "win"
	case UpdatePause:
		return "pause"
	default:
		return "unknown"
	}
}

// Update tells a renderer what changed. Front-ends read the board itself from
// the session; the position sets only drive highlights.
type Update struct {
	Kind   UpdateKind
	Attack AttackKind // Set for attack, effect and revert updates
	At     time.Duration

	Spawned    []Pos
	Merged     []Pos
	Deleted    []Pos
	Blocked    []Pos
	Burned     []Pos
	Frozen     []Pos
	Ghosted    []Pos
	Shuffled   []Pos
	FrozenHits []Pos

	Damage   int
	Resisted bool
	Message  string
}

// emit records an update for the next DrainUpdates call.
func (s *Session) emit(u Update) {
	u.At = s.now
	if s.observer != nil {
		s.observer(u)
	}
	s.updates = append(s.updates, u)
}

// DrainUpdates returns the updates emitted since the last call.
func (s *Session) DrainUpdates() []Update {
	out := s.updates
	s.updates = nil
	return out
}
