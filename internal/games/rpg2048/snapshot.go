package rpg2048

import (
	"time"

	"github.com/vovakirdan/rpg2048/internal/games/rpg2048/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLocked       GameStateType = "locked"
	StateLevelCleared GameStateType = "level_cleared"
	StatePaused       GameStateType = "paused"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Clock     time.Duration // Logical battle clock
	Mode      string        // "player" or "bot"
	Level     int           // Current level (1-indexed for display)
	Enemy     string
	Goal      string
	HP        int
	Defeated  int
	HighScore int
	Board     engine.Grid
	MaxTile   int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	st := g.session.State()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case st.Over:
		state = StateGameOver
	case st.Won:
		state = StateWin
	case st.Paused:
		state = StatePaused
	case st.Notice != "":
		state = StateLevelCleared
	case st.Locked:
		state = StateLocked
	}

	return Snapshot{
		Tick:      g.tick,
		Clock:     st.Now,
		Mode:      string(g.mode),
		Level:     st.Enemy.Level + 1,
		Enemy:     st.Enemy.Name,
		Goal:      string(st.Enemy.Goal),
		HP:        st.Enemy.HP,
		Defeated:  st.Defeated,
		HighScore: st.HighScore,
		Board:     st.Grid,
		MaxTile:   st.Grid.MaxTile(),
		State:     state,
	}
}
