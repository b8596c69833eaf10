package engine

import (
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rpg2048/internal/config"
)

// HighScoreStore persists the best enemies-defeated count.
type HighScoreStore interface {
	HighScore() (int, error)
	SaveIfHigher(score int) (bool, error)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Without one the session logs nothing.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand sets the random source used for every draw.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithHighScores sets the high score collaborator.
func WithHighScores(store HighScoreStore) Option {
	return func(s *Session) { s.scores = store }
}

// WithObserver registers a callback invoked for every update as it is emitted.
func WithObserver(fn func(Update)) Option {
	return func(s *Session) { s.observer = fn }
}

// Session is one running battle. It is not safe for concurrent use; callers
// serialize moves, Advance and the other commands.
type Session struct {
	cfg      config.BattleConfig
	diff     *config.DifficultyManager
	rng      *rand.Rand
	log      *log.Logger
	scores   HighScoreStore
	observer func(Update)

	now     time.Duration
	timers  [numAttacks]timer
	pending []delayed
	seq     uint64
	updates []Update

	grid       Grid
	blocked    []BlockedSlot
	frozen     []FrozenSlot
	ghosts     []GhostSlot
	nextSlotID int

	enemy     Enemy
	pace      config.Pace
	defeated  int
	highScore int

	locked      bool
	paused      bool
	over        bool
	won         bool
	overMessage string
	notice      string

	lastDamage   int
	lastResisted bool
	moved        bool
	lastMove     time.Duration
	stall        int
}

// Turn reports how a move was processed.
type Turn struct {
	Accepted  bool // The move passed the input gate
	Fast      bool // The move came within the fast-move threshold
	Result    MoveResult
	Outcome   DamageOutcome
	Deletions int // Punishment deletions requested by the move
}

// New starts a session at level 0.
func New(cfg config.BattleConfig, opts ...Option) *Session {
	s := &Session{
		cfg:  cfg,
		diff: config.NewDifficultyManager(cfg),
		log:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.loadHighScore()
	s.resetLevel()
	return s
}

// AcceptsInput reports whether a move would be processed now.
func (s *Session) AcceptsInput() bool {
	return !s.paused && !s.locked && s.enemy.Alive() && !s.over && !s.won
}

// Move handles a player move. Every call counts toward fast-move detection,
// including rejected ones.
func (s *Session) Move(dir Direction) Turn {
	fast := s.moved && s.now-s.lastMove < s.cfg.Timing.FastMove
	s.moved = true
	s.lastMove = s.now

	if !s.AcceptsInput() {
		return Turn{Fast: fast}
	}
	return s.process(Slide(s.grid, s.frozen, dir), fast)
}

// BotMove handles a move from an automated player. It is never fast and does
// not affect fast-move detection for the player.
func (s *Session) BotMove(dir Direction) Turn {
	if !s.AcceptsInput() {
		return Turn{}
	}
	return s.process(Slide(s.grid, s.frozen, dir), false)
}

func (s *Session) process(res MoveResult, fast bool) Turn {
	turn := Turn{Accepted: true, Fast: fast, Result: res}
	if !res.Changed {
		s.lastDamage = 0
		s.lastResisted = false
		s.emit(Update{Kind: UpdateNoMove})
		return turn
	}

	s.grid = res.Grid
	s.frozen = res.Frozen

	if fast {
		turn.Deletions++
	}
	if len(res.Damage) == 0 && len(res.TargetMerges) == 0 && len(res.FrozenHits) == 0 {
		if s.grid.HasTileAtLeast(s.cfg.Punish.StallTile) {
			s.stall++
			if s.stall >= s.cfg.Punish.StallMoves {
				turn.Deletions++
				s.stall = 0
			}
		}
	} else {
		s.stall = 0
	}

	turn.Outcome = s.enemy.ApplyDamage(res.Damage, res.TargetMerges)
	s.lastDamage = turn.Outcome.Valid
	s.lastResisted = turn.Outcome.Resisted && !turn.Outcome.InstantWin
	s.emit(Update{
		Kind:       UpdateMove,
		Merged:     res.Merged,
		FrozenHits: res.FrozenHits,
		Damage:     turn.Outcome.Valid,
		Resisted:   s.lastResisted,
	})

	if turn.Outcome.Defeated {
		s.defeat(false)
		return turn
	}

	if turn.Deletions > 0 {
		s.punish(turn.Deletions, nil)
	}
	s.after(s.cfg.Timing.Spawn, func() {
		s.spawnTile()
		s.checkWin()
		s.checkGameOver()
	})
	return turn
}

// defeat runs the defeat transition: count it, stop every clock, lock input
// and start the next level after the defeat delay.
func (s *Session) defeat(debug bool) {
	s.enemy.HP = 0
	s.defeated++
	s.clearTimers()
	s.pending = nil
	s.locked = true

	delay := s.cfg.Timing.Defeat
	s.notice = s.enemy.Name + " defeated!"
	if debug {
		delay = s.cfg.Timing.DebugDefeat
		s.notice = "DEBUG: level cleared!"
	}
	s.saveHighScore()
	s.log.Debug("enemy defeated", "enemy", s.enemy.Name, "defeated", s.defeated, "debug", debug)
	s.emit(Update{Kind: UpdateDefeat, Message: s.notice})
	s.after(delay, s.resetLevel)
}

// resetLevel clears the board and every flag, picks the enemy for the
// current defeat count, places its targets, spawns the opening tiles and
// arms its attacks.
func (s *Session) resetLevel() {
	s.grid = Grid{}
	s.blocked, s.frozen, s.ghosts = nil, nil, nil
	s.clearTimers()
	s.pending = nil
	s.locked, s.paused, s.over, s.won = false, false, false, false
	s.overMessage, s.notice = "", ""
	s.lastDamage, s.lastResisted = 0, false
	s.stall = 0

	s.enemy = NewEnemy(s.defeated, s.cfg.Pools, s.rng)
	s.pace = s.diff.Pace(s.defeated, s.enemy.Boss && s.enemy.Burn)

	for _, v := range s.enemy.TargetsToHit {
		if empty := s.grid.EmptyCells(); len(empty) > 0 {
			s.grid.Set(s.pick(empty), TargetCell(v))
		}
	}
	var spawned []Pos
	for range s.cfg.Board.StartTiles {
		if p, ok := Spawn(&s.grid, s.rng, s.cfg.Board.TwoChance); ok {
			spawned = append(spawned, p)
		}
	}

	s.log.Debug("enemy spawned", "enemy", s.enemy.Name, "goal", s.enemy.Goal, "boss", s.enemy.Boss)
	s.emit(Update{Kind: UpdateLevel, Spawned: spawned, Message: s.enemy.Name})
	s.startTimers()
}

// Restart begins a new run from level 0.
func (s *Session) Restart() {
	s.defeated = 0
	s.moved = false
	s.lastMove = 0
	s.stall = 0
	s.resetLevel()
}

// TogglePause pauses or resumes the battle and returns the new paused state.
// Pausing stops the attack clocks; resuming restarts them from zero. It is
// refused while the game over state is showing.
func (s *Session) TogglePause() bool {
	if s.over {
		return s.paused
	}
	s.paused = !s.paused
	if s.paused {
		s.clearTimers()
	} else if s.enemy.Alive() && !s.won {
		s.startTimers()
	}
	s.emit(Update{Kind: UpdatePause})
	return s.paused
}

// ForceWinLevel defeats the current enemy with the short debug delay.
// It is refused while input is locked.
func (s *Session) ForceWinLevel() bool {
	if s.locked {
		return false
	}
	s.defeat(true)
	return true
}

func (s *Session) loadHighScore() {
	if s.scores == nil {
		return
	}
	hs, err := s.scores.HighScore()
	if err != nil {
		s.log.Warn("failed to read high score", "err", err)
		return
	}
	s.highScore = hs
}

func (s *Session) saveHighScore() {
	s.highScore = max(s.highScore, s.defeated)
	if s.scores == nil {
		return
	}
	if _, err := s.scores.SaveIfHigher(s.defeated); err != nil {
		s.log.Warn("failed to save high score", "err", err)
	}
}

// State is a read-only snapshot of a session.
type State struct {
	Now        time.Duration
	Grid       Grid
	Blocked    []BlockedSlot
	Frozen     []FrozenSlot
	Ghosts     []GhostSlot
	Enemy      Enemy
	Pace       config.Pace
	Defeated   int
	HighScore  int
	LastDamage int
	Resisted   bool
	Locked     bool
	Paused     bool
	Over       bool
	Won        bool
	Message    string // Game over message
	Notice     string // Defeat notice shown during the level transition
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{
		Now:        s.now,
		Grid:       s.grid,
		Blocked:    slices.Clone(s.blocked),
		Frozen:     slices.Clone(s.frozen),
		Ghosts:     slices.Clone(s.ghosts),
		Enemy:      s.enemy.Clone(),
		Pace:       s.pace,
		Defeated:   s.defeated,
		HighScore:  s.highScore,
		LastDamage: s.lastDamage,
		Resisted:   s.lastResisted,
		Locked:     s.locked,
		Paused:     s.paused,
		Over:       s.over,
		Won:        s.won,
		Message:    s.overMessage,
		Notice:     s.notice,
	}
}

// Grid returns the current board.
func (s *Session) Grid() Grid { return s.grid }

// Enemy returns a copy of the current enemy.
func (s *Session) Enemy() Enemy { return s.enemy.Clone() }

// Defeated returns the number of enemies defeated this run.
func (s *Session) Defeated() int { return s.defeated }

// Now returns the logical clock.
func (s *Session) Now() time.Duration { return s.now }

// Over reports whether the game has ended.
func (s *Session) Over() bool { return s.over }

// Locked reports whether input is locked by an effect in flight.
func (s *Session) Locked() bool { return s.locked }
