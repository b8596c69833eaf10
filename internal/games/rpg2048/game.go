// Package rpg2048 adapts the battle engine to the platform's tick loop:
// input mapping, the logical clock, cell highlights and screen rendering.
package rpg2048

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rpg2048/internal/bot"
	"github.com/vovakirdan/rpg2048/internal/config"
	"github.com/vovakirdan/rpg2048/internal/core"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048/engine"
	"github.com/vovakirdan/rpg2048/internal/registry"
)

// Mode represents who plays the battle.
type Mode string

const (
	ModePlayer Mode = "player"
	ModeBot    Mode = "bot"
)

// Game IDs under which the modes are registered.
const (
	IDPlayer = "rpg2048"
	IDBot    = "rpg2048_bot"
)

// Game runs one battle session inside the platform loop.
type Game struct {
	mode    Mode
	session *engine.Session
	battle  config.BattleConfig
	keeper  registry.ScoreKeeper
	fx      effects

	tick     uint64
	tickDur  time.Duration
	botClock time.Duration
	debug    bool

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// Package-level settings shared by every new game.
var (
	settingsMu sync.RWMutex
	configPath string
	preset     = config.DifficultyNormal
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the battle config file used by the next Reset.
// Empty means the default search order.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficulty sets the difficulty preset used by the next Reset.
func SetDifficulty(p config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	preset = p
}

// Difficulty returns the currently selected difficulty preset.
func Difficulty() config.DifficultyPreset {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return preset
}

// SetLogger sets the logger handed to engine sessions.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a battle played from the keyboard.
func New() *Game {
	return &Game{mode: ModePlayer}
}

// NewBot creates a battle played by the greedy bot.
func NewBot() *Game {
	return &Game{mode: ModeBot}
}

func init() {
	registry.Register(IDPlayer, func() registry.Game {
		return New()
	})
	registry.Register(IDBot, func() registry.Game {
		return NewBot()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeBot {
		return IDBot
	}
	return IDPlayer
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBot {
		return "RPG 2048 (Bot)"
	}
	return "RPG 2048"
}

// SetScoreKeeper sets where the best enemies-defeated count is kept.
func (g *Game) SetScoreKeeper(k registry.ScoreKeeper) {
	g.keeper = k
}

// loadBattle resolves the battle config for the current settings. A broken
// custom file falls back to the defaults with a warning.
func loadBattle() (config.BattleConfig, *log.Logger) {
	settingsMu.RLock()
	path, p, l := configPath, preset, logger
	settingsMu.RUnlock()

	cfg, err := config.LoadBattle(path)
	if err != nil {
		l.Warn("using default battle config", "path", path, "err", err)
		cfg = config.DefaultBattleConfig()
	}
	config.ApplyBattlePreset(&cfg, p)
	return cfg, l
}

// Reset starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	battle, l := loadBattle()
	g.battle = battle

	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.tickDur = time.Second / time.Duration(rate)
	g.tick = 0
	g.botClock = 0
	g.debug = cfg.Debug
	g.fx = newEffects(battle.Timing)

	opts := []engine.Option{
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(l.With("game", g.ID())),
	}
	if g.keeper != nil {
		opts = append(opts, engine.WithHighScores(g.keeper))
	}
	g.session = engine.New(battle, opts...)
	g.fx.absorb(g.session.DrainUpdates())

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts to a new screen size without touching the battle.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	s := g.session
	st := s.State()

	switch {
	case in.Has(core.ActionPause):
		s.TogglePause()
	case in.Has(core.ActionRestart) && st.Won:
		// Game over restarts go through the platform Reset.
		s.Restart()
		g.fx = newEffects(g.battle.Timing)
	}

	if g.mode == ModePlayer {
		if dir, ok := direction(in); ok {
			s.Move(dir)
		}
	}
	if g.debug {
		g.debugStep(in)
	}

	s.Advance(g.tickDur)

	if g.mode == ModeBot {
		g.botStep()
	}

	g.fx.absorb(s.DrainUpdates())
	g.fx.step(g.tickDur)

	return core.StepResult{State: g.State()}
}

// botStep lets the bot move once per bot interval of logical time.
func (g *Game) botStep() {
	g.botClock += g.tickDur
	interval := g.battle.Timing.BotInterval
	if g.botClock < interval {
		return
	}
	g.botClock -= interval

	s := g.session
	if !s.AcceptsInput() {
		return
	}
	if dir, ok := bot.Choose(s.State()); ok {
		s.BotMove(dir)
	}
}

var debugAttacks = []struct {
	action core.Action
	kind   engine.AttackKind
}{
	{core.ActionDebugBlock, engine.AttackBlock},
	{core.ActionDebugBurn, engine.AttackBurn},
	{core.ActionDebugFreeze, engine.AttackFreeze},
	{core.ActionDebugGhost, engine.AttackGhost},
	{core.ActionDebugShuffle, engine.AttackShuffle},
	{core.ActionDebugDelete, engine.AttackDelete},
}

func (g *Game) debugStep(in core.InputFrame) {
	if in.Has(core.ActionDebugWin) {
		g.session.ForceWinLevel()
	}
	for _, d := range debugAttacks {
		if in.Has(d.action) {
			g.session.DebugAttack(d.kind)
		}
	}
}

func direction(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// Session exposes the running battle.
func (g *Game) Session() *engine.Session {
	return g.session
}

// State returns the current game state. A won run is not over: the player
// restarts it from the win overlay.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.tooSmall}
	}
	st := g.session.State()
	return core.GameState{
		Score:    st.Defeated,
		GameOver: st.Over,
		Paused:   (st.Paused && !st.Over) || g.tooSmall,
	}
}
