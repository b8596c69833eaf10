package rpg2048

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/rpg2048/internal/bot"
	"github.com/vovakirdan/rpg2048/internal/config"
	"github.com/vovakirdan/rpg2048/internal/core"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048/engine"
	"github.com/vovakirdan/rpg2048/internal/registry"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func newTestGame(t *testing.T, g *Game, cfg core.RuntimeConfig) *Game {
	t.Helper()
	g.Reset(cfg)
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func stepN(g *Game, n int) {
	for range n {
		g.Step(core.NewInputFrame())
	}
}

var dirActions = map[engine.Direction]core.Action{
	engine.DirUp:    core.ActionUp,
	engine.DirDown:  core.ActionDown,
	engine.DirLeft:  core.ActionLeft,
	engine.DirRight: core.ActionRight,
}

func TestRegistered(t *testing.T) {
	for _, tt := range []struct {
		id    string
		title string
	}{
		{IDPlayer, "RPG 2048"},
		{IDBot, "RPG 2048 (Bot)"},
	} {
		g, err := registry.Create(tt.id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", tt.id, err)
		}
		if g.ID() != tt.id || g.Title() != tt.title {
			t.Errorf("Create(%q) = %s %q", tt.id, g.ID(), g.Title())
		}
		if _, ok := g.(registry.ScoreAware); !ok {
			t.Errorf("%s does not accept a score keeper", tt.id)
		}
		if _, ok := g.(registry.Resizable); !ok {
			t.Errorf("%s is not resizable", tt.id)
		}
	}
}

func TestDeterministicReset(t *testing.T) {
	g1 := newTestGame(t, New(), testConfig())
	g2 := newTestGame(t, New(), testConfig())

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Board != s2.Board || s1.Goal != s2.Goal || s1.HP != s2.HP {
		t.Errorf("same seed produced different starts:\n%v\n%v", s1.Board, s2.Board)
	}
	if s1.Level != 1 || s1.Enemy != "Enemy Level 1" || s1.State != StatePlaying {
		t.Errorf("unexpected start snapshot %+v", s1)
	}
}

func TestStepMove(t *testing.T) {
	g := newTestGame(t, New(), testConfig())
	before := g.Snapshot()

	dir, ok := bot.Choose(g.Session().State())
	if !ok {
		t.Fatal("no move available on the opening board")
	}
	g.Step(input(dirActions[dir]))
	// Let the spawn delay pass.
	stepN(g, 10)

	after := g.Snapshot()
	if after.Board == before.Board {
		t.Error("board unchanged after a changing move")
	}
	if after.Clock <= before.Clock {
		t.Errorf("clock did not advance: %v -> %v", before.Clock, after.Clock)
	}
}

func TestLogicalClock(t *testing.T) {
	g := newTestGame(t, New(), testConfig())
	stepN(g, 60)

	clock := g.Snapshot().Clock
	if clock < 990*time.Millisecond || clock > time.Second {
		t.Errorf("clock after 60 ticks = %v, want about 1s", clock)
	}
}

func TestPauseStep(t *testing.T) {
	g := newTestGame(t, New(), testConfig())

	g.Step(input(core.ActionPause))
	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("expected paused after pause input")
	}

	clock := g.Snapshot().Clock
	before := g.Snapshot().Board
	g.Step(input(core.ActionLeft))
	if g.Snapshot().Board != before {
		t.Error("move processed while paused")
	}
	if g.Snapshot().Clock <= clock {
		t.Error("logical clock stopped while paused")
	}

	g.Step(input(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resumed after second pause input")
	}
}

func TestTooSmall(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 30, 10
	g := newTestGame(t, New(), cfg)

	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Fatal("expected small window pause")
	}
	clock := g.Snapshot().Clock
	g.Step(core.NewInputFrame())
	if g.Snapshot().Clock != clock {
		t.Error("battle advanced in a small window")
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("missing small window message")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("still paused after resize")
	}
}

type fakeKeeper struct {
	best  int
	saves []int
}

func (f *fakeKeeper) HighScore() (int, error) { return f.best, nil }

func (f *fakeKeeper) SaveIfHigher(score int) (bool, error) {
	f.saves = append(f.saves, score)
	if score > f.best {
		f.best = score
		return true, nil
	}
	return false, nil
}

func TestDebugWin(t *testing.T) {
	keeper := &fakeKeeper{best: 5}

	g := New()
	g.SetScoreKeeper(keeper)
	cfg := testConfig()
	cfg.Debug = true
	newTestGame(t, g, cfg)

	if got := g.Snapshot().HighScore; got != 5 {
		t.Errorf("HighScore = %d, want 5", got)
	}

	g.Step(input(core.ActionDebugWin))
	snap := g.Snapshot()
	if snap.Defeated != 1 || snap.State != StateLevelCleared {
		t.Fatalf("after debug win: defeated %d, state %s", snap.Defeated, snap.State)
	}
	if len(keeper.saves) != 1 || keeper.saves[0] != 1 {
		t.Errorf("saves = %v, want [1]", keeper.saves)
	}

	// The debug defeat delay is one second.
	stepN(g, 61)
	snap = g.Snapshot()
	if snap.Level != 2 || snap.State != StatePlaying {
		t.Errorf("after delay: level %d, state %s", snap.Level, snap.State)
	}
}

func TestDebugKeysIgnoredWithoutDebug(t *testing.T) {
	g := newTestGame(t, New(), testConfig())
	g.Step(input(core.ActionDebugWin, core.ActionDebugShuffle))
	if snap := g.Snapshot(); snap.Defeated != 0 || snap.State != StatePlaying {
		t.Errorf("debug input applied without debug: %+v", snap)
	}
}

func TestBotModePlays(t *testing.T) {
	g := newTestGame(t, NewBot(), testConfig())
	before := g.Snapshot().Board

	// Directional input belongs to the bot in this mode.
	g.Step(input(core.ActionLeft))
	if g.Snapshot().Board != before {
		t.Error("bot mode accepted player input")
	}

	stepN(g, 60)
	if g.Snapshot().Board == before {
		t.Error("bot did not move within a second")
	}
	if g.Snapshot().Mode != string(ModeBot) {
		t.Errorf("Mode = %s, want bot", g.Snapshot().Mode)
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(t, New(), testConfig())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Enemy Level 1", "Defeated 0", "Best 0", "┌", "Q: Quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestEffects(t *testing.T) {
	timing := config.DefaultBattleConfig().Timing
	fx := newEffects(timing)
	p := engine.Pos{R: 1, C: 2}

	fx.absorb([]engine.Update{{Kind: engine.UpdateAttack, Attack: engine.AttackDelete, Deleted: []engine.Pos{p}}})
	if fx.At(p) != EffectDelete {
		t.Fatalf("At() = %v, want delete", fx.At(p))
	}
	if fx.Banner() != "Enemy uses DELETE!" {
		t.Errorf("Banner() = %q", fx.Banner())
	}

	fx.step(timing.Delete - time.Millisecond)
	if fx.At(p) != EffectDelete {
		t.Error("delete highlight ended early")
	}
	fx.step(time.Millisecond)
	if fx.At(p) != EffectNone {
		t.Error("delete highlight outlived the delete delay")
	}

	fx.step(bannerDuration)
	if fx.Banner() != "" {
		t.Errorf("banner still showing: %q", fx.Banner())
	}

	fx.absorb([]engine.Update{{Kind: engine.UpdateMove, Merged: []engine.Pos{p}}})
	fx.absorb([]engine.Update{{Kind: engine.UpdateLevel, Message: "Enemy Level 2"}})
	if fx.At(p) != EffectNone {
		t.Error("level start kept old highlights")
	}
	if fx.Banner() != "Enemy Level 2 appears!" {
		t.Errorf("Banner() = %q", fx.Banner())
	}
}
