package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rpg2048/internal/config"
	"github.com/vovakirdan/rpg2048/internal/core"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048"
	"github.com/vovakirdan/rpg2048/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *rpg2048.Game) {
	t.Helper()
	g := rpg2048.New()
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	m.Init()
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestModelInjectsKeeper(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveHighScoreIfHigher(rpg2048.IDPlayer, 7); err != nil {
		t.Fatalf("SaveHighScoreIfHigher() error = %v", err)
	}

	_, g := newTestModel(t, store)
	if got := g.Snapshot().HighScore; got != 7 {
		t.Errorf("HighScore = %d, want 7", got)
	}
}

func TestModelBackOnlyWhenPaused(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, TickMsg{})

	m = update(t, m, runeKey("b"))
	if m.WentBack() {
		t.Fatal("back accepted during a running battle")
	}
	m.inputFrame.Clear()

	m = update(t, m, runeKey("p"))
	m = update(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("expected paused after p")
	}

	next, cmd := m.Update(runeKey("b"))
	if !next.(Model).WentBack() || cmd == nil {
		t.Error("back not accepted while paused")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).Quitting() || cmd == nil {
		t.Error("q did not quit")
	}
	if next.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestModelResizeKeepsBattle(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, TickMsg{})
	before := g.Snapshot()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	after := g.Snapshot()
	if after.Board != before.Board || after.Clock != before.Clock {
		t.Error("resize reset the battle")
	}

	update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if g.Snapshot().State != rpg2048.StatePausedSmall {
		t.Errorf("State = %s, want small window pause", g.Snapshot().State)
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, TickMsg{})
	if out := m.View(); !strings.Contains(out, "Enemy Level 1") {
		t.Error("view missing enemy name")
	}
}

func TestDifficultyModel(t *testing.T) {
	m := NewDifficultyModel(config.DifficultyHard, 80, 24)
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(DifficultyModel).Selected()
	if got == nil || *got != config.DifficultyNormal || cmd == nil {
		t.Errorf("Selected() = %v, want normal", got)
	}

	back, _ := NewDifficultyModel(config.DifficultyEasy, 80, 24).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if back.(DifficultyModel).Selected() != nil {
		t.Error("back produced a selection")
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(rpg2048.IDPlayer, 4); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}
	if _, err := store.SaveRun(storage.Run{GameID: rpg2048.IDBot, Player: "bot", Seed: 99, Defeated: 3, Moves: 120, EndReason: "no-moves"}); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.rows) != 1 || m.rows[0][1] != "4" {
		t.Fatalf("campaign rows = %v", m.rows)
	}

	// Bot (watch) then bot runs
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb := next.(ScoreboardModel)
	if !sb.current().runs {
		t.Fatalf("tab %q is not the runs tab", sb.current().title)
	}
	if len(sb.rows) != 1 || sb.rows[0][0] != "99" || sb.rows[0][3] != "no-moves" {
		t.Errorf("run rows = %v", sb.rows)
	}
	if !strings.Contains(sb.View(), "Runs: 1") {
		t.Error("view missing run stats")
	}

	next, _ = sb.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if next.(ScoreboardModel).current().gameID != rpg2048.IDBot || next.(ScoreboardModel).current().runs {
		t.Error("shift+tab did not go back one tab")
	}
}
