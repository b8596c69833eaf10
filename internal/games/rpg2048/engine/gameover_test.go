package engine

import (
	"testing"
)

// checker is a full board with no equal neighbours.
func checker() Grid {
	return Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
}

func TestHasValidMoves(t *testing.T) {
	with := func(p Pos, v int) Grid {
		g := checker()
		g.Set(p, v)
		return g
	}

	tests := []struct {
		name   string
		grid   Grid
		frozen []FrozenSlot
		want   bool
	}{
		{"empty cell", with(Pos{2, 2}, Empty), nil, true},
		{"stuck", checker(), nil, false},
		{"equal pair", with(Pos{0, 0}, 4), nil, true},
		{"tile next to matching target", with(Pos{0, 0}, TargetCell(4)), nil, true},
		{"target without a match", with(Pos{0, 0}, TargetCell(8)), nil, false},
		{"wall", with(Pos{0, 0}, Blocked), nil, false},
		{
			name:   "frozen cell next to a strong tile",
			grid:   with(Pos{0, 0}, Frozen),
			frozen: []FrozenSlot{{ID: 1, Pos: Pos{0, 0}, Value: 2, Hits: 2}},
			want:   true,
		},
		{
			name:   "frozen cell next to weak tiles",
			grid:   with(Pos{0, 0}, Frozen),
			frozen: []FrozenSlot{{ID: 1, Pos: Pos{0, 0}, Value: 8, Hits: 2}},
			want:   false,
		},
		{"frozen cell without a record", with(Pos{0, 0}, Frozen), nil, false},
		{"ghost anywhere", with(Pos{3, 3}, Ghost), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasValidMoves(tt.grid, tt.frozen); got != tt.want {
				t.Errorf("HasValidMoves() = %v, want %v\n%s", got, tt.want, tt.grid)
			}
		})
	}
}

type fakeScores struct {
	best  int
	saves []int
}

func (f *fakeScores) HighScore() (int, error) { return f.best, nil }

func (f *fakeScores) SaveIfHigher(score int) (bool, error) {
	f.saves = append(f.saves, score)
	if score > f.best {
		f.best = score
		return true, nil
	}
	return false, nil
}

func TestCheckGameOver(t *testing.T) {
	tests := []struct {
		name     string
		grid     Grid
		wantOver bool
		wantMsg  string
	}{
		{"no pieces", Grid{}, true, MsgNoPieces},
		{"only walls", Grid{{Blocked, Frozen}}, true, MsgNoPieces},
		{"no moves", checker(), true, MsgNoMoves},
		{"ghost keeps the game alive", func() Grid { g := checker(); g.Set(Pos{1, 1}, Ghost); return g }(), false, ""},
		{"room left", rowGrid(2, 0, 0, 0), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := &fakeScores{}
			s := newTestSession(t, WithHighScores(scores))
			s.defeated = 3
			s.grid = tt.grid

			s.checkGameOver()

			st := s.State()
			if st.Over != tt.wantOver || st.Message != tt.wantMsg {
				t.Fatalf("over = %v %q, want %v %q", st.Over, st.Message, tt.wantOver, tt.wantMsg)
			}
			if !tt.wantOver {
				return
			}
			if !st.Paused || s.AcceptsInput() {
				t.Error("game over must pause and refuse input")
			}
			if scores.best != 3 || st.HighScore != 3 {
				t.Errorf("high score = %d (state %d), want 3", scores.best, st.HighScore)
			}
			if _, armed := s.TimerArmed(AttackDelete); armed {
				t.Error("game over must stop the attack clocks")
			}
		})
	}
}

func TestHighScoreLoadedAtStart(t *testing.T) {
	scores := &fakeScores{best: 7}
	s := newTestSession(t, WithHighScores(scores))
	if got := s.State().HighScore; got != 7 {
		t.Errorf("HighScore = %d, want 7", got)
	}

	s.defeated = 2
	s.gameOver(MsgNoMoves)
	if scores.best != 7 || s.State().HighScore != 7 {
		t.Errorf("a lower score must not replace the best: store %d state %d", scores.best, s.State().HighScore)
	}
}
