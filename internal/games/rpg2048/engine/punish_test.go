package engine

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/rpg2048/internal/config"
)

func TestBucketOf(t *testing.T) {
	b := config.DefaultBattleConfig().Punish.Buckets
	tests := []struct {
		value int
		want  Bucket
	}{
		{2, BucketLow},
		{8, BucketLow},
		{16, BucketMid},
		{32, BucketMid},
		{64, BucketHigh},
		{128, BucketHigh},
		{256, BucketEpic},
		{2048, BucketEpic},
	}
	for _, tt := range tests {
		if got := BucketOf(tt.value, b); got != tt.want {
			t.Errorf("BucketOf(%d) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestDrawBucket(t *testing.T) {
	tests := []struct {
		name       string
		thresholds []float64
		draw       float64
		want       Bucket
	}{
		{"default low", []float64{0.90, 0.95, 0.98}, 0.10, BucketLow},
		{"default mid", []float64{0.90, 0.95, 0.98}, 0.90, BucketMid},
		{"default high", []float64{0.90, 0.95, 0.98}, 0.97, BucketHigh},
		{"default epic", []float64{0.90, 0.95, 0.98}, 0.99, BucketEpic},
		{"flat low", []float64{0.70, 0.85, 0.95}, 0.69, BucketLow},
		{"flat mid", []float64{0.70, 0.85, 0.95}, 0.75, BucketMid},
		{"flat high", []float64{0.70, 0.85, 0.95}, 0.90, BucketHigh},
		{"flat epic", []float64{0.70, 0.85, 0.95}, 0.96, BucketEpic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := drawBucket(tt.draw, tt.thresholds); got != tt.want {
				t.Errorf("drawBucket(%v) = %s, want %s", tt.draw, got, tt.want)
			}
		})
	}
}

func TestSelectPunishTargetEpicFallback(t *testing.T) {
	b := config.DefaultBattleConfig().Punish.Buckets
	g := Grid{
		{256, 0, 0, 512},
		{0, 0, 0, 0},
		{0, 1024, 0, 0},
		{0, 0, 0, 256},
	}
	rng := rand.New(rand.NewSource(1))
	for i := range 1000 {
		tile, ok := SelectPunishTarget(g, b, rng)
		if !ok {
			t.Fatalf("trial %d: no tile selected", i)
		}
		if BucketOf(tile.Value, b) != BucketEpic || g.At(tile.Pos) != tile.Value {
			t.Fatalf("trial %d: picked %+v, want an epic tile on the board", i, tile)
		}
	}
}

func TestSelectPunishTargetFallbackOrder(t *testing.T) {
	b := config.DefaultBattleConfig().Punish.Buckets

	tests := []struct {
		name string
		g    Grid
		draw float64
		want int
	}{
		{"low draw falls to high", rowGrid(64, 512, 0, 0), 0.10, 64},
		{"mid draw falls to high", rowGrid(512, 64, 0, 0), 0.92, 64},
		{"high draw hits high", rowGrid(512, 64, 0, 0), 0.96, 64},
		{"epic draw hits epic", rowGrid(64, 512, 0, 0), 0.99, 512},
		{"low draw falls to mid", rowGrid(1024, 32, 0, 0), 0.10, 32},
		{"high draw falls to mid before epic", rowGrid(1024, 16, 0, 0), 0.96, 16},
		{"low draw falls to epic last", rowGrid(0, 0, 256, 0), 0.10, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{vals: []int64{draw(tt.draw), 0}}
			tile, ok := SelectPunishTarget(tt.g, b, rand.New(src))
			if !ok || tile.Value != tt.want {
				t.Errorf("picked %+v (ok=%v), want the %d", tile, ok, tt.want)
			}
		})
	}
}

func TestSelectPunishTargetEmptyBoard(t *testing.T) {
	b := config.DefaultBattleConfig().Punish.Buckets
	g := rowGrid(Blocked, Ghost, TargetCell(16), 0)
	if _, ok := SelectPunishTarget(g, b, rand.New(rand.NewSource(1))); ok {
		t.Error("a board without tiles should yield nothing")
	}
}

func TestPickDeletions(t *testing.T) {
	p := config.DefaultBattleConfig().Punish
	rng := rand.New(rand.NewSource(9))

	g := rowGrid(2, 4, 8, 0)
	picks := PickDeletions(g, 5, p, rng)
	if len(picks) != 3 {
		t.Fatalf("picked %d tiles, want 3 (board runs out)", len(picks))
	}
	seen := map[Pos]bool{}
	for _, pk := range picks {
		if seen[pk.Pos] {
			t.Errorf("tile %v picked twice", pk.Pos)
		}
		seen[pk.Pos] = true
	}
	if g != rowGrid(2, 4, 8, 0) {
		t.Error("PickDeletions must not mutate the grid")
	}

	if got := PickDeletions(Grid{}, 2, p, rng); len(got) != 0 {
		t.Errorf("empty board picks = %v, want none", got)
	}
}

// scriptedSource replays fixed Int63 values and counts the draws taken.
type scriptedSource struct {
	vals  []int64
	calls int
}

func (s *scriptedSource) Int63() int64 {
	s.calls++
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v
}

func (s *scriptedSource) Seed(int64) {}

// draw returns the Int63 value that rand.Float64 maps to f.
func draw(f float64) int64 {
	return int64(f * (1 << 63))
}

// index returns the Int63 value that rand.Intn(n) maps to i for a power of two n.
func index(i int) int64 {
	return int64(i) << 32
}

func TestPickDeletionsDeflection(t *testing.T) {
	p := config.DefaultBattleConfig().Punish
	g := Grid{
		{512, 2, 2, 2},
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	// Epic draw picks the 512, the re-roll draws low and picks the fourth 2.
	script := []int64{draw(0.99), 0, draw(0.10), index(3)}

	single := &scriptedSource{vals: slices.Clone(script)}
	tile, ok := SelectPunishTarget(g, p.Buckets, rand.New(single))
	if !ok || tile.Value != 512 {
		t.Fatalf("SelectPunishTarget = %+v, want the 512", tile)
	}
	if single.calls != 2 {
		t.Errorf("single pick took %d draws, want 2", single.calls)
	}

	src := &scriptedSource{vals: slices.Clone(script)}
	picks := PickDeletions(g, 1, p, rand.New(src))
	if len(picks) != 1 || picks[0] != (Tile{Pos{1, 0}, 2}) {
		t.Fatalf("PickDeletions = %+v, want the 2 at (1,0) after deflection", picks)
	}
	if src.calls != 4 {
		t.Errorf("deflected pick took %d draws, want 4", src.calls)
	}

	// The re-roll uses the same bucket logic, so a lone epic tile is picked again.
	lone := &scriptedSource{vals: []int64{draw(0.99), 0, draw(0.10), 0}}
	picks = PickDeletions(rowGrid(512, 0, 0, 0), 1, p, rand.New(lone))
	if len(picks) != 1 || picks[0].Value != 512 || lone.calls != 4 {
		t.Errorf("lone epic picks = %+v after %d draws, want the 512 after 4", picks, lone.calls)
	}

	// Tiles at the bound are not deflected.
	high := &scriptedSource{vals: []int64{draw(0.96), 0}}
	picks = PickDeletions(rowGrid(128, 2, 2, 2), 1, p, rand.New(high))
	if len(picks) != 1 || picks[0].Value != 128 || high.calls != 2 {
		t.Errorf("high picks = %+v after %d draws, want the 128 after 2", picks, high.calls)
	}
}
