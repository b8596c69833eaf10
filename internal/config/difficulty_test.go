package config

import (
	"testing"
	"time"
)

func TestPace(t *testing.T) {
	tests := []struct {
		name      string
		defeated  int
		boss      bool
		block     time.Duration
		burn      time.Duration
		deleteMin time.Duration
		deleteMax time.Duration
		maxBlocks int
	}{
		{
			name:      "first level",
			defeated:  0,
			block:     12 * time.Second,
			burn:      30 * time.Second,
			deleteMin: 15 * time.Second,
			deleteMax: 45 * time.Second,
			maxBlocks: 1,
		},
		{
			name:      "after four defeats",
			defeated:  4,
			block:     time.Duration(float64(12*time.Second) * 0.81450625),
			burn:      time.Duration(float64(30*time.Second) * 0.81450625),
			deleteMin: time.Duration(float64(15*time.Second) * 0.81450625),
			deleteMax: time.Duration(float64(45*time.Second) * 0.81450625),
			maxBlocks: 2,
		},
		{
			name:      "floors reached",
			defeated:  40,
			block:     5 * time.Second,
			burn:      10 * time.Second,
			deleteMin: 10 * time.Second,
			deleteMax: 15 * time.Second,
			maxBlocks: 3,
		},
		{
			name:      "burning boss",
			defeated:  0,
			boss:      true,
			block:     12 * time.Second,
			burn:      45 * time.Second,
			deleteMin: 15 * time.Second,
			deleteMax: 45 * time.Second,
			maxBlocks: 1,
		},
	}

	dm := NewDifficultyManager(DefaultBattleConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := dm.Pace(tt.defeated, tt.boss)
			if d := p.Block - tt.block; d < -time.Millisecond || d > time.Millisecond {
				t.Errorf("Block = %s, want %s", p.Block, tt.block)
			}
			if d := p.Burn - tt.burn; d < -time.Millisecond || d > time.Millisecond {
				t.Errorf("Burn = %s, want %s", p.Burn, tt.burn)
			}
			if d := p.DeleteMin - tt.deleteMin; d < -time.Millisecond || d > time.Millisecond {
				t.Errorf("DeleteMin = %s, want %s", p.DeleteMin, tt.deleteMin)
			}
			if d := p.DeleteMax - tt.deleteMax; d < -time.Millisecond || d > time.Millisecond {
				t.Errorf("DeleteMax = %s, want %s", p.DeleteMax, tt.deleteMax)
			}
			if p.MaxBlocks != tt.maxBlocks {
				t.Errorf("MaxBlocks = %d, want %d", p.MaxBlocks, tt.maxBlocks)
			}
		})
	}
}

func TestPaceFixed(t *testing.T) {
	cfg := DefaultBattleConfig()
	ApplyBattlePreset(&cfg, DifficultyFixed)
	dm := NewDifficultyManager(cfg)

	if dm.IsEnabled() {
		t.Error("fixed preset should disable the speed-up")
	}
	if f := dm.Factor(30); f != 1.0 {
		t.Errorf("Factor(30) = %v, want 1", f)
	}
	if p := dm.Pace(30, false); p.Freeze != 10*time.Second {
		t.Errorf("Freeze = %s, want 10s", p.Freeze)
	}
	// The block ramp is independent of the speed-up
	if got := dm.MaxBlocks(8); got != 3 {
		t.Errorf("MaxBlocks(8) = %d, want 3", got)
	}
}
