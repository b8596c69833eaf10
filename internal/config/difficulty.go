package config

import (
	"math"
	"time"
)

// Pace is the attack cadence of a single level.
type Pace struct {
	Block     time.Duration
	Burn      time.Duration
	Freeze    time.Duration
	Ghost     time.Duration
	Shuffle   time.Duration
	DeleteMin time.Duration
	DeleteMax time.Duration
	MaxBlocks int
}

// DifficultyManager calculates the attack pace from the number of defeated enemies.
type DifficultyManager struct {
	attacks AttacksConfig
	cfg     DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg BattleConfig) *DifficultyManager {
	return &DifficultyManager{
		attacks: cfg.Attacks,
		cfg:     cfg.Difficulty,
	}
}

// SetEnabled enables or disables the per-defeat speed-up.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether the speed-up is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Factor returns the interval multiplier after the given number of defeats.
func (d *DifficultyManager) Factor(defeated int) float64 {
	if !d.cfg.Enabled || defeated <= 0 {
		return 1.0
	}
	return math.Pow(d.cfg.SpeedFactor, float64(defeated))
}

// Pace returns the attack cadence for the level that follows the given
// number of defeats. Burning bosses attack with a slower burn.
func (d *DifficultyManager) Pace(defeated int, burningBoss bool) Pace {
	f := d.Factor(defeated)
	a := d.attacks

	p := Pace{
		Block:     scaled(a.Block.Every, f, a.Block.Floor),
		Burn:      scaled(a.Burn.Every, f, a.Burn.Floor),
		Freeze:    scaled(a.Freeze.Every, f, a.Freeze.Floor),
		Ghost:     scaled(a.Ghost.Every, f, a.Ghost.Floor),
		Shuffle:   scaled(a.Shuffle.Every, f, a.Shuffle.Floor),
		DeleteMin: scaled(a.Delete.Min, f, a.Delete.MinFloor),
		DeleteMax: scaled(a.Delete.Max, f, a.Delete.MaxFloor),
		MaxBlocks: d.MaxBlocks(defeated),
	}
	if burningBoss && a.BossBurnMul > 0 {
		p.Burn = time.Duration(float64(p.Burn) * a.BossBurnMul)
	}
	if p.DeleteMin > p.DeleteMax {
		p.DeleteMin = p.DeleteMax
	}
	return p
}

// MaxBlocks returns how many cells may be blocked at once.
func (d *DifficultyManager) MaxBlocks(defeated int) int {
	every := d.cfg.BlocksEvery
	if every <= 0 {
		every = 1
	}
	return min(d.cfg.MaxBlocks, 1+defeated/every)
}

func scaled(base time.Duration, f float64, floor time.Duration) time.Duration {
	return max(floor, time.Duration(float64(base)*f))
}
