// Package config provides YAML-based battle configuration loading,
// difficulty presets and attack pacing for rpg2048.
package config

import (
	"errors"
	"fmt"
	"time"
)

// BattleConfig contains every tunable of a battle: timing delays, attack
// cadence, punishment buckets, board rules and the challenge pools.
type BattleConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Attacks    AttacksConfig    `yaml:"attacks"`
	Punish     PunishConfig     `yaml:"punish"`
	Board      BoardConfig      `yaml:"board"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Pools      PoolsConfig      `yaml:"pools"`
}

// TimingConfig holds the fixed delays the engine schedules on its logical clock.
type TimingConfig struct {
	FastMove    time.Duration `yaml:"fast_move"`    // Moves closer than this are punished
	Spawn       time.Duration `yaml:"spawn"`        // Delay between a move and its spawned tile
	Delete      time.Duration `yaml:"delete"`       // Punishment deletion animation
	Burn        time.Duration `yaml:"burn"`         // Burn animation before halving
	Shuffle     time.Duration `yaml:"shuffle"`      // Shuffle animation before unlocking
	Defeat      time.Duration `yaml:"defeat"`       // Defeat overlay before the next level
	DebugDefeat time.Duration `yaml:"debug_defeat"` // Same, for the forced win hook
	LockRetry   time.Duration `yaml:"lock_retry"`   // Retry interval of reversions blocked by the lock
	BlockHold   time.Duration `yaml:"block_hold"`   // How long a blocked cell stays blocked
	GhostHold   time.Duration `yaml:"ghost_hold"`   // How long a ghost cell stays hidden
	BotInterval time.Duration `yaml:"bot_interval"` // Bot decision cadence
}

// IntervalConfig is a repeating attack interval and its lower bound after speed-up.
type IntervalConfig struct {
	Every time.Duration `yaml:"every"`
	Floor time.Duration `yaml:"floor"`
}

// DeleteConfig is the random delay window of the delete attack.
type DeleteConfig struct {
	Min      time.Duration `yaml:"min"`
	MinFloor time.Duration `yaml:"min_floor"`
	Max      time.Duration `yaml:"max"`
	MaxFloor time.Duration `yaml:"max_floor"`
}

// AttacksConfig defines the cadence and caps of the enemy attacks.
type AttacksConfig struct {
	Block       IntervalConfig `yaml:"block"`
	Burn        IntervalConfig `yaml:"burn"`
	Freeze      IntervalConfig `yaml:"freeze"`
	Ghost       IntervalConfig `yaml:"ghost"`
	Shuffle     IntervalConfig `yaml:"shuffle"`
	Delete      DeleteConfig   `yaml:"delete"`
	FreezeHits  int            `yaml:"freeze_hits"`   // Hits needed to break a frozen cell
	MaxFrozen   int            `yaml:"max_frozen"`    // Frozen cells allowed at once
	MaxGhosts   int            `yaml:"max_ghosts"`    // Ghost cells allowed at once
	BurnMinTile int            `yaml:"burn_min_tile"` // Smallest tile a burn can target
	BossBurnMul float64        `yaml:"boss_burn_mul"` // Burn interval multiplier for bosses
}

// BucketConfig partitions tiles by value for weighted punishment.
// A tile falls in the first bucket whose bound it does not exceed; tiles above
// HighMax are epic. Thresholds are cumulative draw probabilities for low, mid
// and high; the remainder selects epic.
type BucketConfig struct {
	LowMax     int       `yaml:"low_max"`
	MidMax     int       `yaml:"mid_max"`
	HighMax    int       `yaml:"high_max"`
	Thresholds []float64 `yaml:"thresholds"`
}

// PunishConfig defines the punishment deletion rules.
type PunishConfig struct {
	Buckets      BucketConfig `yaml:"buckets"`
	DeflectAbove int          `yaml:"deflect_above"` // Picked tiles above this are re-rolled once
	StallMoves   int          `yaml:"stall_moves"`   // Merge-less moves before a stall deletion
	StallTile    int          `yaml:"stall_tile"`    // Stall rule applies only once a tile this big exists
}

// BoardConfig defines spawning and the win tile.
type BoardConfig struct {
	TwoChance  float64 `yaml:"two_chance"` // Probability that a spawned tile is a 2
	StartTiles int     `yaml:"start_tiles"`
	WinTile    int     `yaml:"win_tile"`
}

// DifficultyConfig defines the per-defeat speed-up.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SpeedFactor   float64 `yaml:"speed_factor"`   // Interval multiplier per defeated enemy
	IntervalScale float64 `yaml:"interval_scale"` // Preset multiplier on base intervals
	MaxBlocks     int     `yaml:"max_blocks"`     // Upper bound of concurrent blocked cells
	BlocksEvery   int     `yaml:"blocks_every"`   // Defeats per extra allowed block
}

// Challenge is one entry of a challenge pool.
type Challenge struct {
	HP     int    `yaml:"hp"`
	Goal   string `yaml:"goal"`
	Values []int  `yaml:"values,omitempty"`
	Text   string `yaml:"text"`
}

// PoolsConfig holds the challenge pools by tier and the boss ladder.
type PoolsConfig struct {
	Easy   []Challenge `yaml:"easy"`
	Medium []Challenge `yaml:"medium"`
	Hard   []Challenge `yaml:"hard"`
	Epic   []Challenge `yaml:"epic"`
	Bosses []Challenge `yaml:"bosses"`
}

// Goal names accepted in challenge pools.
const (
	GoalHPDamage    = "HP_DAMAGE"
	GoalHPFiltered  = "HP_FILTERED"
	GoalMergeList   = "MERGE_LIST"
	GoalBuildTile   = "BUILD_TILE"
	GoalTargetMerge = "TARGET_MERGE"
)

// IsHPGoal reports whether the goal is resolved through hit points.
func IsHPGoal(goal string) bool {
	return goal == GoalHPDamage || goal == GoalHPFiltered
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IntervalScaleForPreset returns the base interval multiplier for a preset.
// Longer intervals mean slower attacks.
func IntervalScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.25
	case DifficultyHard:
		return 0.8
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables the per-defeat speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c BattleConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("config: "+format, args...))
	}

	tm := c.Timing
	delays := []struct {
		name string
		d    time.Duration
	}{
		{"spawn", tm.Spawn},
		{"delete", tm.Delete},
		{"burn", tm.Burn},
		{"shuffle", tm.Shuffle},
		{"defeat", tm.Defeat},
		{"debug_defeat", tm.DebugDefeat},
		{"lock_retry", tm.LockRetry},
		{"block_hold", tm.BlockHold},
		{"ghost_hold", tm.GhostHold},
		{"bot_interval", tm.BotInterval},
	}
	for _, dl := range delays {
		if dl.d <= 0 {
			add("timing.%s must be positive", dl.name)
		}
	}
	if tm.FastMove < 0 {
		add("timing.fast_move must not be negative")
	}

	intervals := map[string]IntervalConfig{
		"block":   c.Attacks.Block,
		"burn":    c.Attacks.Burn,
		"freeze":  c.Attacks.Freeze,
		"ghost":   c.Attacks.Ghost,
		"shuffle": c.Attacks.Shuffle,
	}
	for _, name := range []string{"block", "burn", "freeze", "ghost", "shuffle"} {
		iv := intervals[name]
		if iv.Every <= 0 || iv.Floor <= 0 {
			add("attacks.%s: interval and floor must be positive", name)
		}
	}
	d := c.Attacks.Delete
	if d.Min <= 0 || d.Max <= 0 || d.MinFloor <= 0 || d.MaxFloor <= 0 {
		add("attacks.delete: delays must be positive")
	}
	if d.Min > d.Max {
		add("attacks.delete: min %s exceeds max %s", d.Min, d.Max)
	}
	if d.MinFloor > d.MaxFloor {
		add("attacks.delete: min_floor %s exceeds max_floor %s", d.MinFloor, d.MaxFloor)
	}
	if c.Attacks.FreezeHits <= 0 {
		add("attacks.freeze_hits must be positive")
	}
	if c.Attacks.MaxFrozen <= 0 || c.Attacks.MaxGhosts <= 0 {
		add("attacks: max_frozen and max_ghosts must be positive")
	}

	pun := c.Punish
	if pun.DeflectAbove <= 0 {
		add("punish.deflect_above must be positive")
	}
	if pun.StallMoves <= 0 || pun.StallTile <= 0 {
		add("punish: stall_moves and stall_tile must be positive")
	}

	b := c.Punish.Buckets
	if !(0 < b.LowMax && b.LowMax < b.MidMax && b.MidMax < b.HighMax) {
		add("punish.buckets: bounds must be increasing (got %d, %d, %d)", b.LowMax, b.MidMax, b.HighMax)
	}
	if len(b.Thresholds) != 3 {
		add("punish.buckets: want 3 thresholds, got %d", len(b.Thresholds))
	} else {
		prev := 0.0
		for i, th := range b.Thresholds {
			if th <= prev || th > 1 {
				add("punish.buckets: threshold %d (%v) must be increasing within (0, 1]", i, th)
			}
			prev = th
		}
	}

	if c.Board.TwoChance < 0 || c.Board.TwoChance > 1 {
		add("board.two_chance must be within [0, 1]")
	}
	if c.Board.WinTile <= 0 {
		add("board.win_tile must be positive")
	}
	if c.Board.StartTiles <= 0 {
		add("board.start_tiles must be positive")
	}
	if c.Difficulty.SpeedFactor <= 0 || c.Difficulty.SpeedFactor > 1 {
		add("difficulty.speed_factor must be within (0, 1]")
	}
	if c.Difficulty.MaxBlocks <= 0 || c.Difficulty.BlocksEvery <= 0 {
		add("difficulty: max_blocks and blocks_every must be positive")
	}

	pools := []struct {
		name    string
		entries []Challenge
	}{
		{"easy", c.Pools.Easy},
		{"medium", c.Pools.Medium},
		{"hard", c.Pools.Hard},
		{"epic", c.Pools.Epic},
		{"bosses", c.Pools.Bosses},
	}
	for _, p := range pools {
		if len(p.entries) == 0 {
			add("pools.%s is empty", p.name)
		}
		for i, ch := range p.entries {
			if err := ch.validate(); err != nil {
				add("pools.%s[%d]: %v", p.name, i, err)
			}
		}
	}

	return errors.Join(errs...)
}

func (ch Challenge) validate() error {
	switch ch.Goal {
	case GoalHPDamage:
		if ch.HP <= 0 {
			return fmt.Errorf("hp must be positive for %s", ch.Goal)
		}
	case GoalHPFiltered:
		if ch.HP <= 0 {
			return fmt.Errorf("hp must be positive for %s", ch.Goal)
		}
		if len(ch.Values) == 0 {
			return fmt.Errorf("%s needs values", ch.Goal)
		}
	case GoalMergeList, GoalBuildTile, GoalTargetMerge:
		if len(ch.Values) == 0 {
			return fmt.Errorf("%s needs values", ch.Goal)
		}
	default:
		return fmt.Errorf("unknown goal %q", ch.Goal)
	}
	for _, v := range ch.Values {
		if v < 2 || v&(v-1) != 0 {
			return fmt.Errorf("value %d is not a tile value", v)
		}
	}
	return nil
}
