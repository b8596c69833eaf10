package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/battle.yaml
var defaultBattleYAML []byte

// DefaultBattleConfig returns the built-in battle configuration.
// It mirrors defaults/battle.yaml and is used when the embedded file cannot be parsed.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		Timing: TimingConfig{
			FastMove:    200 * time.Millisecond,
			Spawn:       100 * time.Millisecond,
			Delete:      400 * time.Millisecond,
			Burn:        700 * time.Millisecond,
			Shuffle:     600 * time.Millisecond,
			Defeat:      1500 * time.Millisecond,
			DebugDefeat: time.Second,
			LockRetry:   100 * time.Millisecond,
			BlockHold:   2 * time.Second,
			GhostHold:   8 * time.Second,
			BotInterval: 500 * time.Millisecond,
		},
		Attacks: AttacksConfig{
			Block:   IntervalConfig{Every: 12 * time.Second, Floor: 5 * time.Second},
			Burn:    IntervalConfig{Every: 30 * time.Second, Floor: 10 * time.Second},
			Freeze:  IntervalConfig{Every: 10 * time.Second, Floor: 4 * time.Second},
			Ghost:   IntervalConfig{Every: 12 * time.Second, Floor: 5 * time.Second},
			Shuffle: IntervalConfig{Every: 15 * time.Second, Floor: 8 * time.Second},
			Delete: DeleteConfig{
				Min:      15 * time.Second,
				MinFloor: 10 * time.Second,
				Max:      45 * time.Second,
				MaxFloor: 15 * time.Second,
			},
			FreezeHits:  2,
			MaxFrozen:   1,
			MaxGhosts:   1,
			BurnMinTile: 16,
			BossBurnMul: 1.5,
		},
		Punish: PunishConfig{
			Buckets: BucketConfig{
				LowMax:     8,
				MidMax:     32,
				HighMax:    128,
				Thresholds: []float64{0.90, 0.95, 0.98},
			},
			DeflectAbove: 128,
			StallMoves:   3,
			StallTile:    16,
		},
		Board: BoardConfig{
			TwoChance:  0.9,
			StartTiles: 2,
			WinTile:    2048,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			SpeedFactor:   0.95,
			IntervalScale: 1.0,
			MaxBlocks:     3,
			BlocksEvery:   4,
		},
		Pools: PoolsConfig{
			Easy: []Challenge{
				{HP: 64, Goal: GoalHPDamage, Text: "Deal 64 damage"},
				{HP: 64, Goal: GoalHPFiltered, Values: []int{4, 8}, Text: "Deal 64 damage (only 4, 8)"},
				{HP: 128, Goal: GoalHPDamage, Text: "Deal 128 damage"},
				{HP: 1, Goal: GoalTargetMerge, Values: []int{16}, Text: "Merge with the 16"},
				{HP: 1, Goal: GoalBuildTile, Values: []int{32}, Text: "Build a 32"},
			},
			Medium: []Challenge{
				{HP: 256, Goal: GoalHPDamage, Text: "Deal 256 damage"},
				{HP: 256, Goal: GoalHPFiltered, Values: []int{16, 32}, Text: "Damage only with 16 or 32"},
				{HP: 1, Goal: GoalTargetMerge, Values: []int{32}, Text: "Merge with the 32"},
				{HP: 1, Goal: GoalBuildTile, Values: []int{64}, Text: "Build a 64"},
				{HP: 1, Goal: GoalTargetMerge, Values: []int{16, 16}, Text: "Merge with both 16s"},
			},
			Hard: []Challenge{
				{HP: 512, Goal: GoalHPDamage, Text: "Deal 512 damage"},
				{HP: 512, Goal: GoalHPFiltered, Values: []int{64, 128}, Text: "Damage only with 64 or 128"},
				{HP: 1, Goal: GoalTargetMerge, Values: []int{64}, Text: "Merge with the 64"},
				{HP: 1, Goal: GoalTargetMerge, Values: []int{32, 32}, Text: "Merge with both 32s"},
			},
			Epic: []Challenge{
				{HP: 1024, Goal: GoalHPDamage, Text: "Deal 1024 damage"},
				{HP: 1024, Goal: GoalHPFiltered, Values: []int{128, 256}, Text: "Damage only with 128 or 256"},
				{HP: 1, Goal: GoalTargetMerge, Values: []int{64, 64}, Text: "Merge with both 64s"},
				{HP: 1, Goal: GoalBuildTile, Values: []int{512}, Text: "Build a 512"},
			},
			Bosses: []Challenge{
				{HP: 1, Goal: GoalBuildTile, Values: []int{128}, Text: "BOSS: Build a 128!"},
				{HP: 1, Goal: GoalBuildTile, Values: []int{256}, Text: "BOSS: Build a 256!"},
				{HP: 1, Goal: GoalBuildTile, Values: []int{512}, Text: "BOSS: Build a 512!"},
				{HP: 1, Goal: GoalBuildTile, Values: []int{1024}, Text: "BOSS: Build a 1024!"},
			},
		},
	}
}

// DefaultBattleYAML returns the embedded default battle YAML.
func DefaultBattleYAML() []byte {
	return defaultBattleYAML
}
