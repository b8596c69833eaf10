package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultBattleConfigValid(t *testing.T) {
	if err := DefaultBattleConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := parseBattle(DefaultBattleYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBattleConfig()) {
		t.Errorf("embedded YAML and DefaultBattleConfig differ:\n got %+v\nwant %+v", cfg, DefaultBattleConfig())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BattleConfig)
		want   string
	}{
		{
			name:   "delete window inverted",
			mutate: func(c *BattleConfig) { c.Attacks.Delete.Min = time.Minute },
			want:   "attacks.delete: min",
		},
		{
			name:   "non-positive interval",
			mutate: func(c *BattleConfig) { c.Attacks.Freeze.Every = 0 },
			want:   "attacks.freeze",
		},
		{
			name:   "zero lock retry",
			mutate: func(c *BattleConfig) { c.Timing.LockRetry = 0 },
			want:   "timing.lock_retry must be positive",
		},
		{
			name:   "negative ghost hold",
			mutate: func(c *BattleConfig) { c.Timing.GhostHold = -time.Second },
			want:   "timing.ghost_hold",
		},
		{
			name:   "zero bot interval",
			mutate: func(c *BattleConfig) { c.Timing.BotInterval = 0 },
			want:   "timing.bot_interval",
		},
		{
			name:   "negative fast move",
			mutate: func(c *BattleConfig) { c.Timing.FastMove = -time.Millisecond },
			want:   "timing.fast_move",
		},
		{
			name:   "no ghost slots",
			mutate: func(c *BattleConfig) { c.Attacks.MaxGhosts = 0 },
			want:   "max_ghosts must be positive",
		},
		{
			name:   "zero stall moves",
			mutate: func(c *BattleConfig) { c.Punish.StallMoves = 0 },
			want:   "stall_moves",
		},
		{
			name:   "negative deflect bound",
			mutate: func(c *BattleConfig) { c.Punish.DeflectAbove = -1 },
			want:   "punish.deflect_above",
		},
		{
			name:   "negative start tiles",
			mutate: func(c *BattleConfig) { c.Board.StartTiles = -2 },
			want:   "board.start_tiles",
		},
		{
			name:   "thresholds not increasing",
			mutate: func(c *BattleConfig) { c.Punish.Buckets.Thresholds = []float64{0.9, 0.8, 0.98} },
			want:   "threshold 1",
		},
		{
			name:   "bucket bounds not increasing",
			mutate: func(c *BattleConfig) { c.Punish.Buckets.MidMax = 4 },
			want:   "bounds must be increasing",
		},
		{
			name:   "empty pool",
			mutate: func(c *BattleConfig) { c.Pools.Hard = nil },
			want:   "pools.hard is empty",
		},
		{
			name: "unknown goal",
			mutate: func(c *BattleConfig) {
				c.Pools.Easy = []Challenge{{HP: 10, Goal: "SURVIVE", Text: "x"}}
			},
			want: `unknown goal "SURVIVE"`,
		},
		{
			name: "filtered goal without values",
			mutate: func(c *BattleConfig) {
				c.Pools.Easy = []Challenge{{HP: 10, Goal: GoalHPFiltered, Text: "x"}}
			},
			want: "needs values",
		},
		{
			name: "value not a power of two",
			mutate: func(c *BattleConfig) {
				c.Pools.Bosses = []Challenge{{HP: 1, Goal: GoalBuildTile, Values: []int{100}, Text: "x"}}
			},
			want: "value 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBattleConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), "config:") {
				t.Errorf("error %q should carry the config: prefix", err)
			}
		})
	}
}

func TestLoadBattleCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "battle.yaml")
	data := "timing:\n  fast_move: 300ms\nattacks:\n  freeze_hits: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBattle(path)
	if err != nil {
		t.Fatalf("LoadBattle: %v", err)
	}
	if cfg.Timing.FastMove != 300*time.Millisecond {
		t.Errorf("FastMove = %s, want 300ms", cfg.Timing.FastMove)
	}
	if cfg.Attacks.FreezeHits != 3 {
		t.Errorf("FreezeHits = %d, want 3", cfg.Attacks.FreezeHits)
	}
	// Untouched keys keep their defaults
	if cfg.Timing.Spawn != 100*time.Millisecond {
		t.Errorf("Spawn = %s, want default 100ms", cfg.Timing.Spawn)
	}
	if len(cfg.Pools.Easy) != 5 {
		t.Errorf("easy pool has %d entries, want 5", len(cfg.Pools.Easy))
	}
}

func TestLoadBattleErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBattle(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("timing: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBattle(bad); err == nil {
		t.Error("malformed YAML should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  win_tile: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBattle(invalid); err == nil {
		t.Error("invalid values should be an error")
	}

	retry := filepath.Join(dir, "retry.yaml")
	if err := os.WriteFile(retry, []byte("timing:\n  lock_retry: 0s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBattle(retry); err == nil || !strings.Contains(err.Error(), "lock_retry") {
		t.Errorf("LoadBattle(lock_retry: 0s) error = %v, want lock_retry rejected", err)
	}
}

func TestApplyBattlePreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		block   time.Duration
		enabled bool
	}{
		{DifficultyEasy, 15 * time.Second, true},
		{DifficultyNormal, 12 * time.Second, true},
		{DifficultyHard, 9600 * time.Millisecond, true},
		{DifficultyFixed, 12 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBattleConfig()
			ApplyBattlePreset(&cfg, tt.preset)
			if cfg.Attacks.Block.Every != tt.block {
				t.Errorf("block interval = %s, want %s", cfg.Attacks.Block.Every, tt.block)
			}
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("speed-up enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v; want normal", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should be rejected")
	}
}

func TestEnv(t *testing.T) {
	t.Setenv(EnvDB, "")
	if got := Env(EnvDB, "fallback.db"); got != "fallback.db" {
		t.Errorf("Env with empty var = %q, want fallback", got)
	}
	t.Setenv(EnvDB, "custom.db")
	if got := Env(EnvDB, "fallback.db"); got != "custom.db" {
		t.Errorf("Env = %q, want custom.db", got)
	}
}

func TestLoadEnv(t *testing.T) {
	const key = "RPG2048_TEST_ENV_LOADED"
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv(key) })

	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv(key); got != "yes" {
		t.Errorf("%s = %q, want yes", key, got)
	}
}
