package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadBattle loads the battle configuration.
// Search order: customPath -> ~/.rpg2048/configs/battle.yaml -> ./configs/battle.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the keys it sets.
func LoadBattle(customPath string) (BattleConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BattleConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseBattle(data)
		if err != nil {
			return BattleConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return BattleConfig{}, err
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("battle.yaml"), filepath.Join("configs", "battle.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBattle(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBattle(defaultBattleYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultBattleConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseBattle(data []byte) (BattleConfig, error) {
	cfg := DefaultBattleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BattleConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rpg2048", "configs", filename)
}

// ApplyBattlePreset modifies the config based on a difficulty preset.
func ApplyBattlePreset(cfg *BattleConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.IntervalScale = 1.0
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.IntervalScale = IntervalScaleForPreset(preset)
	}

	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * cfg.Difficulty.IntervalScale)
	}
	a := &cfg.Attacks
	a.Block.Every = scale(a.Block.Every)
	a.Burn.Every = scale(a.Burn.Every)
	a.Freeze.Every = scale(a.Freeze.Every)
	a.Ghost.Every = scale(a.Ghost.Every)
	a.Shuffle.Every = scale(a.Shuffle.Every)
	a.Delete.Min = scale(a.Delete.Min)
	a.Delete.Max = scale(a.Delete.Max)
}
