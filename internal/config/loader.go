package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under $HOME.
const AppDir = ".tin"

// LoadTin loads the game configuration.
// Search order: customPath -> ~/.tin/configs/tin.yaml -> ./configs/tin.yaml -> embedded default
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadTin(customPath string) (TinConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTinConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg := DefaultTinConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultTinConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tin.yaml"); userCfgPath != "" {
		if cfg, ok := readOver(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := readOver(filepath.Join("configs", "tin.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultTinConfig()
	if err := yaml.Unmarshal(defaultTinYAML, &cfg); err != nil {
		return DefaultTinConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readOver decodes path on top of the defaults. Missing or broken files are skipped.
func readOver(path string) (TinConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TinConfig{}, false
	}
	cfg := DefaultTinConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TinConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ApplyTinPreset modifies the config based on a difficulty preset.
func ApplyTinPreset(cfg *TinConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.IntervalSeconds = 30
		cfg.Monster.TowerDamage = 0.02
	case DifficultyNormal:
		cfg.Difficulty.IntervalSeconds = 20
		cfg.Monster.TowerDamage = 0.05
	case DifficultyHard:
		cfg.Difficulty.IntervalSeconds = 10
		cfg.Monster.TowerDamage = 0.1
		cfg.Monster.Step = 2
	}
}
