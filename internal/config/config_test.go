package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultTinConfig()
	if err := yaml.Unmarshal(defaultTinYAML, &cfg); err != nil {
		t.Fatalf("embedded tin.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTinConfig()) {
		t.Errorf("embedded tin.yaml = %+v, expected %+v", cfg, DefaultTinConfig())
	}
}

func TestLoadTinCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tin.yaml")
	data := []byte("monster:\n  tower_damage: 0\ntower:\n  health: 250\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTin(path)
	if err != nil {
		t.Fatalf("LoadTin() error: %v", err)
	}
	if cfg.Tower.Health != 250 {
		t.Errorf("Tower.Health = %v, expected 250", cfg.Tower.Health)
	}
	if cfg.Monster.TowerDamage != 0 {
		t.Errorf("Monster.TowerDamage = %v, expected 0", cfg.Monster.TowerDamage)
	}
	// Values absent from the file keep their defaults.
	if cfg.Player.JumpLimit != 20 {
		t.Errorf("Player.JumpLimit = %d, expected 20", cfg.Player.JumpLimit)
	}
}

func TestLoadTinErrors(t *testing.T) {
	if _, err := LoadTin(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTin(missing) should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTin(path); err == nil {
		t.Error("LoadTin(bad yaml) should fail")
	}
}

func TestApplyTinPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		interval     int
		towerDamage  float64
		monsterSteps int
	}{
		{DifficultyEasy, true, 30, 0.02, 1},
		{DifficultyNormal, true, 20, 0.05, 1},
		{DifficultyHard, true, 10, 0.1, 2},
		{DifficultyFixed, false, 20, 0.05, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTinConfig()
			ApplyTinPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.IntervalSeconds != tc.interval {
				t.Errorf("IntervalSeconds = %d, expected %d", cfg.Difficulty.IntervalSeconds, tc.interval)
			}
			if cfg.Monster.TowerDamage != tc.towerDamage {
				t.Errorf("TowerDamage = %v, expected %v", cfg.Monster.TowerDamage, tc.towerDamage)
			}
			if cfg.Monster.Step != tc.monsterSteps {
				t.Errorf("Monster.Step = %d, expected %d", cfg.Monster.Step, tc.monsterSteps)
			}
		})
	}

	if ParsePreset("nightmare") != "" {
		t.Error("ParsePreset should reject unknown names")
	}
}

func TestMonsterCount(t *testing.T) {
	d := NewDifficultyManager(DefaultTinConfig().Difficulty)

	tests := []struct {
		elapsed  int
		expected int
	}{
		{0, 1},
		{5, 1},
		{19, 1},
		{20, 2},
		{39, 2},
		{40, 3},
		{125, 7},
	}
	for _, tc := range tests {
		if got := d.MonsterCount(tc.elapsed); got != tc.expected {
			t.Errorf("MonsterCount(%d) = %d, expected %d", tc.elapsed, got, tc.expected)
		}
	}

	off := NewDifficultyManager(DifficultyConfig{Enabled: false, InitialMonsters: 1, IntervalSeconds: 20})
	if got := off.MonsterCount(300); got != 1 {
		t.Errorf("MonsterCount(300) with progression off = %d, expected 1", got)
	}

	capped := NewDifficultyManager(DifficultyConfig{Enabled: true, IntervalSeconds: 10, MaxMonsters: 4})
	if got := capped.MonsterCount(1000); got != 4 {
		t.Errorf("MonsterCount(1000) capped = %d, expected 4", got)
	}
}
