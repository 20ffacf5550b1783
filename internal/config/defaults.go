package config

import (
	_ "embed"
)

//go:embed defaults/tin.yaml
var defaultTinYAML []byte

// DefaultTinConfig returns the built-in configuration. It matches
// defaults/tin.yaml and is used when that file cannot be parsed.
func DefaultTinConfig() TinConfig {
	return TinConfig{
		Viewport: ViewportConfig{
			Width:  1000,
			Height: 480,
		},
		Physics: PhysicsConfig{
			Gravity:         3,
			PlatformSpacing: 64,
			SlotWidth:       32,
			PlatformBorder:  4,
		},
		Player: PlayerConfig{
			Health:        30,
			Step:          5,
			JumpOffset:    10,
			JumpLimit:     20,
			Attack:        0.1,
			LandTolerance: 5,
			SnapThreshold: 2,
			FrameMillis:   100,
			DuelOffset:    800,
		},
		Monster: MonsterConfig{
			Health:      30,
			Step:        1,
			TowerDamage: 0.05,
		},
		Tower: TowerConfig{
			Health: 100,
		},
		Princess: PrincessConfig{
			Y:       168,
			OffsetX: -5,
		},
		HUD: HUDConfig{
			Margin: 10,
			Gap:    5,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			InitialMonsters: 1,
			IntervalSeconds: 20,
			MaxMonsters:     0,
		},
	}
}
