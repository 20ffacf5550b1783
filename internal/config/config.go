// Package config provides YAML-based game configuration loading and
// difficulty management for the Quest of Tin.
package config

// TinConfig contains all tunable parameters of the game world.
type TinConfig struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Monster    MonsterConfig    `yaml:"monster"`
	Tower      TowerConfig      `yaml:"tower"`
	Princess   PrincessConfig   `yaml:"princess"`
	HUD        HUDConfig        `yaml:"hud"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ViewportConfig is the size of the playfield in pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig defines gravity and platform geometry.
type PhysicsConfig struct {
	Gravity         int `yaml:"gravity"`          // Pixels fallen per tick
	PlatformSpacing int `yaml:"platform_spacing"` // Vertical distance between platform rows
	SlotWidth       int `yaml:"slot_width"`       // Width of a one-slot platform
	PlatformBorder  int `yaml:"platform_border"`  // Width of each platform end cap
}

// PlayerConfig defines Tin and Sin.
type PlayerConfig struct {
	Health        float64 `yaml:"health"`
	Step          int     `yaml:"step"`           // Horizontal pixels per tick
	JumpOffset    int     `yaml:"jump_offset"`    // Upward pixels per tick while jumping
	JumpLimit     int     `yaml:"jump_limit"`     // Jump ticks before landing again
	Attack        float64 `yaml:"attack"`         // Damage per tick of contact while attacking
	LandTolerance int     `yaml:"land_tolerance"` // How deep a platform may be entered and still land on it
	SnapThreshold int     `yaml:"snap_threshold"` // Misalignment tolerated without snapping
	FrameMillis   int64   `yaml:"frame_ms"`       // Animation frame duration
	DuelOffset    int     `yaml:"duel_offset"`    // Tin's start x in a duel
}

// MonsterConfig defines the Aimer monsters.
type MonsterConfig struct {
	Health      float64 `yaml:"health"`
	Step        int     `yaml:"step"`
	TowerDamage float64 `yaml:"tower_damage"` // Damage per tick a monster deals while touching the tower, 0 disables
}

// TowerConfig defines the defended tower.
type TowerConfig struct {
	Health float64 `yaml:"health"`
}

// PrincessConfig places the princess inside the tower.
type PrincessConfig struct {
	Y       int `yaml:"y"`
	OffsetX int `yaml:"offset_x"` // Relative to the tower's centre
}

// HUDConfig positions HUD elements.
type HUDConfig struct {
	Margin int `yaml:"margin"` // Distance from the screen edge
	Gap    int `yaml:"gap"`    // Distance between an icon and its indicator
}

// DifficultyConfig defines how the number of monsters grows with time.
type DifficultyConfig struct {
	Enabled         bool `yaml:"enabled"`
	InitialMonsters int  `yaml:"initial_monsters"`
	IntervalSeconds int  `yaml:"interval_seconds"` // One more monster every interval
	MaxMonsters     int  `yaml:"max_monsters"`     // 0 means unlimited
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values give "".
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
