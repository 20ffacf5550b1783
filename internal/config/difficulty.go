package config

// DifficultyManager decides how many monsters must be alive at a given
// moment of a single-player game.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.InitialMonsters < 1 {
		cfg.InitialMonsters = 1
	}
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether the monster count grows over time.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.IntervalSeconds > 0
}

// MonsterCount returns the number of monsters required after elapsed
// seconds of play: one extra monster per completed interval.
func (d *DifficultyManager) MonsterCount(elapsedSeconds int) int {
	count := d.cfg.InitialMonsters
	if d.IsEnabled() && elapsedSeconds > 0 {
		count += elapsedSeconds / d.cfg.IntervalSeconds
	}
	if d.cfg.MaxMonsters > 0 && count > d.cfg.MaxMonsters {
		count = d.cfg.MaxMonsters
	}
	return count
}
