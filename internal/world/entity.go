// Package world is the game-world simulation: the entities of a level,
// how they move and fight, and the per-tick loop that drives them.
package world

import (
	"github.com/vovakirdan/tin-quest/internal/core"
)

// Entity is anything a level owns.
type Entity interface {
	Sprite() *Sprite
	// Health returns nil for entities that cannot be damaged.
	Health() *Health
	Update(in core.MultiInputFrame)
}

// Texter is implemented by entities drawn as text rather than an image.
type Texter interface {
	Text() string
}

// Static is an entity that never changes: ground tiles, platforms, icons.
type Static struct {
	sprite *Sprite
}

// Sprite implements Entity.
func (s *Static) Sprite() *Sprite { return s.sprite }

// Health implements Entity.
func (s *Static) Health() *Health { return nil }

// Update implements Entity.
func (s *Static) Update(core.MultiInputFrame) {}
