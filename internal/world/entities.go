package world

import (
	"fmt"

	"github.com/vovakirdan/tin-quest/internal/assets"
	"github.com/vovakirdan/tin-quest/internal/core"
)

// Facing states shared by characters.
const (
	StateStandingLeft  = "StandingLeft"
	StateStandingRight = "StandingRight"
)

// Tower is the building defended in single-player.
type Tower struct {
	sprite *Sprite
	health *Health
}

// TowerAsset is the tower's asset name.
const TowerAsset = "Tower"

// NewTower creates a tower with full health in the Initial state.
func NewTower(catalog assets.Catalog, maximum Fixed) (*Tower, error) {
	sprite, err := newSprite(catalog, TowerAsset, TowerInitial, TowerDamaged, TowerRuined)
	if err != nil {
		return nil, err
	}
	return &Tower{sprite: sprite, health: NewHealth(maximum)}, nil
}

// Sprite implements Entity.
func (t *Tower) Sprite() *Sprite { return t.sprite }

// Health implements Entity.
func (t *Tower) Health() *Health { return t.health }

// Update switches the tower state to match its health. Position is kept.
func (t *Tower) Update(core.MultiInputFrame) {
	t.sprite.SetState(TowerState(*t.health))
}

// Monster walks toward a target and never jumps or falls.
type Monster struct {
	sprite *Sprite
	health *Health
	target *Sprite
	step   int
}

// MonsterAsset is the monster's asset name.
const MonsterAsset = "Monster"

// NewMonster creates an Aimer that walks toward target.
func NewMonster(catalog assets.Catalog, target *Sprite, maximum Fixed, step int) (*Monster, error) {
	sprite, err := newSprite(catalog, MonsterAsset, StateStandingLeft, StateStandingRight)
	if err != nil {
		return nil, err
	}
	return &Monster{
		sprite: sprite,
		health: NewHealth(maximum),
		target: target,
		step:   step,
	}, nil
}

// Sprite implements Entity.
func (m *Monster) Sprite() *Sprite { return m.sprite }

// Health implements Entity.
func (m *Monster) Health() *Health { return m.health }

// Update moves one step toward the target's centre and faces that way.
// Within one step of the centre the monster stays put.
func (m *Monster) Update(core.MultiInputFrame) {
	dx := m.target.Rect.CenterX() - m.sprite.Rect.CenterX()
	if core.Abs(dx) < m.step || m.step <= 0 {
		return
	}
	if dx < 0 {
		m.sprite.SetState(StateStandingLeft)
		m.sprite.Rect.X -= m.step
	} else {
		m.sprite.SetState(StateStandingRight)
		m.sprite.Rect.X += m.step
	}
}

// Looker is a decoration that keeps facing another sprite.
type Looker struct {
	sprite *Sprite
	parent *Sprite
}

// NewLooker creates a looker watching parent.
func NewLooker(catalog assets.Catalog, parent *Sprite, name, state string) (*Looker, error) {
	sprite, err := newSprite(catalog, name, state, StateStandingLeft, StateStandingRight)
	if err != nil {
		return nil, err
	}
	return &Looker{sprite: sprite, parent: parent}, nil
}

// Sprite implements Entity.
func (l *Looker) Sprite() *Sprite { return l.sprite }

// Health implements Entity.
func (l *Looker) Health() *Health { return nil }

// Update faces right when the parent is further right, otherwise left.
func (l *Looker) Update(core.MultiInputFrame) {
	if l.parent.Rect.X > l.sprite.Rect.X {
		l.sprite.SetState(StateStandingRight)
	} else {
		l.sprite.SetState(StateStandingLeft)
	}
}

// Heart asset names.
const (
	HeartFull  = "Life"
	HeartEmpty = "Death"
)

// HealthIndicator draws another entity's health as a row of hearts.
// The bar is rebuilt on every update.
type HealthIndicator struct {
	sprite *Sprite
	parent *Health
	full   *assets.Asset
	empty  *assets.Asset
	layout HeartLayout
}

// NewHealthIndicator creates a bar for parent and lays it out once.
func NewHealthIndicator(catalog assets.Catalog, parent *Health) (*HealthIndicator, error) {
	full, err := catalog.Load(HeartFull, "")
	if err != nil {
		return nil, fmt.Errorf("world: health indicator: %w", err)
	}
	empty, err := catalog.Load(HeartEmpty, "")
	if err != nil {
		return nil, fmt.Errorf("world: health indicator: %w", err)
	}
	h := &HealthIndicator{
		sprite: &Sprite{name: HeartFull},
		parent: parent,
		full:   full,
		empty:  empty,
	}
	h.Update(core.MultiInputFrame{})
	return h, nil
}

// Sprite implements Entity.
func (h *HealthIndicator) Sprite() *Sprite { return h.sprite }

// Health implements Entity.
func (h *HealthIndicator) Health() *Health { return nil }

// Layout returns the heart layout computed by the last update.
func (h *HealthIndicator) Layout() HeartLayout { return h.layout }

// Update recomputes the hearts from the parent's health.
func (h *HealthIndicator) Update(core.MultiInputFrame) {
	h.layout = LayoutHearts(*h.parent, h.full.Width())
	h.sprite.setImage(assets.HealthBar(h.full.Image, h.empty.Image, h.layout.Slots, h.layout.Full, h.layout.PartialPx))
}

// Glyph metrics of the HUD font.
const (
	glyphWidth  = 7
	glyphHeight = 13
)

// TimeIndicator shows the survival time as text.
type TimeIndicator struct {
	sprite *Sprite
	text   string
}

// NewTimeIndicator creates an indicator showing 00:00.
func NewTimeIndicator() *TimeIndicator {
	t := &TimeIndicator{sprite: &Sprite{name: "TimeText"}}
	t.SetText(FormatTime(0))
	return t
}

// Sprite implements Entity.
func (t *TimeIndicator) Sprite() *Sprite { return t.sprite }

// Health implements Entity.
func (t *TimeIndicator) Health() *Health { return nil }

// Update implements Entity.
func (t *TimeIndicator) Update(core.MultiInputFrame) {}

// Text implements Texter.
func (t *TimeIndicator) Text() string { return t.text }

// SetText replaces the text and resizes the indicator around it.
func (t *TimeIndicator) SetText(text string) {
	t.text = text
	t.sprite.Rect.W = len(text) * glyphWidth
	t.sprite.Rect.H = glyphHeight
}

// NewIcon creates a static HUD or environment image.
func NewIcon(catalog assets.Catalog, name string) (*Static, error) {
	sprite, err := newSprite(catalog, name, "")
	if err != nil {
		return nil, err
	}
	return &Static{sprite: sprite}, nil
}

// NewGroundTiles covers width with copies of the ground asset, seated on
// the bottom of a viewport of the given height.
func NewGroundTiles(catalog assets.Catalog, name string, width, height int) ([]*Static, error) {
	var tiles []*Static
	for offset := 0; offset < width; {
		tile, err := NewIcon(catalog, name)
		if err != nil {
			return nil, err
		}
		r := &tile.sprite.Rect
		if r.W <= 0 {
			break
		}
		r.X = offset
		r.SetBottom(height)
		offset = r.Right()
		tiles = append(tiles, tile)
	}
	return tiles, nil
}

// NewPlatform builds a platform size slots long from the named tile, with
// border-pixel caps kept at both ends.
func NewPlatform(catalog assets.Catalog, name string, size, border int) (*Static, error) {
	tile, err := catalog.Load(name, "")
	if err != nil {
		return nil, fmt.Errorf("world: platform %s: %w", name, err)
	}
	return &Static{sprite: newImageSprite(name, assets.TileStrip(tile.Image, border, size))}, nil
}

// FormatTime renders whole seconds as MM:SS.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
