package world

import (
	"fmt"
	"math"
)

// Scale is the number of Fixed units in one health point.
// Fixed-point keeps long runs of fractional damage exact.
const Scale = 1000

// Fixed is a health amount scaled by Scale.
type Fixed int

// FromFloat converts a health amount to fixed-point, rounding to the nearest unit.
func FromFloat(v float64) Fixed {
	return Fixed(math.Round(v * Scale))
}

// FromInt converts whole health points to fixed-point.
func FromInt(n int) Fixed {
	return Fixed(n * Scale)
}

// Float converts back to health points.
func (f Fixed) Float() float64 {
	return float64(f) / Scale
}

func (f Fixed) String() string {
	return fmt.Sprintf("%.3f", f.Float())
}

// Health is the damageable part of an entity. Current is not floored at
// zero; IsDead is the only gate.
type Health struct {
	Current Fixed
	Maximum Fixed
}

// NewHealth creates a full health pool.
func NewHealth(maximum Fixed) *Health {
	return &Health{Current: maximum, Maximum: maximum}
}

// Damage subtracts amount from the current health.
func (h *Health) Damage(amount Fixed) {
	h.Current -= amount
}

// Set overrides the current health.
func (h *Health) Set(current Fixed) {
	h.Current = current
}

// IsDead reports whether the pool is exhausted.
func (h *Health) IsDead() bool {
	return h.Current <= 0
}

// Tower visual states.
const (
	TowerInitial = "Initial"
	TowerDamaged = "Damaged"
	TowerRuined  = "Ruined"
)

// TowerState maps a health ratio to the tower's visual state:
// above two thirds Initial, above one third Damaged, otherwise Ruined.
func TowerState(h Health) string {
	cur, maxHP := int64(h.Current), int64(h.Maximum)
	switch {
	case cur*3 > maxHP*2:
		return TowerInitial
	case cur*3 > maxHP:
		return TowerDamaged
	default:
		return TowerRuined
	}
}

// HeartLayout describes a health bar made of hearts worth ten points each.
type HeartLayout struct {
	Slots     int // Hearts backing the maximum
	Full      int // Whole hearts of current health
	PartialPx int // Visible columns of the next heart
}

// heartValue is the health represented by one heart.
const heartValue = 10 * Scale

// LayoutHearts computes the heart bar for h, drawn with hearts heartWidth pixels wide.
func LayoutHearts(h Health, heartWidth int) HeartLayout {
	layout := HeartLayout{Slots: int(h.Maximum / heartValue)}
	if h.Current <= 0 {
		return layout
	}
	layout.Full = int(h.Current / heartValue)
	layout.PartialPx = heartWidth * int(h.Current%heartValue) / heartValue
	if layout.Full >= layout.Slots {
		layout.Full = layout.Slots
		layout.PartialPx = 0
	}
	return layout
}
