// Package physics moves falling bodies and keeps them inside the viewport.
// Motion is constant-rate: gravity is a fixed pixel offset per tick.
package physics

import "github.com/vovakirdan/tin-quest/internal/core"

// DefaultGravity is the downward offset applied per tick, in pixels.
const DefaultGravity = 3

// Viewport describes the playable area. Bodies stand on the line
// Height - GroundMargin.
type Viewport struct {
	Width        int
	Height       int
	GroundMargin int
}

// GroundLine returns the y-coordinate bodies rest on.
func (v Viewport) GroundLine() int {
	return v.Height - v.GroundMargin
}

// Body is the falling part of an entity.
type Body struct {
	Gravity int
	// OnLand runs when the body becomes clamped against the top or the
	// ground line. It does not repeat while the body stays there.
	OnLand func()

	resting bool
}

// NewBody creates a body with the given gravity and landing callback.
func NewBody(gravity int, onLand func()) *Body {
	return &Body{Gravity: gravity, OnLand: onLand}
}

// Resting reports whether the last Step ended clamped vertically.
func (b *Body) Resting() bool {
	return b.resting
}

// Step applies gravity to r and then clamps it to vp.
func (b *Body) Step(r *core.Rect, vp Viewport) {
	r.Y += b.Gravity
	b.Clamp(r, vp)
}

// Clamp wraps r horizontally and stops it at the top and the ground line.
func (b *Body) Clamp(r *core.Rect, vp Viewport) {
	if r.Right() < 0 {
		r.X = vp.Width - r.W
	}

	clamped := false
	if r.Y < 0 {
		r.Y = 0
		clamped = true
	}
	if line := vp.GroundLine(); r.Bottom() > line {
		r.SetBottom(line)
		clamped = true
	}

	if r.X > vp.Width {
		r.X = 0
	}

	if clamped && !b.resting && b.OnLand != nil {
		b.OnLand()
	}
	b.resting = clamped
}
