package world

import (
	"math/rand"

	"github.com/vovakirdan/tin-quest/internal/core"
)

// Spawner places new monsters on one of a fixed set of heights, flush
// against the left or the right edge of the viewport.
type Spawner struct {
	heights []int
	width   int
	rng     *rand.Rand
}

// NewSpawner creates a spawner over heights for a viewport width pixels wide.
func NewSpawner(heights []int, width int, rng *rand.Rand) *Spawner {
	return &Spawner{
		heights: append([]int(nil), heights...),
		width:   width,
		rng:     rng,
	}
}

// Heights returns a copy of the spawn heights.
func (s *Spawner) Heights() []int {
	return append([]int(nil), s.heights...)
}

// Place stands r on a random height at a random edge. Without heights it
// leaves r untouched.
func (s *Spawner) Place(r *core.Rect) {
	if len(s.heights) == 0 {
		return
	}
	r.SetBottom(s.heights[s.rng.Intn(len(s.heights))])
	if s.rng.Intn(2) == 0 {
		r.X = 0
	} else {
		r.SetRight(s.width)
	}
}
