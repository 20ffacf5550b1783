package world

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tin-quest/internal/core"
)

func TestSpawnerPlace(t *testing.T) {
	heights := []int{448, 384, 320}
	s := NewSpawner(heights, 1000, rand.New(rand.NewSource(7)))

	seenLeft, seenRight := false, false
	seenHeights := map[int]bool{}
	for i := 0; i < 200; i++ {
		r := core.NewRect(500, 500, 28, 28)
		s.Place(&r)

		seenHeights[r.Bottom()] = true
		switch {
		case r.X == 0:
			seenLeft = true
		case r.Right() == 1000:
			seenRight = true
		default:
			t.Fatalf("Place() put x=%d, expected a viewport edge", r.X)
		}
	}

	if !seenLeft || !seenRight {
		t.Errorf("both edges should be used, left=%v right=%v", seenLeft, seenRight)
	}
	for _, h := range heights {
		if !seenHeights[h] {
			t.Errorf("height %d never chosen", h)
		}
	}
	if len(seenHeights) != len(heights) {
		t.Errorf("unexpected heights chosen: %v", seenHeights)
	}
}

func TestSpawnerEmpty(t *testing.T) {
	s := NewSpawner(nil, 1000, rand.New(rand.NewSource(1)))
	r := core.NewRect(123, 45, 10, 10)
	s.Place(&r)
	if r != core.NewRect(123, 45, 10, 10) {
		t.Errorf("Place() with no heights moved the rect to %+v", r)
	}
}

func TestSpawnerCopiesHeights(t *testing.T) {
	heights := []int{448}
	s := NewSpawner(heights, 1000, rand.New(rand.NewSource(1)))
	heights[0] = 1
	if s.Heights()[0] != 448 {
		t.Error("NewSpawner should copy its heights")
	}
}
