package physics

import (
	"testing"

	"github.com/vovakirdan/tin-quest/internal/core"
)

var testViewport = Viewport{Width: 1000, Height: 480, GroundMargin: 32}

func TestGravityAndGroundClamp(t *testing.T) {
	landings := 0
	body := NewBody(DefaultGravity, func() { landings++ })
	r := core.NewRect(100, 0, 20, 40)

	body.Step(&r, testViewport)
	if r.Y != 3 {
		t.Fatalf("Y after one tick = %d, expected 3", r.Y)
	}

	for i := 0; i < 300; i++ {
		body.Step(&r, testViewport)
	}

	if r.Bottom() != 448 {
		t.Errorf("Bottom() = %d, expected 448", r.Bottom())
	}
	if landings != 1 {
		t.Errorf("OnLand fired %d times while resting, expected 1", landings)
	}
	if !body.Resting() {
		t.Error("Resting() = false on the ground line")
	}
}

func TestLandFiresAgainAfterLeavingGround(t *testing.T) {
	landings := 0
	body := NewBody(DefaultGravity, func() { landings++ })
	r := core.NewRect(0, 0, 10, 10)
	r.SetBottom(448)

	body.Step(&r, testViewport)
	if landings != 1 {
		t.Fatalf("landings = %d, expected 1", landings)
	}

	// Jump up and fall back down.
	r.Y -= 30
	body.Step(&r, testViewport)
	if body.Resting() {
		t.Error("Resting() = true in mid-air")
	}
	for i := 0; i < 20; i++ {
		body.Step(&r, testViewport)
	}
	if landings != 2 {
		t.Errorf("landings = %d, expected 2", landings)
	}
}

func TestCeilingClamp(t *testing.T) {
	landings := 0
	body := NewBody(0, func() { landings++ })
	r := core.NewRect(0, -15, 10, 10)

	body.Step(&r, testViewport)
	if r.Y != 0 {
		t.Errorf("Y = %d, expected 0", r.Y)
	}
	if landings != 1 {
		t.Errorf("landings = %d, expected 1", landings)
	}
}

func TestHorizontalWrap(t *testing.T) {
	tests := []struct {
		name      string
		x         int
		expectedX int
	}{
		{"fully off the left edge", -41, 960},
		{"partly off the left edge", -10, -10},
		{"fully off the right edge", 1001, 0},
		{"touching the right edge", 1000, 1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := NewBody(0, nil)
			r := core.NewRect(tc.x, 100, 40, 40)
			body.Step(&r, testViewport)
			if r.X != tc.expectedX {
				t.Errorf("X = %d, expected %d", r.X, tc.expectedX)
			}
		})
	}
}
