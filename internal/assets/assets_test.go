package assets

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestDirLoad(t *testing.T) {
	dir := t.TempDir()
	img := imaging.New(32, 48, color.NRGBA{R: 200, A: 255})
	if err := imaging.Save(img, filepath.Join(dir, "Tin-StandingLeft.png")); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(imaging.New(64, 32, color.NRGBA{G: 200, A: 255}), filepath.Join(dir, "Ground.png")); err != nil {
		t.Fatal(err)
	}

	cat := NewDir(dir)
	a, err := cat.Load("Tin", "StandingLeft")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if a.Width() != 32 || a.Height() != 48 {
		t.Errorf("size = %dx%d, expected 32x48", a.Width(), a.Height())
	}

	again, _ := cat.Load("Tin", "StandingLeft")
	if again != a {
		t.Error("second Load() should come from the cache")
	}

	ground, err := cat.Load("Ground", "")
	if err != nil {
		t.Fatalf("Load(Ground) error: %v", err)
	}
	if ground.Height() != 32 {
		t.Errorf("ground height = %d, expected 32", ground.Height())
	}
}

func TestDirLoadMissing(t *testing.T) {
	_, err := NewDir(t.TempDir()).Load("Tin", "Flying")

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load() error = %v, expected *LoadError", err)
	}
	if filepath.Base(le.Path) != "Tin-Flying.png" {
		t.Errorf("Path = %q, expected it to end in Tin-Flying.png", le.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(err, fs.ErrNotExist) = false for %v", err)
	}
}

func TestBuiltinSizes(t *testing.T) {
	cat := NewBuiltin()

	tests := []struct {
		name, state string
		w, h        int
	}{
		{"Tin", "StandingRight", 32, 48},
		{"Tower", "Ruined", 96, 256},
		{"Ground", "", 64, 32},
		{"Platform", "", 32, 16},
		{"Whatever", "", 16, 16},
	}

	for _, tc := range tests {
		a, err := cat.Load(tc.name, tc.state)
		if err != nil {
			t.Fatalf("Load(%s, %s) error: %v", tc.name, tc.state, err)
		}
		if a.Width() != tc.w || a.Height() != tc.h {
			t.Errorf("Load(%s, %s) size = %dx%d, expected %dx%d", tc.name, tc.state, a.Width(), a.Height(), tc.w, tc.h)
		}
	}

	initial, _ := cat.Load("Tower", "Initial")
	ruined, _ := cat.Load("Tower", "Ruined")
	if initial.Image.At(0, 0) == ruined.Image.At(0, 0) {
		t.Error("Ruined tower should be drawn in a different shade")
	}
}

func TestTileStrip(t *testing.T) {
	// Red caps around a blue middle.
	tile := imaging.New(32, 16, color.NRGBA{B: 255, A: 255})
	red := imaging.New(4, 16, color.NRGBA{R: 255, A: 255})
	tile = imaging.Paste(tile, red, image.Pt(0, 0))
	tile = imaging.Paste(tile, red, image.Pt(28, 0))

	strip := TileStrip(tile, 4, 3)
	if strip.Bounds().Dx() != 80 || strip.Bounds().Dy() != 16 {
		t.Fatalf("strip size = %v, expected 80x16", strip.Bounds().Size())
	}
	if StripWidth(32, 4, 3) != 80 {
		t.Errorf("StripWidth() = %d, expected 80", StripWidth(32, 4, 3))
	}

	checks := []struct {
		x    int
		want color.NRGBA
	}{
		{0, color.NRGBA{R: 255, A: 255}},
		{3, color.NRGBA{R: 255, A: 255}},
		{4, color.NRGBA{B: 255, A: 255}},
		{40, color.NRGBA{B: 255, A: 255}},
		{75, color.NRGBA{B: 255, A: 255}},
		{76, color.NRGBA{R: 255, A: 255}},
	}
	for _, c := range checks {
		if got := strip.NRGBAAt(c.x, 8); got != c.want {
			t.Errorf("pixel at x=%d = %v, expected %v", c.x, got, c.want)
		}
	}
}

func TestHealthBar(t *testing.T) {
	full := imaging.New(10, 10, color.NRGBA{R: 255, A: 255})
	empty := imaging.New(10, 10, color.NRGBA{A: 255})

	// Three slots, one full heart and half of the second.
	bar := HealthBar(full, empty, 3, 1, 5)
	if bar.Bounds().Dx() != 30 {
		t.Fatalf("bar width = %d, expected 30", bar.Bounds().Dx())
	}

	red := color.NRGBA{R: 255, A: 255}
	black := color.NRGBA{A: 255}
	checks := []struct {
		x    int
		want color.NRGBA
	}{
		{0, red},
		{9, red},
		{14, red},
		{15, black},
		{25, black},
	}
	for _, c := range checks {
		if got := bar.NRGBAAt(c.x, 5); got != c.want {
			t.Errorf("pixel at x=%d = %v, expected %v", c.x, got, c.want)
		}
	}
}

func TestTileAcross(t *testing.T) {
	tile := imaging.New(64, 32, color.NRGBA{G: 255, A: 255})
	ground := TileAcross(tile, 1000)
	if ground.Bounds().Dx() != 1000 || ground.Bounds().Dy() != 32 {
		t.Errorf("size = %v, expected 1000x32", ground.Bounds().Size())
	}
	if ground.NRGBAAt(999, 0).G != 255 {
		t.Error("last column should be covered")
	}
}
