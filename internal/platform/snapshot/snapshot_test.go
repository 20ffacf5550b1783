package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tin-quest/internal/config"
	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/leveldef"
	"github.com/vovakirdan/tin-quest/internal/world"
)

func newLevel(t *testing.T) *world.Level {
	t.Helper()
	def, err := leveldef.LoadBuiltin(leveldef.DefaultLevel)
	if err != nil {
		t.Fatal(err)
	}
	l, err := world.NewLevel(def, world.Options{Config: config.DefaultTinConfig(), Clock: &core.ManualClock{}})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRenderSizeAndBackground(t *testing.T) {
	img := Render(newLevel(t), Options{})

	b := img.Bounds()
	if b.Dx() != 1000 || b.Dy() != 480 {
		t.Fatalf("Render() size = %dx%d, expected 1000x480", b.Dx(), b.Dy())
	}

	r, g, bl, _ := img.At(300, 100).RGBA()
	if r>>8 != 135 || g>>8 != 206 || bl>>8 != 235 {
		t.Errorf("background pixel = (%d, %d, %d), expected sky blue", r>>8, g>>8, bl>>8)
	}
}

func TestRenderScaled(t *testing.T) {
	img := Render(newLevel(t), Options{Scale: 0.5, Overlay: []string{"PAUSED"}})
	if b := img.Bounds(); b.Dx() != 500 || b.Dy() != 240 {
		t.Errorf("Render() scaled size = %dx%d, expected 500x240", b.Dx(), b.Dy())
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots", FileName("tin", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)))
	if filepath.Base(path) != "tin_20240301_123000.png" {
		t.Errorf("FileName() = %s", filepath.Base(path))
	}

	if err := Save(Render(newLevel(t), Options{}), path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}
}
