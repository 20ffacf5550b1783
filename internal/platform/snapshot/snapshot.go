// Package snapshot renders a level to an image file at full resolution.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tin-quest/internal/world"
)

// Options controls how a snapshot is drawn.
type Options struct {
	// Scale resizes the result; 0 and 1 keep the viewport size.
	Scale float64
	// Overlay lines are printed centered over a dimmed picture.
	Overlay []string
}

// Render draws every layer of level in order onto a new image.
func Render(level *world.Level, opts Options) image.Image {
	vp := level.Viewport()
	dc := gg.NewContext(vp.Width, vp.Height)

	bg := level.Definition().Background
	dc.SetColor(bg.Color())
	dc.Clear()

	for _, layer := range world.Layers {
		for _, e := range level.Layer(layer) {
			drawEntity(dc, e)
		}
	}

	if len(opts.Overlay) > 0 {
		drawOverlay(dc, opts.Overlay)
	}

	img := dc.Image()
	if opts.Scale > 0 && opts.Scale != 1 {
		w := int(float64(vp.Width) * opts.Scale)
		img = imaging.Resize(img, w, 0, imaging.NearestNeighbor)
	}
	return img
}

func drawEntity(dc *gg.Context, e world.Entity) {
	s := e.Sprite()
	if t, ok := e.(world.Texter); ok {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(t.Text(), float64(s.Rect.X), float64(s.Rect.Y), 0, 1)
		return
	}
	if img := s.Image(); img != nil {
		dc.DrawImage(img, s.Rect.X, s.Rect.Y)
	}
}

func drawOverlay(dc *gg.Context, lines []string) {
	w, h := float64(dc.Width()), float64(dc.Height())
	dc.SetColor(color.RGBA{A: 120})
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	const lineHeight = 18.0
	y := (h - lineHeight*float64(len(lines))) / 2
	dc.SetColor(color.White)
	for i, line := range lines {
		dc.DrawStringAnchored(line, w/2, y+lineHeight*float64(i), 0.5, 0.5)
	}
}

// FileName returns a timestamped PNG name for gameID.
func FileName(gameID string, t time.Time) string {
	return fmt.Sprintf("%s_%s.png", gameID, t.Format("20060102_150405"))
}

// Save writes img to path, creating parent directories. The format
// follows the file extension.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: cannot create directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("snapshot: cannot save %s: %w", path, err)
	}
	return nil
}
