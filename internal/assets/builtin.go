package assets

import (
	"image/color"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// placeholder describes the generated stand-in for one asset family.
type placeholder struct {
	w, h int
	fill color.NRGBA
}

// Sizes follow the original art so that level geometry (ground height,
// platform slots, tower height) stays the same with or without image files.
var placeholders = map[string]placeholder{
	"Tin":            {32, 48, color.NRGBA{R: 192, G: 192, B: 200, A: 255}},
	"Sin":            {32, 48, color.NRGBA{R: 72, G: 40, B: 96, A: 255}},
	"Monster":        {28, 28, color.NRGBA{R: 60, G: 160, B: 60, A: 255}},
	"Tower":          {96, 256, color.NRGBA{R: 150, G: 140, B: 130, A: 255}},
	"Olivia":         {16, 24, color.NRGBA{R: 240, G: 130, B: 190, A: 255}},
	"Ground":         {64, 32, color.NRGBA{R: 110, G: 80, B: 50, A: 255}},
	"Platform":       {32, 16, color.NRGBA{R: 90, G: 150, B: 70, A: 255}},
	"Platform-Stone": {32, 16, color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
	"Life":           {16, 16, color.NRGBA{R: 220, G: 30, B: 40, A: 255}},
	"Death":          {16, 16, color.NRGBA{R: 40, G: 20, B: 20, A: 255}},
	"Time":           {16, 16, color.NRGBA{R: 240, G: 220, B: 80, A: 255}},
	"Tower-Icon":     {16, 16, color.NRGBA{R: 150, G: 140, B: 130, A: 255}},
	"Tin-Icon":       {16, 16, color.NRGBA{R: 192, G: 192, B: 200, A: 255}},
	"Sin-Icon":       {16, 16, color.NRGBA{R: 72, G: 40, B: 96, A: 255}},
}

var unknownPlaceholder = placeholder{16, 16, color.NRGBA{R: 255, G: 0, B: 255, A: 255}}

// Builtin generates flat-coloured images so the game runs without art.
type Builtin struct {
	mu    sync.Mutex
	cache map[string]*Asset
}

// NewBuiltin creates the generated catalog.
func NewBuiltin() *Builtin {
	return &Builtin{cache: make(map[string]*Asset)}
}

// Load never fails. Damaged and attacking states are drawn in a shifted shade.
func (b *Builtin) Load(name, state string) (*Asset, error) {
	key := FileName(name, state)

	b.mu.Lock()
	defer b.mu.Unlock()

	if a, ok := b.cache[key]; ok {
		return a, nil
	}

	p, ok := placeholders[name]
	if !ok {
		p = unknownPlaceholder
	}
	fill := shade(p.fill, state)

	a := &Asset{Name: name, State: state, Image: imaging.New(p.w, p.h, fill)}
	b.cache[key] = a
	return a, nil
}

func shade(c color.NRGBA, state string) color.NRGBA {
	switch {
	case strings.HasPrefix(state, "Attack"):
		return color.NRGBA{R: 255, G: c.G / 2, B: c.B / 2, A: c.A}
	case state == "Damaged":
		return color.NRGBA{R: c.R * 3 / 4, G: c.G * 3 / 4, B: c.B * 3 / 4, A: c.A}
	case state == "Ruined":
		return color.NRGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
	}
	return c
}
