package world

import (
	"fmt"
	"image"

	"github.com/vovakirdan/tin-quest/internal/assets"
	"github.com/vovakirdan/tin-quest/internal/core"
)

// Sprite is the visual part of every entity: a named asset in some state,
// placed at Rect. The rectangle's size always follows the current image.
type Sprite struct {
	Rect core.Rect

	name    string
	state   string
	image   image.Image
	catalog assets.Catalog
	loaded  map[string]*assets.Asset
	err     error
}

// newSprite loads name in its initial state. Every state in preload is
// loaded up front so that later state switches cannot fail mid-tick.
func newSprite(catalog assets.Catalog, name, state string, preload ...string) (*Sprite, error) {
	s := &Sprite{
		name:    name,
		catalog: catalog,
		loaded:  make(map[string]*assets.Asset),
	}
	for _, st := range append([]string{state}, preload...) {
		if _, err := s.load(st); err != nil {
			return nil, fmt.Errorf("world: sprite %s: %w", name, err)
		}
	}
	s.state = state
	s.setImage(s.loaded[state].Image)
	return s, nil
}

// newImageSprite wraps an already composed image.
func newImageSprite(name string, img image.Image) *Sprite {
	s := &Sprite{name: name}
	s.setImage(img)
	return s
}

func (s *Sprite) load(state string) (*assets.Asset, error) {
	if a, ok := s.loaded[state]; ok {
		return a, nil
	}
	a, err := s.catalog.Load(s.name, state)
	if err != nil {
		return nil, err
	}
	s.loaded[state] = a
	return a, nil
}

// Name returns the asset name.
func (s *Sprite) Name() string {
	return s.name
}

// State returns the current visual state.
func (s *Sprite) State() string {
	return s.state
}

// Image returns the current image.
func (s *Sprite) Image() image.Image {
	return s.image
}

// Err returns the last asset failure seen by SetState.
func (s *Sprite) Err() error {
	return s.err
}

// SetState switches the visual state, reloading the asset when it changes.
// The top-left corner stays where it was.
func (s *Sprite) SetState(state string) {
	if state == s.state || s.catalog == nil {
		return
	}
	a, err := s.load(state)
	if err != nil {
		s.err = err
		return
	}
	s.state = state
	s.setImage(a.Image)
}

// setImage replaces the image and resizes Rect, keeping its position.
func (s *Sprite) setImage(img image.Image) {
	s.image = img
	b := img.Bounds()
	s.Rect.W = b.Dx()
	s.Rect.H = b.Dy()
}
