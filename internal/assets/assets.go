// Package assets loads sprite images by (name, state) and composes the
// tiled images used for platforms and health bars.
package assets

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
)

// Asset is one loaded sprite image.
type Asset struct {
	Name  string
	State string
	Image image.Image
}

// Width returns the image width in pixels.
func (a *Asset) Width() int {
	return a.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (a *Asset) Height() int {
	return a.Image.Bounds().Dy()
}

// Catalog resolves sprite images. An empty state selects the plain
// environment asset.
type Catalog interface {
	Load(name, state string) (*Asset, error)
}

// LoadError reports an asset that could not be read or decoded.
type LoadError struct {
	Name  string
	State string
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("assets: cannot load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FileName returns "<name>-<state>.png", or "<name>.png" without a state.
func FileName(name, state string) string {
	if state == "" {
		return name + ".png"
	}
	return name + "-" + state + ".png"
}

// Dir loads PNG files from a directory and keeps them cached.
// It is safe for concurrent use by several sessions.
type Dir struct {
	root  string
	mu    sync.RWMutex
	cache map[string]*Asset
}

// NewDir creates a catalog rooted at root.
func NewDir(root string) *Dir {
	return &Dir{
		root:  root,
		cache: make(map[string]*Asset),
	}
}

// Root returns the directory the catalog reads from.
func (d *Dir) Root() string {
	return d.root
}

// Load reads <root>/<name>-<state>.png once and then serves it from cache.
func (d *Dir) Load(name, state string) (*Asset, error) {
	key := FileName(name, state)

	d.mu.RLock()
	if a, ok := d.cache[key]; ok {
		d.mu.RUnlock()
		return a, nil
	}
	d.mu.RUnlock()

	path := filepath.Join(d.root, key)
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &LoadError{Name: name, State: state, Path: path, Err: err}
	}

	a := &Asset{Name: name, State: state, Image: img}
	d.mu.Lock()
	d.cache[key] = a
	d.mu.Unlock()
	return a, nil
}
