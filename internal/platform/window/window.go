// Package window runs the game in a desktop window at the level's native
// resolution, drawing the sprite images the terminal can only approximate.
package window

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/registry"
	"github.com/vovakirdan/tin-quest/internal/world"
)

// Game is a game whose level can be drawn directly.
type Game interface {
	registry.Game
	Level() *world.Level
	EndMessages() []string
}

// Fallback size used before a level exists.
const (
	defaultWidth  = 1000
	defaultHeight = 480
)

// ebitenutil debug font metrics.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

type binding struct {
	key    ebiten.Key
	player core.PlayerID
	action core.Action
	held   bool // active while pressed rather than on the press alone
}

var bindings = []binding{
	{ebiten.KeyArrowLeft, core.Player1, core.ActionLeft, true},
	{ebiten.KeyArrowRight, core.Player1, core.ActionRight, true},
	{ebiten.KeyArrowUp, core.Player1, core.ActionJump, true},
	{ebiten.KeySpace, core.Player1, core.ActionAttack, true},
	{ebiten.KeyA, core.Player2, core.ActionLeft, true},
	{ebiten.KeyD, core.Player2, core.ActionRight, true},
	{ebiten.KeyW, core.Player2, core.ActionJump, true},
	{ebiten.KeyF, core.Player2, core.ActionAttack, true},
	{ebiten.KeyR, core.Player1, core.ActionRestart, false},
	{ebiten.KeyM, core.Player1, core.ActionMultiplayer, false},
	{ebiten.KeyP, core.Player1, core.ActionPause, false},
	{ebiten.KeyQ, core.Player1, core.ActionQuit, false},
	{ebiten.KeyEscape, core.Player1, core.ActionQuit, false},
}

// readInput builds this tick's input from key state.
func readInput(pressed, justPressed func(ebiten.Key) bool) core.MultiInputFrame {
	frame := core.NewMultiInputFrame()
	for _, b := range bindings {
		if (b.held && pressed(b.key)) || (!b.held && justPressed(b.key)) {
			frame.Press(b.player, b.action)
		}
	}
	return frame
}

// Frontend implements ebiten.Game around a Game.
type Frontend struct {
	game   Game
	logger *log.Logger

	images map[image.Image]*ebiten.Image
	seen   map[image.Image]bool
}

// New wraps game. The game must already be Reset.
func New(game Game, logger *log.Logger) *Frontend {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Frontend{
		game:   game,
		logger: logger,
		images: make(map[image.Image]*ebiten.Image),
		seen:   make(map[image.Image]bool),
	}
}

// Update advances the game by one tick.
func (f *Frontend) Update() error {
	in := readInput(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)
	if in.Any(core.ActionQuit) {
		return ebiten.Termination
	}
	res := f.game.Step(in)
	if res.Err != nil {
		f.logger.Error("game stopped", "game", f.game.ID(), "err", res.Err)
		return res.Err
	}
	return nil
}

// Draw renders every layer at native resolution.
func (f *Frontend) Draw(screen *ebiten.Image) {
	level := f.game.Level()
	if level == nil {
		ebitenutil.DebugPrintAt(screen, "Cannot start level", 10, 10)
		return
	}

	screen.Fill(level.Definition().Background.Color())
	for _, layer := range world.Layers {
		for _, e := range level.Layer(layer) {
			f.drawEntity(screen, e)
		}
	}
	f.evict()

	if lines := f.game.EndMessages(); len(lines) > 0 {
		f.drawOverlay(screen, lines)
	} else if f.game.State().Paused {
		f.drawOverlay(screen, []string{"PAUSED"})
	}
}

func (f *Frontend) drawEntity(screen *ebiten.Image, e world.Entity) {
	s := e.Sprite()
	if t, ok := e.(world.Texter); ok {
		ebitenutil.DebugPrintAt(screen, t.Text(), s.Rect.X, s.Rect.Y)
		return
	}
	img := s.Image()
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(s.Rect.X), float64(s.Rect.Y))
	screen.DrawImage(f.image(img), op)
}

// image returns the GPU copy of img, uploading it on first use.
func (f *Frontend) image(img image.Image) *ebiten.Image {
	f.seen[img] = true
	if eimg, ok := f.images[img]; ok {
		return eimg
	}
	eimg := ebiten.NewImageFromImage(img)
	f.images[img] = eimg
	return eimg
}

// evict releases images no sprite showed this frame, such as health bars
// that were rebuilt.
func (f *Frontend) evict() {
	for img, eimg := range f.images {
		if !f.seen[img] {
			eimg.Deallocate()
			delete(f.images, img)
		}
	}
	clear(f.seen)
}

func (f *Frontend) drawOverlay(screen *ebiten.Image, lines []string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	shade := ebiten.NewImage(w, h)
	defer shade.Deallocate()
	shade.Fill(color.RGBA{A: 120})
	screen.DrawImage(shade, nil)

	y := (h - len(lines)*debugGlyphH) / 2
	for i, line := range lines {
		x := (w - len(line)*debugGlyphW) / 2
		ebitenutil.DebugPrintAt(screen, line, x, y+i*debugGlyphH)
	}
}

// Layout keeps the logical screen at the level's viewport size.
func (f *Frontend) Layout(int, int) (int, int) {
	if level := f.game.Level(); level != nil {
		vp := level.Viewport()
		return vp.Width, vp.Height
	}
	return defaultWidth, defaultHeight
}

// Run resets game and opens a window until the player quits.
func Run(game Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	game.Reset(cfg)
	f := New(game, logger)

	w, h := f.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	if err := ebiten.RunGame(f); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
