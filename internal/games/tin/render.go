package tin

import (
	"fmt"

	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/storage"
	"github.com/vovakirdan/tin-quest/internal/world"
)

// glyph is how a sprite is drawn on a character screen.
type glyph struct {
	r rune
	c core.Color
}

var glyphs = map[string]glyph{
	"Ground":            {'▀', core.ColorGreen},
	"Platform":          {'▬', core.ColorYellow},
	"Platform-Stone":    {'▬', core.ColorGray},
	world.TowerAsset:    {'█', core.ColorBrightWhite},
	world.TinAsset:      {'T', core.ColorBrightCyan},
	world.SinAsset:      {'S', core.ColorBrightMagenta},
	world.MonsterAsset:  {'m', core.ColorRed},
	world.PrincessAsset: {'o', core.ColorBrightYellow},
	"Tower-Icon":        {'♜', core.ColorWhite},
	"Tin-Icon":          {'T', core.ColorBrightCyan},
	"Sin-Icon":          {'S', core.ColorBrightMagenta},
	world.TimeIcon:      {'◷', core.ColorWhite},
}

var unknownGlyph = glyph{'?', core.ColorMagenta}

// Heart glyphs.
const (
	heartFull    = '♥'
	heartPartial = '♡'
	heartEmpty   = '·'
)

// Render draws the current level scaled onto dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.level == nil {
		dst.DrawTextCentered(dst.Height()/2, "Cannot start level", core.ColorRed)
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorGray)
		}
		return
	}

	vp := g.level.Viewport()
	p := projection{
		sx: float64(dst.Width()) / float64(vp.Width),
		sy: float64(dst.Height()) / float64(vp.Height),
	}

	for _, layer := range world.Layers {
		for _, e := range g.level.Layer(layer) {
			g.drawEntity(dst, p, e)
		}
	}

	switch {
	case g.err != nil:
		dst.DrawTextCentered(dst.Height()/2, g.err.Error(), core.ColorRed)
	case g.level.IsOver():
		g.drawOver(dst)
	case g.paused:
		dst.DrawTextCentered(dst.Height()/2, "PAUSED", core.ColorBrightYellow)
	}
}

// projection maps viewport pixels to screen cells.
type projection struct {
	sx, sy float64
}

// cells converts a pixel rectangle; anything visible covers at least one cell.
func (p projection) cells(r core.Rect) core.Rect {
	x := int(float64(r.X) * p.sx)
	y := int(float64(r.Y) * p.sy)
	w := max(int(float64(r.Right())*p.sx)-x, 1)
	h := max(int(float64(r.Bottom())*p.sy)-y, 1)
	return core.NewRect(x, y, w, h)
}

func (g *Game) drawEntity(dst *core.Screen, p projection, e world.Entity) {
	s := e.Sprite()
	r := p.cells(s.Rect)

	switch v := e.(type) {
	case world.Texter:
		dst.DrawTextColored(r.X, r.Y, v.Text(), core.ColorBrightWhite)
		return
	case *world.HealthIndicator:
		drawHearts(dst, r.X, r.Y, v.Layout())
		return
	}

	gl, ok := glyphs[s.Name()]
	if !ok {
		gl = unknownGlyph
	}
	dst.DrawRect(r, gl.r, stateColor(gl.c, s.State()))
}

func stateColor(c core.Color, state string) core.Color {
	switch state {
	case world.StateAttackLeft, world.StateAttackRight:
		return core.ColorOrange
	case world.TowerDamaged:
		return core.ColorYellow
	case world.TowerRuined:
		return core.ColorRed
	}
	return c
}

func drawHearts(dst *core.Screen, x, y int, layout world.HeartLayout) {
	for i := range layout.Slots {
		switch {
		case i < layout.Full:
			dst.SetColored(x+i, y, heartFull, core.ColorRed)
		case i == layout.Full && layout.PartialPx > 0:
			dst.SetColored(x+i, y, heartPartial, core.ColorRed)
		default:
			dst.SetColored(x+i, y, heartEmpty, core.ColorGray)
		}
	}
}

// EndMessages returns the lines shown once the level is over.
func (g *Game) EndMessages() []string {
	if g.level == nil || !g.level.IsOver() {
		return nil
	}
	var lines []string
	switch g.level.Outcome() {
	case world.OutcomeTowerFallen:
		lines = append(lines, fmt.Sprintf("The tower has fallen! Your score is %s!", g.level.TimeText()))
	case world.OutcomeSinWins:
		lines = append(lines, "Sin has won! The darkness grows!")
	case world.OutcomeTinWins:
		lines = append(lines, "Tin has won! Nothing escapes the light!")
	}
	lines = append(lines, "Press R to retry or M for multi-player :)")

	lines = append(lines, "", "High scores:")
	for i, s := range storage.Top(g.scores, 3) {
		lines = append(lines, fmt.Sprintf("%d. %02d:%02d", i+1, s/60, s%60))
	}
	return lines
}

func (g *Game) drawOver(dst *core.Screen) {
	lines := g.EndMessages()
	y := (dst.Height() - len(lines)) / 2
	for i, line := range lines {
		c := core.ColorBrightWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextCentered(y+i, line, c)
	}
}
