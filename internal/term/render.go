package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"cubesurvival/internal/scene"
	"cubesurvival/internal/sim"
)

// glowAlpha is the opacity of additive glow sprites once rasterised to cells.
const glowAlpha = 0.35

type rgb struct{ r, g, b float64 }

type cell struct {
	bg   rgb
	ch   rune
	fg   rgb
	text bool
}

// grid is an off-screen cell buffer covering the whole playfield.
type grid struct {
	cols, rows   int
	cellW, cellH float64 // playfield units per cell
	cells        []cell
}

func (g *grid) resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g.cols, g.rows = cols, rows
	g.cellW = sim.Width / float64(cols)
	g.cellH = sim.Height / float64(rows)
	if cap(g.cells) < cols*rows {
		g.cells = make([]cell, cols*rows)
	}
	g.cells = g.cells[:cols*rows]
}

func (g *grid) clear() {
	for i := range g.cells {
		g.cells[i] = cell{ch: ' '}
	}
}

func (g *grid) at(cx, cy int) *cell {
	if cx < 0 || cy < 0 || cx >= g.cols || cy >= g.rows {
		return nil
	}
	return &g.cells[cy*g.cols+cx]
}

// toCell maps a playfield point to the cell that contains it.
func (g *grid) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / g.cellW)), int(math.Floor(y / g.cellH))
}

// toWorld returns the playfield point at the centre of a cell.
func (g *grid) toWorld(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * g.cellW, (float64(cy) + 0.5) * g.cellH
}

func (g *grid) blend(cx, cy int, col rgb, a float64) {
	c := g.at(cx, cy)
	if c == nil {
		return
	}
	a = math.Max(0, math.Min(1, a))
	c.bg.r += (col.r - c.bg.r) * a
	c.bg.g += (col.g - c.bg.g) * a
	c.bg.b += (col.b - c.bg.b) * a
}

// drawLayers rasterises scene layers into the grid in order.
func (g *grid) drawLayers(layers []*scene.Layer) {
	for _, l := range layers {
		for i := 0; i+scene.SpriteStride <= len(l.Buf); i += scene.SpriteStride {
			g.drawSprite(l.Shape, l.Buf[i:i+scene.SpriteStride])
		}
	}
}

func (g *grid) drawSprite(shape scene.Shape, s []float32) {
	x, y, size := float64(s[0]), float64(s[1]), float64(s[2])
	col := rgb{float64(s[3]), float64(s[4]), float64(s[5])}
	a := float64(s[6])
	param := float64(s[7])
	half := size / 2

	if shape == scene.ShapeShade {
		g.shade(x-half, y-half, size, a)
		return
	}

	x0, y0 := g.toCell(x-half, y-half)
	x1, y1 := g.toCell(x+half, y+half)
	hit := false
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			wx, wy := g.toWorld(cx, cy)
			if !covers(shape, wx-x, wy-y, half, param, g.cellW, g.cellH) {
				continue
			}
			hit = true
			switch shape {
			case scene.ShapeGlow:
				g.blend(cx, cy, col, a*glowAlpha)
			default:
				g.blend(cx, cy, col, a)
			}
		}
	}
	// Sprites smaller than a cell still mark the cell under their centre.
	if !hit && shape != scene.ShapeRing && shape != scene.ShapeGlow {
		cx, cy := g.toCell(x, y)
		g.blend(cx, cy, col, a)
	}
}

// covers reports whether a cell centred at (dx, dy) from the sprite centre
// belongs to the shape.
func covers(shape scene.Shape, dx, dy, half, param, cellW, cellH float64) bool {
	switch shape {
	case scene.ShapeDisc, scene.ShapeGlow:
		return math.Hypot(dx, dy) <= half
	case scene.ShapeRing:
		d := math.Hypot(dx, dy)
		band := math.Max(param*half*2, math.Max(cellW, cellH)/2)
		return d <= half && d >= half-band
	default:
		return math.Abs(dx) <= half && math.Abs(dy) <= half
	}
}

// shade darkens every cell whose centre lies in the tile.
func (g *grid) shade(x, y, size, a float64) {
	x0, y0 := g.toCell(x, y)
	x1, y1 := g.toCell(x+size, y+size)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			wx, wy := g.toWorld(cx, cy)
			if wx < x || wx >= x+size || wy < y || wy >= y+size {
				continue
			}
			g.blend(cx, cy, rgb{}, a)
		}
	}
}

// drawText places lines on the grid; Y is the top edge of the text.
func (g *grid) drawText(lines []scene.TextLine) {
	for _, tl := range lines {
		runes := []rune(tl.Text)
		cx, cy := g.toCell(tl.X, tl.Y)
		if tl.Align == scene.AlignCenter {
			cx -= len(runes) / 2
		}
		fg := rgb{float64(tl.Col.R) / 255, float64(tl.Col.G) / 255, float64(tl.Col.B) / 255}
		for i, r := range runes {
			c := g.at(cx+i, cy)
			if c == nil {
				continue
			}
			c.ch = r
			c.fg = fg
			c.text = true
		}
	}
}

func toColor(c rgb) tcell.Color {
	q := func(v float64) int32 { return int32(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return tcell.NewRGBColor(q(c.r), q(c.g), q(c.b))
}

// flush copies the grid onto the screen.
func (g *grid) flush(screen tcell.Screen) {
	for cy := 0; cy < g.rows; cy++ {
		for cx := 0; cx < g.cols; cx++ {
			c := &g.cells[cy*g.cols+cx]
			style := tcell.StyleDefault.Background(toColor(c.bg))
			if c.text {
				style = style.Foreground(toColor(c.fg)).Bold(true)
			}
			screen.SetContent(cx, cy, c.ch, nil, style)
		}
	}
}
