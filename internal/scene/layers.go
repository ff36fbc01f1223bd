package scene

import (
	"math"

	"cubesurvival/internal/sim"
)

// SpriteStride is the float count per sprite: x, y, size, r, g, b, a, param.
// param is the rotation for boxes and the rim or ring thickness for discs.
const SpriteStride = 8

// Shape selects how a layer's sprites are drawn.
type Shape int

const (
	ShapeBox   Shape = iota // flat square
	ShapeCube               // square with a white border
	ShapeDisc               // filled circle, param = rim width (0..0.5)
	ShapeRing               // hollow circle, param = ring thickness (0..0.5)
	ShapeGlow               // additive radial light
	ShapeShade              // full-screen dimming tiles
)

// Layer is one draw call's worth of sprites in playfield coordinates.
type Layer struct {
	Shape Shape
	Buf   []float32
}

func (l *Layer) Len() int { return len(l.Buf) / SpriteStride }

// Visual tuning.
const (
	BarHeight      = 5
	BarCell        = 2.5
	HUDBarWidth    = 200
	HUDBarHeight   = 20
	HUDBarCell     = 4
	ShadeCell      = 50
	ShadeAlpha     = 180.0 / 255.0
	CubeBorder     = 2.0 / sim.PlayerSize
	TrailPad       = 10
	TrailAlpha     = 100.0 / 255.0
	ShieldPad      = 10
	ShieldPulse    = 10
	ShieldWidth    = 3
	PowerUpPulse   = 50
	PowerUpRim     = 2
	SwatchSize     = 50
	SwatchTop      = 170
	SwatchSpacing  = 62
	SwatchFramePad = 10
)

// Builder turns a session into sprite layers, reusing its buffers every frame.
type Builder struct {
	world []*Layer
	hud   []*Layer
	nw    int
	nh    int
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) worldLayer(shape Shape) *Layer {
	return nextLayer(&b.world, &b.nw, shape)
}

func (b *Builder) hudLayer(shape Shape) *Layer {
	return nextLayer(&b.hud, &b.nh, shape)
}

func nextLayer(ls *[]*Layer, n *int, shape Shape) *Layer {
	if *n < len(*ls) {
		l := (*ls)[*n]
		l.Shape = shape
		l.Buf = l.Buf[:0]
		*n++
		return l
	}
	l := &Layer{Shape: shape}
	*ls = append(*ls, l)
	*n++
	return l
}

// Build returns the playfield layers (drawn with camera shake) and the HUD
// layers (drawn without) for the session's current mode. now is wall time in
// seconds and only drives pulsing effects.
func (b *Builder) Build(s *sim.Session, now float64) (world, hud []*Layer) {
	b.nw, b.nh = 0, 0

	switch s.Mode {
	case sim.ModePlaying:
		b.particles(s)
		b.powerUps(s, now)
		b.enemies(s)
		b.projectiles(s)
		b.player(s, now)
		b.hudBars(s)

	case sim.ModePaused:
		b.enemies(s)
		b.projectiles(s)
		b.player(s, now)
		shade := b.hudLayer(ShapeShade)
		shade.Buf = appendRect(shade.Buf, 0, 0, sim.Width, sim.Height, ShadeCell, sim.Palette.Black, ShadeAlpha)

	case sim.ModeCustomize:
		b.swatches(s)
	}

	return b.world[:b.nw], b.hud[:b.nh]
}

func (b *Builder) particles(s *sim.Session) {
	l := b.worldLayer(ShapeDisc)
	for i := range s.Particles.P {
		p := &s.Particles.P[i]
		l.Buf = appendSprite(l.Buf, p.X, p.Y, p.Size*2, p.Col, p.Alpha(), 0)
	}
}

func (b *Builder) powerUps(s *sim.Session, now float64) {
	glow := b.worldLayer(ShapeGlow)
	orbs := b.worldLayer(ShapeDisc)
	pulse := int(math.Abs(math.Sin(now*1000/200)) * PowerUpPulse)
	for i := range s.PowerUps {
		pu := &s.PowerUps[i]
		col := pu.Kind.Color()
		glow.Buf = appendSprite(glow.Buf, pu.X, pu.Y, sim.PowerUpSize*3, scaleRGB(col, 0.35), 1, 0)
		lit := col.Add(pulse, pulse, pulse)
		orbs.Buf = appendSprite(orbs.Buf, pu.X, pu.Y, sim.PowerUpSize*2, lit, 1, PowerUpRim/(sim.PowerUpSize*2.0))
	}
}

func (b *Builder) enemies(s *sim.Session) {
	cubes := b.worldLayer(ShapeBox)
	bars := b.worldLayer(ShapeBox)
	for i := range s.Enemies {
		e := &s.Enemies[i]
		cubes.Buf = appendSprite(cubes.Buf, e.X, e.Y, sim.EnemySize, e.Col, 1, 0)

		x0 := e.X - sim.EnemySize/2
		y0 := e.Y - sim.EnemySize/2 - 10
		bars.Buf = appendRect(bars.Buf, x0, y0, sim.EnemySize, BarHeight, BarCell, sim.Palette.Red, 1)
		filled := math.Floor(e.HP.Fraction() * sim.EnemySize)
		if filled > 0 {
			bars.Buf = appendRect(bars.Buf, x0, y0, filled, BarHeight, BarCell, sim.Palette.Green, 1)
		}
	}
}

func (b *Builder) projectiles(s *sim.Session) {
	l := b.worldLayer(ShapeDisc)
	for i := range s.Projectiles {
		pr := &s.Projectiles[i]
		l.Buf = appendSprite(l.Buf, pr.X, pr.Y, sim.ProjectileSize*2, sim.Palette.Yellow, 1, 0)
	}
}

func (b *Builder) player(s *sim.Session, now float64) {
	p := s.Player
	if p.SpeedBoost {
		trail := b.worldLayer(ShapeBox)
		trail.Buf = appendSprite(trail.Buf, p.X, p.Y, sim.PlayerSize+TrailPad, sim.Palette.Cyan, TrailAlpha, 0)
	}
	cube := b.worldLayer(ShapeCube)
	cube.Buf = appendSprite(cube.Buf, p.X, p.Y, sim.PlayerSize, p.Col, 1, CubeBorder)

	if p.Shield {
		pulse := math.Floor(math.Abs(math.Sin(now*1000/100)) * ShieldPulse)
		r := sim.PlayerSize/2 + ShieldPad + pulse
		ring := b.worldLayer(ShapeRing)
		ring.Buf = appendSprite(ring.Buf, p.X, p.Y, r*2, sim.Palette.Purple, 1, ShieldWidth/(r*2))
	}
}

// hudBars draws the health and stamina bars in the bottom-left corner.
func (b *Builder) hudBars(s *sim.Session) {
	p := s.Player
	l := b.hudLayer(ShapeBox)
	l.Buf = appendBar(l.Buf, 10, sim.Height-70, p.HP.Fraction(), sim.Palette.Red)
	l.Buf = appendBar(l.Buf, 10, sim.Height-40, p.StaminaFraction(), sim.Palette.Green)
}

func appendBar(buf []float32, x, y, frac float64, fill sim.RGB) []float32 {
	buf = appendRect(buf, x, y, HUDBarWidth, HUDBarHeight, HUDBarCell, sim.Palette.Gray, 1)
	if w := math.Floor(frac * HUDBarWidth); w > 0 {
		buf = appendRect(buf, x, y, w, HUDBarHeight, HUDBarCell, fill, 1)
	}
	return appendFrame(buf, x, y, HUDBarWidth, HUDBarHeight, 2, sim.Palette.White)
}

// swatches lays the selectable colours out as a column of cubes and frames
// the highlighted one.
func (b *Builder) swatches(s *sim.Session) {
	cubes := b.hudLayer(ShapeCube)
	frame := b.hudLayer(ShapeBox)
	for i, c := range sim.CubeColors {
		x, y := SwatchOrigin(i)
		cubes.Buf = appendSprite(cubes.Buf, x+SwatchSize/2, y+SwatchSize/2, SwatchSize, c.Col, 1, CubeBorder)
		if i == s.ColorIdx {
			frame.Buf = appendFrame(frame.Buf,
				x-SwatchFramePad, y-SwatchFramePad,
				220, SwatchSize+2*SwatchFramePad, 3, sim.Palette.White)
		}
	}
}

// SwatchOrigin is the top-left corner of the i-th colour swatch.
func SwatchOrigin(i int) (float64, float64) {
	return sim.Width/2 - 100, SwatchTop + float64(i)*SwatchSpacing
}

func appendSprite(buf []float32, x, y, size float64, col sim.RGB, a, param float64) []float32 {
	return append(buf,
		float32(x), float32(y), float32(size),
		float32(col.R)/255.0, float32(col.G)/255.0, float32(col.B)/255.0, float32(a),
		float32(param),
	)
}

// appendRect tiles the rectangle (x, y, w, h) with square cells. The last
// row and column are pulled back so nothing spills past the edge.
func appendRect(buf []float32, x, y, w, h, cell float64, col sim.RGB, a float64) []float32 {
	if w <= 0 || h <= 0 {
		return buf
	}
	cw, ch := math.Min(cell, w), math.Min(cell, h)
	size := math.Min(cw, ch)
	for cy := 0.0; cy < h; cy += size {
		py := math.Min(cy, h-size) + size/2
		for cx := 0.0; cx < w; cx += size {
			px := math.Min(cx, w-size) + size/2
			buf = appendSprite(buf, x+px, y+py, size, col, a, 0)
		}
	}
	return buf
}

// appendFrame outlines the rectangle with a border of the given thickness.
func appendFrame(buf []float32, x, y, w, h, thick float64, col sim.RGB) []float32 {
	buf = appendRect(buf, x, y, w, thick, thick, col, 1)
	buf = appendRect(buf, x, y+h-thick, w, thick, thick, col, 1)
	buf = appendRect(buf, x, y, thick, h, thick, col, 1)
	return appendRect(buf, x+w-thick, y, thick, h, thick, col, 1)
}

func scaleRGB(c sim.RGB, f float64) sim.RGB {
	return sim.RGB{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f)}
}
