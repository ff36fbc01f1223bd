package scene

import (
	"math"

	"cubesurvival/internal/sim"
)

// Camera maps playfield units to framebuffer pixels.
type Camera struct {
	X, Y float64 // playfield space, camera centre
	Zoom float64 // framebuffer pixels per playfield unit

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in playfield units
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

func NewCamera() Camera {
	return Camera{X: sim.Width / 2, Y: sim.Height / 2, Zoom: 1}
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	// Decaying intensity.
	t := c.ShakeTimer
	rr := sim.NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}

// EffectivePos returns camera position with shake applied.
func (c *Camera) EffectivePos() (float64, float64) {
	return c.X + c.ShakeX, c.Y + c.ShakeY
}

// Shaken returns a copy of c centred on its shaken position.
func (c Camera) Shaken() Camera {
	c.X, c.Y = c.EffectivePos()
	return c
}

// Fit keeps the whole playfield on screen, letterboxing the spare axis.
func (c *Camera) Fit(fbW, fbH int) {
	if fbW <= 0 || fbH <= 0 {
		return
	}
	zoomW := float64(fbW) / sim.Width
	zoomH := float64(fbH) / sim.Height
	c.Zoom = math.Min(zoomW, zoomH)
	c.X = sim.Width / 2
	c.Y = sim.Height / 2
}

// ScreenToWorld converts a framebuffer pixel to playfield coordinates.
func (c Camera) ScreenToWorld(fx, fy float64, fbW, fbH int) (float64, float64) {
	if c.Zoom <= 0 {
		return c.X, c.Y
	}
	wx := c.X + (fx-float64(fbW)*0.5)/c.Zoom
	wy := c.Y + (fy-float64(fbH)*0.5)/c.Zoom
	return wx, wy
}

// WorldToScreen is the inverse of ScreenToWorld.
func (c Camera) WorldToScreen(wx, wy float64, fbW, fbH int) (float64, float64) {
	fx := (wx-c.X)*c.Zoom + float64(fbW)*0.5
	fy := (wy-c.Y)*c.Zoom + float64(fbH)*0.5
	return fx, fy
}
