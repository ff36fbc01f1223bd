package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubesurvival/internal/sim"
)

func playing(t *testing.T) *sim.Session {
	t.Helper()
	s := sim.NewSession(5, nil)
	s.Tick(sim.Input{Triggers: []sim.Trigger{sim.TriggerConfirm}})
	require.Equal(t, sim.ModePlaying, s.Mode)
	return s
}

func countShape(ls []*Layer, shape Shape) int {
	n := 0
	for _, l := range ls {
		if l.Shape == shape {
			n += l.Len()
		}
	}
	return n
}

func TestCameraFitLetterboxes(t *testing.T) {
	c := NewCamera()
	c.Fit(2000, 700)
	assert.Equal(t, 1.0, c.Zoom)
	c.Fit(500, 700)
	assert.Equal(t, 0.5, c.Zoom)

	wx, wy := c.ScreenToWorld(250, 350, 500, 700)
	assert.InDelta(t, sim.Width/2, wx, 1e-9)
	assert.InDelta(t, sim.Height/2, wy, 1e-9)

	fx, fy := c.WorldToScreen(0, 0, 500, 700)
	bx, by := c.ScreenToWorld(fx, fy, 500, 700)
	assert.InDelta(t, 0, bx, 1e-9)
	assert.InDelta(t, 0, by, 1e-9)
}

func TestCameraShakeDecays(t *testing.T) {
	c := NewCamera()
	c.AddShake(8, 0.3)
	c.AddShake(2, 0.1)
	assert.Equal(t, 8.0, c.ShakeIntensity)
	assert.Equal(t, 0.3, c.ShakeTimer)

	for range 30 {
		c.UpdateShake(1.0/60, 9)
		assert.LessOrEqual(t, c.ShakeX, 8.0)
		assert.GreaterOrEqual(t, c.ShakeX, -8.0)
	}
	c.UpdateShake(1.0/60, 9)
	assert.Zero(t, c.ShakeX)
	assert.Zero(t, c.ShakeY)
	x, y := c.EffectivePos()
	assert.Equal(t, c.X, x)
	assert.Equal(t, c.Y, y)
}

func TestBuildPlayingLayers(t *testing.T) {
	s := playing(t)
	s.Enemies = append(s.Enemies, sim.NewEnemyOfKind(100, 100, 0, sim.EnemyTank))
	s.Projectiles = append(s.Projectiles, s.Player.Shoot(900, 350))
	s.PowerUps = append(s.PowerUps, sim.NewPowerUp(300, 300, sim.PowerUpSpeed))
	s.Particles.Burst(10, 10, sim.Palette.Red, 4)
	s.Player.ApplyPowerUp(sim.PowerUpShield)

	b := NewBuilder()
	world, hud := b.Build(s, 0.5)

	assert.Equal(t, 1, countShape(world, ShapeCube), "player")
	assert.Equal(t, 1, countShape(world, ShapeRing), "shield")
	assert.Equal(t, 1, countShape(world, ShapeGlow), "power-up glow")
	assert.Equal(t, 4+1+1, countShape(world, ShapeDisc), "particles, orb and shot")
	assert.Greater(t, countShape(hud, ShapeBox), 0, "health and stamina bars")
	assert.Zero(t, countShape(hud, ShapeShade))

	for _, l := range world {
		assert.Zero(t, len(l.Buf)%SpriteStride)
	}
}

func TestBuildReusesBuffers(t *testing.T) {
	s := playing(t)
	b := NewBuilder()
	world, _ := b.Build(s, 0)
	first := world[0]
	world, _ = b.Build(s, 0)
	assert.Same(t, first, world[0])
}

func TestBuildPausedShadesPlayfield(t *testing.T) {
	s := playing(t)
	s.Tick(sim.Input{Triggers: []sim.Trigger{sim.TriggerBack}})
	require.Equal(t, sim.ModePaused, s.Mode)
	s.Particles.Burst(10, 10, sim.Palette.Red, 4)

	world, hud := NewBuilder().Build(s, 0)
	assert.Zero(t, countShape(world, ShapeDisc), "paused view hides particles")
	assert.Equal(t, (sim.Width/ShadeCell)*(sim.Height/ShadeCell), countShape(hud, ShapeShade))
}

func TestBuildCustomizeSwatches(t *testing.T) {
	s := sim.NewSession(5, nil)
	s.Tick(sim.Input{Triggers: []sim.Trigger{sim.TriggerCustomize}})

	world, hud := NewBuilder().Build(s, 0)
	assert.Empty(t, world)
	assert.Equal(t, len(sim.CubeColors), countShape(hud, ShapeCube))
	assert.Greater(t, countShape(hud, ShapeBox), 0, "selection frame")
}

func TestAppendRectStaysInside(t *testing.T) {
	buf := appendRect(nil, 10, 20, 11, 5, 4, sim.Palette.Red, 1)
	require.NotEmpty(t, buf)
	for i := 0; i < len(buf); i += SpriteStride {
		x, y, size := float64(buf[i]), float64(buf[i+1]), float64(buf[i+2])
		assert.GreaterOrEqual(t, x-size/2, 10.0-1e-6)
		assert.LessOrEqual(t, x+size/2, 21.0+1e-6)
		assert.GreaterOrEqual(t, y-size/2, 20.0-1e-6)
		assert.LessOrEqual(t, y+size/2, 25.0+1e-6)
	}
}

func texts(lines []TextLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestTextPerMode(t *testing.T) {
	s := sim.NewSession(5, &fixedStore{high: 77})
	lines := Text(s, 60, nil)
	assert.Contains(t, texts(lines), "ENHANCED CUBE SURVIVAL")
	assert.Contains(t, texts(lines), "High Score: 77")

	s.Tick(sim.Input{Triggers: []sim.Trigger{sim.TriggerConfirm}})
	s.Player.ApplyPowerUp(sim.PowerUpShield)
	lines = Text(s, 59, lines)
	assert.Contains(t, texts(lines), "FPS: 59")
	assert.Contains(t, texts(lines), "Wave: 1")
	assert.Contains(t, texts(lines), "SHIELD ACTIVE")
	assert.NotContains(t, texts(lines), "SPEED BOOST")

	s.Tick(sim.Input{Triggers: []sim.Trigger{sim.TriggerBack}})
	assert.Contains(t, texts(Text(s, 0, nil)), "PAUSED")
}

func TestTextGameOver(t *testing.T) {
	s := sim.NewSession(5, &fixedStore{high: 1000})
	s.Tick(sim.Input{Triggers: []sim.Trigger{sim.TriggerConfirm}})
	s.Wave = 4
	s.Kills = 3
	s.Score = 41.95
	s.Player.HP.Current = 1
	s.Enemies = append(s.Enemies, sim.NewEnemyOfKind(s.Player.X+5, s.Player.Y, 0, sim.EnemyNormal))
	s.Tick(sim.Input{})
	require.Equal(t, sim.ModeGameOver, s.Mode)

	got := texts(Text(s, 0, nil))
	assert.Contains(t, got, "Final Score: 42")
	assert.Contains(t, got, "Enemies Killed: 3")
	assert.Contains(t, got, "Waves Survived: 3")
	assert.NotContains(t, got, "NEW HIGH SCORE!")
}

type fixedStore struct{ high int }

func (f *fixedStore) LoadHighScore() int      { return f.high }
func (f *fixedStore) SaveHighScore(int) error { return nil }
