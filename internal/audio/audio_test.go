package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubesurvival/internal/sim"
)

type fakeOutput struct {
	ready   bool
	played  [][]byte
	volumes []float64
	pending []func()
}

func (f *fakeOutput) Ready() bool { return f.ready }

func (f *fakeOutput) Play(buf []byte, volume float64, done func()) {
	f.played = append(f.played, buf)
	f.volumes = append(f.volumes, volume)
	f.pending = append(f.pending, done)
}

func (f *fakeOutput) finishAll() {
	for _, done := range f.pending {
		done()
	}
	f.pending = nil
}

func TestGenerateAllKinds(t *testing.T) {
	for k := SoundKind(0); k < SoundKindCount; k++ {
		t.Run(k.String(), func(t *testing.T) {
			buf := Generate(k, 42)
			require.NotEmpty(t, buf)
			assert.Zero(t, len(buf)%FrameBytes)
			assert.Greater(t, Duration(buf), 0.03)
			assert.Less(t, Duration(buf), 1.5)

			for i := 0; i < len(buf); i += 4 {
				v := math.Float32frombits(binary.LittleEndian.Uint32(buf[i:]))
				require.False(t, math.IsNaN(float64(v)), "NaN at byte %d", i)
				require.LessOrEqual(t, math.Abs(float64(v)), 1.0, "sample %d out of range", i/4)
			}
		})
	}
	assert.Nil(t, Generate(SoundKindCount, 0))
	assert.Equal(t, "unknown", SoundKind(-1).String())
}

func TestGenerateStereoChannelsMatch(t *testing.T) {
	buf := Generate(SoundHurt, 0)
	for i := 0; i < len(buf); i += FrameBytes {
		require.Equal(t, buf[i:i+4], buf[i+4:i+8])
	}
}

func TestHeavyKillIsLonger(t *testing.T) {
	assert.Greater(t, Duration(Generate(SoundKillHeavy, 1)), Duration(Generate(SoundKill, 1)))
}

func TestSoftSatBounds(t *testing.T) {
	for _, x := range []float64{-100, -2, -1, -0.5, 0, 0.5, 1, 2, 100} {
		y := softSat(x)
		assert.LessOrEqual(t, math.Abs(y), 1.0, "softSat(%v)", x)
	}
	assert.Zero(t, softSat(0))
}

func TestADSR(t *testing.T) {
	assert.InDelta(t, 0.0, adsr(0, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 1.0, adsr(0.1, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 0.0, adsr(1.0, 0.1, 0.2, 0.5, 0.2), 1e-9)
}

func TestEngineNilOutputIsSilent(t *testing.T) {
	var e *Engine
	e.Play(SoundShot)
	NewEngine(nil, 1).Play(SoundShot)
}

func TestEngineWaitsForDevice(t *testing.T) {
	out := &fakeOutput{}
	e := NewEngine(out, 0.5)
	e.Play(SoundShot)
	assert.Empty(t, out.played)

	out.ready = true
	e.Play(SoundShot)
	require.Len(t, out.played, 1)
	assert.InDelta(t, 0.5, out.volumes[0], 1e-9)
}

func TestEngineVolume(t *testing.T) {
	out := &fakeOutput{ready: true}
	e := NewEngine(out, 2)
	assert.Equal(t, 1.0, e.SFXVolume())

	e.PlayWithGain(SoundHit, 0.25)
	require.Len(t, out.volumes, 1)
	assert.InDelta(t, 0.25, out.volumes[0], 1e-9)

	e.SetSFXVolume(0)
	e.Play(SoundHit)
	assert.Len(t, out.played, 1)
}

func TestEngineLimitsKillSounds(t *testing.T) {
	out := &fakeOutput{ready: true}
	e := NewEngine(out, 1)
	for range 5 {
		e.Play(SoundKill)
	}
	assert.Len(t, out.played, maxKillSounds)

	// Other sounds are not limited.
	e.Play(SoundHit)
	e.Play(SoundHit)
	assert.Len(t, out.played, maxKillSounds+2)

	out.finishAll()
	e.Play(SoundKillHeavy)
	assert.Len(t, out.played, maxKillSounds+3)
}

func TestSoundFor(t *testing.T) {
	cases := []struct {
		ev   sim.Event
		want SoundKind
		ok   bool
	}{
		{sim.Event{Type: sim.EventShot}, SoundShot, true},
		{sim.Event{Type: sim.EventEnemyHit}, SoundHit, true},
		{sim.Event{Type: sim.EventEnemyKilled, Data: int(sim.EnemyFast)}, SoundKill, true},
		{sim.Event{Type: sim.EventEnemyKilled, Data: int(sim.EnemyTank)}, SoundKillHeavy, true},
		{sim.Event{Type: sim.EventPlayerHit}, SoundHurt, true},
		{sim.Event{Type: sim.EventPlayerHit, Data: 1}, SoundShieldBlock, true},
		{sim.Event{Type: sim.EventDash}, SoundDash, true},
		{sim.Event{Type: sim.EventPowerUpCollected}, SoundPickup, true},
		{sim.Event{Type: sim.EventWaveStarted, Data: 3}, SoundWave, true},
		{sim.Event{Type: sim.EventGameOver}, SoundGameOver, true},
		{sim.Event{Type: sim.EventNewHighScore}, SoundHighScore, true},
		{sim.Event{Type: sim.EventModeChanged, Data: int(sim.ModePaused)}, SoundMenuSelect, true},
		{sim.Event{Type: sim.EventModeChanged, Data: int(sim.ModeGameOver)}, 0, false},
		{sim.Event{Type: sim.EventEnemySpawned}, 0, false},
	}
	for _, c := range cases {
		got, ok := SoundFor(c.ev)
		assert.Equal(t, c.ok, ok, "event %v", c.ev)
		if c.ok {
			assert.Equal(t, c.want, got, "event %v", c.ev)
		}
	}
}

func TestAttachPlaysOnSessionEvents(t *testing.T) {
	out := &fakeOutput{ready: true}
	e := NewEngine(out, 1)
	s := sim.NewSession(1, nil)
	e.Attach(s.Events)

	s.Tick(sim.Input{Triggers: []sim.Trigger{sim.TriggerConfirm}})
	require.NotEmpty(t, out.played, "mode change should click")

	n := len(out.played)
	s.Tick(sim.Input{Triggers: []sim.Trigger{sim.TriggerShoot}, TargetX: 0, TargetY: 0})
	assert.Greater(t, len(out.played), n)
}
