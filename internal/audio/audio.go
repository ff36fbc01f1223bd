package audio

import (
	"sync/atomic"
	"time"

	"cubesurvival/internal/sim"
)

// Output is a sound device that can start one-shot buffers.
type Output interface {
	// Ready reports whether the device finished initialising.
	Ready() bool
	// Play starts buf at volume and returns once playback is scheduled.
	// done is called after the buffer finished playing.
	Play(buf []byte, volume float64, done func())
}

// maxKillSounds limits simultaneous explosion sounds to avoid speaker clipping.
const maxKillSounds = 2

// Engine turns session events into procedural sound effects.
type Engine struct {
	out       Output
	sfxVolume float64
	kills     int32
	variant   uint64
	cache     [SoundKindCount][]byte
}

// NewEngine returns an engine playing through out. A nil out makes every call a no-op.
func NewEngine(out Output, volume float64) *Engine {
	e := &Engine{out: out}
	e.SetSFXVolume(volume)
	return e
}

func (e *Engine) SetSFXVolume(vol float64) {
	e.sfxVolume = clampF(vol, 0, 1)
}

func (e *Engine) SFXVolume() float64 { return e.sfxVolume }

// Play plays kind at full gain.
func (e *Engine) Play(kind SoundKind) {
	e.PlayWithGain(kind, 1.0)
}

func (e *Engine) PlayWithGain(kind SoundKind, gain float64) {
	if e == nil || e.out == nil || gain <= 0 || e.sfxVolume <= 0 {
		return
	}
	if !e.out.Ready() {
		return
	}
	heavy := kind == SoundKill || kind == SoundKillHeavy
	if heavy {
		if atomic.AddInt32(&e.kills, 1) > maxKillSounds {
			atomic.AddInt32(&e.kills, -1)
			return
		}
	}
	samples := e.render(kind)
	if len(samples) == 0 {
		if heavy {
			atomic.AddInt32(&e.kills, -1)
		}
		return
	}
	done := func() {}
	if heavy {
		done = func() { atomic.AddInt32(&e.kills, -1) }
	}
	e.out.Play(samples, e.sfxVolume*clampF(gain, 0, 1), done)
}

// render returns a cached buffer for tonal sounds and a fresh variant for noise.
func (e *Engine) render(kind SoundKind) []byte {
	switch kind {
	case SoundKill, SoundKillHeavy, SoundDash:
		seed := atomic.AddUint64(&e.variant, 1) ^ uint64(time.Now().UnixNano())
		return Generate(kind, seed)
	}
	if kind < 0 || kind >= SoundKindCount {
		return nil
	}
	if e.cache[kind] == nil {
		e.cache[kind] = Generate(kind, 0)
	}
	return e.cache[kind]
}

// SoundFor maps a session event to the sound it should trigger.
func SoundFor(ev sim.Event) (SoundKind, bool) {
	switch ev.Type {
	case sim.EventShot:
		return SoundShot, true
	case sim.EventEnemyHit:
		return SoundHit, true
	case sim.EventEnemyKilled:
		if sim.EnemyKind(ev.Data) == sim.EnemyTank {
			return SoundKillHeavy, true
		}
		return SoundKill, true
	case sim.EventPlayerHit:
		if ev.Data != 0 {
			return SoundShieldBlock, true
		}
		return SoundHurt, true
	case sim.EventDash:
		return SoundDash, true
	case sim.EventPowerUpCollected:
		return SoundPickup, true
	case sim.EventWaveStarted:
		return SoundWave, true
	case sim.EventGameOver:
		return SoundGameOver, true
	case sim.EventNewHighScore:
		return SoundHighScore, true
	case sim.EventModeChanged:
		if sim.Mode(ev.Data) == sim.ModeGameOver {
			return 0, false
		}
		return SoundMenuSelect, true
	}
	return 0, false
}

// Attach subscribes the engine to every event that has a sound.
func (e *Engine) Attach(bus *sim.EventBus) {
	bus.SubscribeAll(func(ev sim.Event) {
		if kind, ok := SoundFor(ev); ok {
			e.Play(kind)
		}
	},
		sim.EventShot,
		sim.EventEnemyHit,
		sim.EventEnemyKilled,
		sim.EventPlayerHit,
		sim.EventDash,
		sim.EventPowerUpCollected,
		sim.EventWaveStarted,
		sim.EventGameOver,
		sim.EventNewHighScore,
		sim.EventModeChanged,
	)
}
