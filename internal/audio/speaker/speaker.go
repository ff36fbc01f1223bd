// Package speaker plays audio buffers through the system sound device.
package speaker

import (
	"io"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"cubesurvival/internal/audio"
)

// Speaker is an audio.Output backed by an oto context.
type Speaker struct {
	ctx   *oto.Context
	ready chan struct{}
}

// Open initialises the sound device. The returned speaker is usable
// immediately; buffers played before the device is ready are dropped.
func Open() (*Speaker, error) {
	ctx, ready, err := oto.NewContext(audio.SampleRate, audio.ChannelCount, audio.BitDepth)
	if err != nil {
		return nil, err
	}
	return &Speaker{ctx: ctx, ready: ready}, nil
}

func (s *Speaker) Ready() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

func (s *Speaker) Play(buf []byte, volume float64, done func()) {
	go func() {
		defer done()
		player := s.ctx.NewPlayer(&soundReader{data: buf})
		player.SetVolume(volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
