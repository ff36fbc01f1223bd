package game

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"cubesurvival/internal/config"
	"cubesurvival/internal/logging"
	"cubesurvival/internal/scene"
	"cubesurvival/internal/sim"
)

const (
	tickDT        = 1.0 / sim.TicksPerSecond
	maxFrameDT    = 0.25 // clamp after stalls (window drag, breakpoints)
	maxTicksFrame = 5

	hitShake      = 8.0
	hitShakeTime  = 0.25
	killShake     = 3.0
	killShakeTime = 0.12
)

// RunDesktop opens a window and plays s until the window closes or ctx ends.
// onTick, when set, is called after every simulation step with its duration.
func RunDesktop(ctx context.Context, cfg config.WindowConfig, s *sim.Session, onTick func(*sim.Session, time.Duration)) {
	runtime.LockOSThread()

	window, err := initWindow(cfg)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		panic(fmt.Errorf("font: %w", err))
	}

	cam := scene.NewCamera()
	s.Events.Subscribe(sim.EventPlayerHit, func(e sim.Event) {
		if e.Data == 0 {
			cam.AddShake(hitShake, hitShakeTime)
		}
	})
	s.Events.Subscribe(sim.EventEnemyKilled, func(e sim.Event) {
		if sim.EnemyKind(e.Data) == sim.EnemyTank {
			cam.AddShake(killShake, killShakeTime)
		}
	})

	input := NewInput()
	builder := scene.NewBuilder()
	var lines []scene.TextLine

	logging.LogInfo("desktop frontend started (%dx%d, vsync=%v)", cfg.Width, cfg.Height, cfg.VSync)

	start := glfw.GetTime()
	last := start
	acc := 0.0
	frames, fps := 0, 0
	fpsStart := start
	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			window.SetShouldClose(true)
			continue
		default:
		}

		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > maxFrameDT {
			dt = maxFrameDT
		}

		glfw.PollEvents()

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		cam.Fit(fbW, fbH)
		input.Poll(window, cam, fbW, fbH)

		// Fixed-rate simulation.
		acc += dt
		for n := 0; acc >= tickDT && n < maxTicksFrame; n++ {
			t0 := time.Now()
			s.Tick(input.Take())
			if onTick != nil {
				onTick(s, time.Since(t0))
			}
			acc -= tickDT
		}
		if acc > tickDT {
			acc = tickDT
		}
		cam.UpdateShake(dt, s.Seed()^uint64(now*1000))

		frames++
		if now-fpsStart >= 1 {
			fps = frames
			frames = 0
			fpsStart = now
		}

		// Draw.
		world, hud := builder.Build(s, now-start)
		lines = scene.Text(s, fps, lines)

		rend.BeginFrame(fbW, fbH)
		rend.DrawLayers(world, cam.Shaken(), fbW, fbH)
		// HUD uses stable camera (no shake).
		rend.DrawLayers(hud, cam, fbW, fbH)
		RenderHUD(rend, lines, cam, fbW, fbH)

		window.SwapBuffers()
	}
	logging.LogInfo("desktop frontend closed")
}
