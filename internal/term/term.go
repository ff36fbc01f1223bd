// Package term runs the game inside a terminal using tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"cubesurvival/internal/config"
	"cubesurvival/internal/logging"
	"cubesurvival/internal/scene"
	"cubesurvival/internal/sim"
)

// heldKey is a key whose "down" state is emulated from terminal presses.
type heldKey int

const (
	holdUp heldKey = iota
	holdDown
	holdLeft
	holdRight
	holdDash
	holdCount
)

// Frontend renders a session to a tcell screen and feeds it terminal input.
type Frontend struct {
	screen  tcell.Screen
	session *sim.Session
	cfg     config.TerminalConfig

	builder *scene.Builder
	grid    grid
	lines   []scene.TextLine

	held     [holdCount]int // frames left until the key counts as released
	triggers []sim.Trigger
	target   [2]float64
	buttons  tcell.ButtonMask

	frames   int
	fps      int
	fpsStart time.Time
	start    time.Time

	// OnTick is called after every simulation step with its duration.
	OnTick func(s *sim.Session, took time.Duration)
}

// New wraps an initialised screen. The caller owns screen.Fini.
func New(screen tcell.Screen, s *sim.Session, cfg config.TerminalConfig) *Frontend {
	if cfg.HoldFrames <= 0 {
		cfg.HoldFrames = 1
	}
	if cfg.FirstHoldFrames < cfg.HoldFrames {
		cfg.FirstHoldFrames = cfg.HoldFrames
	}
	f := &Frontend{
		screen:  screen,
		session: s,
		cfg:     cfg,
		builder: scene.NewBuilder(),
		start:   time.Now(),
	}
	f.fpsStart = f.start
	f.resize()
	return f
}

// Run opens the terminal, plays until ctx is cancelled or the user quits,
// and restores the terminal on return.
func Run(ctx context.Context, s *sim.Session, cfg config.TerminalConfig, onTick func(*sim.Session, time.Duration)) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	f := New(screen, s, cfg)
	f.OnTick = onTick
	return f.Loop(ctx)
}

// Loop drives the session at a fixed tick rate until ctx ends or the
// user presses Ctrl-C.
func (f *Frontend) Loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / sim.TicksPerSecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	logging.LogInfo("terminal frontend started (%dx%d cells)", f.grid.cols, f.grid.rows)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if !f.HandleEvent(ev) {
				logging.LogInfo("terminal frontend quit by user")
				return nil
			}
		case <-ticker.C:
			f.Step()
			f.Draw()
		}
	}
}

// HandleEvent records one terminal event. It returns false when the user
// asked to leave the program.
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return f.handleKey(ev)
	case *tcell.EventMouse:
		f.handleMouse(ev)
	case *tcell.EventResize:
		f.resize()
		f.screen.Sync()
	}
	return true
}

func (f *Frontend) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		f.trigger(sim.TriggerConfirm)
	case tcell.KeyEscape:
		f.trigger(sim.TriggerBack)
	case tcell.KeyLeft:
		f.trigger(sim.TriggerPrev)
	case tcell.KeyRight:
		f.trigger(sim.TriggerNext)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'c', 'C':
			f.trigger(sim.TriggerCustomize)
		case 'q', 'Q':
			f.trigger(sim.TriggerQuit)
		case ' ':
			f.trigger(sim.TriggerRestart)
			f.press(holdDash)
		case 'w', 'W':
			f.press(holdUp)
		case 's', 'S':
			f.press(holdDown)
		case 'a', 'A':
			f.press(holdLeft)
		case 'd', 'D':
			f.press(holdRight)
		}
	}
	return true
}

// handleMouse fires a shot on the press edge of the primary button.
func (f *Frontend) handleMouse(ev *tcell.EventMouse) {
	btn := ev.Buttons()
	if btn&tcell.Button1 != 0 && f.buttons&tcell.Button1 == 0 {
		cx, cy := ev.Position()
		f.target[0], f.target[1] = f.grid.toWorld(cx, cy)
		f.trigger(sim.TriggerShoot)
	}
	f.buttons = btn
}

func (f *Frontend) trigger(t sim.Trigger) {
	f.triggers = append(f.triggers, t)
}

// press marks k held. Terminals never report releases, so a fresh press is
// held long enough to bridge the keyboard's auto-repeat delay and repeats
// only extend it briefly.
func (f *Frontend) press(k heldKey) {
	if f.held[k] > 0 {
		f.held[k] = max(f.held[k], f.cfg.HoldFrames)
		return
	}
	f.held[k] = f.cfg.FirstHoldFrames
}

// Input builds the frame's input from queued triggers and held keys.
func (f *Frontend) Input() sim.Input {
	return sim.Input{
		Triggers: f.triggers,
		Move: sim.MoveInput{
			Up:    f.held[holdUp] > 0,
			Down:  f.held[holdDown] > 0,
			Left:  f.held[holdLeft] > 0,
			Right: f.held[holdRight] > 0,
			Dash:  f.held[holdDash] > 0,
		},
		TargetX: f.target[0],
		TargetY: f.target[1],
	}
}

// Step advances the session by one tick and ages held keys.
func (f *Frontend) Step() {
	in := f.Input()
	t0 := time.Now()
	f.session.Tick(in)
	if f.OnTick != nil {
		f.OnTick(f.session, time.Since(t0))
	}
	f.triggers = f.triggers[:0]
	for i := range f.held {
		if f.held[i] > 0 {
			f.held[i]--
		}
	}

	f.frames++
	if now := time.Now(); now.Sub(f.fpsStart) >= time.Second {
		f.fps = f.frames
		f.frames = 0
		f.fpsStart = now
	}
}

// Draw renders the current session state and shows it.
func (f *Frontend) Draw() {
	now := time.Since(f.start).Seconds()
	world, hud := f.builder.Build(f.session, now)
	f.lines = scene.Text(f.session, f.fps, f.lines)

	f.grid.clear()
	f.grid.drawLayers(world)
	f.grid.drawLayers(hud)
	f.grid.drawText(f.lines)
	f.grid.flush(f.screen)
	f.screen.Show()
}

func (f *Frontend) resize() {
	cols, rows := f.screen.Size()
	f.grid.resize(cols, rows)
}
