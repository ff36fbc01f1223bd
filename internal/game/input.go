package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"cubesurvival/internal/scene"
	"cubesurvival/internal/sim"
)

type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool
	triggers  []sim.Trigger
	move      sim.MoveInput
	targetX   float64
	targetY   float64
}

func NewInput() *Input {
	return &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// triggerKeys maps edge-triggered keys to session triggers.
var triggerKeys = []struct {
	key glfw.Key
	t   sim.Trigger
}{
	{glfw.KeyEnter, sim.TriggerConfirm},
	{glfw.KeyKPEnter, sim.TriggerConfirm},
	{glfw.KeyEscape, sim.TriggerBack},
	{glfw.KeyC, sim.TriggerCustomize},
	{glfw.KeyQ, sim.TriggerQuit},
	{glfw.KeySpace, sim.TriggerRestart},
	{glfw.KeyLeft, sim.TriggerPrev},
	{glfw.KeyRight, sim.TriggerNext},
}

// Poll samples the window once per rendered frame. Edge triggers queue up
// until the next tick takes them so presses between ticks are not lost.
func (in *Input) Poll(window *glfw.Window, cam scene.Camera, fbW, fbH int) {
	for _, tk := range triggerKeys {
		if in.JustPressed(window, tk.key) {
			in.triggers = append(in.triggers, tk.t)
		}
	}
	in.move = sim.MoveInput{
		Up:    window.GetKey(glfw.KeyW) == glfw.Press,
		Down:  window.GetKey(glfw.KeyS) == glfw.Press,
		Left:  window.GetKey(glfw.KeyA) == glfw.Press,
		Right: window.GetKey(glfw.KeyD) == glfw.Press,
		Dash:  window.GetKey(glfw.KeySpace) == glfw.Press,
	}
	if in.JustClicked(window, glfw.MouseButtonLeft) {
		in.targetX, in.targetY = CursorWorldPos(window, cam, fbW, fbH)
		in.triggers = append(in.triggers, sim.TriggerShoot)
	}
}

// Take returns the input for one tick and clears the queued triggers.
// The returned slice is only valid until the next Poll.
func (in *Input) Take() sim.Input {
	out := sim.Input{
		Triggers: in.triggers,
		Move:     in.move,
		TargetX:  in.targetX,
		TargetY:  in.targetY,
	}
	in.triggers = in.triggers[:0]
	return out
}

// CursorWorldPos converts cursor position to playfield coordinates.
func CursorWorldPos(window *glfw.Window, cam scene.Camera, fbW, fbH int) (float64, float64) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW <= 0 || winH <= 0 {
		return cam.X, cam.Y
	}
	scaleX := float64(fbW) / float64(winW)
	scaleY := float64(fbH) / float64(winH)
	return cam.ScreenToWorld(cx*scaleX, cy*scaleY, fbW, fbH)
}
