package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubesurvival/internal/config"
	"cubesurvival/internal/scene"
	"cubesurvival/internal/sim"
)

func newTestFrontend(t *testing.T) (*Frontend, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 35)

	s := sim.NewSession(7, nil)
	return New(screen, s, config.TerminalConfig{HoldFrames: 4, FirstHoldFrames: 10}), screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestEnterStartsGame(t *testing.T) {
	f, _ := newTestFrontend(t)
	assert.True(t, f.HandleEvent(key(tcell.KeyEnter)))
	f.Step()
	assert.Equal(t, sim.ModePlaying, f.session.Mode)
	assert.Empty(t, f.triggers, "triggers are consumed by the tick")
}

func TestCtrlCQuits(t *testing.T) {
	f, _ := newTestFrontend(t)
	assert.False(t, f.HandleEvent(key(tcell.KeyCtrlC)))
}

func TestKeyMapping(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want sim.Trigger
	}{
		{key(tcell.KeyEnter), sim.TriggerConfirm},
		{key(tcell.KeyEscape), sim.TriggerBack},
		{key(tcell.KeyLeft), sim.TriggerPrev},
		{key(tcell.KeyRight), sim.TriggerNext},
		{runeKey('c'), sim.TriggerCustomize},
		{runeKey('q'), sim.TriggerQuit},
		{runeKey(' '), sim.TriggerRestart},
	}
	for _, c := range cases {
		f, _ := newTestFrontend(t)
		f.HandleEvent(c.ev)
		in := f.Input()
		assert.True(t, in.Has(c.want), "key %v", c.ev.Name())
	}
}

func TestHeldKeyEmulation(t *testing.T) {
	f, _ := newTestFrontend(t)
	f.HandleEvent(runeKey('d'))
	assert.Equal(t, 10, f.held[holdRight])

	for range 9 {
		assert.True(t, f.Input().Move.Right)
		f.Step()
	}
	// An auto-repeat extends the hold without restarting the long first hold.
	f.HandleEvent(runeKey('d'))
	assert.Equal(t, 4, f.held[holdRight])
	for range 4 {
		assert.True(t, f.Input().Move.Right)
		f.Step()
	}
	assert.False(t, f.Input().Move.Right)
}

func TestSpaceDashesAndRestarts(t *testing.T) {
	f, _ := newTestFrontend(t)
	f.HandleEvent(runeKey(' '))
	in := f.Input()
	assert.True(t, in.Move.Dash)
	assert.True(t, in.Has(sim.TriggerRestart))
}

func TestMouseShootsOnPressEdge(t *testing.T) {
	f, _ := newTestFrontend(t)
	f.HandleEvent(key(tcell.KeyEnter))
	f.Step()

	f.HandleEvent(tcell.NewEventMouse(50, 10, tcell.Button1, tcell.ModNone))
	f.HandleEvent(tcell.NewEventMouse(51, 10, tcell.Button1, tcell.ModNone)) // drag, no new shot
	in := f.Input()
	n := 0
	for _, tr := range in.Triggers {
		if tr == sim.TriggerShoot {
			n++
		}
	}
	assert.Equal(t, 1, n)
	assert.InDelta(t, 505.0, in.TargetX, 1e-9)
	assert.InDelta(t, 210.0, in.TargetY, 1e-9)

	f.Step()
	assert.Len(t, f.session.Projectiles, 1)

	f.HandleEvent(tcell.NewEventMouse(50, 10, tcell.ButtonNone, tcell.ModNone))
	f.HandleEvent(tcell.NewEventMouse(50, 10, tcell.Button1, tcell.ModNone))
	in = f.Input()
	assert.True(t, in.Has(sim.TriggerShoot))
}

func TestDrawMenuShowsTitle(t *testing.T) {
	f, screen := newTestFrontend(t)
	f.Draw()

	var title *scene.TextLine
	for i := range f.lines {
		if f.lines[i].Text == "ENHANCED CUBE SURVIVAL" {
			title = &f.lines[i]
		}
	}
	require.NotNil(t, title)

	cx, cy := f.grid.toCell(title.X, title.Y)
	cx -= len(title.Text) / 2
	got := make([]rune, 0, len(title.Text))
	for i := range len(title.Text) {
		r, _, _, _ := screen.GetContent(cx+i, cy)
		got = append(got, r)
	}
	assert.Equal(t, title.Text, string(got))
}

func TestDrawPlayerCube(t *testing.T) {
	f, screen := newTestFrontend(t)
	f.HandleEvent(key(tcell.KeyEnter))
	f.Step()
	f.Draw()

	p := f.session.Player
	cx, cy := f.grid.toCell(p.X, p.Y)
	_, _, style, _ := screen.GetContent(cx, cy)
	_, bg, _ := style.Decompose()
	r, g, b := bg.RGB()
	assert.Equal(t, [3]int32{int32(p.Col.R), int32(p.Col.G), int32(p.Col.B)}, [3]int32{r, g, b})
}

func TestPauseShadesPlayfield(t *testing.T) {
	f, _ := newTestFrontend(t)
	f.HandleEvent(key(tcell.KeyEnter))
	f.Step()
	f.HandleEvent(key(tcell.KeyEscape))
	f.Step()
	require.Equal(t, sim.ModePaused, f.session.Mode)
	f.Draw()

	p := f.session.Player
	cx, cy := f.grid.toCell(p.X, p.Y)
	c := f.grid.at(cx, cy)
	require.NotNil(t, c)
	full := float64(p.Col.R) / 255
	assert.Less(t, c.bg.r, full*0.5, "player cube is dimmed by the overlay")
}

func TestResize(t *testing.T) {
	f, screen := newTestFrontend(t)
	screen.SetSize(40, 20)
	f.HandleEvent(tcell.NewEventResize(40, 20))
	assert.Equal(t, 40, f.grid.cols)
	assert.Equal(t, 20, f.grid.rows)
	assert.InDelta(t, sim.Width/40.0, f.grid.cellW, 1e-9)
	f.Draw()
}

func TestGridSmallSpriteMarksCentreCell(t *testing.T) {
	var g grid
	g.resize(10, 10)
	g.clear()
	g.drawSprite(scene.ShapeDisc, []float32{55, 35, 2, 1, 0, 0, 1, 0})
	cx, cy := g.toCell(55, 35)
	assert.InDelta(t, 1.0, g.at(cx, cy).bg.r, 1e-9)
}
