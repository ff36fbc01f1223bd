package scene

import (
	"fmt"

	"cubesurvival/internal/sim"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Text sizes, as multiples of the renderer's base glyph cell.
const (
	TextLarge = 2.0
	TextSmall = 1.4
)

// TextLine is one string placed in playfield coordinates; Y is the top edge.
type TextLine struct {
	Text  string
	X, Y  float64
	Scale float64
	Col   sim.RGB
	Align Align
}

var menuInstructions = []string{
	"Press ENTER to Start",
	"Press C to Customize",
	"",
	"Controls:",
	"WASD - Move",
	"SPACE - Dash (uses stamina)",
	"Left Click - Shoot",
	"ESC - Pause",
}

// Text returns the strings shown for the session's current mode. fps is only
// displayed on the in-game HUD.
func Text(s *sim.Session, fps int, lines []TextLine) []TextLine {
	lines = lines[:0]
	center := func(text string, y, scale float64, col sim.RGB) {
		lines = append(lines, TextLine{Text: text, X: sim.Width / 2, Y: y, Scale: scale, Col: col, Align: AlignCenter})
	}
	left := func(text string, x, y, scale float64, col sim.RGB) {
		lines = append(lines, TextLine{Text: text, X: x, Y: y, Scale: scale, Col: col})
	}
	pal := sim.Palette

	switch s.Mode {
	case sim.ModeMenu:
		center("ENHANCED CUBE SURVIVAL", 150, TextLarge, pal.Yellow)
		y := 250.0
		for _, line := range menuInstructions {
			if line != "" {
				center(line, y, TextSmall, pal.White)
			}
			y += 35
		}
		center(fmt.Sprintf("High Score: %d", s.HighScore), sim.Height-80, TextLarge, pal.Green)

	case sim.ModeCustomize:
		center("CUSTOMIZE YOUR CUBE", 100, TextLarge, pal.Yellow)
		for i, c := range sim.CubeColors {
			x, y := SwatchOrigin(i)
			left(c.Name, x+70, y+15, TextSmall, pal.White)
		}
		center("Use LEFT/RIGHT arrows, ENTER to confirm, ESC to go back", sim.Height-60, TextSmall, pal.Gray)

	case sim.ModePlaying:
		p := s.Player
		left(fmt.Sprintf("FPS: %d", fps), sim.Width-100, 10, TextSmall, pal.White)
		left(fmt.Sprintf("Score: %d", int(s.Score)), 10, 10, TextLarge, pal.White)
		left(fmt.Sprintf("Wave: %d", s.Wave), 10, 50, TextSmall, pal.Cyan)
		left(fmt.Sprintf("Kills: %d", s.Kills), 10, 80, TextSmall, pal.Red)
		left(fmt.Sprintf("Health: %d", int(p.HP.Current)), 10, sim.Height-95, TextSmall, pal.White)
		left("Stamina", 10, sim.Height-18, TextSmall, pal.White)

		buffY := float64(sim.Height - 70)
		if p.Shield {
			left(sim.PowerUpShield.Label(), sim.Width-200, buffY, TextSmall, pal.Purple)
			buffY -= 30
		}
		if p.SpeedBoost {
			left(sim.PowerUpSpeed.Label(), sim.Width-200, buffY, TextSmall, pal.Cyan)
		}

	case sim.ModePaused:
		center("PAUSED", sim.Height/2-100, TextLarge, pal.Yellow)
		center("Press ESC to Resume", sim.Height/2, TextSmall, pal.White)
		center("Press Q to Quit to Menu", sim.Height/2+40, TextSmall, pal.White)

	case sim.ModeGameOver:
		center("GAME OVER", 200, TextLarge, pal.Red)
		center(fmt.Sprintf("Final Score: %d", int(s.Score)), 280, TextLarge, pal.White)
		center(fmt.Sprintf("Enemies Killed: %d", s.Kills), 330, TextLarge, pal.White)
		center(fmt.Sprintf("Waves Survived: %d", s.WavesSurvived()), 380, TextLarge, pal.White)
		if s.IsHighScore() {
			center("NEW HIGH SCORE!", 430, TextLarge, pal.Yellow)
		}
		center("Press SPACE to Restart", sim.Height-150, TextSmall, pal.Green)
		center("Press ESC for Menu", sim.Height-100, TextSmall, pal.White)
	}
	return lines
}
