package game

import "cubesurvival/internal/scene"

// GlyphUnit is the playfield size of one font atlas pixel at text scale 1.
const GlyphUnit = 1.5

// RenderHUD draws the mode's text lines with the font atlas. Text is placed
// in playfield coordinates and follows the unshaken camera.
func RenderHUD(r *Renderer, lines []scene.TextLine, cam scene.Camera, fbW, fbH int) {
	for _, tl := range lines {
		if tl.Text == "" {
			continue
		}
		scale := float32(GlyphUnit * tl.Scale * cam.Zoom)
		sx, sy := cam.WorldToScreen(tl.X, tl.Y, fbW, fbH)
		x := float32(sx)
		if tl.Align == scene.AlignCenter {
			x -= TextWidth(tl.Text, scale) / 2
		}
		r.DrawString(tl.Text, x, float32(sy), scale, tl.Col)
	}
	r.FlushText(fbW, fbH)
}
