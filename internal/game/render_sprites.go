package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"cubesurvival/internal/scene"
)

// DrawLayers renders scene layers in order with the program matching each shape.
func (r *Renderer) DrawLayers(layers []*scene.Layer, cam scene.Camera, fbW, fbH int) {
	for _, l := range layers {
		if int(l.Shape) < 0 || int(l.Shape) >= len(r.progs) {
			continue
		}
		r.DrawSprites(l.Buf, r.progs[l.Shape], cam, fbW, fbH)
	}
}

// DrawSprites renders an array of point sprites.
// buf format: [x, y, size, r, g, b, a, param] * N (8 floats per sprite).
func (r *Renderer) DrawSprites(buf []float32, prog spriteProgram, cam scene.Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}

	gl.UseProgram(prog.id)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(prog.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(prog.uZoom, float32(cam.Zoom))
	gl.Uniform2f(prog.uResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	if prog.additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	for len(buf) > 0 {
		count := len(buf) / scene.SpriteStride
		if count == 0 {
			break
		}
		if count > MaxSpriteRender {
			count = MaxSpriteRender
		}
		gl.BufferData(gl.ARRAY_BUFFER, count*scene.SpriteStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(count))
		buf = buf[count*scene.SpriteStride:]
	}

	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}
