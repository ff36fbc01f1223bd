package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"cubesurvival/internal/scene"
)

// MaxSpriteRender is the sprite VBO capacity; larger layers are drawn in batches.
const MaxSpriteRender = 16384

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// spriteProgram is one fragment variant of the point-sprite pipeline.
type spriteProgram struct {
	id          uint32
	uCamera     int32
	uZoom       int32
	uResolution int32
	additive    bool
}

func newSpriteProgram(fragSrc string, additive bool) (spriteProgram, error) {
	id, err := linkProgram(spriteVertSrc, fragSrc)
	if err != nil {
		return spriteProgram{}, err
	}
	gl.UseProgram(id)
	return spriteProgram{
		id:          id,
		uCamera:     gl.GetUniformLocation(id, gl.Str("uCamera\x00")),
		uZoom:       gl.GetUniformLocation(id, gl.Str("uZoom\x00")),
		uResolution: gl.GetUniformLocation(id, gl.Str("uResolution\x00")),
		additive:    additive,
	}, nil
}

type Renderer struct {
	// Point-sprite programs, indexed by scene.Shape.
	progs     [scene.ShapeShade + 1]spriteProgram
	spriteVAO uint32
	spriteVBO uint32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{}

	frags := [...]struct {
		shape    scene.Shape
		src      string
		additive bool
	}{
		{scene.ShapeBox, boxFragSrc, false},
		{scene.ShapeCube, boxFragSrc, false},
		{scene.ShapeDisc, discFragSrc, false},
		{scene.ShapeRing, ringFragSrc, false},
		{scene.ShapeGlow, glowFragSrc, true},
		{scene.ShapeShade, boxFragSrc, false},
	}
	for _, f := range frags {
		p, err := newSpriteProgram(f.src, f.additive)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("sprite program %d: %w", f.shape, err)
		}
		r.progs[f.shape] = p
	}

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, param).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(scene.SpriteStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSpriteRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aParam (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0, 0, 0, 1)
	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	seen := map[uint32]bool{}
	for _, p := range r.progs {
		if p.id != 0 && !seen[p.id] {
			gl.DeleteProgram(p.id)
			seen[p.id] = true
		}
	}
	if r.textProg != 0 {
		gl.DeleteProgram(r.textProg)
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
