package backend

import (
	"image"

	"github.com/gogpu/learngpu"
)

// Frame describes one rendered frame: a clear color and an ordered
// list of draws. Draws are executed in slice order on top of the
// cleared target.
type Frame struct {
	// Clear is the color the target is cleared to before drawing.
	Clear learngpu.RGBA

	// Draws are executed in order.
	Draws []Draw
}

// Draw is a single draw call. Program selects which shader program
// runs; the remaining fields feed that program's inputs and are
// ignored by programs that do not use them.
type Draw struct {
	// Program names the shader program, one of the learngpu program
	// name constants.
	Program string

	// VertexCount is the number of vertices for the procedural
	// program, which reads no vertex buffer.
	VertexCount uint32

	// ColorVertices feeds the vertex-color program, three per
	// triangle.
	ColorVertices []learngpu.ColorVertex

	// TexturedVertices feeds the textured program, three per
	// triangle.
	TexturedVertices []learngpu.TexturedVertex

	// Texture is sampled by the textured program.
	Texture image.Image

	// LinearFilter selects linear instead of nearest filtering for
	// the textured program.
	LinearFilter bool
}

// NewFrame returns a frame cleared to the standard blue-grey used by
// the demos.
func NewFrame() *Frame {
	return &Frame{Clear: learngpu.ClearColor}
}

// AddProcedural appends a procedural draw of count vertices.
func (f *Frame) AddProcedural(count uint32) *Frame {
	f.Draws = append(f.Draws, Draw{
		Program:     learngpu.ProgramProcedural,
		VertexCount: count,
	})
	return f
}

// AddColorTriangles appends a vertex-color draw.
func (f *Frame) AddColorTriangles(vertices []learngpu.ColorVertex) *Frame {
	f.Draws = append(f.Draws, Draw{
		Program:       learngpu.ProgramVertexColor,
		ColorVertices: vertices,
	})
	return f
}

// AddTexturedTriangles appends a textured draw sampling img.
func (f *Frame) AddTexturedTriangles(vertices []learngpu.TexturedVertex, img image.Image) *Frame {
	f.Draws = append(f.Draws, Draw{
		Program:          learngpu.ProgramTextured,
		TexturedVertices: vertices,
		Texture:          img,
	})
	return f
}
