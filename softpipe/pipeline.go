package softpipe

import (
	"errors"
	"fmt"

	"github.com/gogpu/learngpu"
	"github.com/gogpu/learngpu/internal/parallel"
)

// Pipeline errors.
var (
	// ErrClosed is returned when drawing through a closed pipeline.
	ErrClosed = errors.New("softpipe: pipeline is closed")

	// ErrNilTarget is returned when no framebuffer is supplied.
	ErrNilTarget = errors.New("softpipe: nil framebuffer")

	// ErrVertexCount is returned when the vertex count is not a
	// multiple of three.
	ErrVertexCount = errors.New("softpipe: vertex count must be a multiple of 3")

	// ErrNilTexture is returned when the textured program is drawn
	// without a bound texture.
	ErrNilTexture = errors.New("softpipe: textured draw requires a texture")
)

// Pipeline executes the three shader programs on the CPU. Triangles
// are assembled in groups of three vertices, rasterized with
// pixel-center coverage, and shaded in parallel row bands.
//
// A Pipeline owns a worker pool and must be closed when no longer
// needed. It is safe to issue draws from multiple goroutines as long
// as they target different framebuffers.
type Pipeline struct {
	pool   *parallel.Pool
	closed bool
}

// NewPipeline creates a pipeline with the given number of fragment
// workers. Zero or negative means GOMAXPROCS.
func NewPipeline(workers int) *Pipeline {
	return &Pipeline{pool: parallel.NewPool(workers)}
}

// Close releases the worker pool. Draw calls after Close fail with
// ErrClosed.
func (p *Pipeline) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.pool.Close()
}

func (p *Pipeline) check(fb *Framebuffer) error {
	if p.closed {
		return ErrClosed
	}
	if fb == nil {
		return ErrNilTarget
	}
	return nil
}

// DrawProcedural runs the procedural program: vertexCount vertices
// whose positions come from the vertex index alone, shaded with the
// fixed solid color. No vertex buffer is consumed.
func (p *Pipeline) DrawProcedural(fb *Framebuffer, vertexCount uint32) error {
	if err := p.check(fb); err != nil {
		return err
	}
	if vertexCount%3 != 0 {
		return fmt.Errorf("%w: got %d", ErrVertexCount, vertexCount)
	}

	for i := uint32(0); i < vertexCount; i += 3 {
		p.triangle(fb,
			proceduralVertex(i),
			proceduralVertex(i+1),
			proceduralVertex(i+2),
			proceduralFragment)
	}
	return nil
}

// DrawColorTriangles runs the vertex-color program over the given
// vertices, three per triangle. Colors are interpolated across each
// triangle with barycentric weights.
func (p *Pipeline) DrawColorTriangles(fb *Framebuffer, vertices []learngpu.ColorVertex) error {
	if err := p.check(fb); err != nil {
		return err
	}
	if len(vertices)%3 != 0 {
		return fmt.Errorf("%w: got %d", ErrVertexCount, len(vertices))
	}

	for i := 0; i < len(vertices); i += 3 {
		p.triangle(fb,
			colorVertex(vertices[i]),
			colorVertex(vertices[i+1]),
			colorVertex(vertices[i+2]),
			colorFragment)
	}
	return nil
}

// DrawTexturedTriangles runs the textured program over the given
// vertices, sampling tex through smp at the interpolated coordinates.
func (p *Pipeline) DrawTexturedTriangles(fb *Framebuffer, vertices []learngpu.TexturedVertex, tex *Texture, smp Sampler) error {
	if err := p.check(fb); err != nil {
		return err
	}
	if tex == nil {
		return ErrNilTexture
	}
	if len(vertices)%3 != 0 {
		return fmt.Errorf("%w: got %d", ErrVertexCount, len(vertices))
	}

	frag := texturedFragment(tex, smp)
	for i := 0; i < len(vertices); i += 3 {
		p.triangle(fb,
			texturedVertex(vertices[i]),
			texturedVertex(vertices[i+1]),
			texturedVertex(vertices[i+2]),
			frag)
	}
	return nil
}

func (p *Pipeline) triangle(fb *Framebuffer, a, b, c vertexOutput, frag fragmentFunc) {
	rasterize(fb,
		toScreen(a, fb.width, fb.height),
		toScreen(b, fb.width, fb.height),
		toScreen(c, fb.width, fb.height),
		frag, p.pool.Run)
}
