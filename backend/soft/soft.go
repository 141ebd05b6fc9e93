// Package soft provides the CPU rendering backend. It executes frames
// through the softpipe reference pipeline and is always available.
package soft

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/learngpu"
	"github.com/gogpu/learngpu/backend"
	"github.com/gogpu/learngpu/render"
	"github.com/gogpu/learngpu/softpipe"
)

func init() {
	backend.Register(backend.BackendSoft, func() backend.RenderBackend {
		return New()
	})
}

// Backend renders frames on the CPU. It is safe for concurrent
// RenderFrame calls against different targets.
type Backend struct {
	mu       sync.Mutex
	pipe     *softpipe.Pipeline
	textures map[image.Image]*softpipe.Texture
}

// New creates an uninitialized software backend.
func New() *Backend {
	return &Backend{}
}

// Name returns "soft".
func (b *Backend) Name() string {
	return backend.BackendSoft
}

// Init creates the fragment worker pool. Calling Init on an
// initialized backend is a no-op.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipe != nil {
		return nil
	}
	b.pipe = softpipe.NewPipeline(0)
	b.textures = make(map[image.Image]*softpipe.Texture)
	learngpu.Logger().Debug("soft backend initialized")
	return nil
}

// Close releases the worker pool.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipe != nil {
		b.pipe.Close()
		b.pipe = nil
		b.textures = nil
	}
}

// RenderFrame clears the target and executes the frame's draws in
// order through the reference pipeline.
func (b *Backend) RenderFrame(target render.Target, frame *backend.Frame) error {
	b.mu.Lock()
	pipe := b.pipe
	b.mu.Unlock()
	if pipe == nil {
		return backend.ErrNotInitialized
	}
	if target == nil {
		return softpipe.ErrNilTarget
	}
	dst := target.Pixels()
	if dst == nil {
		return backend.ErrNoCPUPixels
	}

	fb := softpipe.NewFramebuffer(target.Width(), target.Height())
	fb.Clear(frame.Clear)

	for i, draw := range frame.Draws {
		if err := b.execute(pipe, fb, draw); err != nil {
			return fmt.Errorf("draw %d (%s): %w", i, draw.Program, err)
		}
	}

	copy(dst, fb.Data())
	return nil
}

func (b *Backend) execute(pipe *softpipe.Pipeline, fb *softpipe.Framebuffer, draw backend.Draw) error {
	switch draw.Program {
	case learngpu.ProgramProcedural:
		return pipe.DrawProcedural(fb, draw.VertexCount)

	case learngpu.ProgramVertexColor:
		return pipe.DrawColorTriangles(fb, draw.ColorVertices)

	case learngpu.ProgramTextured:
		tex := b.texture(draw.Texture)
		smp := softpipe.Sampler{}
		if draw.LinearFilter {
			smp.Filter = softpipe.FilterLinear
		}
		return pipe.DrawTexturedTriangles(fb, draw.TexturedVertices, tex, smp)

	default:
		return fmt.Errorf("%w: %q", backend.ErrUnknownProgram, draw.Program)
	}
}

// texture returns the cached conversion of img, converting on first
// use. The cache key is the image value itself, so callers reusing one
// image across frames pay the conversion once.
func (b *Backend) texture(img image.Image) *softpipe.Texture {
	if img == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.textures == nil {
		return softpipe.TextureFromImage(img)
	}
	if tex, ok := b.textures[img]; ok {
		return tex
	}
	tex := softpipe.TextureFromImage(img)
	b.textures[img] = tex
	return tex
}

var _ backend.RenderBackend = (*Backend)(nil)
