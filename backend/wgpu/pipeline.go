package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/learngpu"
)

// Pipeline errors.
var (
	// ErrNilDevice is returned when creating pipelines without a device.
	ErrNilDevice = errors.New("wgpu: HAL device is nil")
)

// programPipeline holds the GPU objects backing one shader program:
// the SPIR-V module, the layouts, and the render pipeline built from them.
type programPipeline struct {
	program    learngpu.Program
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout // nil for programs without bindings
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler // nil for programs without a sampler binding
	pipeline   hal.RenderPipeline
}

// pipelineCache caches program pipelines by descriptor hash.
//
// Pipeline creation involves shader compilation and validation, so
// each program is built once and reused across frames.
//
// Thread safety: safe for concurrent use. Uses RWMutex with
// double-check locking for efficient reads and safe writes.
type pipelineCache struct {
	mu    sync.RWMutex
	cache map[uint64]*programPipeline

	hits   atomic.Uint64
	misses atomic.Uint64
}

func newPipelineCache() *pipelineCache {
	return &pipelineCache{
		cache: make(map[uint64]*programPipeline),
	}
}

// getOrCreate returns the cached pipeline for prog or builds it.
func (c *pipelineCache) getOrCreate(device hal.Device, prog learngpu.Program) (*programPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	key := hashProgram(prog)

	// Fast path: read lock
	c.mu.RLock()
	if p, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		c.hits.Add(1)
		return p, nil
	}
	c.mu.RUnlock()

	// Slow path: write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.cache[key]; ok {
		c.hits.Add(1)
		return p, nil
	}

	p, err := buildProgramPipeline(device, prog)
	if err != nil {
		return nil, err
	}
	c.cache[key] = p
	c.misses.Add(1)
	return p, nil
}

// stats returns hit and miss counts.
func (c *pipelineCache) stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// size returns the number of cached pipelines.
func (c *pipelineCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// destroyAll destroys all cached pipelines and clears the cache.
func (c *pipelineCache) destroyAll(device hal.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if device != nil {
		for _, p := range c.cache {
			destroyProgramPipeline(device, p)
		}
	}
	c.cache = make(map[uint64]*programPipeline)
	c.hits.Store(0)
	c.misses.Store(0)
}

// colorFormat is the render target format all pipelines are built
// against. It matches render.PixmapTarget.
const colorFormat = gputypes.TextureFormatRGBA8Unorm

// buildProgramPipeline compiles the program to SPIR-V and creates the
// shader module, layouts, and render pipeline on the device.
func buildProgramPipeline(device hal.Device, prog learngpu.Program) (*programPipeline, error) {
	spirv, err := learngpu.CompileSPIRV(prog)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", prog.Name, err)
	}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  prog.Name,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", prog.Name, err)
	}

	p := &programPipeline{program: prog, shader: shader}

	var groupLayouts []hal.BindGroupLayout
	if len(prog.Bindings) > 0 {
		bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   prog.Name + "_bind_layout",
			Entries: bindingEntries(prog.Bindings),
		})
		if err != nil {
			destroyProgramPipeline(device, p)
			return nil, fmt.Errorf("create %s bind group layout: %w", prog.Name, err)
		}
		p.bindLayout = bindLayout
		groupLayouts = []hal.BindGroupLayout{bindLayout}
	}

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            prog.Name + "_pipe_layout",
		BindGroupLayouts: groupLayouts,
	})
	if err != nil {
		destroyProgramPipeline(device, p)
		return nil, fmt.Errorf("create %s pipeline layout: %w", prog.Name, err)
	}
	p.pipeLayout = pipeLayout

	if hasSamplerBinding(prog) {
		// Nearest clamp-to-edge, the tutorial's sampler state.
		sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
			Label:        prog.Name + "_sampler",
			AddressModeU: gputypes.AddressModeClampToEdge,
			AddressModeV: gputypes.AddressModeClampToEdge,
			AddressModeW: gputypes.AddressModeClampToEdge,
			MagFilter:    gputypes.FilterModeNearest,
			MinFilter:    gputypes.FilterModeNearest,
			MipmapFilter: gputypes.FilterModeNearest,
		})
		if err != nil {
			destroyProgramPipeline(device, p)
			return nil, fmt.Errorf("create %s sampler: %w", prog.Name, err)
		}
		p.sampler = sampler
	}

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  prog.Name + "_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: prog.VertexEntry,
			Buffers:    vertexBufferLayouts(prog.VertexBuffers),
		},
		Primitive:   gputypes.DefaultPrimitiveState(),
		Multisample: gputypes.DefaultMultisampleState(),
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: prog.FragmentEntry,
			Targets: []gputypes.ColorTargetState{{
				Format:    colorFormat,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		destroyProgramPipeline(device, p)
		return nil, fmt.Errorf("create %s render pipeline: %w", prog.Name, err)
	}
	p.pipeline = pipeline

	return p, nil
}

// destroyProgramPipeline releases whatever GPU objects p holds, in
// reverse creation order. Nil fields are skipped so it is safe on
// partially built pipelines.
func destroyProgramPipeline(device hal.Device, p *programPipeline) {
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
	}
	if p.sampler != nil {
		device.DestroySampler(p.sampler)
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
	}
}

// vertexBufferLayouts converts a program's vertex buffer layouts to
// their HAL form.
func vertexBufferLayouts(layouts []learngpu.VertexBufferLayout) []gputypes.VertexBufferLayout {
	if len(layouts) == 0 {
		return nil
	}
	out := make([]gputypes.VertexBufferLayout, 0, len(layouts))
	for _, l := range layouts {
		attrs := make([]gputypes.VertexAttribute, 0, len(l.Attributes))
		for _, a := range l.Attributes {
			attrs = append(attrs, gputypes.VertexAttribute{
				Format:         a.Format,
				Offset:         a.Offset,
				ShaderLocation: a.ShaderLocation,
			})
		}
		out = append(out, gputypes.VertexBufferLayout{
			ArrayStride: l.ArrayStride,
			StepMode:    l.StepMode,
			Attributes:  attrs,
		})
	}
	return out
}

func hasSamplerBinding(prog learngpu.Program) bool {
	for _, d := range prog.Bindings {
		if d.Kind == learngpu.BindingSampler {
			return true
		}
	}
	return false
}

// bindingEntries translates a program's binding declarations into HAL
// bind group layout entries. All bindings are fragment-visible.
func bindingEntries(decls []learngpu.BindingDecl) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(decls))
	for _, d := range decls {
		e := gputypes.BindGroupLayoutEntry{
			Binding:    d.Binding,
			Visibility: gputypes.ShaderStageFragment,
		}
		switch d.Kind {
		case learngpu.BindingTexture2D:
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case learngpu.BindingSampler:
			e.Sampler = &gputypes.SamplerBindingLayout{
				Type: gputypes.SamplerBindingTypeFiltering,
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// hashProgram computes an FNV-1a hash over everything that affects
// pipeline identity: name, entry points, vertex layouts, and bindings.
func hashProgram(prog learngpu.Program) uint64 {
	h := fnv.New64a()
	hashWriteString(h, prog.Name)
	hashWriteString(h, prog.VertexEntry)
	hashWriteString(h, prog.FragmentEntry)

	for _, layout := range prog.VertexBuffers {
		hashWriteUint64(h, layout.ArrayStride)
		hashWriteUint64(h, uint64(layout.StepMode))
		for _, attr := range layout.Attributes {
			hashWriteUint64(h, uint64(attr.ShaderLocation))
			hashWriteUint64(h, uint64(attr.Format))
			hashWriteUint64(h, attr.Offset)
		}
	}
	for _, d := range prog.Bindings {
		hashWriteUint64(h, uint64(d.Group))
		hashWriteUint64(h, uint64(d.Binding))
		hashWriteUint64(h, uint64(d.Kind))
	}
	return h.Sum64()
}

func hashWriteString(h hash.Hash64, s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0})
}

func hashWriteUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}
