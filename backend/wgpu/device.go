// Package wgpu provides the GPU rendering backend built on the wgpu
// HAL. It creates the device, compiles the three shader programs to
// SPIR-V modules, and builds the pipeline layouts. Frame output falls
// back to the CPU reference pipeline when no usable adapter is found.
package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/learngpu/render"
)

// GPUInfo describes the adapter selected at Init time.
type GPUInfo struct {
	// Name is the adapter name reported by the driver.
	Name string

	// DeviceType classifies the adapter (discrete, integrated, ...).
	DeviceType gputypes.DeviceType
}

// initGPU creates the HAL instance, selects an adapter, and opens the
// device. Discrete and integrated GPUs are preferred over software
// adapters.
func (b *Backend) initGPU() error {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.info = GPUInfo{
		Name:       selected.Info.Name,
		DeviceType: selected.Info.DeviceType,
	}
	return nil
}

// SetDeviceProvider switches the backend to a shared GPU device from
// an external provider (e.g., a host application). The provider's
// Device() and Queue() tokens must hold hal.Device and hal.Queue.
func (b *Backend) SetDeviceProvider(provider render.DeviceHandle) error {
	if provider == nil {
		return fmt.Errorf("wgpu: nil device provider")
	}
	device, ok := provider.Device().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider Device is not hal.Device")
	}
	queue, ok := provider.Queue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider Queue is not hal.Queue")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Destroy own resources if we created them.
	b.destroyPipelines()
	if !b.externalDevice && b.device != nil {
		b.device.Destroy()
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}

	b.device = device
	b.queue = queue
	b.externalDevice = true

	if b.pipelines == nil {
		b.pipelines = newPipelineCache()
	}
	if err := b.createPipelines(); err != nil {
		b.gpuReady = false
		return fmt.Errorf("wgpu: create pipelines with shared device: %w", err)
	}
	b.gpuReady = true
	return nil
}

// Info returns the selected adapter description. The zero value is
// returned before Init or when no GPU was found.
func (b *Backend) Info() GPUInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.info
}

// GPUReady reports whether a device was opened and the shader modules
// compiled. When false, frames render through the CPU fallback.
func (b *Backend) GPUReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gpuReady
}
