// Package backend defines the rendering backend interface and the
// registry that selects between the software reference backend and
// the GPU backend.
package backend

import (
	"errors"

	"github.com/gogpu/learngpu/render"
)

// Backend names used with Register and Get.
const (
	// BackendWGPU is the GPU backend built on the wgpu HAL.
	BackendWGPU = "wgpu"

	// BackendSoft is the CPU reference backend.
	BackendSoft = "soft"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrUnknownProgram is returned when a draw names a program the
	// backend does not recognize.
	ErrUnknownProgram = errors.New("backend: unknown program")

	// ErrNoCPUPixels is returned when a backend that resolves frames on
	// the CPU is given a target without CPU-accessible pixel storage.
	ErrNoCPUPixels = errors.New("backend: target has no CPU-accessible pixels")
)

// RenderBackend executes frames against a render target. A frame is a
// clear followed by zero or more draws, each selecting one of the
// shader programs.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "soft", "wgpu").
	Name() string

	// Init initializes the backend.
	// This should be called before any rendering operations.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// RenderFrame clears the target and executes the frame's draws
	// in order. Backends that resolve frames on the CPU require a
	// target with CPU-accessible pixels and return ErrNoCPUPixels
	// otherwise.
	RenderFrame(target render.Target, frame *Frame) error
}
