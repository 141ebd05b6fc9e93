// Package learngpu provides the beginner triangle shader programs for the
// GoGPU ecosystem: WGSL sources, typed pipeline descriptions, and a software
// reference pipeline that executes them on the CPU.
//
// # Overview
//
// Three standalone shader programs are shipped, each a vertex + fragment
// stage pair compiled and invoked by a host per draw call:
//
//   - Procedural: the vertex stage synthesizes a triangle from the built-in
//     vertex index alone (no vertex buffer); the fragment stage emits a
//     constant brown color.
//   - VertexColor: the vertex stage consumes {position, color} records and
//     forwards color as a varying; the fragment stage emits the interpolated
//     color.
//   - Textured: the vertex stage consumes {position, uv} records and forwards
//     the coordinates; the fragment stage samples a bound 2D texture with a
//     bound sampler.
//
// The programs never call each other and carry no state; every stage is a
// pure function re-evaluated per vertex or per covered pixel.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/learngpu"
//	    "github.com/gogpu/learngpu/softpipe"
//	)
//
//	fb := softpipe.NewFramebuffer(512, 512)
//	fb.Clear(learngpu.ClearColor)
//
//	p := softpipe.NewPipeline(0)
//	defer p.Close()
//	p.DrawProcedural(fb, 3)
//
//	fb.SavePNG("triangle.png")
//
// # Binding Contract
//
// The Textured program expects its resources in bind group 0: the 2D texture
// at binding 0 and the sampler at binding 1. Vertex buffer layouts (strides,
// attribute offsets, formats) are part of each Program descriptor and must
// match the host's buffer construction exactly; see ColorVertex and
// TexturedVertex for the Go-side records with matching memory layout.
//
// # Architecture
//
// The library is organized into:
//   - Root package: Program catalog, vertex records, vector/color math,
//     WGSL validation via naga
//   - softpipe: CPU reference pipeline (rasterizer, sampler, framebuffer)
//   - render: render target abstraction, host device integration
//   - backend, backend/soft, backend/wgpu: frame rendering backends
package learngpu

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
