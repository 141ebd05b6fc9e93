package learngpu

import (
	_ "embed"
)

// Embedded WGSL shader sources.
// These are compiled at build time using go:embed directives.

//go:embed shaders/solid.wgsl
var solidShaderSource string

//go:embed shaders/vertex_color.wgsl
var vertexColorShaderSource string

//go:embed shaders/textured.wgsl
var texturedShaderSource string

// Entry point names shared by all three programs.
const (
	// VertexEntryPoint is the vertex stage entry function name.
	VertexEntryPoint = "vs_main"

	// FragmentEntryPoint is the fragment stage entry function name.
	FragmentEntryPoint = "fs_main"
)

// Binding slots of the Textured program. These numbers are part of the host
// contract: resource binding calls must target exactly these slots.
const (
	// TextureBindGroup is the bind group holding texture and sampler.
	TextureBindGroup = 0

	// TextureBinding is the texture_2d<f32> slot within the group.
	TextureBinding = 0

	// SamplerBinding is the sampler slot within the group.
	SamplerBinding = 1
)

// BindingKind identifies the resource type of a shader binding.
type BindingKind int

const (
	// BindingTexture2D is a sampled 2D float texture.
	BindingTexture2D BindingKind = iota

	// BindingSampler is a filtering sampler.
	BindingSampler
)

// String returns the WGSL-facing name of the binding kind.
func (k BindingKind) String() string {
	switch k {
	case BindingTexture2D:
		return "texture_2d<f32>"
	case BindingSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// BindingDecl declares one externally bound resource slot of a program.
type BindingDecl struct {
	// Group is the bind group index.
	Group uint32

	// Binding is the slot index within the group.
	Binding uint32

	// Kind is the resource type expected at this slot.
	Kind BindingKind
}

// Program describes one compiled unit: a vertex + fragment stage pair, its
// vertex buffer layout, and its resource binding contract. Programs are
// independent; the host selects one per draw call.
type Program struct {
	// Name is the program identifier (used for labels and logging).
	Name string

	// Source is the complete WGSL source text of both stages.
	Source string

	// VertexEntry is the vertex stage entry point function name.
	VertexEntry string

	// FragmentEntry is the fragment stage entry point function name.
	FragmentEntry string

	// VertexBuffers describes the vertex buffer layouts consumed by the
	// vertex stage. Empty for programs driven by the vertex index alone.
	VertexBuffers []VertexBufferLayout

	// Bindings declares the externally bound resources the fragment stage
	// reads. Empty for programs without resource bindings.
	Bindings []BindingDecl
}

// Program names.
const (
	// ProgramProcedural identifies the index-driven solid triangle program.
	ProgramProcedural = "procedural"

	// ProgramVertexColor identifies the attribute-passthrough program.
	ProgramVertexColor = "vertex-color"

	// ProgramTextured identifies the texture-sampling program.
	ProgramTextured = "textured"
)

// Procedural returns the procedural-triangle program: the vertex stage
// computes clip-space positions from the built-in vertex index and the
// fragment stage emits SolidColor. No vertex buffer, no bindings.
func Procedural() Program {
	return Program{
		Name:          ProgramProcedural,
		Source:        solidShaderSource,
		VertexEntry:   VertexEntryPoint,
		FragmentEntry: FragmentEntryPoint,
	}
}

// VertexColor returns the attribute-passthrough program: {position, color}
// vertex records, color interpolated across the triangle and emitted with
// alpha 1.
func VertexColor() Program {
	return Program{
		Name:          ProgramVertexColor,
		Source:        vertexColorShaderSource,
		VertexEntry:   VertexEntryPoint,
		FragmentEntry: FragmentEntryPoint,
		VertexBuffers: []VertexBufferLayout{ColorVertexLayout()},
	}
}

// Textured returns the texture-sampling program: {position, uv} vertex
// records, a texture at (group 0, binding 0) and a sampler at
// (group 0, binding 1).
func Textured() Program {
	return Program{
		Name:          ProgramTextured,
		Source:        texturedShaderSource,
		VertexEntry:   VertexEntryPoint,
		FragmentEntry: FragmentEntryPoint,
		VertexBuffers: []VertexBufferLayout{TexturedVertexLayout()},
		Bindings: []BindingDecl{
			{Group: TextureBindGroup, Binding: TextureBinding, Kind: BindingTexture2D},
			{Group: TextureBindGroup, Binding: SamplerBinding, Kind: BindingSampler},
		},
	}
}

// Programs returns the full catalog in a stable order.
func Programs() []Program {
	return []Program{Procedural(), VertexColor(), Textured()}
}

// ProgramByName returns the named program and true, or a zero Program and
// false if the name is unknown.
func ProgramByName(name string) (Program, bool) {
	for _, p := range Programs() {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}

// ProceduralPosition computes the clip-space position the procedural vertex
// stage produces for one vertex index. It is the closed-form function from
// the WGSL source, not a lookup table:
//
//	x = (1 - signed(i)) * 0.5
//	y = (signed(i & 1) * 2 - 1) * 0.5
//
// Indices 0, 1, 2 yield the canonical triangle (0.5, -0.5), (0, 0.5),
// (-0.5, -0.5). Behavior for indices outside a 3-vertex draw is defined by
// the same formula but is the host's responsibility to avoid.
func ProceduralPosition(index uint32) Vec4 {
	x := float32(1-int32(index)) * 0.5
	y := float32(int32(index&1)*2-1) * 0.5
	return Vec4{X: x, Y: y, Z: 0, W: 1}
}
