package learngpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex buffer layout constants. Offsets and strides are part of the
// contract with the WGSL sources: the host-side buffer layout must match the
// @location declarations byte-for-byte.
const (
	// ColorVertexStride is the byte stride of one ColorVertex.
	ColorVertexStride = 24

	// ColorVertexColorOffset is the byte offset of the color attribute.
	ColorVertexColorOffset = 12

	// TexturedVertexStride is the byte stride of one TexturedVertex.
	TexturedVertexStride = 20

	// TexturedVertexUVOffset is the byte offset of the texture coordinates.
	TexturedVertexUVOffset = 12
)

// ColorVertex is the vertex record of the VertexColor program.
// Field order and offsets match the WGSL VertexInput struct:
// position at @location(0), color at @location(1).
type ColorVertex struct {
	Position Vec3
	Color    Vec3
}

// TexturedVertex is the vertex record of the Textured program.
// Field order and offsets match the WGSL VertexInput struct:
// position at @location(0), tex_coords at @location(1).
type TexturedVertex struct {
	Position Vec3
	UV       Vec2
}

// VertexAttribute describes one vertex attribute within a buffer.
type VertexAttribute struct {
	// ShaderLocation is the @location index in the WGSL source.
	ShaderLocation uint32

	// Format is the attribute data format.
	Format gputypes.VertexFormat

	// Offset is the byte offset from the start of the vertex.
	Offset uint64
}

// VertexBufferLayout describes a vertex buffer layout.
type VertexBufferLayout struct {
	// ArrayStride is the byte stride between consecutive vertices.
	ArrayStride uint64

	// StepMode is the input rate (per vertex or per instance).
	StepMode gputypes.VertexStepMode

	// Attributes describes the vertex attributes in this buffer.
	Attributes []VertexAttribute
}

// ColorVertexLayout returns the buffer layout of []ColorVertex data.
func ColorVertexLayout() VertexBufferLayout {
	return VertexBufferLayout{
		ArrayStride: ColorVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []VertexAttribute{
			{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
			{ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x3, Offset: ColorVertexColorOffset},
		},
	}
}

// TexturedVertexLayout returns the buffer layout of []TexturedVertex data.
func TexturedVertexLayout() VertexBufferLayout {
	return VertexBufferLayout{
		ArrayStride: TexturedVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []VertexAttribute{
			{ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Offset: 0},
			{ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x2, Offset: TexturedVertexUVOffset},
		},
	}
}

// appendFloat32 appends one little-endian float32 to buf.
// Vertex data is uploaded to the GPU little-endian regardless of host order.
func appendFloat32(buf []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
}

// MarshalColorVertices serializes vertices into a byte buffer laid out
// exactly as ColorVertexLayout declares, ready for GPU upload.
func MarshalColorVertices(vertices []ColorVertex) []byte {
	buf := make([]byte, 0, len(vertices)*ColorVertexStride)
	for _, v := range vertices {
		buf = appendFloat32(buf, v.Position.X)
		buf = appendFloat32(buf, v.Position.Y)
		buf = appendFloat32(buf, v.Position.Z)
		buf = appendFloat32(buf, v.Color.X)
		buf = appendFloat32(buf, v.Color.Y)
		buf = appendFloat32(buf, v.Color.Z)
	}
	return buf
}

// MarshalTexturedVertices serializes vertices into a byte buffer laid out
// exactly as TexturedVertexLayout declares, ready for GPU upload.
func MarshalTexturedVertices(vertices []TexturedVertex) []byte {
	buf := make([]byte, 0, len(vertices)*TexturedVertexStride)
	for _, v := range vertices {
		buf = appendFloat32(buf, v.Position.X)
		buf = appendFloat32(buf, v.Position.Y)
		buf = appendFloat32(buf, v.Position.Z)
		buf = appendFloat32(buf, v.UV.X)
		buf = appendFloat32(buf, v.UV.Y)
	}
	return buf
}
