package learngpu

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

// TestVertexStructSizes verifies the Go record layout matches the declared
// strides, which in turn match the WGSL attribute layout.
func TestVertexStructSizes(t *testing.T) {
	if s := unsafe.Sizeof(ColorVertex{}); s != ColorVertexStride {
		t.Errorf("sizeof(ColorVertex) = %d, want %d", s, ColorVertexStride)
	}
	if o := unsafe.Offsetof(ColorVertex{}.Color); o != ColorVertexColorOffset {
		t.Errorf("offsetof(ColorVertex.Color) = %d, want %d", o, ColorVertexColorOffset)
	}
	if s := unsafe.Sizeof(TexturedVertex{}); s != TexturedVertexStride {
		t.Errorf("sizeof(TexturedVertex) = %d, want %d", s, TexturedVertexStride)
	}
	if o := unsafe.Offsetof(TexturedVertex{}.UV); o != TexturedVertexUVOffset {
		t.Errorf("offsetof(TexturedVertex.UV) = %d, want %d", o, TexturedVertexUVOffset)
	}
}

// readFloat32 reads a little-endian float32 at byte offset off.
func readFloat32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestMarshalColorVertices(t *testing.T) {
	vertices := []ColorVertex{
		{Position: V3(0, 0.5, 0), Color: V3(1, 0, 0)},
		{Position: V3(-0.5, -0.5, 0), Color: V3(0, 1, 0)},
	}

	buf := MarshalColorVertices(vertices)
	if len(buf) != 2*ColorVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 2*ColorVertexStride)
	}

	// Second vertex, color.g at stride + colorOffset + 4.
	if got := readFloat32(buf, ColorVertexStride+ColorVertexColorOffset+4); got != 1 {
		t.Errorf("vertex[1].color.g = %v, want 1", got)
	}
	if got := readFloat32(buf, ColorVertexStride); got != -0.5 {
		t.Errorf("vertex[1].position.x = %v, want -0.5", got)
	}
}

func TestMarshalTexturedVertices(t *testing.T) {
	vertices := []TexturedVertex{
		{Position: V3(0.5, -0.5, 0), UV: V2(1, 1)},
	}

	buf := MarshalTexturedVertices(vertices)
	if len(buf) != TexturedVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), TexturedVertexStride)
	}
	if got := readFloat32(buf, TexturedVertexUVOffset); got != 1 {
		t.Errorf("uv.u = %v, want 1", got)
	}
	if got := readFloat32(buf, 0); got != 0.5 {
		t.Errorf("position.x = %v, want 0.5", got)
	}
}

func TestMarshalEmpty(t *testing.T) {
	if buf := MarshalColorVertices(nil); len(buf) != 0 {
		t.Errorf("MarshalColorVertices(nil) = %d bytes", len(buf))
	}
	if buf := MarshalTexturedVertices(nil); len(buf) != 0 {
		t.Errorf("MarshalTexturedVertices(nil) = %d bytes", len(buf))
	}
}
