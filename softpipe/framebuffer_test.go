package softpipe

import (
	"image"
	"testing"

	"github.com/gogpu/learngpu"
)

func TestNewFramebuffer(t *testing.T) {
	fb := NewFramebuffer(64, 32)
	if fb.Width() != 64 || fb.Height() != 32 {
		t.Errorf("dimensions = %dx%d, want 64x32", fb.Width(), fb.Height())
	}
	if len(fb.Data()) != 64*32*4 {
		t.Errorf("data length = %d, want %d", len(fb.Data()), 64*32*4)
	}
}

func TestNewFramebufferClampsDimensions(t *testing.T) {
	fb := NewFramebuffer(0, -5)
	if fb.Width() != 1 || fb.Height() != 1 {
		t.Errorf("dimensions = %dx%d, want 1x1", fb.Width(), fb.Height())
	}
}

func TestFramebufferSetGetPixel(t *testing.T) {
	fb := NewFramebuffer(4, 4)

	c := learngpu.RGBA{R: 1, G: 0.5, B: 0, A: 1}
	fb.SetPixel(2, 1, c)

	got := fb.GetPixel(2, 1)
	if got.R != 1 || got.B != 0 || got.A != 1 {
		t.Errorf("GetPixel = %+v", got)
	}
	// 0.5 quantizes to 128/255.
	if got.G < 0.49 || got.G > 0.51 {
		t.Errorf("G = %v, want ~0.5", got.G)
	}

	// Out of range writes are ignored, reads return transparent.
	fb.SetPixel(-1, 0, c)
	fb.SetPixel(0, 4, c)
	if fb.GetPixel(-1, 0) != learngpu.Transparent {
		t.Error("out-of-range GetPixel should be transparent")
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(learngpu.ClearColor)

	want := quantizeColor(learngpu.ClearColor)
	for y := range 8 {
		for x := range 8 {
			if got := fb.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestFramebufferToImage(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(1, 1, learngpu.RGBA{R: 1, A: 1})

	img := fb.ToImage()
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	r, _, _, a := img.At(1, 1).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("At(1,1) = r=%#x a=%#x, want full red", r, a)
	}
}

func TestFramebufferImageInterface(t *testing.T) {
	var _ image.Image = NewFramebuffer(1, 1)
}

// quantizeColor round-trips a color through RGBA8 storage, the value a
// framebuffer read reports after a write.
func quantizeColor(c learngpu.RGBA) learngpu.RGBA {
	return learngpu.RGBA{
		R: float32(quantize(c.R)) / 255,
		G: float32(quantize(c.G)) / 255,
		B: float32(quantize(c.B)) / 255,
		A: float32(quantize(c.A)) / 255,
	}
}
