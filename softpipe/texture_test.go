package softpipe

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/learngpu"
)

func TestTextureFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	src.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	tex := TextureFromImage(src)
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", tex.Width(), tex.Height())
	}

	if got := tex.Texel(0, 0); got.R != 1 || got.G != 0 {
		t.Errorf("Texel(0,0) = %+v, want red", got)
	}
	if got := tex.Texel(1, 1); got.R != 1 || got.G != 1 || got.B != 1 {
		t.Errorf("Texel(1,1) = %+v, want white", got)
	}
}

func TestTextureFromImageNonZeroOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 12, 22))
	src.SetNRGBA(10, 20, color.NRGBA{R: 255, A: 255})

	tex := TextureFromImage(src)
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", tex.Width(), tex.Height())
	}
	if got := tex.Texel(0, 0); got.R != 1 {
		t.Errorf("Texel(0,0) = %+v, want red", got)
	}
}

func TestSolidTexture(t *testing.T) {
	c := learngpu.RGBA{R: 0.3, G: 0.2, B: 0.1, A: 1}
	tex := SolidTexture(c)

	if tex.Width() != 1 || tex.Height() != 1 {
		t.Fatalf("dimensions = %dx%d, want 1x1", tex.Width(), tex.Height())
	}
	want := quantizeColor(c)
	if got := tex.Texel(0, 0); got != want {
		t.Errorf("Texel(0,0) = %+v, want %+v", got, want)
	}
}

func TestTexelClampsCoordinates(t *testing.T) {
	tex := SolidTexture(learngpu.RGBA{R: 1, A: 1})
	if got := tex.Texel(-3, 7); got.R != 1 {
		t.Errorf("clamped Texel = %+v, want red", got)
	}
}
