package softpipe

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/learngpu"
)

// Texture is a 2D RGBA texture sampled by the textured program's
// fragment stage. Texel data is stored non-premultiplied, matching
// what textureSample returns on the GPU.
type Texture struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per texel
}

// NewTexture creates an uninitialized texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Texture{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// TextureFromImage creates a texture from any image. Non-RGBA source
// images are converted through a scaling-free draw pass.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := NewTexture(bounds.Dx(), bounds.Dy())

	dst := &image.RGBA{
		Pix:    t.data,
		Stride: t.width * 4,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return t
}

// SolidTexture creates a 1x1 texture holding a single color. Sampling
// it returns that color for every coordinate, which makes it the
// reference fixture for the texture passthrough property.
func SolidTexture(c learngpu.RGBA) *Texture {
	t := NewTexture(1, 1)
	t.SetTexel(0, 0, c)
	return t
}

// Width returns the texture width in texels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the texture height in texels.
func (t *Texture) Height() int {
	return t.height
}

// SetTexel sets a single texel. Out-of-range coordinates are ignored.
func (t *Texture) SetTexel(x, y int, c learngpu.RGBA) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	i := (y*t.width + x) * 4
	t.data[i+0] = quantize(c.R)
	t.data[i+1] = quantize(c.G)
	t.data[i+2] = quantize(c.B)
	t.data[i+3] = quantize(c.A)
}

// Texel returns the texel at integer coordinates without filtering.
// Coordinates outside the texture are clamped to the edge.
func (t *Texture) Texel(x, y int) learngpu.RGBA {
	x = clampInt(x, 0, t.width-1)
	y = clampInt(y, 0, t.height-1)
	i := (y*t.width + x) * 4
	return learngpu.RGBA{
		R: float32(t.data[i+0]) / 255,
		G: float32(t.data[i+1]) / 255,
		B: float32(t.data[i+2]) / 255,
		A: float32(t.data[i+3]) / 255,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
