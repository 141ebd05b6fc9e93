// Package softpipe implements a CPU reference rasterization pipeline
// for the learngpu shader programs. It mirrors the semantics of the
// GPU pipelines exactly: the same vertex and fragment stages, the same
// viewport mapping, and the same pixel-center sample positions. It is
// the backend of last resort and the ground truth the GPU path is
// tested against.
package softpipe

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/learngpu"
)

// Framebuffer is a rectangular RGBA8 color attachment.
type Framebuffer struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Framebuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the framebuffer.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height of the framebuffer.
func (f *Framebuffer) Height() int {
	return f.height
}

// Data returns the raw pixel data (RGBA format).
func (f *Framebuffer) Data() []uint8 {
	return f.data
}

// SetPixel sets the color of a single pixel. Out-of-range coordinates
// are ignored.
func (f *Framebuffer) SetPixel(x, y int, c learngpu.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 4
	f.data[i+0] = quantize(c.R)
	f.data[i+1] = quantize(c.G)
	f.data[i+2] = quantize(c.B)
	f.data[i+3] = quantize(c.A)
}

// GetPixel returns the color of a single pixel.
func (f *Framebuffer) GetPixel(x, y int) learngpu.RGBA {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return learngpu.Transparent
	}
	i := (y*f.width + x) * 4
	return learngpu.RGBA{
		R: float32(f.data[i+0]) / 255,
		G: float32(f.data[i+1]) / 255,
		B: float32(f.data[i+2]) / 255,
		A: float32(f.data[i+3]) / 255,
	}
}

// Clear fills the entire framebuffer with a color.
func (f *Framebuffer) Clear(c learngpu.RGBA) {
	r := quantize(c.R)
	g := quantize(c.G)
	b := quantize(c.B)
	a := quantize(c.A)

	for i := 0; i < len(f.data); i += 4 {
		f.data[i+0] = r
		f.data[i+1] = g
		f.data[i+2] = b
		f.data[i+3] = a
	}
}

// ToImage converts the framebuffer to an image.RGBA.
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.data)
	return img
}

// SavePNG saves the framebuffer contents to a PNG file.
func (f *Framebuffer) SavePNG(path string) error {
	fd, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = fd.Close()
	}()

	return png.Encode(fd, f.ToImage())
}

// At implements the image.Image interface.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
