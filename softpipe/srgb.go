package softpipe

import (
	"image"
	"math"

	"github.com/gogpu/learngpu"
)

// The fragment stages work in linear color. Display surfaces in the
// tutorial hosts use sRGB-encoded 8-bit formats, so values are encoded
// on the way out and decoded on the way in.

// linearToSRGB applies the sRGB transfer function to one channel.
func linearToSRGB(v float32) float32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
}

// srgbToLinear inverts the sRGB transfer function for one channel.
func srgbToLinear(v float32) float32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow(float64(v+0.055)/1.055, 2.4))
}

// ToImageSRGB converts the framebuffer to an image.RGBA with sRGB
// encoding applied to the color channels, the byte values an
// Rgba8UnormSrgb surface would hold. Alpha stays linear.
func (f *Framebuffer) ToImageSRGB() *image.RGBA {
	return encodeSRGBPix(f.data, f.width, f.height)
}

// EncodeImageSRGB returns a copy of src with the sRGB transfer
// function applied to the color channels. Use it when exporting
// linear render output for display. Alpha stays linear.
func EncodeImageSRGB(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		encodeSRGBRow(img.Pix[y*img.Stride:(y+1)*img.Stride], row[:b.Dx()*4])
	}
	return img
}

func encodeSRGBPix(pix []uint8, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	encodeSRGBRow(img.Pix, pix)
	return img
}

func encodeSRGBRow(dst, src []uint8) {
	for i := 0; i < len(src); i += 4 {
		dst[i+0] = quantize(linearToSRGB(float32(src[i+0]) / 255))
		dst[i+1] = quantize(linearToSRGB(float32(src[i+1]) / 255))
		dst[i+2] = quantize(linearToSRGB(float32(src[i+2]) / 255))
		dst[i+3] = src[i+3]
	}
}

// EncodeSRGB applies the sRGB transfer function to the color channels.
// Alpha stays linear.
func EncodeSRGB(c learngpu.RGBA) learngpu.RGBA {
	return learngpu.RGBA{
		R: linearToSRGB(c.R),
		G: linearToSRGB(c.G),
		B: linearToSRGB(c.B),
		A: c.A,
	}
}

// DecodeSRGB converts an sRGB-encoded color to linear for shader math.
func DecodeSRGB(c learngpu.RGBA) learngpu.RGBA {
	return learngpu.RGBA{
		R: srgbToLinear(c.R),
		G: srgbToLinear(c.G),
		B: srgbToLinear(c.B),
		A: c.A,
	}
}
