package softpipe

import (
	"math"

	"github.com/gogpu/learngpu"
)

// FilterMode selects how a sampler interpolates between texels.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// String returns the WGSL name of the filter mode.
func (m FilterMode) String() string {
	switch m {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// AddressMode selects how a sampler resolves coordinates outside [0, 1].
type AddressMode int

const (
	AddressClampToEdge AddressMode = iota
	AddressRepeat
	AddressMirrorRepeat
)

// String returns the WGSL name of the address mode.
func (m AddressMode) String() string {
	switch m {
	case AddressClampToEdge:
		return "clamp-to-edge"
	case AddressRepeat:
		return "repeat"
	case AddressMirrorRepeat:
		return "mirror-repeat"
	default:
		return "unknown"
	}
}

// Sampler holds the filtering and addressing state bound alongside a
// texture. The zero value is a nearest clamp-to-edge sampler.
type Sampler struct {
	Filter   FilterMode
	AddressU AddressMode
	AddressV AddressMode
}

// Sample reads the texture at normalized coordinates (u, v) with this
// sampler's filter and address modes. The v axis points down, matching
// WGSL texture coordinates.
func (s Sampler) Sample(t *Texture, u, v float32) learngpu.RGBA {
	if t == nil {
		return learngpu.Transparent
	}

	switch s.Filter {
	case FilterLinear:
		return s.sampleLinear(t, u, v)
	default:
		return s.sampleNearest(t, u, v)
	}
}

func (s Sampler) sampleNearest(t *Texture, u, v float32) learngpu.RGBA {
	x := int(floorf(u * float32(t.width)))
	y := int(floorf(v * float32(t.height)))
	return t.Texel(s.wrapU(x, t.width), s.wrapV(y, t.height))
}

func (s Sampler) sampleLinear(t *Texture, u, v float32) learngpu.RGBA {
	// Texel centers sit at half-integer coordinates.
	fx := u*float32(t.width) - 0.5
	fy := v*float32(t.height) - 0.5

	x0 := int(floorf(fx))
	y0 := int(floorf(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.Texel(s.wrapU(x0, t.width), s.wrapV(y0, t.height))
	c10 := t.Texel(s.wrapU(x0+1, t.width), s.wrapV(y0, t.height))
	c01 := t.Texel(s.wrapU(x0, t.width), s.wrapV(y0+1, t.height))
	c11 := t.Texel(s.wrapU(x0+1, t.width), s.wrapV(y0+1, t.height))

	top := lerpColor(c00, c10, tx)
	bot := lerpColor(c01, c11, tx)
	return lerpColor(top, bot, ty)
}

func (s Sampler) wrapU(x, size int) int {
	return wrap(x, size, s.AddressU)
}

func (s Sampler) wrapV(y, size int) int {
	return wrap(y, size, s.AddressV)
}

func wrap(v, size int, mode AddressMode) int {
	switch mode {
	case AddressRepeat:
		v %= size
		if v < 0 {
			v += size
		}
		return v
	case AddressMirrorRepeat:
		period := 2 * size
		v %= period
		if v < 0 {
			v += period
		}
		if v >= size {
			v = period - 1 - v
		}
		return v
	default:
		return clampInt(v, 0, size-1)
	}
}

func lerpColor(a, b learngpu.RGBA, t float32) learngpu.RGBA {
	return learngpu.RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
