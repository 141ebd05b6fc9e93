package learngpu

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Components are float32 because the
// fragment stages produce vec4<f32> values; no premultiplication is applied.
type RGBA struct {
	R, G, B, A float32
}

// Canonical colors of the shader programs.
var (
	// SolidColor is the constant output of the Procedural fragment stage.
	SolidColor = RGBA{R: 0.3, G: 0.2, B: 0.1, A: 1.0}

	// ClearColor is the background the tutorial host clears to before draws.
	ClearColor = RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

	// Transparent is fully transparent black.
	Transparent = RGBA{}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Vec4 returns the color as a fragment-output vector (R, G, B, A).
func (c RGBA) Vec4() Vec4 {
	return Vec4{X: c.R, Y: c.G, Z: c.B, W: c.A}
}

// ColorFromVec4 interprets a fragment-output vector as a color.
func ColorFromVec4(v Vec4) RGBA {
	return RGBA{R: v.X, G: v.Y, B: v.Z, A: v.W}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// color.Color returns premultiplied values; undo for shader math.
	return RGBA{
		R: float32(r) / float32(a),
		G: float32(g) / float32(a),
		B: float32(b) / float32(a),
		A: float32(a) / 65535,
	}
}

// clamp255 clamps a value to the [0, 255] range.
func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
