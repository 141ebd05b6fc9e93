package softpipe

import (
	"github.com/gogpu/learngpu"
)

// vertexOutput is what a vertex stage hands to the rasterizer: a clip
// space position plus up to four interpolated components. The
// procedural program carries no varyings, vertex-color packs its color
// into xyz, textured packs uv into xy.
type vertexOutput struct {
	clip learngpu.Vec4
	vary learngpu.Vec4
}

// fragmentFunc shades one covered sample from its interpolated
// varyings.
type fragmentFunc func(vary learngpu.Vec4) learngpu.RGBA

// proceduralVertex derives a clip position from the vertex index
// alone, with no vertex buffer bound.
func proceduralVertex(index uint32) vertexOutput {
	return vertexOutput{clip: learngpu.ProceduralPosition(index)}
}

// proceduralFragment ignores its inputs and returns the fixed brown.
func proceduralFragment(_ learngpu.Vec4) learngpu.RGBA {
	return learngpu.SolidColor
}

// colorVertex lifts the model position to clip space and forwards the
// per-vertex color unchanged.
func colorVertex(v learngpu.ColorVertex) vertexOutput {
	return vertexOutput{
		clip: v.Position.Extend(1),
		vary: v.Color.Extend(0),
	}
}

// colorFragment emits the interpolated color with full opacity.
func colorFragment(vary learngpu.Vec4) learngpu.RGBA {
	return learngpu.RGBA{R: vary.X, G: vary.Y, B: vary.Z, A: 1}
}

// texturedVertex lifts the model position to clip space and forwards
// the texture coordinates.
func texturedVertex(v learngpu.TexturedVertex) vertexOutput {
	return vertexOutput{
		clip: v.Position.Extend(1),
		vary: learngpu.Vec4{X: v.UV.X, Y: v.UV.Y},
	}
}

// texturedFragment samples the bound texture at the interpolated uv.
func texturedFragment(tex *Texture, smp Sampler) fragmentFunc {
	return func(vary learngpu.Vec4) learngpu.RGBA {
		return smp.Sample(tex, vary.X, vary.Y)
	}
}
