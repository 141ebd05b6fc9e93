package softpipe

import (
	"math"

	"github.com/gogpu/learngpu"
)

// screenVertex is a vertex after the viewport transform, positioned in
// framebuffer coordinates with y growing downward.
type screenVertex struct {
	x, y float32
	vary learngpu.Vec4
}

// toScreen applies the perspective divide and viewport transform.
// Clip x maps [-1, 1] to [0, width] and clip y maps [-1, 1] to
// [height, 0], so NDC +y is up on screen.
func toScreen(o vertexOutput, width, height int) screenVertex {
	inv := float32(1)
	if o.clip.W != 0 {
		inv = 1 / o.clip.W
	}
	ndcX := o.clip.X * inv
	ndcY := o.clip.Y * inv
	return screenVertex{
		x:    (ndcX + 1) * 0.5 * float32(width),
		y:    (1 - ndcY) * 0.5 * float32(height),
		vary: o.vary,
	}
}

// edge returns twice the signed area of the triangle (a, b, p). The
// sign tells which side of edge ab the point p falls on.
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// rasterize shades every pixel whose center lies inside the triangle.
// Both windings are accepted. Fragment rows are split into bands and
// shaded on the pool; bands cover disjoint rows so no two tasks touch
// the same pixel.
func rasterize(fb *Framebuffer, v0, v1, v2 screenVertex, frag fragmentFunc, run func([]func())) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := int(math.Floor(float64(min3(v0.x, v1.x, v2.x))))
	maxX := int(math.Ceil(float64(max3(v0.x, v1.x, v2.x))))
	minY := int(math.Floor(float64(min3(v0.y, v1.y, v2.y))))
	maxY := int(math.Ceil(float64(max3(v0.y, v1.y, v2.y))))

	minX = clampInt(minX, 0, fb.width-1)
	maxX = clampInt(maxX, 0, fb.width-1)
	minY = clampInt(minY, 0, fb.height-1)
	maxY = clampInt(maxY, 0, fb.height-1)
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1 / area

	shadeRow := func(y int) {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			w0 := edge(v1.x, v1.y, v2.x, v2.y, px, py)
			w1 := edge(v2.x, v2.y, v0.x, v0.y, px, py)
			w2 := edge(v0.x, v0.y, v1.x, v1.y, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			b0 := w0 * invArea
			b1 := w1 * invArea
			b2 := w2 * invArea
			vary := learngpu.Vec4{
				X: b0*v0.vary.X + b1*v1.vary.X + b2*v2.vary.X,
				Y: b0*v0.vary.Y + b1*v1.vary.Y + b2*v2.vary.Y,
				Z: b0*v0.vary.Z + b1*v1.vary.Z + b2*v2.vary.Z,
				W: b0*v0.vary.W + b1*v1.vary.W + b2*v2.vary.W,
			}
			fb.SetPixel(x, y, frag(vary))
		}
	}

	if run == nil {
		for y := minY; y <= maxY; y++ {
			shadeRow(y)
		}
		return
	}

	const bandRows = 16
	tasks := make([]func(), 0, (maxY-minY)/bandRows+1)
	for y0 := minY; y0 <= maxY; y0 += bandRows {
		y1 := y0 + bandRows - 1
		if y1 > maxY {
			y1 = maxY
		}
		start, end := y0, y1
		tasks = append(tasks, func() {
			for y := start; y <= end; y++ {
				shadeRow(y)
			}
		})
	}
	run(tasks)
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
