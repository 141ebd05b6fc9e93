package soft

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/learngpu"
	"github.com/gogpu/learngpu/backend"
	"github.com/gogpu/learngpu/render"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := New()
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendSoft) {
		t.Fatal("soft backend should register itself on import")
	}
	b := backend.Get(backend.BackendSoft)
	if b == nil || b.Name() != backend.BackendSoft {
		t.Errorf("Get(soft) = %v", b)
	}
}

func TestRenderFrameNotInitialized(t *testing.T) {
	b := New()
	target := render.NewPixmapTarget(8, 8)
	err := b.RenderFrame(target, backend.NewFrame())
	if !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("error = %v, want ErrNotInitialized", err)
	}
}

func TestRenderFrameThroughTargetInterface(t *testing.T) {
	b := newTestBackend(t)
	pixmap := render.NewPixmapTarget(16, 16)
	var target render.Target = pixmap

	if err := b.RenderFrame(target, backend.NewFrame().AddProcedural(3)); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	want := color.RGBA{R: 77, G: 51, B: 26, A: 255}
	if got := pixmap.Image().RGBAAt(8, 8); got != want {
		t.Errorf("interior pixel = %+v, want %+v", got, want)
	}
}

func TestRenderFrameGPUOnlyTarget(t *testing.T) {
	b := newTestBackend(t)
	target := render.NewTextureTarget(8, 8, gputypes.TextureFormatRGBA8Unorm, nil)

	err := b.RenderFrame(target, backend.NewFrame())
	if !errors.Is(err, backend.ErrNoCPUPixels) {
		t.Errorf("error = %v, want ErrNoCPUPixels", err)
	}
}

func TestInitIdempotent(t *testing.T) {
	b := newTestBackend(t)
	if err := b.Init(); err != nil {
		t.Errorf("second Init: %v", err)
	}
}

func TestRenderFrameClearOnly(t *testing.T) {
	b := newTestBackend(t)
	target := render.NewPixmapTarget(16, 16)

	if err := b.RenderFrame(target, backend.NewFrame()); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	// Clear color (0.1, 0.2, 0.3, 1.0) quantized to RGBA8.
	want := color.RGBA{R: 26, G: 51, B: 77, A: 255}
	got := target.Image().RGBAAt(8, 8)
	if got != want {
		t.Errorf("cleared pixel = %+v, want %+v", got, want)
	}
}

func TestRenderFrameProcedural(t *testing.T) {
	b := newTestBackend(t)
	target := render.NewPixmapTarget(64, 64)

	frame := backend.NewFrame().AddProcedural(3)
	if err := b.RenderFrame(target, frame); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	// Solid color (0.3, 0.2, 0.1, 1.0) at the triangle interior.
	want := color.RGBA{R: 77, G: 51, B: 26, A: 255}
	if got := target.Image().RGBAAt(32, 32); got != want {
		t.Errorf("interior pixel = %+v, want %+v", got, want)
	}

	// Corners keep the clear color.
	clear := color.RGBA{R: 26, G: 51, B: 77, A: 255}
	if got := target.Image().RGBAAt(0, 0); got != clear {
		t.Errorf("corner pixel = %+v, want clear %+v", got, clear)
	}
}

func TestRenderFrameTextured(t *testing.T) {
	b := newTestBackend(t)
	target := render.NewPixmapTarget(32, 32)

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	quad := []learngpu.TexturedVertex{
		{Position: learngpu.Vec3{X: -1, Y: -1}, UV: learngpu.Vec2{X: 0, Y: 1}},
		{Position: learngpu.Vec3{X: 1, Y: -1}, UV: learngpu.Vec2{X: 1, Y: 1}},
		{Position: learngpu.Vec3{X: 1, Y: 1}, UV: learngpu.Vec2{X: 1, Y: 0}},
		{Position: learngpu.Vec3{X: -1, Y: -1}, UV: learngpu.Vec2{X: 0, Y: 1}},
		{Position: learngpu.Vec3{X: 1, Y: 1}, UV: learngpu.Vec2{X: 1, Y: 0}},
		{Position: learngpu.Vec3{X: -1, Y: 1}, UV: learngpu.Vec2{X: 0, Y: 0}},
	}

	frame := backend.NewFrame().AddTexturedTriangles(quad, img)
	if err := b.RenderFrame(target, frame); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	want := color.RGBA{R: 255, A: 255}
	for _, p := range [][2]int{{0, 0}, {16, 16}, {31, 31}} {
		if got := target.Image().RGBAAt(p[0], p[1]); got != want {
			t.Errorf("pixel %v = %+v, want solid red", p, got)
		}
	}

	// Second frame reuses the cached texture conversion.
	if err := b.RenderFrame(target, frame); err != nil {
		t.Fatalf("second RenderFrame: %v", err)
	}
}

func TestRenderFrameUnknownProgram(t *testing.T) {
	b := newTestBackend(t)
	target := render.NewPixmapTarget(8, 8)

	frame := backend.NewFrame()
	frame.Draws = append(frame.Draws, backend.Draw{Program: "bogus"})

	err := b.RenderFrame(target, frame)
	if !errors.Is(err, backend.ErrUnknownProgram) {
		t.Errorf("error = %v, want ErrUnknownProgram", err)
	}
}

func TestRenderFrameDrawOrder(t *testing.T) {
	b := newTestBackend(t)
	target := render.NewPixmapTarget(16, 16)

	full := func(c learngpu.Vec3) []learngpu.ColorVertex {
		v := func(x, y float32) learngpu.ColorVertex {
			return learngpu.ColorVertex{Position: learngpu.Vec3{X: x, Y: y}, Color: c}
		}
		return []learngpu.ColorVertex{
			v(-1, -1), v(1, -1), v(1, 1),
			v(-1, -1), v(1, 1), v(-1, 1),
		}
	}

	// The later green quad must overwrite the earlier red one.
	frame := backend.NewFrame().
		AddColorTriangles(full(learngpu.Vec3{X: 1})).
		AddColorTriangles(full(learngpu.Vec3{Y: 1}))

	if err := b.RenderFrame(target, frame); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	want := color.RGBA{G: 255, A: 255}
	if got := target.Image().RGBAAt(8, 8); got != want {
		t.Errorf("pixel = %+v, want green from the last draw", got)
	}
}
