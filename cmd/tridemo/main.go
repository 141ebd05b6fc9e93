// Command tridemo renders the learngpu shader programs to PNG files.
//
// It can render a single program or all three, through either the GPU
// backend or the CPU reference backend:
//
//	tridemo -program procedural -output triangle.png
//	tridemo -program all -backend soft
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/learngpu"
	"github.com/gogpu/learngpu/backend"
	_ "github.com/gogpu/learngpu/backend/soft"
	_ "github.com/gogpu/learngpu/backend/wgpu"
	"github.com/gogpu/learngpu/render"
	"github.com/gogpu/learngpu/softpipe"
)

func main() {
	var (
		program     = flag.String("program", "all", "program to render: procedural, vertex-color, textured, or all")
		width       = flag.Int("width", 800, "image width")
		height      = flag.Int("height", 600, "image height")
		output      = flag.String("output", "", "output file (single program only; default <program>.png)")
		backendName = flag.String("backend", "", "backend to use: wgpu, soft (default: best available)")
	)
	flag.Parse()

	b, err := selectBackend(*backendName)
	if err != nil {
		log.Fatalf("Failed to select backend: %v", err)
	}
	defer b.Close()

	names := []string{*program}
	if *program == "all" {
		if *output != "" {
			log.Fatal("-output requires a single -program")
		}
		names = []string{
			learngpu.ProgramProcedural,
			learngpu.ProgramVertexColor,
			learngpu.ProgramTextured,
		}
	}

	for _, name := range names {
		path := *output
		if path == "" {
			path = name + ".png"
		}
		if err := renderProgram(b, name, *width, *height, path); err != nil {
			log.Fatalf("Failed to render %s: %v", name, err)
		}
		log.Printf("Rendered %s to %s (%dx%d) via %s backend\n",
			name, path, *width, *height, b.Name())
	}
}

func selectBackend(name string) (backend.RenderBackend, error) {
	if name == "" {
		return backend.InitDefault()
	}
	b := backend.Get(name)
	if b == nil {
		return nil, fmt.Errorf("unknown backend %q (available: %s)",
			name, strings.Join(backend.Available(), ", "))
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}

func renderProgram(b backend.RenderBackend, name string, width, height int, path string) error {
	frame, err := buildFrame(name)
	if err != nil {
		return err
	}

	target := render.NewPixmapTarget(width, height)
	if err := b.RenderFrame(target, frame); err != nil {
		return err
	}
	// Backends render in linear color; encode for display on the way
	// out, the way an Rgba8UnormSrgb surface would.
	return savePNG(softpipe.EncodeImageSRGB(target.Image()), path)
}

func buildFrame(name string) (*backend.Frame, error) {
	switch name {
	case learngpu.ProgramProcedural:
		return backend.NewFrame().AddProcedural(3), nil

	case learngpu.ProgramVertexColor:
		vertices := []learngpu.ColorVertex{
			{Position: learngpu.Vec3{X: 0.5, Y: -0.5}, Color: learngpu.Vec3{X: 1}},
			{Position: learngpu.Vec3{X: 0, Y: 0.5}, Color: learngpu.Vec3{Y: 1}},
			{Position: learngpu.Vec3{X: -0.5, Y: -0.5}, Color: learngpu.Vec3{Z: 1}},
		}
		return backend.NewFrame().AddColorTriangles(vertices), nil

	case learngpu.ProgramTextured:
		quad := []learngpu.TexturedVertex{
			{Position: learngpu.Vec3{X: -0.5, Y: -0.5}, UV: learngpu.Vec2{X: 0, Y: 1}},
			{Position: learngpu.Vec3{X: 0.5, Y: -0.5}, UV: learngpu.Vec2{X: 1, Y: 1}},
			{Position: learngpu.Vec3{X: 0.5, Y: 0.5}, UV: learngpu.Vec2{X: 1, Y: 0}},
			{Position: learngpu.Vec3{X: -0.5, Y: -0.5}, UV: learngpu.Vec2{X: 0, Y: 1}},
			{Position: learngpu.Vec3{X: 0.5, Y: 0.5}, UV: learngpu.Vec2{X: 1, Y: 0}},
			{Position: learngpu.Vec3{X: -0.5, Y: 0.5}, UV: learngpu.Vec2{X: 0, Y: 0}},
		}
		return backend.NewFrame().AddTexturedTriangles(quad, checkerImage(256, 32)), nil

	default:
		return nil, fmt.Errorf("unknown program %q", name)
	}
}

// checkerImage builds a checkerboard test texture.
func checkerImage(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	dark := color.NRGBA{R: 40, G: 40, B: 60, A: 255}
	light := color.NRGBA{R: 230, G: 220, B: 180, A: 255}
	for y := range size {
		for x := range size {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func savePNG(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}
