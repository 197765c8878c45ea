// Command sftinfo renders a single triangle with a Rasterizer and writes
// the result to a PNG, printing a metrics report. It exists to exercise
// the public API from a binary; it is not part of the rasterizer core.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	sft "github.com/chinmaygarde/sft-sub000"
	"github.com/chinmaygarde/sft-sub000/gpubuf"
	"github.com/chinmaygarde/sft-sub000/internal/vecmath"
	"github.com/chinmaygarde/sft-sub000/texture"
)

func main() {
	out := flag.String("out", "triangle.png", "output PNG path")
	width := flag.Int("width", 256, "render width")
	height := flag.Int("height", 256, "render height")
	samples := flag.Int("samples", 4, "MSAA sample count (1, 2, 4, 8 or 16)")
	flag.Parse()

	if err := run(*out, *width, *height, *samples); err != nil {
		log.Fatal(err)
	}
}

func run(out string, width, height, samples int) error {
	r, err := sft.New(texture.Size{Width: width, Height: height}, samples)
	if err != nil {
		return fmt.Errorf("sftinfo: creating rasterizer: %w", err)
	}
	defer r.Close()

	r.Clear()

	pipeline := &sft.Pipeline{
		Shader:           &triangleShader{},
		Winding:          sft.WindingCounterClockwise,
		VertexDescriptor: sft.VertexDescriptor{Stride: 24},
		ColorDescriptor: sft.ColorAttachmentDescriptor{
			Blend: sft.BlendDescriptorForMode(sft.BlendModeSourceOver),
		},
	}

	resources := &sft.DispatchResources{Vertex: buildTriangle()}
	if err := r.Draw(pipeline, resources, 3, 0); err != nil {
		return fmt.Errorf("sftinfo: draw: %w", err)
	}
	r.Finish()

	if err := writePNG(r, out); err != nil {
		return err
	}

	printReport(r.GetMetrics().Snapshot())
	return nil
}

// buildTriangle packs one counter-clockwise triangle's (corners at ±0.8
// NDC) vertex records (position, color) into a vertex buffer.
func buildTriangle() gpubuf.BufferView {
	type vertex struct {
		x, y          float32
		r, g, b, a    float32
	}
	verts := []vertex{
		{x: -0.8, y: 0.8, r: 1, g: 0, b: 0, a: 1},
		{x: 0.8, y: 0.8, r: 0, g: 1, b: 0, a: 1},
		{x: 0.0, y: -0.8, r: 0, g: 0, b: 1, a: 1},
	}

	buf := gpubuf.New()
	var raw []byte
	for _, v := range verts {
		raw = appendFloat32(raw, v.x, v.y, v.r, v.g, v.b, v.a)
	}
	buf.Append(raw)
	return buf.View()
}

func appendFloat32(dst []byte, values ...float32) []byte {
	var b [4]byte
	for _, v := range values {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		dst = append(dst, b[:]...)
	}
	return dst
}

func writePNG(r *sft.Rasterizer, path string) error {
	pass := r.GetRenderPassAttachments()
	size := r.GetSize()

	src := pass.Color.Texture
	if pass.Color.Resolve != nil {
		src = pass.Color.Resolve
	}

	img := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c := sft.ToStdColor(src.Get(x, y, 0))
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sftinfo: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("sftinfo: encoding PNG: %w", err)
	}
	return nil
}

func printReport(s sft.Snapshot) {
	p := message.NewPrinter(language.English)
	p.Printf("primitives processed:  %d\n", s.PrimitivesProcessed)
	p.Printf("vertex invocations:    %d\n", s.VertexInvocations)
	p.Printf("fragment invocations:  %d\n", s.FragmentInvocations)
	p.Printf("face culled:           %d\n", s.FaceCulling)
	p.Printf("scissor culled:        %d\n", s.ScissorCulling)
	p.Printf("sample-point culled:   %d\n", s.SamplePointCulling)
	p.Printf("early fragment tests:  %d\n", s.EarlyFragmentTest)
}

// triangleShader is a trivial pass-through shader: it reads a clip-space
// XY position and an RGBA color per vertex, and interpolates the color
// across the triangle.
type triangleShader struct{}

func (triangleShader) VaryingsSize() int { return 16 }

func (triangleShader) ProcessVertex(v sft.VertexInvocation) vecmath.Vec4 {
	pos := sft.LoadAttribute[vecmath.Vec2](v, 0)
	color := sft.LoadAttribute[sft.Color](v, 8)
	sft.StoreVertexVarying(v, color, 0)
	return vecmath.Vec4{X: pos.X, Y: pos.Y, Z: 0, W: 1}
}

func (triangleShader) ProcessFragment(f sft.FragmentInvocation) (sft.Color, bool) {
	return sft.LoadFragmentVarying[sft.Color](f, 0), false
}
