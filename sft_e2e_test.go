package sft

import (
	"testing"

	"github.com/chinmaygarde/sft-sub000/gpubuf"
	"github.com/chinmaygarde/sft-sub000/internal/vecmath"
	"github.com/chinmaygarde/sft-sub000/texture"
)

// solidShader fills every covered fragment with a fixed color, reading only
// a clip-space XY position per vertex.
type solidShader struct{ color Color }

func (solidShader) VaryingsSize() int { return 0 }

func (s solidShader) ProcessVertex(v VertexInvocation) vecmath.Vec4 {
	pos := LoadAttribute[vecmath.Vec2](v, 0)
	return vecmath.Vec4{X: pos.X, Y: pos.Y, Z: 0, W: 1}
}

func (s solidShader) ProcessFragment(f FragmentInvocation) (Color, bool) {
	return s.color, false
}

func packVec2(verts ...vecmath.Vec2) gpubuf.BufferView {
	buf := gpubuf.New()
	var raw []byte
	for _, v := range verts {
		raw = appendF32(raw, v.X)
		raw = appendF32(raw, v.Y)
	}
	buf.Append(raw)
	return buf.View()
}

// fullscreenTriangle covers the entire NDC cube with a single oversized
// triangle, so it rasterizes to every pixel of any viewport after clipping.
func fullscreenTriangle() gpubuf.BufferView {
	return packVec2(
		vecmath.Vec2{X: -2, Y: 6},
		vecmath.Vec2{X: -2, Y: -2},
		vecmath.Vec2{X: 6, Y: -2},
	)
}

// cornerTriangle covers the texel-space right triangle (0,8)-(0,0)-(8,0) of
// an 8x8 viewport: x+y<=8 is inside. Pixel (1,1) (sample sum 3) is well
// inside; pixel (6,6) (sample sum 13) is well outside.
func cornerTriangle() gpubuf.BufferView {
	return packVec2(
		vecmath.Vec2{X: -1, Y: -1},
		vecmath.Vec2{X: -1, Y: 1},
		vecmath.Vec2{X: 1, Y: -1},
	)
}

func TestDrawFillsCoveredPixelsOnly(t *testing.T) {
	r, err := New(texture.Size{Width: 8, Height: 8}, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()
	r.Clear()

	pipeline := &Pipeline{
		Shader:           solidShader{color: Color{R: 1, G: 0, B: 0, A: 1}},
		Winding:          WindingCounterClockwise,
		VertexDescriptor: VertexDescriptor{Stride: 8},
		ColorDescriptor:  ColorAttachmentDescriptor{Blend: BlendDescriptorForMode(BlendModeSource)},
	}
	resources := &DispatchResources{Vertex: cornerTriangle()}

	if err := r.Draw(pipeline, resources, 3, 0); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	r.Finish()

	color := r.GetRenderPassAttachments().Color.Texture
	// Pixel (1,1): sample point (1.5,1.5), sum 3 <= 8, inside the triangle.
	if got := color.Get(1, 1, 0); got.R != 1 {
		t.Errorf("pixel (1,1) = %+v, want red", got)
	}
	// Pixel (6,6): sample point (6.5,6.5), sum 13 > 8, outside the
	// triangle; should remain the clear color (black, alpha 1).
	if got := color.Get(6, 6, 0); got != (Color{A: 1}) {
		t.Errorf("untouched pixel (6,6) = %+v, want clear color {0 0 0 1}", got)
	}

	snap := r.GetMetrics().Snapshot()
	if snap.PrimitivesProcessed != 1 {
		t.Errorf("PrimitivesProcessed = %d, want 1", snap.PrimitivesProcessed)
	}
	if snap.FragmentInvocations == 0 {
		t.Error("expected at least one fragment invocation")
	}
}

func TestDrawDegenerateTriangleIsCulledNotErrored(t *testing.T) {
	r, err := New(texture.Size{Width: 8, Height: 8}, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()
	r.Clear()

	pipeline := &Pipeline{
		Shader:           solidShader{color: Color{R: 1, A: 1}},
		VertexDescriptor: VertexDescriptor{Stride: 8},
	}
	resources := &DispatchResources{
		Vertex: packVec2(
			vecmath.Vec2{X: 0, Y: 0},
			vecmath.Vec2{X: 0, Y: 0},
			vecmath.Vec2{X: 0, Y: 0},
		),
	}
	if err := r.Draw(pipeline, resources, 3, 0); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	r.Finish()

	snap := r.GetMetrics().Snapshot()
	if snap.PrimitivesProcessed != 0 {
		t.Errorf("PrimitivesProcessed = %d, want 0 for a degenerate triangle", snap.PrimitivesProcessed)
	}
}

func TestDrawWithoutShaderReturnsError(t *testing.T) {
	r, err := New(texture.Size{Width: 4, Height: 4}, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()

	err = r.Draw(&Pipeline{}, &DispatchResources{}, 3, 0)
	if err != ErrNoShader {
		t.Errorf("Draw() with no shader error = %v, want ErrNoShader", err)
	}
}

func TestNewRejectsInvalidSampleCount(t *testing.T) {
	if _, err := New(texture.Size{Width: 4, Height: 4}, 3); err != ErrInvalidSampleCount {
		t.Errorf("New() with 3 samples error = %v, want ErrInvalidSampleCount", err)
	}
}

func TestDepthTestRejectsEqualDepthUnderCompareLess(t *testing.T) {
	r, err := New(texture.Size{Width: 4, Height: 4}, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()
	r.Clear()

	depthDesc := DepthAttachmentDescriptor{TestEnabled: true, Compare: CompareLess, WriteEnabled: true}
	colorDesc := ColorAttachmentDescriptor{Blend: BlendDescriptorForMode(BlendModeSource)}
	first := &Pipeline{Shader: solidShader{color: Color{R: 1, A: 1}}, VertexDescriptor: VertexDescriptor{Stride: 8}, DepthDescriptor: depthDesc, ColorDescriptor: colorDesc}
	second := &Pipeline{Shader: solidShader{color: Color{G: 1, A: 1}}, VertexDescriptor: VertexDescriptor{Stride: 8}, DepthDescriptor: depthDesc, ColorDescriptor: colorDesc}

	fullscreen := fullscreenTriangle()

	// solidShader always emits Z=0 for both draws: the first draw's depth
	// write (0) makes the second draw's equal-depth fragment fail
	// CompareLess (0 < 0 is false), so its color must not be written even
	// though it is drawn second.
	res := &DispatchResources{Vertex: fullscreen}
	if err := r.Draw(first, res, 3, 0); err != nil {
		t.Fatalf("first Draw() error = %v", err)
	}
	if err := r.Draw(second, res, 3, 0); err != nil {
		t.Fatalf("second Draw() error = %v", err)
	}
	r.Finish()

	got := r.GetRenderPassAttachments().Color.Texture.Get(2, 2, 0)
	if got.R != 1 || got.G != 0 {
		t.Errorf("center pixel = %+v, want the first draw's red to win under CompareLess at equal depth", got)
	}
}

func TestResizeChangesSize(t *testing.T) {
	r, err := New(texture.Size{Width: 4, Height: 4}, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()

	if err := r.Resize(texture.Size{Width: 16, Height: 16}); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if r.GetSize() != (texture.Size{Width: 16, Height: 16}) {
		t.Errorf("GetSize() = %+v, want {16 16}", r.GetSize())
	}
}

func TestResizeSamplesRejectsInvalidCount(t *testing.T) {
	r, err := New(texture.Size{Width: 4, Height: 4}, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()

	if err := r.ResizeSamples(5); err != ErrInvalidSampleCount {
		t.Errorf("ResizeSamples(5) error = %v, want ErrInvalidSampleCount", err)
	}
}

// TestDrawBlendsOverClearColor clears to red, then draws a half-transparent
// green triangle with SourceOver blending over it: the covered pixel should
// land at the premultiplied sum (0.5, 0.5, 0, 1), and an uncovered pixel
// should be untouched red.
func TestDrawBlendsOverClearColor(t *testing.T) {
	r, err := New(texture.Size{Width: 8, Height: 8}, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()

	r.GetRenderPassAttachments().Color.ClearColor = Color{R: 1, A: 1}
	r.Clear()

	pipeline := &Pipeline{
		// Straight green at alpha 0.5, stored premultiplied: (0, 0.5, 0, 0.5).
		Shader:           solidShader{color: Color{R: 0, G: 0.5, B: 0, A: 0.5}},
		Winding:          WindingCounterClockwise,
		VertexDescriptor: VertexDescriptor{Stride: 8},
		ColorDescriptor:  ColorAttachmentDescriptor{Blend: BlendDescriptorForMode(BlendModeSourceOver)},
	}
	resources := &DispatchResources{Vertex: cornerTriangle()}

	if err := r.Draw(pipeline, resources, 3, 0); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	r.Finish()

	color := r.GetRenderPassAttachments().Color.Texture
	want := Color{R: 0.5, G: 0.5, B: 0, A: 1}
	if got := color.Get(1, 1, 0); !approxColor(got, want) {
		t.Errorf("covered pixel (1,1) = %+v, want %+v", got, want)
	}
	if got := color.Get(6, 6, 0); !approxColor(got, Color{R: 1, A: 1}) {
		t.Errorf("uncovered pixel (6,6) = %+v, want untouched clear red", got)
	}
}

// TestStencilClipGatesSecondDraw writes stencil 1 over the region covered by
// cornerTriangle with IncrementClamp/Always (no color write), then draws a
// fullscreen green triangle gated on stencil>=1: only the first triangle's
// region should end up green, everywhere else keeps the clear color.
func TestStencilClipGatesSecondDraw(t *testing.T) {
	r, err := New(texture.Size{Width: 8, Height: 8}, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()
	r.Clear()

	stencilWrite := DefaultStencilAttachmentDescriptor()
	stencilWrite.TestEnabled = true
	stencilWrite.DepthStencilPass = StencilIncrementClamp

	stencilGate := DefaultStencilAttachmentDescriptor()
	stencilGate.TestEnabled = true
	stencilGate.Compare = CompareGreaterEqual

	clip := &Pipeline{
		Shader: solidShader{},
		// ColorDescriptor left zero-valued on purpose: this draw only needs
		// to mark the stencil buffer, never the color attachment.
		VertexDescriptor:  VertexDescriptor{Stride: 8},
		StencilDescriptor: stencilWrite,
	}
	reveal := &Pipeline{
		Shader:            solidShader{color: Color{G: 1, A: 1}},
		VertexDescriptor:  VertexDescriptor{Stride: 8},
		ColorDescriptor:   ColorAttachmentDescriptor{Blend: BlendDescriptorForMode(BlendModeSource)},
		StencilDescriptor: stencilGate,
	}

	clipRef := &DispatchResources{Vertex: cornerTriangle()}
	if err := r.Draw(clip, clipRef, 3, 1); err != nil {
		t.Fatalf("clip Draw() error = %v", err)
	}
	revealRes := &DispatchResources{Vertex: fullscreenTriangle()}
	if err := r.Draw(reveal, revealRes, 3, 1); err != nil {
		t.Fatalf("reveal Draw() error = %v", err)
	}
	r.Finish()

	color := r.GetRenderPassAttachments().Color.Texture
	if got := color.Get(1, 1, 0); got != (Color{G: 1, A: 1}) {
		t.Errorf("inside the clip region (1,1) = %+v, want green", got)
	}
	if got := color.Get(6, 6, 0); got != (Color{A: 1}) {
		t.Errorf("outside the clip region (6,6) = %+v, want untouched clear color", got)
	}
}

// TestMSAAResolveAveragesPartialCoverage draws cornerTriangle at 4 samples:
// an interior pixel, fully covered on every sample, must resolve to exactly
// the source color; an edge pixel straddling the hypotenuse, covered on
// exactly half its samples, must resolve to the average of source and clear.
func TestMSAAResolveAveragesPartialCoverage(t *testing.T) {
	r, err := New(texture.Size{Width: 8, Height: 8}, 4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()
	r.Clear()

	pipeline := &Pipeline{
		Shader:           solidShader{color: Color{R: 1, A: 1}},
		Winding:          WindingCounterClockwise,
		VertexDescriptor: VertexDescriptor{Stride: 8},
		ColorDescriptor:  ColorAttachmentDescriptor{Blend: BlendDescriptorForMode(BlendModeSource)},
	}
	resources := &DispatchResources{Vertex: cornerTriangle()}

	if err := r.Draw(pipeline, resources, 3, 0); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	r.Finish()

	resolved := r.GetRenderPassAttachments().Color.Resolve
	if resolved == nil {
		t.Fatal("expected a resolve target for a multisampled color attachment")
	}

	// Pixel (0,0): all 4 sample points (max sum 1.5) lie inside x+y<=8,
	// far from the hypotenuse; fully covered.
	if got := resolved.Get(0, 0, 0); got != (Color{R: 1, A: 1}) {
		t.Errorf("fully covered pixel (0,0) resolved = %+v, want exact source red", got)
	}

	// Pixel (3,4): samples at (3.375,4.125) and (3.125,4.625) sum to 7.5
	// and 7.75 (inside); samples at (3.875,4.375) and (3.625,4.875) sum to
	// 8.25 and 8.5 (outside). Exactly half the samples are covered, so the
	// resolve must average source red against the clear color.
	want := Color{R: 0.5, A: 1}
	if got := resolved.Get(3, 4, 0); !approxColor(got, want) {
		t.Errorf("half-covered pixel (3,4) resolved = %+v, want %+v", got, want)
	}
}
