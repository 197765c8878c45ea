package sft

import (
	"fmt"

	"github.com/chinmaygarde/sft-sub000/attachment"
	"github.com/chinmaygarde/sft-sub000/internal/geom"
	"github.com/chinmaygarde/sft-sub000/internal/parallel"
	"github.com/chinmaygarde/sft-sub000/internal/tiler"
	"github.com/chinmaygarde/sft-sub000/internal/vecmath"
	"github.com/chinmaygarde/sft-sub000/texture"
)

// Rasterizer owns a render pass and rasterizes triangle batches into it,
// tiling work across a pool of goroutines. A Rasterizer is not safe for
// concurrent Draw calls against the same instance; it parallelizes
// internally instead.
type Rasterizer struct {
	pass    *attachment.RenderPass
	size    texture.Size
	samples int
	metrics Metrics
	tiler   *tiler.Tiler[*FragmentWorkItem]
	pool    *parallel.WorkerPool
	opts    rasterizerOptions
}

// New creates a rasterizer with a freshly allocated render pass of the
// given size and sample count.
func New(size texture.Size, samples int, opts ...Option) (*Rasterizer, error) {
	if !texture.IsValidSampleCount(samples) {
		return nil, ErrInvalidSampleCount
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	debugAssertions = o.debugAssertions

	r := &Rasterizer{
		pass:    attachment.New(size, samples),
		size:    size,
		samples: samples,
		pool:    parallel.NewWorkerPool(o.workers),
		opts:    o,
	}
	r.tiler = tiler.New(func(item *FragmentWorkItem) geom.IRect { return item.Box })
	return r, nil
}

// GetRenderPassAttachments returns the rasterizer's render pass.
func (r *Rasterizer) GetRenderPassAttachments() *attachment.RenderPass {
	return r.pass
}

// GetSize returns the rasterizer's pixel dimensions.
func (r *Rasterizer) GetSize() texture.Size { return r.size }

// GetMetrics returns the rasterizer's running metrics.
func (r *Rasterizer) GetMetrics() *Metrics { return &r.metrics }

// ResetMetrics zeroes every metrics counter.
func (r *Rasterizer) ResetMetrics() { r.metrics.Reset() }

// Clear applies every attachment's load action, preparing the render pass
// for a new batch of draw calls.
func (r *Rasterizer) Clear() {
	r.pass.Begin()
}

// Resize reallocates the render pass for a new size, discarding its
// contents. It is a no-op if size is unchanged.
func (r *Rasterizer) Resize(size texture.Size) error {
	if size == r.size {
		return nil
	}
	r.pass.Resize(size, r.samples)
	r.size = size
	return nil
}

// ResizeSamples changes the render pass's sample count in place,
// discarding its contents. It is a no-op if samples is unchanged.
func (r *Rasterizer) ResizeSamples(samples int) error {
	if !texture.IsValidSampleCount(samples) {
		return ErrInvalidSampleCount
	}
	if samples == r.samples {
		return nil
	}
	r.pass.SetSampleCount(samples)
	r.samples = samples
	return nil
}

// Draw rasterizes vertexCount/3 triangles from a non-indexed vertex
// stream.
func (r *Rasterizer) Draw(pipeline *Pipeline, resources *DispatchResources, vertexCount int, stencilReference uint8) error {
	return r.draw(pipeline, resources, vertexCount, stencilReference, false)
}

// DrawIndexed rasterizes indexCount/3 triangles from an indexed vertex
// stream; resources.Index must be populated in the format named by
// pipeline.VertexDescriptor.IndexFormat.
func (r *Rasterizer) DrawIndexed(pipeline *Pipeline, resources *DispatchResources, indexCount int, stencilReference uint8) error {
	return r.draw(pipeline, resources, indexCount, stencilReference, true)
}

func (r *Rasterizer) draw(pipeline *Pipeline, resources *DispatchResources, count int, stencilReference uint8, indexed bool) error {
	if pipeline == nil || pipeline.Shader == nil {
		return ErrNoShader
	}
	if indexed && !resources.Index.Valid() {
		return fmt.Errorf("sft: DrawIndexed called without an index buffer")
	}

	vtxRes := &VertexResources{
		Pipeline:         pipeline,
		Resources:        resources,
		StencilReference: stencilReference,
	}

	for i := 0; i+2 < count; i += 3 {
		r.drawTriangle(pipeline, vtxRes, i)
	}
	return nil
}

// drawTriangle runs the geometry front end for one triangle: vertex
// shading, perspective divide, face culling, viewport mapping, bounding
// box and scissor clipping, and sample-point culling, appending a
// FragmentWorkItem to the tiler if the triangle survives.
func (r *Rasterizer) drawTriangle(pipeline *Pipeline, vtxRes *VertexResources, firstVertex int) {
	r.metrics.PrimitiveCount.Add(1)

	stride := pipeline.Shader.VaryingsSize()
	item := newFragmentWorkItem(stride)
	item.Pipeline = pipeline
	item.Resources = vtxRes.Resources
	item.StencilReference = vtxRes.StencilReference

	var clip [3]vecmath.Vec4
	for corner := 0; corner < 3; corner++ {
		vtxIndex := firstVertex + corner
		inv := VertexInvocation{vtxIndex: vtxIndex, vtx: vtxRes, item: item}
		clip[corner] = pipeline.Shader.ProcessVertex(inv)
	}
	r.metrics.VertexInvocations.Add(3)

	var ndc [3]vecmath.Vec3
	for i := 0; i < 3; i++ {
		ndc[i] = vecmath.ToNDC(clip[i])
	}
	item.NDC = ndc

	viewportW, viewportH := float32(r.size.Width), float32(r.size.Height)
	if pipeline.Viewport != nil {
		viewportW, viewportH = float32(pipeline.Viewport[0]), float32(pipeline.Viewport[1])
	}
	item.ViewportW, item.ViewportH = viewportW, viewportH

	var texel [3]vecmath.Vec2
	for i := 0; i < 3; i++ {
		texel[i] = vecmath.ToTexelPos(ndc[i], viewportW, viewportH)
	}

	if pipeline.CullFace != nil {
		if geom.ShouldCullFace(*pipeline.CullFace, pipeline.Winding, texel[0], texel[1], texel[2]) {
			r.metrics.FaceCulling.Add(1)
			return
		}
	}

	box := geom.BoundingBox(texel[0], texel[1], texel[2])
	if box.Empty() {
		r.metrics.EmptyPrimitive.Add(1)
		return
	}

	canvasBox := geom.IRect{MinX: 0, MinY: 0, MaxX: r.size.Width - 1, MaxY: r.size.Height - 1}
	box = box.Intersect(canvasBox)
	if pipeline.Scissor != nil {
		box = box.Intersect(*pipeline.Scissor)
	}
	if box.Empty() {
		r.metrics.ScissorCulling.Add(1)
		return
	}

	if box.Width() < 2 && box.Height() < 2 {
		r.metrics.SamplePointCulling.Add(1)
		return
	}

	r.metrics.PrimitivesProcessed.Add(1)
	item.Box = box
	r.tiler.Add(item)
}

// Finish dispatches every pending primitive to the fragment back end,
// tile by tile in parallel, resolves a multisampled color attachment into
// its resolve target, and clears the tiler for the next frame.
func (r *Rasterizer) Finish() {
	var work []func()
	r.tiler.Dispatch(func(tile geom.IRect, items []*FragmentWorkItem) {
		work = append(work, func() {
			r.ShadeFragments(tile, items)
		})
	})
	r.pool.ExecuteAll(work)
	r.tiler.Reset()

	r.pass.Color.ResolveInto()
	r.pass.End()
}

// Close releases the rasterizer's worker pool.
func (r *Rasterizer) Close() {
	r.pool.Close()
}
