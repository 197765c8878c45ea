package sft

import (
	"github.com/chinmaygarde/sft-sub000/internal/geom"
	"github.com/chinmaygarde/sft-sub000/internal/vecmath"
	"github.com/chinmaygarde/sft-sub000/texture"
)

// ShadeFragments runs the fragment back end for every primitive in items
// against the pixels of tile: for each pixel, each MSAA sample is tested
// for coverage and depth/stencil acceptance; if any sample is covered the
// fragment shader is invoked exactly once at the pixel's midpoint
// ("shade-once"), and its result is then written to every sample that
// passed ("blend-many"). Tile boundaries are assumed disjoint across
// concurrent calls, so no synchronization is needed against the render
// pass's attachments.
func (r *Rasterizer) ShadeFragments(tile geom.IRect, items []*FragmentWorkItem) {
	for _, item := range items {
		r.shadePrimitive(tile, item)
	}
}

func (r *Rasterizer) shadePrimitive(tile geom.IRect, item *FragmentWorkItem) {
	box := item.Box.Intersect(tile)
	if box.Empty() {
		return
	}

	p := item.Pipeline
	color := r.pass.Color.Texture
	depth := r.pass.Depth.Texture
	stencil := r.pass.Stencil.Texture
	sampleCount := texture.SampleCount(color.SampleCount())

	texel := [3]vecmath.Vec2{
		vecmath.ToTexelPos(item.NDC[0], item.ViewportW, item.ViewportH),
		vecmath.ToTexelPos(item.NDC[1], item.ViewportW, item.ViewportH),
		vecmath.ToTexelPos(item.NDC[2], item.ViewportW, item.ViewportH),
	}

	for y := box.MinY; y <= box.MaxY; y++ {
		for x := box.MinX; x <= box.MaxX; x++ {
			r.shadePixel(item, p, color, depth, stencil, sampleCount, texel, x, y)
		}
	}
}

func (r *Rasterizer) shadePixel(
	item *FragmentWorkItem,
	p *Pipeline,
	color *texture.Texture[Color],
	depth *texture.Texture[float32],
	stencil *texture.Texture[uint8],
	sampleCount texture.SampleCount,
	texel [3]vecmath.Vec2,
	x, y int,
) {
	if color.IsOOB(x, y) {
		return
	}

	var foundMask uint32

	for s := 0; s < int(sampleCount); s++ {
		sx, sy := texture.SampleLocation(sampleCount, s)
		samplePos := vecmath.Vec2{X: float32(x) + sx, Y: float32(y) + sy}

		if !geom.PointInside(texel[0], texel[1], texel[2], samplePos) {
			continue
		}

		b := geom.Barycentric(texel[0], texel[1], texel[2], samplePos)
		sampleDepth := vecmath.BarycentricInterpolate(item.NDC[0].Z, item.NDC[1].Z, item.NDC[2].Z, b)

		depthPass := r.fragmentPassesDepthTest(p, depth, x, y, s, sampleDepth)
		stencilPass := r.updateAndCheckStencilTest(p, stencil, x, y, s, item.StencilReference, depthPass)

		if !depthPass || !stencilPass {
			r.metrics.EarlyFragmentTest.Add(1)
			continue
		}

		r.updateDepth(p, depth, x, y, s, sampleDepth)
		foundMask |= 1 << uint(s)
	}

	if foundMask == 0 {
		return
	}

	// Shade once, at the pixel center, independent of which samples
	// passed coverage: every sample that passed gets this single result.
	pixelCenter := vecmath.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
	bary := geom.Barycentric(texel[0], texel[1], texel[2], pixelCenter)
	inv := FragmentInvocation{bary: bary, item: item}
	shaded, discard := p.Shader.ProcessFragment(inv)
	r.metrics.FragmentInvocations.Add(1)
	if discard {
		return
	}

	for s := 0; s < int(sampleCount); s++ {
		if foundMask&(1<<uint(s)) == 0 {
			continue
		}
		r.updateColor(p, color, x, y, s, shaded)
	}
}

// fragmentPassesDepthTest reports whether sampleDepth passes the
// pipeline's depth comparison against the current value in the depth
// attachment. If depth testing is disabled the test always passes.
func (r *Rasterizer) fragmentPassesDepthTest(p *Pipeline, depth *texture.Texture[float32], x, y, sample int, sampleDepth float32) bool {
	if !p.DepthDescriptor.TestEnabled {
		return true
	}
	current := depth.Get(x, y, sample)
	return compareFunctionPasses(p.DepthDescriptor.Compare, sampleDepth, current)
}

// updateDepth writes sampleDepth into the depth attachment if the
// pipeline's depth test is enabled and depth writes are enabled.
func (r *Rasterizer) updateDepth(p *Pipeline, depth *texture.Texture[float32], x, y, sample int, sampleDepth float32) {
	if !p.DepthDescriptor.TestEnabled || !p.DepthDescriptor.WriteEnabled {
		return
	}
	depth.Set(sampleDepth, x, y, sample)
}

// updateAndCheckStencilTest performs the pipeline's stencil comparison
// (masked by ReadMask) and, regardless of outcome, writes the selected
// stencil operation's result (masked by WriteMask) back into the stencil
// attachment, matching the fixed function behavior of a GPU stencil unit:
// the stencil buffer is always updated, only whether the fragment
// continues is gated on the result. If stencil testing is disabled the
// test always passes and the buffer is untouched.
func (r *Rasterizer) updateAndCheckStencilTest(p *Pipeline, stencil *texture.Texture[uint8], x, y, sample int, reference uint8, depthPass bool) bool {
	if !p.StencilDescriptor.TestEnabled {
		return true
	}
	desc := p.StencilDescriptor
	current := stencil.Get(x, y, sample)
	stencilPass := compareFunctionPasses(desc.Compare, current&desc.ReadMask, reference&desc.ReadMask)

	op := desc.SelectOperation(depthPass, stencilPass)
	newValue := stencilOperationPerform(op, current, reference) & desc.WriteMask
	stencil.Set(newValue, x, y, sample)

	return stencilPass
}

// updateColor blends shaded into the color attachment at the given pixel
// and sample, using the pipeline's blend descriptor.
func (r *Rasterizer) updateColor(p *Pipeline, color *texture.Texture[Color], x, y, sample int, shaded Color) {
	dst := color.Get(x, y, sample)
	color.Set(p.ColorDescriptor.Blend.Blend(shaded, dst), x, y, sample)
}
