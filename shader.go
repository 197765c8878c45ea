package sft

import (
	"github.com/chinmaygarde/sft-sub000/imagesrc"
	"github.com/chinmaygarde/sft-sub000/internal/vecmath"
)

// Shader is the user-supplied vertex/fragment program pair a Pipeline
// runs. ProcessVertex is called once per triangle corner on the goroutine
// that calls Draw; ProcessFragment is called once per covered pixel,
// concurrently across many goroutines, so implementations must not hold
// mutable state that isn't safe for that. The invocation handles passed in
// are the only place to read per-draw-call resources and write per-vertex
// outputs.
type Shader interface {
	// VaryingsSize returns the number of bytes of varying data this
	// shader's vertex stage writes per vertex. It is called once per
	// triangle to size that triangle's shared varyings buffer.
	VaryingsSize() int

	// ProcessVertex computes a vertex's clip-space position, reading its
	// attributes and uniforms through v and writing any varyings the
	// fragment stage will need through v as well.
	ProcessVertex(v VertexInvocation) vecmath.Vec4

	// ProcessFragment computes a covered pixel's color, reading
	// interpolated varyings, uniforms and images through f. The second
	// return value reports whether the fragment is discarded: a discarded
	// fragment writes no color, while the depth and stencil values that
	// its samples' earlier per-sample tests wrote stay in place.
	ProcessFragment(f FragmentInvocation) (Color, bool)
}

// VertexInvocation is the handle a Shader's ProcessVertex receives: it
// identifies which of the primitive's three corners is being processed and
// provides access to that corner's attributes, the draw call's uniforms,
// and a place to stash per-vertex varyings for the fragment stage.
type VertexInvocation struct {
	vtxIndex int
	vtx      *VertexResources
	item     *FragmentWorkItem
}

// Index returns which corner (0, 1 or 2) of the primitive this invocation
// is processing.
func (v VertexInvocation) Index() int { return v.vtxIndex % 3 }

// LoadAttribute reads a value of type T from this corner's vertex record
// at the given byte offset.
func LoadAttribute[T any](v VertexInvocation, structOffset int) T {
	return LoadVertexData[T](v.vtx, v.vtxIndex, structOffset)
}

// LoadVertexUniform reads a value of type T from the draw call's uniform
// buffer at the given byte offset.
func LoadVertexUniform[T any](v VertexInvocation, structOffset int) T {
	return LoadUniform[T](v.vtx.Resources, structOffset)
}

// StoreVertexVarying writes a value of type T into this corner's varyings
// record at the given byte offset, for the fragment stage to later
// interpolate and load via LoadFragmentVarying.
func StoreVertexVarying[T any](v VertexInvocation, val T, structOffset int) {
	StoreVarying(v.item, val, v.vtxIndex, structOffset)
}

// FragmentInvocation is the handle a Shader's ProcessFragment receives: the
// barycentric coordinates of the sample point being shaded, and access to
// the draw call's interpolated varyings, uniforms and bound images.
type FragmentInvocation struct {
	bary vecmath.Vec3
	item *FragmentWorkItem
}

// Barycentric returns the shaded point's barycentric coordinates with
// respect to the triangle's three corners.
func (f FragmentInvocation) Barycentric() vecmath.Vec3 { return f.bary }

// LoadFragmentVarying interpolates and returns the varying of type T
// stored at the given byte offset.
func LoadFragmentVarying[T any](f FragmentInvocation, structOffset int) T {
	return LoadVarying[T](f.item, f.bary, structOffset)
}

// LoadFragmentUniform reads a value of type T from the draw call's uniform
// buffer at the given byte offset.
func LoadFragmentUniform[T any](f FragmentInvocation, structOffset int) T {
	return LoadUniform[T](f.item.Resources, structOffset)
}

// LoadFragmentImage returns the image bound at the given binding location,
// or nil if none is bound there.
func LoadFragmentImage(f FragmentInvocation, location int) *ImageBinding {
	img := f.item.Resources.LoadImage(location)
	if img == nil {
		return nil
	}
	return &ImageBinding{img: img}
}

// ImageBinding is the handle a fragment shader samples a bound image
// through.
type ImageBinding struct {
	img *imagesrc.Image
}

// Sample reads the bound image at normalized UV coordinates in
// [0, 1] x [0, 1], honoring the image's configured sampler.
func (b *ImageBinding) Sample(u, v float32) Color {
	return b.img.Sample(u, v)
}
