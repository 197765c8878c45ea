package sft

import (
	"unsafe"

	"github.com/chinmaygarde/sft-sub000/gpubuf"
	"github.com/chinmaygarde/sft-sub000/imagesrc"
	"github.com/chinmaygarde/sft-sub000/internal/geom"
	"github.com/chinmaygarde/sft-sub000/internal/vecmath"
)

// Uniforms bundles the uniform data buffer and the sampleable images a
// draw call's shaders can read.
type Uniforms struct {
	Data   gpubuf.BufferView
	Images map[int]*imagesrc.Image
}

// DispatchResources is the full set of buffers and uniforms shared by
// every vertex and fragment invocation of one draw call. It is refcounted
// implicitly through ordinary Go garbage collection: every FragmentWorkItem
// produced by a draw call holds a pointer back to the same
// DispatchResources, keeping it alive for as long as any tile still has
// work outstanding against it.
type DispatchResources struct {
	Vertex   gpubuf.BufferView
	Index    gpubuf.BufferView
	Uniforms Uniforms
}

// LoadUniform reads a value of type T out of the uniform buffer at the
// given byte offset. T must be a fixed-size, non-pointer type (a struct of
// scalars, a float32, a vecmath vector, ...).
func LoadUniform[T any](res *DispatchResources, offset int) T {
	var out T
	size := int(unsafe.Sizeof(out))
	src := res.Uniforms.Data.Data()[offset : offset+size]
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&out)), size)
	copy(dst, src)
	return out
}

// LoadImage returns the image bound at the given binding location, or nil
// if none is bound there.
func (res *DispatchResources) LoadImage(location int) *imagesrc.Image {
	if res.Uniforms.Images == nil {
		return nil
	}
	return res.Uniforms.Images[location]
}

// VertexResources is the per-draw-call context a vertex invocation reads
// its inputs from: the shared dispatch resources plus the pipeline and
// stencil reference active for this draw.
type VertexResources struct {
	Pipeline         *Pipeline
	Resources        *DispatchResources
	StencilReference uint8
	BaseVertexID     uint32
}

// LoadVertexIndex resolves the vertex index to actually fetch for position
// vtxIndex of the draw call's vertex stream, honoring the pipeline's index
// buffer format if an index buffer is bound; otherwise vtxIndex is used
// directly (non-indexed draw).
func (r *VertexResources) LoadVertexIndex(vtxIndex int) int {
	if !r.Resources.Index.Valid() {
		return vtxIndex
	}
	switch r.Pipeline.VertexDescriptor.IndexFormat {
	case IndexFormatUint16:
		return int(r.Resources.Index.LoadUint16(vtxIndex * 2))
	case IndexFormatUint32:
		return int(r.Resources.Index.LoadUint32(vtxIndex * 4))
	default:
		return vtxIndex
	}
}

// vertexDataAt returns the byte slice for a vertex attribute at structOffset
// within the vertex record for vtxIndex, honoring the vertex stride and the
// base vertex id.
func (r *VertexResources) vertexDataAt(vtxIndex, structOffset int) []byte {
	index := r.LoadVertexIndex(vtxIndex) + int(r.BaseVertexID)
	stride := r.Pipeline.VertexDescriptor.Stride
	off := index*stride + structOffset
	return r.Resources.Vertex.Data()[off:]
}

// LoadVertexData reads a value of type T out of the vertex buffer at
// structOffset within the vtxIndex'th corner's vertex record.
func LoadVertexData[T any](r *VertexResources, vtxIndex, structOffset int) T {
	var out T
	size := int(unsafe.Sizeof(out))
	src := r.vertexDataAt(vtxIndex, structOffset)[:size]
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&out)), size)
	copy(dst, src)
	return out
}

// FragmentWorkItem is the immutable-after-emission record the geometry
// front end hands to the tiler and, eventually, the fragment back end: one
// triangle's screen-space bounding box, its three corners' NDC positions,
// the draw call's pipeline/resources/stencil reference, and the raw
// per-corner varyings the vertex shader wrote (LoadVarying interpolates
// them).
type FragmentWorkItem struct {
	Box                    geom.IRect
	NDC                    [3]vecmath.Vec3
	ViewportW, ViewportH   float32
	Pipeline               *Pipeline
	Resources              *DispatchResources
	StencilReference       uint8
	Varyings               []byte
}

// newFragmentWorkItem allocates a work item with a varyings buffer sized
// for stride bytes per corner (three corners per triangle).
func newFragmentWorkItem(stride int) *FragmentWorkItem {
	return &FragmentWorkItem{Varyings: make([]byte, stride*3)}
}

// VaryingsStride returns the number of varying bytes stored per triangle
// corner.
func (item *FragmentWorkItem) VaryingsStride() int {
	if len(item.Varyings) == 0 {
		return 0
	}
	return len(item.Varyings) / 3
}

// StoreVarying writes val into the triangle corner vertexIndex%3's varyings
// record at structOffset. T must be a fixed-size value type composed
// entirely of float32 fields (a float32, a vecmath vector, or a struct of
// these) so that LoadVarying can later reinterpret it as a float32 array
// for barycentric interpolation.
func StoreVarying[T any](item *FragmentWorkItem, val T, vertexIndex, structOffset int) {
	stride := item.VaryingsStride()
	off := structOffset + stride*(vertexIndex%3)
	size := int(unsafe.Sizeof(val))
	dst := item.Varyings[off : off+size]
	src := unsafe.Slice((*byte)(unsafe.Pointer(&val)), size)
	copy(dst, src)
}

// LoadVarying reads the three triangle corners' varyings record at
// structOffset and barycentrically interpolates them using bary. See
// StoreVarying for T's layout requirement.
func LoadVarying[T any](item *FragmentWorkItem, bary vecmath.Vec3, structOffset int) T {
	stride := item.VaryingsStride()
	var p1, p2, p3 T
	size := int(unsafe.Sizeof(p1))
	readAt := func(off int, dst *T) {
		src := item.Varyings[off : off+size]
		d := unsafe.Slice((*byte)(unsafe.Pointer(dst)), size)
		copy(d, src)
	}
	readAt(structOffset, &p1)
	readAt(structOffset+stride, &p2)
	readAt(structOffset+2*stride, &p3)
	return interpolateFloats(p1, p2, p3, bary)
}

// interpolateFloats barycentrically interpolates three values of type T by
// reinterpreting them as []float32 of the same byte length. Sizeof(T) must
// be a multiple of 4.
func interpolateFloats[T any](p1, p2, p3 T, bary vecmath.Vec3) T {
	var out T
	n := int(unsafe.Sizeof(out)) / 4
	o := unsafe.Slice((*float32)(unsafe.Pointer(&out)), n)
	a := unsafe.Slice((*float32)(unsafe.Pointer(&p1)), n)
	b := unsafe.Slice((*float32)(unsafe.Pointer(&p2)), n)
	c := unsafe.Slice((*float32)(unsafe.Pointer(&p3)), n)
	for i := 0; i < n; i++ {
		o[i] = bary.X*a[i] + bary.Y*b[i] + bary.Z*c[i]
	}
	return out
}
