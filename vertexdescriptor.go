package sft

import "github.com/gogpu/gputypes"

// VertexFormat names the scalar/vector layout of a vertex attribute.
// Re-exported from gputypes so pipeline descriptors share the same
// vocabulary already cross-checked against real GPU backends.
type VertexFormat = gputypes.VertexFormat

const (
	VertexFormatFloat32   = gputypes.VertexFormatFloat32
	VertexFormatFloat32x2 = gputypes.VertexFormatFloat32x2
	VertexFormatFloat32x3 = gputypes.VertexFormatFloat32x3
	VertexFormatFloat32x4 = gputypes.VertexFormatFloat32x4
)

// IndexFormat names the width of an index buffer's entries. Re-exported
// from gputypes.
type IndexFormat = gputypes.IndexFormat

const (
	IndexFormatUint16 = gputypes.IndexFormatUint16
	IndexFormatUint32 = gputypes.IndexFormatUint32
)

// VertexAttribute describes one vertex attribute's format and byte offset
// within a vertex record. gputypes has no "none" index format, so a
// non-indexed draw is instead signaled by an empty (invalid)
// DispatchResources.Index view; VertexDescriptor.HasIndex is not read.
type VertexAttribute struct {
	Format VertexFormat
	Offset int
}

// VertexDescriptor describes the layout of one vertex: its attributes,
// byte stride, and (for indexed draws) its index format.
type VertexDescriptor struct {
	Attributes  []VertexAttribute
	Stride      int
	HasIndex    bool
	IndexFormat IndexFormat
}
