package sft

import "sync/atomic"

// Metrics accumulates counters describing a rasterizer's work across one
// or more draw calls, reset via Rasterizer.ResetMetrics. All fields are
// safe for concurrent increment from the tile dispatch worker pool.
type Metrics struct {
	PrimitiveCount       atomic.Int64
	VertexInvocations    atomic.Int64
	FaceCulling          atomic.Int64
	EmptyPrimitive       atomic.Int64
	ScissorCulling       atomic.Int64
	SamplePointCulling   atomic.Int64
	PrimitivesProcessed  atomic.Int64
	FragmentInvocations  atomic.Int64
	EarlyFragmentTest    atomic.Int64
}

// Snapshot is a point-in-time, non-atomic copy of a Metrics, convenient for
// logging or comparing across a test scenario.
type Snapshot struct {
	PrimitiveCount      int64
	VertexInvocations   int64
	FaceCulling         int64
	EmptyPrimitive      int64
	ScissorCulling      int64
	SamplePointCulling  int64
	PrimitivesProcessed int64
	FragmentInvocations int64
	EarlyFragmentTest   int64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		PrimitiveCount:      m.PrimitiveCount.Load(),
		VertexInvocations:   m.VertexInvocations.Load(),
		FaceCulling:         m.FaceCulling.Load(),
		EmptyPrimitive:      m.EmptyPrimitive.Load(),
		ScissorCulling:      m.ScissorCulling.Load(),
		SamplePointCulling:  m.SamplePointCulling.Load(),
		PrimitivesProcessed: m.PrimitivesProcessed.Load(),
		FragmentInvocations: m.FragmentInvocations.Load(),
		EarlyFragmentTest:   m.EarlyFragmentTest.Load(),
	}
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.PrimitiveCount.Store(0)
	m.VertexInvocations.Store(0)
	m.FaceCulling.Store(0)
	m.EmptyPrimitive.Store(0)
	m.ScissorCulling.Store(0)
	m.SamplePointCulling.Store(0)
	m.PrimitivesProcessed.Store(0)
	m.FragmentInvocations.Store(0)
	m.EarlyFragmentTest.Store(0)
}
