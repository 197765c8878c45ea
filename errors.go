package sft

import "errors"

// Sentinel errors of the Rasterizer API. Per-primitive problems (empty,
// face-culled, scissor-culled or sample-point-culled triangles) are not
// reported as Go errors; they are tallied in Metrics instead, since a
// single bad primitive should not abort an entire batch.
var (
	// ErrInvalidSampleCount is returned when a sample count other than
	// 1, 2, 4, 8 or 16 is requested.
	ErrInvalidSampleCount = errors.New("sft: invalid sample count")

	// ErrMismatchedAttachments describes a render pass whose color, depth
	// and stencil attachments do not share the same pixel size. No
	// function in this module returns it.
	ErrMismatchedAttachments = errors.New("sft: color, depth and stencil attachments must share the same size")

	// ErrMissingResolveTarget describes a multisampled color attachment
	// with no resolve target to resolve into. No function in this module
	// returns it.
	ErrMissingResolveTarget = errors.New("sft: multisampled color attachment has no resolve target")

	// ErrNoShader is returned when a Pipeline is used without a Shader.
	ErrNoShader = errors.New("sft: pipeline has no shader")
)

// debugAssertions is a package-level debug-assertion flag. No code in this
// module reads it.
var debugAssertions bool
