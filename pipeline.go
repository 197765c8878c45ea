package sft

import (
	"github.com/gogpu/gputypes"

	"github.com/chinmaygarde/sft-sub000/internal/blend"
	"github.com/chinmaygarde/sft-sub000/internal/geom"
)

// CullFace names the winding direction a pipeline discards. Re-exported
// from internal/geom so callers never need to import it directly.
type CullFace = geom.CullFace

const (
	CullFront = geom.CullFront
	CullBack  = geom.CullBack
)

// Winding names a pipeline's front-facing winding order.
type Winding = geom.Winding

const (
	WindingClockwise        = geom.WindingClockwise
	WindingCounterClockwise = geom.WindingCounterClockwise
)

// CompareFunction re-exports gputypes' comparison function enum, used by
// both the depth and stencil descriptors below.
type CompareFunction = gputypes.CompareFunction

const (
	CompareNever        = gputypes.CompareFunctionNever
	CompareAlways       = gputypes.CompareFunctionAlways
	CompareLess         = gputypes.CompareFunctionLess
	CompareEqual        = gputypes.CompareFunctionEqual
	CompareLessEqual    = gputypes.CompareFunctionLessEqual
	CompareGreater      = gputypes.CompareFunctionGreater
	CompareNotEqual     = gputypes.CompareFunctionNotEqual
	CompareGreaterEqual = gputypes.CompareFunctionGreaterEqual
)

// compareFunctionPasses implements the comparison test shared by depth and
// stencil testing: whether newValue passes comp against currentValue.
func compareFunctionPasses[T int32 | uint8 | float32](comp CompareFunction, newValue, currentValue T) bool {
	switch comp {
	case CompareNever:
		return false
	case CompareAlways:
		return true
	case CompareLess:
		return newValue < currentValue
	case CompareEqual:
		return newValue == currentValue
	case CompareLessEqual:
		return newValue <= currentValue
	case CompareGreater:
		return newValue > currentValue
	case CompareNotEqual:
		return newValue != currentValue
	case CompareGreaterEqual:
		return newValue >= currentValue
	default:
		return true
	}
}

// StencilOperation names an action performed on a stencil buffer value.
type StencilOperation uint8

const (
	StencilKeep StencilOperation = iota
	StencilZero
	StencilSetToReference
	StencilIncrementClamp
	StencilDecrementClamp
	StencilInvert
	StencilIncrementWrap
	StencilDecrementWrap
)

// stencilOperationPerform applies op to currentValue, using referenceValue
// for StencilSetToReference.
func stencilOperationPerform(op StencilOperation, currentValue, referenceValue uint8) uint8 {
	switch op {
	case StencilKeep:
		return currentValue
	case StencilZero:
		return 0
	case StencilSetToReference:
		return referenceValue
	case StencilIncrementClamp:
		if currentValue == ^uint8(0) {
			return currentValue
		}
		return currentValue + 1
	case StencilDecrementClamp:
		if currentValue == 0 {
			return 0
		}
		return currentValue - 1
	case StencilInvert:
		return ^currentValue
	case StencilIncrementWrap:
		if currentValue == ^uint8(0) {
			return 0
		}
		return currentValue + 1
	case StencilDecrementWrap:
		if currentValue == 0 {
			return ^uint8(0)
		}
		return currentValue - 1
	default:
		return currentValue
	}
}

// BlendMode names one of the twelve standard Porter-Duff compositing
// presets. Re-exported from internal/blend.
type BlendMode = blend.Mode

const (
	BlendModeClear            = blend.ModeClear
	BlendModeSource           = blend.ModeSource
	BlendModeDestination      = blend.ModeDestination
	BlendModeSourceOver       = blend.ModeSourceOver
	BlendModeDestinationOver  = blend.ModeDestinationOver
	BlendModeSourceIn         = blend.ModeSourceIn
	BlendModeDestinationIn    = blend.ModeDestinationIn
	BlendModeSourceOut        = blend.ModeSourceOut
	BlendModeDestinationOut   = blend.ModeDestinationOut
	BlendModeSourceAtop       = blend.ModeSourceAtop
	BlendModeDestinationAtop  = blend.ModeDestinationAtop
	BlendModeXor              = blend.ModeXor
)

// BlendDescriptorForMode builds the blend descriptor implementing one of
// the standard Porter-Duff presets named by mode.
func BlendDescriptorForMode(mode BlendMode) blend.Descriptor {
	return blend.DescriptorForMode(mode)
}

// ColorAttachmentDescriptor configures how a pipeline blends into its
// color attachment.
type ColorAttachmentDescriptor struct {
	Blend blend.Descriptor
}

// DepthAttachmentDescriptor configures a pipeline's depth test.
type DepthAttachmentDescriptor struct {
	TestEnabled  bool
	Compare      CompareFunction
	WriteEnabled bool
}

// DefaultDepthAttachmentDescriptor returns the conventional defaults: depth
// testing off, less-equal comparison, writes enabled.
func DefaultDepthAttachmentDescriptor() DepthAttachmentDescriptor {
	return DepthAttachmentDescriptor{Compare: CompareLessEqual, WriteEnabled: true}
}

// StencilAttachmentDescriptor configures a pipeline's stencil test and the
// operations performed on pass/fail.
type StencilAttachmentDescriptor struct {
	TestEnabled     bool
	Compare         CompareFunction
	StencilFailure  StencilOperation
	DepthFailure    StencilOperation
	DepthStencilPass StencilOperation
	ReadMask        uint8
	WriteMask       uint8
}

// DefaultStencilAttachmentDescriptor returns the conventional defaults:
// stencil testing off, always-pass comparison, all ops keep, full
// read/write masks.
func DefaultStencilAttachmentDescriptor() StencilAttachmentDescriptor {
	return StencilAttachmentDescriptor{
		Compare:   CompareAlways,
		ReadMask:  ^uint8(0),
		WriteMask: ^uint8(0),
	}
}

// SelectOperation picks which stencil operation to apply given whether the
// stencil and depth tests passed.
func (d StencilAttachmentDescriptor) SelectOperation(depthPass, stencilPass bool) StencilOperation {
	if !stencilPass {
		return d.StencilFailure
	}
	if !depthPass {
		return d.DepthFailure
	}
	return d.DepthStencilPass
}

// Scissor restricts rendering to a pixel rectangle.
type Scissor = geom.IRect

// Pipeline bundles everything a draw call needs beyond its vertex/index
// buffers: the shader, vertex layout, attachment descriptors, and the
// fixed-function state (winding, culling, scissor, viewport).
type Pipeline struct {
	Shader            Shader
	VertexDescriptor  VertexDescriptor
	ColorDescriptor   ColorAttachmentDescriptor
	DepthDescriptor   DepthAttachmentDescriptor
	StencilDescriptor StencilAttachmentDescriptor

	Winding  Winding
	CullFace *CullFace
	Scissor  *Scissor
	Viewport *[2]int
}

// Clone returns a shallow copy of p; the Shader is shared (shaders are
// expected to be stateless or safe for concurrent use across work items),
// but Scissor/Viewport/CullFace pointers are copied so mutating the clone
// does not affect the original.
func (p Pipeline) Clone() *Pipeline {
	c := p
	if p.CullFace != nil {
		v := *p.CullFace
		c.CullFace = &v
	}
	if p.Scissor != nil {
		v := *p.Scissor
		c.Scissor = &v
	}
	if p.Viewport != nil {
		v := *p.Viewport
		c.Viewport = &v
	}
	return &c
}
