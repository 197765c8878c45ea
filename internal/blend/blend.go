// Package blend implements Porter-Duff compositing for the rasterizer: a
// generic factor/operation Descriptor (mirroring a GPU pipeline's blend
// state) plus the twelve standard named presets built from it.
package blend

import "github.com/gogpu/gputypes"

// ColorMask selects which color channels a blend operation is allowed to
// write; unwritten channels pass the destination value through unchanged.
type ColorMask uint8

const (
	MaskRed ColorMask = 1 << iota
	MaskGreen
	MaskBlue
	MaskAlpha
	MaskAll = MaskRed | MaskGreen | MaskBlue | MaskAlpha
)

// RGBA is a premultiplied-alpha float32 color: R/G/B are already scaled by
// A. Descriptor.Blend's factor/op math follows the reference
// implementation's convention of treating a BlendFactorOne color factor as
// "use the channel as stored" rather than re-scaling it by alpha, which
// only produces correct Porter-Duff results when colors are premultiplied.
// Use Premultiply/Unpremultiply to convert to and from straight alpha at
// the boundary (shader authoring, image decode, PNG encode).
type RGBA struct {
	R, G, B, A float32
}

// Descriptor mirrors a GPU pipeline's per-attachment blend state: a
// factor/operation pair for the color channels and a separate pair for
// alpha, plus a write mask.
type Descriptor struct {
	Enabled     bool
	WriteMask   ColorMask
	SrcColorFac gputypes.BlendFactor
	DstColorFac gputypes.BlendFactor
	ColorOp     gputypes.BlendOperation
	SrcAlphaFac gputypes.BlendFactor
	DstAlphaFac gputypes.BlendFactor
	AlphaOp     gputypes.BlendOperation
}

func applyFactorColor(factor gputypes.BlendFactor, sc, dc RGBA) RGBA {
	switch factor {
	case gputypes.BlendFactorZero:
		return RGBA{}
	case gputypes.BlendFactorOne:
		return RGBA{1, 1, 1, 1}
	case gputypes.BlendFactorSrc:
		return sc
	case gputypes.BlendFactorOneMinusSrc:
		return RGBA{1 - sc.R, 1 - sc.G, 1 - sc.B, 1 - sc.A}
	case gputypes.BlendFactorSrcAlpha:
		return RGBA{sc.A, sc.A, sc.A, sc.A}
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return RGBA{1 - sc.A, 1 - sc.A, 1 - sc.A, 1 - sc.A}
	case gputypes.BlendFactorDst:
		return dc
	case gputypes.BlendFactorOneMinusDst:
		return RGBA{1 - dc.R, 1 - dc.G, 1 - dc.B, 1 - dc.A}
	case gputypes.BlendFactorDstAlpha:
		return RGBA{dc.A, dc.A, dc.A, dc.A}
	case gputypes.BlendFactorOneMinusDstAlpha:
		return RGBA{1 - dc.A, 1 - dc.A, 1 - dc.A, 1 - dc.A}
	case gputypes.BlendFactorSrcAlphaSaturated:
		f := min32(sc.A, 1-dc.A)
		return RGBA{f, f, f, 1}
	default:
		return RGBA{1, 1, 1, 1}
	}
}

func applyFactorAlpha(factor gputypes.BlendFactor, sa, da float32) float32 {
	switch factor {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 1
	case gputypes.BlendFactorSrc, gputypes.BlendFactorSrcAlpha:
		return sa
	case gputypes.BlendFactorOneMinusSrc, gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - sa
	case gputypes.BlendFactorDst, gputypes.BlendFactorDstAlpha:
		return da
	case gputypes.BlendFactorOneMinusDst, gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - da
	case gputypes.BlendFactorSrcAlphaSaturated:
		return 1
	default:
		return 1
	}
}

func applyOp(op gputypes.BlendOperation, src, dst float32) float32 {
	switch op {
	case gputypes.BlendOperationAdd:
		return src + dst
	case gputypes.BlendOperationSubtract:
		return src - dst
	case gputypes.BlendOperationReverseSubtract:
		return dst - src
	case gputypes.BlendOperationMin:
		return min32(src, dst)
	case gputypes.BlendOperationMax:
		return max32(src, dst)
	default:
		return src + dst
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func masked(dst, src RGBA, mask ColorMask) RGBA {
	out := dst
	if mask&MaskRed != 0 {
		out.R = src.R
	}
	if mask&MaskGreen != 0 {
		out.G = src.G
	}
	if mask&MaskBlue != 0 {
		out.B = src.B
	}
	if mask&MaskAlpha != 0 {
		out.A = src.A
	}
	return out
}

// Blend composites src over dst according to d. If blending is disabled the
// source is written directly, still subject to the write mask.
func (d Descriptor) Blend(src, dst RGBA) RGBA {
	if !d.Enabled {
		return masked(dst, src, d.WriteMask)
	}

	srcFac := applyFactorColor(d.SrcColorFac, src, dst)
	dstFac := applyFactorColor(d.DstColorFac, src, dst)
	result := RGBA{
		R: applyOp(d.ColorOp, src.R*srcFac.R, dst.R*dstFac.R),
		G: applyOp(d.ColorOp, src.G*srcFac.G, dst.G*dstFac.G),
		B: applyOp(d.ColorOp, src.B*srcFac.B, dst.B*dstFac.B),
	}
	srcAlphaFac := applyFactorAlpha(d.SrcAlphaFac, src.A, dst.A)
	dstAlphaFac := applyFactorAlpha(d.DstAlphaFac, src.A, dst.A)
	result.A = applyOp(d.AlphaOp, src.A*srcAlphaFac, dst.A*dstAlphaFac)

	return masked(dst, result, d.WriteMask)
}

// Mode names one of the twelve standard Porter-Duff compositing presets.
type Mode uint8

const (
	ModeClear Mode = iota
	ModeSource
	ModeDestination
	ModeSourceOver
	ModeDestinationOver
	ModeSourceIn
	ModeDestinationIn
	ModeSourceOut
	ModeDestinationOut
	ModeSourceAtop
	ModeDestinationAtop
	ModeXor
)

// DescriptorForMode builds the factor/op pair that implements the named
// Porter-Duff preset. All presets use BlendOperationAdd; they differ only
// in their factor pairs.
func DescriptorForMode(mode Mode) Descriptor {
	d := Descriptor{
		Enabled:   true,
		WriteMask: MaskAll,
		ColorOp:   gputypes.BlendOperationAdd,
		AlphaOp:   gputypes.BlendOperationAdd,
	}
	one, zero := gputypes.BlendFactorOne, gputypes.BlendFactorZero
	srcAlpha, oneMinusSrcAlpha := gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha
	dstAlpha, oneMinusDstAlpha := gputypes.BlendFactorDstAlpha, gputypes.BlendFactorOneMinusDstAlpha

	switch mode {
	case ModeClear:
		d.SrcColorFac, d.DstColorFac = zero, zero
		d.SrcAlphaFac, d.DstAlphaFac = zero, zero
	case ModeSource:
		d.SrcColorFac, d.DstColorFac = one, zero
		d.SrcAlphaFac, d.DstAlphaFac = one, zero
	case ModeDestination:
		d.SrcColorFac, d.DstColorFac = zero, one
		d.SrcAlphaFac, d.DstAlphaFac = zero, one
	case ModeSourceOver:
		d.SrcColorFac, d.DstColorFac = one, oneMinusSrcAlpha
		d.SrcAlphaFac, d.DstAlphaFac = one, oneMinusSrcAlpha
	case ModeDestinationOver:
		d.SrcColorFac, d.DstColorFac = oneMinusDstAlpha, one
		d.SrcAlphaFac, d.DstAlphaFac = oneMinusDstAlpha, one
	case ModeSourceIn:
		d.SrcColorFac, d.DstColorFac = dstAlpha, zero
		d.SrcAlphaFac, d.DstAlphaFac = dstAlpha, zero
	case ModeDestinationIn:
		d.SrcColorFac, d.DstColorFac = zero, srcAlpha
		d.SrcAlphaFac, d.DstAlphaFac = zero, srcAlpha
	case ModeSourceOut:
		d.SrcColorFac, d.DstColorFac = oneMinusDstAlpha, zero
		d.SrcAlphaFac, d.DstAlphaFac = oneMinusDstAlpha, zero
	case ModeDestinationOut:
		d.SrcColorFac, d.DstColorFac = zero, oneMinusSrcAlpha
		d.SrcAlphaFac, d.DstAlphaFac = zero, oneMinusSrcAlpha
	case ModeSourceAtop:
		d.SrcColorFac, d.DstColorFac = dstAlpha, oneMinusSrcAlpha
		d.SrcAlphaFac, d.DstAlphaFac = dstAlpha, oneMinusSrcAlpha
	case ModeDestinationAtop:
		d.SrcColorFac, d.DstColorFac = oneMinusDstAlpha, srcAlpha
		d.SrcAlphaFac, d.DstAlphaFac = oneMinusDstAlpha, srcAlpha
	case ModeXor:
		d.SrcColorFac, d.DstColorFac = oneMinusDstAlpha, oneMinusSrcAlpha
		d.SrcAlphaFac, d.DstAlphaFac = oneMinusDstAlpha, oneMinusSrcAlpha
	}
	return d
}
