// Package attachment implements the render pass attachment lifecycle: the
// color, depth and stencil textures a rasterizer draws into, their load
// and store actions, and the resolve target a multisampled color
// attachment needs before it can be presented or sampled.
package attachment

import (
	"github.com/chinmaygarde/sft-sub000/internal/blend"
	"github.com/chinmaygarde/sft-sub000/texture"
)

// LoadAction describes what happens to an attachment's contents when a
// render pass begins.
type LoadAction uint8

const (
	LoadDontCare LoadAction = iota
	LoadLoad
	LoadClear
)

// StoreAction describes what happens to an attachment's contents when a
// render pass ends.
type StoreAction uint8

const (
	StoreDontCare StoreAction = iota
	StoreStore
)

// Color is the pixel format color attachments and color resolve targets
// are stored in: premultiplied-alpha float32 channels, matching the blend
// stage's convention (see the root package's Color doc comment).
type Color = blend.RGBA

// ColorAttachment owns a (possibly multisampled) color texture and, when
// multisampled, the single-sampled resolve target it must be resolved into
// before being read back.
type ColorAttachment struct {
	LoadAction  LoadAction
	StoreAction StoreAction
	ClearColor  Color

	Texture *texture.Texture[Color]
	Resolve *texture.Texture[Color]
}

// NewColorAttachment allocates a color attachment of the given size and
// sample count, defaulting to clear-on-load with an opaque black clear
// color.
func NewColorAttachment(size texture.Size, samples int) *ColorAttachment {
	a := &ColorAttachment{
		LoadAction:  LoadClear,
		StoreAction: StoreDontCare,
		ClearColor:  Color{R: 0, G: 0, B: 0, A: 1},
	}
	a.Resize(size, samples)
	return a
}

// Resize reallocates the attachment's texture (and resolve target, if
// multisampled) for the given size and sample count.
func (a *ColorAttachment) Resize(size texture.Size, samples int) {
	a.Texture = texture.New[Color](size, samples)
	if samples != 1 {
		a.Resolve = texture.New[Color](size, 1)
	} else {
		a.Resolve = nil
	}
}

// SetSampleCount updates the attachment's sample count in place, allocating
// or freeing the resolve target as needed.
func (a *ColorAttachment) SetSampleCount(samples int) {
	if a.Texture == nil {
		return
	}
	a.Texture.UpdateSampleCount(samples)
	if samples != 1 {
		if a.Resolve == nil {
			a.Resolve = texture.New[Color](a.Texture.Size(), 1)
		}
	} else {
		a.Resolve = nil
	}
}

// IsValid reports whether the attachment has a texture and, if
// multisampled, a correctly sized resolve target.
func (a *ColorAttachment) IsValid() bool {
	if a.Texture == nil || !a.Texture.IsValid() {
		return false
	}
	if a.Texture.SampleCount() != 1 {
		return a.Resolve != nil && a.Resolve.IsValid() && a.Resolve.Size() == a.Texture.Size()
	}
	return true
}

// Size returns the attachment's pixel dimensions.
func (a *ColorAttachment) Size() texture.Size {
	if a.Texture == nil {
		return texture.Size{}
	}
	return a.Texture.Size()
}

// Load applies the attachment's load action at the start of a render pass.
func (a *ColorAttachment) Load() {
	if a.LoadAction == LoadClear && a.Texture != nil {
		a.Texture.Clear(a.ClearColor)
	}
}

// Store applies the attachment's store action at the end of a render pass.
// Store is currently a no-op: presentation and readback happen through
// Resolve, not through the store action.
func (a *ColorAttachment) Store() {}

// colorAverage pairwise-averages two premultiplied colors, used as the
// resolve filter for multisample color attachments.
func colorAverage(a, b Color) Color {
	return Color{
		R: (a.R + b.R) / 2,
		G: (a.G + b.G) / 2,
		B: (a.B + b.B) / 2,
		A: (a.A + b.A) / 2,
	}
}

// ResolveInto resolves the attachment's multisampled texture into its
// resolve target. It is a no-op (returning true) for single-sampled
// attachments.
func (a *ColorAttachment) ResolveInto() bool {
	if a.Texture.SampleCount() == 1 {
		return true
	}
	return texture.Resolve(a.Texture, a.Resolve, colorAverage)
}

// DepthAttachment owns a (possibly multisampled) depth texture, storing
// NDC-space depth in [-1, 1] (or [0, 1] depending on the projection used
// by the caller's vertex shader) as float32.
type DepthAttachment struct {
	LoadAction  LoadAction
	StoreAction StoreAction
	ClearDepth  float32

	Texture *texture.Texture[float32]
}

// NewDepthAttachment allocates a depth attachment of the given size and
// sample count, defaulting to clear-on-load with depth 1.0.
func NewDepthAttachment(size texture.Size, samples int) *DepthAttachment {
	a := &DepthAttachment{
		LoadAction:  LoadClear,
		StoreAction: StoreDontCare,
		ClearDepth:  1.0,
	}
	a.Resize(size, samples)
	return a
}

// Resize reallocates the attachment's texture for the given size and
// sample count.
func (a *DepthAttachment) Resize(size texture.Size, samples int) {
	a.Texture = texture.New[float32](size, samples)
}

// SetSampleCount updates the attachment's sample count in place.
func (a *DepthAttachment) SetSampleCount(samples int) {
	if a.Texture != nil {
		a.Texture.UpdateSampleCount(samples)
	}
}

// IsValid reports whether the attachment has an allocated texture.
func (a *DepthAttachment) IsValid() bool {
	return a.Texture != nil && a.Texture.IsValid()
}

// Size returns the attachment's pixel dimensions.
func (a *DepthAttachment) Size() texture.Size {
	if a.Texture == nil {
		return texture.Size{}
	}
	return a.Texture.Size()
}

// Load applies the attachment's load action.
func (a *DepthAttachment) Load() {
	if a.LoadAction == LoadClear && a.Texture != nil {
		a.Texture.Clear(a.ClearDepth)
	}
}

// Store applies the attachment's store action (currently a no-op).
func (a *DepthAttachment) Store() {}

// StencilAttachment owns a (possibly multisampled) stencil texture,
// storing an unsigned reference value per sample.
type StencilAttachment struct {
	LoadAction   LoadAction
	StoreAction  StoreAction
	ClearStencil uint8

	Texture *texture.Texture[uint8]
}

// NewStencilAttachment allocates a stencil attachment of the given size
// and sample count, defaulting to clear-on-load with stencil 0.
func NewStencilAttachment(size texture.Size, samples int) *StencilAttachment {
	a := &StencilAttachment{
		LoadAction:  LoadClear,
		StoreAction: StoreDontCare,
	}
	a.Resize(size, samples)
	return a
}

// Resize reallocates the attachment's texture for the given size and
// sample count.
func (a *StencilAttachment) Resize(size texture.Size, samples int) {
	a.Texture = texture.New[uint8](size, samples)
}

// SetSampleCount updates the attachment's sample count in place.
func (a *StencilAttachment) SetSampleCount(samples int) {
	if a.Texture != nil {
		a.Texture.UpdateSampleCount(samples)
	}
}

// IsValid reports whether the attachment has an allocated texture.
func (a *StencilAttachment) IsValid() bool {
	return a.Texture != nil && a.Texture.IsValid()
}

// Size returns the attachment's pixel dimensions.
func (a *StencilAttachment) Size() texture.Size {
	if a.Texture == nil {
		return texture.Size{}
	}
	return a.Texture.Size()
}

// Load applies the attachment's load action.
func (a *StencilAttachment) Load() {
	if a.LoadAction == LoadClear && a.Texture != nil {
		a.Texture.Clear(a.ClearStencil)
	}
}

// Store applies the attachment's store action (currently a no-op).
func (a *StencilAttachment) Store() {}

// RenderPass bundles the three attachments a rasterizer draws into.
type RenderPass struct {
	Color   *ColorAttachment
	Depth   *DepthAttachment
	Stencil *StencilAttachment
}

// New creates a render pass with freshly allocated attachments of the
// given size and sample count.
func New(size texture.Size, samples int) *RenderPass {
	return &RenderPass{
		Color:   NewColorAttachment(size, samples),
		Depth:   NewDepthAttachment(size, samples),
		Stencil: NewStencilAttachment(size, samples),
	}
}

// Resize reallocates all three attachments for the given size and sample
// count.
func (p *RenderPass) Resize(size texture.Size, samples int) {
	p.Color.Resize(size, samples)
	p.Depth.Resize(size, samples)
	p.Stencil.Resize(size, samples)
}

// SetSampleCount updates all three attachments' sample count in place.
func (p *RenderPass) SetSampleCount(samples int) {
	p.Color.SetSampleCount(samples)
	p.Depth.SetSampleCount(samples)
	p.Stencil.SetSampleCount(samples)
}

// Size returns the color attachment's pixel dimensions, or the zero Size
// if the pass has no valid color attachment.
func (p *RenderPass) Size() texture.Size {
	if p.Color == nil {
		return texture.Size{}
	}
	return p.Color.Size()
}

// IsValid reports whether all three attachments are individually valid and
// share the same pixel dimensions.
func (p *RenderPass) IsValid() bool {
	if !p.Color.IsValid() || !p.Depth.IsValid() || !p.Stencil.IsValid() {
		return false
	}
	size := p.Color.Size()
	return p.Depth.Size() == size && p.Stencil.Size() == size
}

// Begin applies the load action of every attachment.
func (p *RenderPass) Begin() {
	p.Color.Load()
	p.Depth.Load()
	p.Stencil.Load()
}

// End applies the store action of every attachment.
func (p *RenderPass) End() {
	p.Color.Store()
	p.Depth.Store()
	p.Stencil.Store()
}
