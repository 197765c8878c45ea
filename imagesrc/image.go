// Package imagesrc implements the rasterizer's sampleable image source: an
// RGBA pixel buffer decoded from disk or supplied directly, addressed by a
// Sampler that applies wrap modes and nearest/bilinear filtering.
package imagesrc

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/chinmaygarde/sft-sub000/internal/blend"
	"github.com/chinmaygarde/sft-sub000/texture"
)

// WrapMode names how out-of-range texture coordinates are handled.
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapClamp
	WrapMirror
)

// FilterMode names the reconstruction filter used between texels.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// Sampler controls how an Image is addressed by shaders: its wrap modes in
// S and T, and its reconstruction filter.
type Sampler struct {
	WrapS, WrapT WrapMode
	Filter       FilterMode
}

// DefaultSampler is a repeat-wrapping, linearly-filtered sampler, the usual
// default for a freshly-loaded Image.
var DefaultSampler = Sampler{WrapS: WrapRepeat, WrapT: WrapRepeat, Filter: FilterLinear}

// Image is a sampleable, straight-alpha float32 RGBA pixel source. This is
// deliberately the opposite convention from the premultiplied Color used by
// attachments and the blend stage (see root package doc comment on Color):
// sampling and filtering a straight-alpha source avoids premultiplied color
// fringing at partially-transparent edges. A shader that both samples an
// Image and writes a blended Color must call Premultiply on the sampled
// value before returning it.
type Image struct {
	size    texture.Size
	pixels  []blend.RGBA
	sampler Sampler
}

// FromImage converts a standard library image.Image into an Image, using
// straight (non-premultiplied) float32 channels.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	size := texture.Size{Width: b.Dx(), Height: b.Dy()}
	pixels := make([]blend.RGBA, size.Width*size.Height)
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			var c blend.RGBA
			if a == 0 {
				c = blend.RGBA{}
			} else {
				c = blend.RGBA{
					R: float32(r) / float32(a),
					G: float32(g) / float32(a),
					B: float32(bl) / float32(a),
					A: float32(a) / 0xffff,
				}
			}
			pixels[y*size.Width+x] = c
		}
	}
	return &Image{size: size, pixels: pixels, sampler: DefaultSampler}
}

// Load decodes an image file (PNG or JPEG) from disk.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sft: opening image %q: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sft: decoding image %q: %w", path, err)
	}
	return FromImage(src), nil
}

// Resample returns a copy of img scaled to the given size using a
// bilinear-ish catmull-rom filter, leaving img untouched. It is used when a
// draw call's shader expects a fixed-size texture but the loaded asset is a
// different size.
func Resample(img *Image, size texture.Size) *Image {
	srcRGBA := image.NewNRGBA(image.Rect(0, 0, img.size.Width, img.size.Height))
	for y := 0; y < img.size.Height; y++ {
		for x := 0; x < img.size.Width; x++ {
			c := img.pixels[y*img.size.Width+x]
			srcRGBA.SetNRGBA(x, y, toNRGBA(c))
		}
	}
	dstRGBA := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.CatmullRom.Scale(dstRGBA, dstRGBA.Bounds(), srcRGBA, srcRGBA.Bounds(), draw.Over, nil)
	out := FromImage(dstRGBA)
	out.sampler = img.sampler
	return out
}

func toNRGBA(c blend.RGBA) (out struct{ R, G, B, A uint8 }) {
	clamp := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v * 255)
	}
	out.R, out.G, out.B, out.A = clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A)
	return
}

// Size returns the image's pixel dimensions.
func (img *Image) Size() texture.Size { return img.size }

// IsValid reports whether the image has backing pixel data.
func (img *Image) IsValid() bool { return len(img.pixels) > 0 }

// SetSampler replaces the image's sampler.
func (img *Image) SetSampler(s Sampler) { img.sampler = s }

// GetSampler returns the image's current sampler.
func (img *Image) GetSampler() Sampler { return img.sampler }

func (img *Image) texel(x, y int) blend.RGBA {
	switch img.sampler.WrapS {
	case WrapClamp:
		x = clampInt(x, 0, img.size.Width-1)
	case WrapMirror:
		x = mirrorInt(x, img.size.Width)
	default:
		x = wrapInt(x, img.size.Width)
	}
	switch img.sampler.WrapT {
	case WrapClamp:
		y = clampInt(y, 0, img.size.Height-1)
	case WrapMirror:
		y = mirrorInt(y, img.size.Height)
	default:
		y = wrapInt(y, img.size.Height)
	}
	return img.pixels[y*img.size.Width+x]
}

func wrapInt(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mirrorInt(v, n int) int {
	if n <= 0 {
		return 0
	}
	period := 2 * n
	v = wrapInt(v, period)
	if v >= n {
		v = period - 1 - v
	}
	return v
}

// Sample reads the image at normalized UV coordinates in [0, 1] x [0, 1],
// applying the image's current sampler's wrap mode and filter.
func (img *Image) Sample(u, v float32) blend.RGBA {
	fx := u*float32(img.size.Width) - 0.5
	fy := v*float32(img.size.Height) - 0.5

	if img.sampler.Filter == FilterNearest {
		return img.texel(int(fx+0.5), int(fy+0.5))
	}

	x0 := int(floor32(fx))
	y0 := int(floor32(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := img.texel(x0, y0)
	c10 := img.texel(x0+1, y0)
	c01 := img.texel(x0, y0+1)
	c11 := img.texel(x0+1, y0+1)

	top := lerpRGBA(c00, c10, tx)
	bottom := lerpRGBA(c01, c11, tx)
	return lerpRGBA(top, bottom, ty)
}

func floor32(v float32) float32 {
	i := float32(int(v))
	if v < 0 && i != v {
		i--
	}
	return i
}

func lerpRGBA(a, b blend.RGBA, t float32) blend.RGBA {
	return blend.RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
