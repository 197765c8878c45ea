package sft

import (
	stdcolor "image/color"

	"github.com/chinmaygarde/sft-sub000/internal/blend"
)

// Color is a premultiplied-alpha float32 RGBA color, the unit shaders,
// attachments and the blend stage all operate on: R/G/B are already scaled
// by A. The blend presets built by BlendDescriptorForMode only composite
// correctly on premultiplied input. RGB, Gray, Hex's forms without an alpha
// digit and the named colors other than Transparent produce opaque, alpha-1
// colors, for which straight and premultiplied values coincide. Hex's forms
// with an alpha digit return R/G/B as written, not scaled by alpha; call
// RGBA4 directly with already premultiplied channels when alpha is less
// than 1.
type Color = blend.RGBA

// ToStdColor converts c to the standard image/color.Color interface.
// stdcolor.NRGBA expects straight alpha, so c is unpremultiplied first.
func ToStdColor(c Color) stdcolor.Color {
	s := c.Unpremultiply()
	return stdcolor.NRGBA{
		R: clamp255(s.R * 255),
		G: clamp255(s.G * 255),
		B: clamp255(s.B * 255),
		A: clamp255(s.A * 255),
	}
}

// FromStdColor converts a standard image/color.Color to a Color. RGBA
// already returns alpha-premultiplied channels, so no conversion beyond
// normalizing to [0, 1] is needed.
func FromStdColor(c stdcolor.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: float32(r) / 0xffff,
		G: float32(g) / 0xffff,
		B: float32(b) / 0xffff,
		A: float32(a) / 0xffff,
	}
}

// RGB creates an opaque color from RGB components in [0, 1].
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA4 creates a color from RGBA components in [0, 1].
func RGBA4(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque gray color, matching the reference
// implementation's Color::Gray helper.
func Gray(v float32) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// Hex creates a color from a hex string. Supports "RGB", "RGBA", "RRGGBB"
// and "RRGGBBAA" forms, with or without a leading '#'.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return Color{A: 1}
	}

	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		}
	}
}

func clamp255(x float32) uint8 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

// A representative subset of the CSS/X11 named colors: enough to write
// readable color literals in tests and demos without reproducing all ~150.
var (
	Black             = RGB(0, 0, 0)
	White             = RGB(1, 1, 1)
	Red               = RGB(1, 0, 0)
	Green             = RGB(0, 1, 0)
	Blue              = RGB(0, 0, 1)
	Yellow            = RGB(1, 1, 0)
	Cyan              = RGB(0, 1, 1)
	Magenta           = RGB(1, 0, 1)
	Transparent       = RGBA4(0, 0, 0, 0)
	CornflowerBlue    = Hex("6495ED")
	YellowGreen       = Hex("9ACD32")
	Orange            = Hex("FFA500")
	Gray50            = Gray(0.5)
)
