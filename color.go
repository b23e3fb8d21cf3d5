package octquant

import (
	"image/color"
	"math"
)

// HSL is a color in hue, saturation, lightness form. H is in degrees
// [0,360), S and L are in [0,1].
type HSL struct {
	H float64
	S float64
	L float64
}

// HexColor returns the opaque color for a 0xRRGGBB value.
func HexColor(v uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}
}

// ToHSL converts c to HSL. Alpha is ignored.
func ToHSL(c color.Color) HSL {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	r := float64(n.R) / 255
	g := float64(n.G) / 255
	b := float64(n.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2
	if max == min {
		return HSL{L: l}
	}
	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return HSL{H: h * 60, S: s, L: l}
}

// RGBA returns the opaque color for h.
func (h HSL) RGBA() color.NRGBA {
	if h.S == 0 {
		v := to8(h.L)
		return color.NRGBA{R: v, G: v, B: v, A: 0xFF}
	}
	var q float64
	if h.L < 0.5 {
		q = h.L * (1 + h.S)
	} else {
		q = h.L + h.S - h.L*h.S
	}
	p := 2*h.L - q
	hue := math.Mod(h.H, 360) / 360
	if hue < 0 {
		hue++
	}
	return color.NRGBA{
		R: to8(hueToRGB(p, q, hue+1.0/3)),
		G: to8(hueToRGB(p, q, hue)),
		B: to8(hueToRGB(p, q, hue-1.0/3)),
		A: 0xFF,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Lighten raises the lightness of c by amount, a fraction in [0,1]. The alpha
// of c is kept.
func Lighten(c color.Color, amount float64) color.NRGBA {
	return adjustLightness(c, amount)
}

// Darken lowers the lightness of c by amount, a fraction in [0,1]. The alpha
// of c is kept.
func Darken(c color.Color, amount float64) color.NRGBA {
	return adjustLightness(c, -amount)
}

func adjustLightness(c color.Color, delta float64) color.NRGBA {
	a := color.NRGBAModel.Convert(c).(color.NRGBA).A
	h := ToHSL(c)
	h.L = clamp01(h.L + delta)
	out := h.RGBA()
	out.A = a
	return out
}
