package octquant

import (
	"image/color"
)

// Palette is the result of palette construction. Colors holds one opaque
// color per index, in index order. Transparent is the index reserved for
// pixels with zero alpha; it is never smaller than len(Colors).
type Palette struct {
	Colors      []color.NRGBA
	Transparent uint8
}

// Len is the number of palette entries including the transparent slot.
func (p Palette) Len() int {
	return len(p.Colors) + 1
}

// Color returns the color for index i. Indices that are not backed by a
// palette color, including the transparent slot, are fully transparent.
func (p Palette) Color(i uint8) color.NRGBA {
	if int(i) < len(p.Colors) {
		return p.Colors[i]
	}
	return color.NRGBA{}
}

// ColorPalette returns p as a color.Palette long enough to hold the
// transparent index, so any index emitted by a quantizer is valid in an
// image.Paletted. Gaps between the last color and the transparent slot are
// filled with transparent black.
func (p Palette) ColorPalette() color.Palette {
	n := len(p.Colors)
	if t := int(p.Transparent) + 1; t > n {
		n = t
	}
	cp := make(color.Palette, n)
	for i := range cp {
		cp[i] = p.Color(uint8(i))
	}
	return cp
}
