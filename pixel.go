// Package octquant converts true-color BGRA pixel buffers into 8 bit indexed
// buffers with an adaptive palette.
//
// The package holds the buffer types and the two-pass driver. The palette
// algorithm itself lives in a subpackage, see octreequant.
package octquant

// Pixel is one 32 bit pixel. In memory the channels are laid out blue, green,
// red, alpha from the lowest offset to the highest.
type Pixel struct {
	B uint8
	G uint8
	R uint8
	A uint8
}

// Uint32 packs the pixel as a little-endian 32 bit value: blue in the low
// byte, alpha in the high byte. Two pixels are equal iff their packed values
// are equal.
func (p Pixel) Uint32() uint32 {
	return uint32(p.B) | uint32(p.G)<<8 | uint32(p.R)<<16 | uint32(p.A)<<24
}

// PixelFromUint32 unpacks a value produced by Pixel.Uint32.
func PixelFromUint32(v uint32) Pixel {
	return Pixel{
		B: uint8(v),
		G: uint8(v >> 8),
		R: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// PixelAt decodes the four bytes at buf[off:off+4]. The caller guarantees the
// offset is in range.
func PixelAt(buf []byte, off int) Pixel {
	b := buf[off : off+4 : off+4]
	return Pixel{
		B: b[0],
		G: b[1],
		R: b[2],
		A: b[3],
	}
}

// Put writes the pixel to buf[off:off+4] in BGRA order.
func (p Pixel) Put(buf []byte, off int) {
	b := buf[off : off+4 : off+4]
	b[0] = p.B
	b[1] = p.G
	b[2] = p.R
	b[3] = p.A
}
