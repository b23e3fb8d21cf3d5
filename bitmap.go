package octquant

import (
	"fmt"
	"image"
	"image/color"
)

// Bitmap is a 32 bit BGRA pixel buffer. Row y starts at Pix[y*Stride].
type Bitmap struct {
	Pix    []byte
	Stride int
	Width  int
	Height int
}

// NewBitmap allocates a zeroed (fully transparent) w x h bitmap with a tight
// stride.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{
		Pix:    make([]byte, 4*w*h),
		Stride: 4 * w,
		Width:  w,
		Height: h,
	}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *Bitmap) PixOffset(x, y int) int {
	return y*b.Stride + x*4
}

// At returns the pixel at (x, y).
func (b *Bitmap) At(x, y int) Pixel {
	return PixelAt(b.Pix, b.PixOffset(x, y))
}

// Set writes the pixel at (x, y).
func (b *Bitmap) Set(x, y int, p Pixel) {
	p.Put(b.Pix, b.PixOffset(x, y))
}

// Validate reports ErrBounds if the declared geometry does not fit Pix.
func (b *Bitmap) Validate() error {
	return validate(len(b.Pix), b.Width, b.Height, b.Stride, 4)
}

// Indexed is an 8 bit per pixel buffer of palette indices. Row y starts at
// Pix[y*Stride].
type Indexed struct {
	Pix     []byte
	Stride  int
	Width   int
	Height  int
	Palette Palette
}

// NewIndexed allocates a w x h indexed buffer with a tight stride.
func NewIndexed(w, h int) *Indexed {
	return &Indexed{
		Pix:    make([]byte, w*h),
		Stride: w,
		Width:  w,
		Height: h,
	}
}

func (m *Indexed) PixOffset(x, y int) int {
	return y*m.Stride + x
}

// ColorIndexAt returns the palette index of the pixel at (x, y).
func (m *Indexed) ColorIndexAt(x, y int) uint8 {
	return m.Pix[m.PixOffset(x, y)]
}

// Validate reports ErrBounds if the declared geometry does not fit Pix.
func (m *Indexed) Validate() error {
	return validate(len(m.Pix), m.Width, m.Height, m.Stride, 1)
}

// Paletted returns an image.Paletted sharing m's pixel storage.
func (m *Indexed) Paletted() *image.Paletted {
	return &image.Paletted{
		Pix:     m.Pix,
		Stride:  m.Stride,
		Rect:    image.Rect(0, 0, m.Width, m.Height),
		Palette: m.Palette.ColorPalette(),
	}
}

func validate(n, w, h, stride, bpp int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrBounds, w, h)
	}
	if w == 0 || h == 0 {
		return nil
	}
	if stride < w*bpp {
		return fmt.Errorf("%w: stride %d shorter than row of %d pixels", ErrBounds, stride, w)
	}
	if need := (h-1)*stride + w*bpp; n < need {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBounds, need, n)
	}
	return nil
}

// FromImage converts img to a BGRA bitmap with straight (non-premultiplied)
// alpha. The bitmap origin is img.Bounds().Min.
func FromImage(img image.Image) *Bitmap {
	r := img.Bounds()
	bm := NewBitmap(r.Dx(), r.Dy())
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < bm.Height; y++ {
			row := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):]
			for x := 0; x < bm.Width; x++ {
				s := row[x*4 : x*4+4 : x*4+4]
				bm.Set(x, y, Pixel{B: s[2], G: s[1], R: s[0], A: s[3]})
			}
		}
		return bm
	}
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			bm.Set(x, y, Pixel{B: c.B, G: c.G, R: c.R, A: c.A})
		}
	}
	return bm
}
