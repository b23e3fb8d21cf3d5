package octquant

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixel(t *testing.T) {
	buf := []byte{0xAA, 0x01, 0x02, 0x03, 0x04, 0xBB}
	p := PixelAt(buf, 1)
	assert.Equal(t, Pixel{B: 0x01, G: 0x02, R: 0x03, A: 0x04}, p)
	assert.Equal(t, uint32(0x04030201), p.Uint32())
	assert.Equal(t, p, PixelFromUint32(p.Uint32()))

	out := make([]byte, 6)
	p.Put(out, 2)
	assert.Equal(t, []byte{0, 0, 0x01, 0x02, 0x03, 0x04}, out)
}

func TestPixelEquality(t *testing.T) {
	a := Pixel{B: 1, G: 2, R: 3, A: 0}
	b := Pixel{B: 1, G: 2, R: 3, A: 1}
	assert.NotEqual(t, a.Uint32(), b.Uint32())
	b.A = 0
	assert.Equal(t, a.Uint32(), b.Uint32())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		bm   Bitmap
		ok   bool
	}{
		{
			name: "tight",
			bm:   Bitmap{Pix: make([]byte, 24), Stride: 12, Width: 3, Height: 2},
			ok:   true,
		},
		{
			name: "last row unpadded",
			bm:   Bitmap{Pix: make([]byte, 28), Stride: 16, Width: 3, Height: 2},
			ok:   true,
		},
		{
			name: "zero height",
			bm:   Bitmap{Width: 3},
			ok:   true,
		},
		{
			name: "one byte short",
			bm:   Bitmap{Pix: make([]byte, 27), Stride: 16, Width: 3, Height: 2},
		},
		{
			name: "stride too small",
			bm:   Bitmap{Pix: make([]byte, 100), Stride: 11, Width: 3, Height: 2},
		},
		{
			name: "negative width",
			bm:   Bitmap{Width: -3, Height: 2},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.bm.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrBounds)
			}
		})
	}
}

func TestFromImage(t *testing.T) {
	t.Run("nrgba", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		img.SetNRGBA(2, 3, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40})
		bm := FromImage(img.SubImage(image.Rect(1, 1, 4, 4)))
		assert.Equal(t, 3, bm.Width)
		assert.Equal(t, 3, bm.Height)
		assert.Equal(t, Pixel{B: 0x30, G: 0x20, R: 0x10, A: 0x40}, bm.At(1, 2))
		assert.Equal(t, Pixel{}, bm.At(0, 0))
	})

	t.Run("premultiplied", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		img.SetRGBA(0, 0, color.RGBA{R: 0x80, A: 0x80})
		bm := FromImage(img)
		assert.Equal(t, Pixel{R: 0xFF, A: 0x80}, bm.At(0, 0))
	})

	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 1))
		img.SetGray(1, 0, color.Gray{Y: 0x7F})
		bm := FromImage(img)
		assert.Equal(t, Pixel{B: 0x7F, G: 0x7F, R: 0x7F, A: 0xFF}, bm.At(1, 0))
	})
}

func TestIndexedPaletted(t *testing.T) {
	m := NewIndexed(3, 2)
	m.Palette = Palette{
		Colors:      []color.NRGBA{{R: 0xFF, A: 0xFF}},
		Transparent: 3,
	}
	m.Pix[m.PixOffset(2, 1)] = 3
	pi := m.Paletted()
	require.Len(t, pi.Palette, 4)
	assert.Equal(t, image.Rect(0, 0, 3, 2), pi.Bounds())
	assert.Equal(t, uint8(3), pi.ColorIndexAt(2, 1))
	assert.Equal(t, color.NRGBA{}, pi.At(2, 1))
	assert.Equal(t, color.NRGBA{R: 0xFF, A: 0xFF}, pi.At(0, 0))

	pi.SetColorIndex(0, 1, 2)
	assert.Equal(t, uint8(2), m.ColorIndexAt(0, 1))
}

func TestPalette(t *testing.T) {
	p := Palette{
		Colors: []color.NRGBA{
			{R: 1, A: 0xFF},
			{G: 2, A: 0xFF},
		},
		Transparent: 2,
	}
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, color.Palette{
		color.NRGBA{R: 1, A: 0xFF},
		color.NRGBA{G: 2, A: 0xFF},
		color.NRGBA{},
	}, p.ColorPalette())

	p.Transparent = 4
	cp := p.ColorPalette()
	assert.Len(t, cp, 5)
	assert.Equal(t, color.NRGBA{}, p.Color(3))
}
