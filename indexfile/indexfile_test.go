package indexfile

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~rockorager/octquant"
)

func TestReadWrite(t *testing.T) {
	// padded stride, which is dropped on write
	m := &octquant.Indexed{
		Pix:    make([]byte, 7*3),
		Stride: 7,
		Width:  5,
		Height: 3,
		Palette: octquant.Palette{
			Colors: []color.NRGBA{
				{R: 0x10, G: 0x20, B: 0x30, A: 0xFF},
				{R: 0xFF, G: 0xEE, B: 0xDD, A: 0xFF},
			},
			Transparent: 2,
		},
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Pix[m.PixOffset(x, y)] = uint8((x + y) % 3)
		}
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, Write(buf, m))
	assert.Equal(t, "OQIX", buf.String()[:4])

	got, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stride)
	assert.Equal(t, m.Palette, got.Palette)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			assert.Equal(t, m.ColorIndexAt(x, y), got.ColorIndexAt(x, y))
		}
	}
}

func TestReadErrors(t *testing.T) {
	valid := bytes.NewBuffer(nil)
	require.NoError(t, Write(valid, octquant.NewIndexed(4, 4)))

	tests := []struct {
		name  string
		input []byte
	}{
		{
			name:  "empty",
			input: nil,
		},
		{
			name:  "bad magic",
			input: []byte("GIF89a"),
		},
		{
			name:  "truncated",
			input: valid.Bytes()[:valid.Len()-6],
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(test.input))
			assert.Error(t, err)
		})
	}
}
