package octquant

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHSL(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  HSL
	}{
		{
			name:  "red",
			color: color.NRGBA{R: 0xFF, A: 0xFF},
			want:  HSL{H: 0, S: 1, L: 0.5},
		},
		{
			name:  "green",
			color: color.NRGBA{G: 0xFF, A: 0xFF},
			want:  HSL{H: 120, S: 1, L: 0.5},
		},
		{
			name:  "blue",
			color: color.NRGBA{B: 0xFF, A: 0xFF},
			want:  HSL{H: 240, S: 1, L: 0.5},
		},
		{
			name:  "magenta",
			color: color.NRGBA{R: 0xFF, B: 0xFF, A: 0xFF},
			want:  HSL{H: 300, S: 1, L: 0.5},
		},
		{
			name:  "white",
			color: color.White,
			want:  HSL{L: 1},
		},
		{
			name:  "black",
			color: color.Black,
			want:  HSL{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ToHSL(test.color)
			assert.InDelta(t, test.want.H, got.H, 1e-9)
			assert.InDelta(t, test.want.S, got.S, 1e-9)
			assert.InDelta(t, test.want.L, got.L, 1e-9)
		})
	}
}

func TestHSLRoundTrip(t *testing.T) {
	colors := []color.NRGBA{
		HexColor(0x00AABB),
		HexColor(0x123456),
		HexColor(0xFF8000),
		HexColor(0x808080),
		HexColor(0xFEFEFE),
	}
	for _, c := range colors {
		assert.Equal(t, c, ToHSL(c).RGBA())
	}
}

func TestLightenDarken(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}, Lighten(color.Black, 0.5))
	assert.Equal(t, color.NRGBA{A: 0xFF}, Darken(color.White, 1))
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, Lighten(color.White, 0.2))

	red := color.NRGBA{R: 0xFF, A: 0x40}
	light := Lighten(red, 0.25)
	assert.Equal(t, uint8(0x40), light.A)
	assert.Equal(t, uint8(0xFF), light.R)
	assert.Equal(t, light.G, light.B)
	assert.Greater(t, light.G, uint8(0))
}
