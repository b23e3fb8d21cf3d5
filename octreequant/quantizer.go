package octreequant

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"git.sr.ht/~rockorager/octquant"
)

// Quantizer binds the octree to the two-pass driver. A Quantizer holds only
// configuration; every quantization builds a fresh Octree, so one Quantizer
// may be reused.
type Quantizer struct {
	maxColors    int
	maxColorBits int

	// SkipTransparent keeps pixels with zero alpha out of the tree so they
	// do not take up palette entries. They still map to the transparent
	// index.
	SkipTransparent bool
}

var _ draw.Quantizer = (*Quantizer)(nil)

// New returns a quantizer producing at most maxColors palette colors, plus a
// transparent slot at index maxColors. maxColors must be in [1,255] and
// maxColorBits, the number of significant bits examined per channel, in
// [1,8].
func New(maxColors int, maxColorBits int) (*Quantizer, error) {
	if maxColors < 1 || maxColors > 255 {
		return nil, fmt.Errorf("%w: %d", octquant.ErrMaxColors, maxColors)
	}
	if maxColorBits < 1 || maxColorBits > 8 {
		return nil, fmt.Errorf("%w: %d", octquant.ErrMaxColorBits, maxColorBits)
	}
	return &Quantizer{
		maxColors:    maxColors,
		maxColorBits: maxColorBits,
	}, nil
}

func (q *Quantizer) MaxColors() int {
	return q.maxColors
}

func (q *Quantizer) MaxColorBits() int {
	return q.maxColorBits
}

// Algorithm returns the state for one quantization run.
func (q *Quantizer) Algorithm() octquant.Algorithm {
	return q.newRun(q.maxColors)
}

func (q *Quantizer) newRun(maxColors int) *run {
	return &run{
		tree:      NewOctree(q.maxColorBits),
		maxColors: maxColors,
		skip:      q.SkipTransparent,
	}
}

// QuantizeBitmap quantizes src into a newly allocated indexed buffer.
func (q *Quantizer) QuantizeBitmap(src *octquant.Bitmap) (*octquant.Indexed, error) {
	return octquant.Quantize(q.Algorithm(), src)
}

// Image quantizes img into a paletted image with the same bounds.
func (q *Quantizer) Image(img image.Image) (*image.Paletted, error) {
	m, err := q.QuantizeBitmap(octquant.FromImage(img))
	if err != nil {
		return nil, err
	}
	pi := m.Paletted()
	pi.Rect = pi.Rect.Add(img.Bounds().Min)
	return pi, nil
}

// Quantize implements draw.Quantizer. It appends at most cap(p)-len(p)
// colors to p: the octree colors followed by a transparent entry.
func (q *Quantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	n := cap(p) - len(p) - 1
	if n > q.maxColors {
		n = q.maxColors
	}
	if n < 1 {
		return p
	}
	s := octquant.NewSession(q.newRun(n))
	if err := s.FirstPass(octquant.FromImage(m)); err != nil {
		// FromImage always produces a valid bitmap
		panic(err)
	}
	palette, err := s.BuildPalette()
	if err != nil {
		panic(err)
	}
	for _, c := range palette.Colors {
		p = append(p, c)
	}
	return append(p, color.NRGBA{})
}

// Paletted quantizes an image and returns a paletted image whose palette,
// transparent slot included, has at most the specified number of entries.
// colors is clamped to [2,256]. Eight bits per channel are examined.
func Paletted(img image.Image, colors int) *image.Paletted {
	if colors < 2 {
		colors = 2
	}
	if colors > 256 {
		colors = 256
	}
	q, err := New(colors-1, 8)
	if err != nil {
		panic(err)
	}
	pi, err := q.Image(img)
	if err != nil {
		// every pixel of the second pass was added in the first
		panic(err)
	}
	return pi
}

// run is the per-quantization state handed to the driver.
type run struct {
	tree      *Octree
	maxColors int
	skip      bool
}

func (r *run) TwoPass() bool {
	return true
}

func (r *run) InitialQuantizePixel(p octquant.Pixel) {
	if r.skip && p.A == 0 {
		return
	}
	r.tree.AddColor(p)
}

func (r *run) Palette() octquant.Palette {
	return r.tree.BuildPalette(r.maxColors)
}

func (r *run) QuantizePixel(p octquant.Pixel) (uint8, error) {
	if p.A == 0 {
		return uint8(r.maxColors), nil
	}
	return r.tree.LookupIndex(p)
}
