package octquant

import (
	"fmt"

	"git.sr.ht/~rockorager/octquant/log"
)

// Algorithm is a palette algorithm driven by a Session. An Algorithm value
// holds the state of a single quantization run.
type Algorithm interface {
	// TwoPass reports whether every source pixel must be fed to
	// InitialQuantizePixel before Palette is called.
	TwoPass() bool
	// InitialQuantizePixel accumulates one pixel during the first pass.
	InitialQuantizePixel(Pixel)
	// Palette finalizes and returns the palette. It is called exactly once,
	// between the two passes.
	Palette() Palette
	// QuantizePixel maps a pixel to a palette index during the second pass.
	QuantizePixel(Pixel) (uint8, error)
}

// State is the position of a Session in the quantization sequence.
type State int

const (
	Created State = iota
	FirstPass
	PaletteBuilt
	SecondPass
	Done
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case FirstPass:
		return "first pass"
	case PaletteBuilt:
		return "palette built"
	case SecondPass:
		return "second pass"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session drives one Algorithm through a single quantization run:
// FirstPass (when the algorithm needs it), BuildPalette, then SecondPass.
type Session struct {
	alg     Algorithm
	state   State
	palette Palette
}

func NewSession(alg Algorithm) *Session {
	return &Session{alg: alg}
}

// State returns the current state of the session.
func (s *Session) State() State {
	return s.state
}

// FirstPass feeds every pixel of src to the algorithm.
func (s *Session) FirstPass(src *Bitmap) error {
	if s.state != Created {
		return fmt.Errorf("%w: first pass in state %s", ErrState, s.state)
	}
	if err := src.Validate(); err != nil {
		return err
	}
	log.Trace("first pass over %dx%d bitmap", src.Width, src.Height)
	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		off := y * src.Stride
		for x := 0; x < w; x++ {
			s.alg.InitialQuantizePixel(PixelAt(src.Pix, off))
			off += 4
		}
	}
	s.state = FirstPass
	return nil
}

// BuildPalette finalizes the palette. For two pass algorithms it must follow
// FirstPass.
func (s *Session) BuildPalette() (Palette, error) {
	switch {
	case s.state == FirstPass:
	case s.state == Created && !s.alg.TwoPass():
	default:
		return Palette{}, fmt.Errorf("%w: build palette in state %s", ErrState, s.state)
	}
	s.palette = s.alg.Palette()
	s.state = PaletteBuilt
	log.Trace("palette built with %d colors", len(s.palette.Colors))
	return s.palette, nil
}

// SecondPass maps every pixel of src to a palette index in dst. dst must have
// the same dimensions as src; its stride is independent.
func (s *Session) SecondPass(dst *Indexed, src *Bitmap) error {
	if s.state != PaletteBuilt {
		return fmt.Errorf("%w: second pass in state %s", ErrState, s.state)
	}
	if err := src.Validate(); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	if dst.Width != src.Width || dst.Height != src.Height {
		return fmt.Errorf("%w: destination %dx%d does not match source %dx%d",
			ErrBounds, dst.Width, dst.Height, src.Width, src.Height)
	}
	s.state = SecondPass
	log.Trace("second pass over %dx%d bitmap", src.Width, src.Height)
	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		var (
			prev   uint32
			cached bool
			index  uint8
		)
		off := y * src.Stride
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range row {
			p := PixelAt(src.Pix, off)
			off += 4
			if v := p.Uint32(); !cached || v != prev {
				var err error
				index, err = s.alg.QuantizePixel(p)
				if err != nil {
					return fmt.Errorf("pixel (%d,%d): %w", x, y, err)
				}
				prev = v
				cached = true
			}
			row[x] = index
		}
	}
	dst.Palette = s.palette
	s.state = Done
	return nil
}

// Quantize runs alg over src and returns a newly allocated indexed buffer
// with a tight stride.
func Quantize(alg Algorithm, src *Bitmap) (*Indexed, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	dst := NewIndexed(src.Width, src.Height)
	if err := QuantizeInto(alg, dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// QuantizeInto runs alg over src, writing indices into the caller owned dst.
func QuantizeInto(alg Algorithm, dst *Indexed, src *Bitmap) error {
	s := NewSession(alg)
	if alg.TwoPass() {
		if err := s.FirstPass(src); err != nil {
			return err
		}
	}
	if _, err := s.BuildPalette(); err != nil {
		return err
	}
	return s.SecondPass(dst, src)
}
