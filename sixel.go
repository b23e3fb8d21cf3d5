package octquant

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/mattn/go-sixel"

	"git.sr.ht/~rockorager/octquant/internal/pool"
)

// MaxSixelColors is the largest palette, including the transparent slot,
// that the sixel encoder accepts as is. Larger palettes are requantized by
// the encoder.
const MaxSixelColors = 254

var sixelBuffers = pool.New(func() *bytes.Buffer {
	return bytes.NewBuffer(nil)
})

// EncodeSixel writes img to w as a SIXEL image.
func EncodeSixel(w io.Writer, img *image.Paletted) error {
	if len(img.Palette) > MaxSixelColors {
		return fmt.Errorf("sixel: palette of %d colors exceeds %d", len(img.Palette), MaxSixelColors)
	}
	buf := sixelBuffers.Get()
	buf.Reset()
	defer sixelBuffers.Put(buf)
	if err := sixel.NewEncoder(buf).Encode(img); err != nil {
		return fmt.Errorf("sixel: %w", err)
	}
	// Foot requires that we set the P2 parameter = 1 in order to
	// enable transparency. This doesn't seem to affect other sixel
	// based terminals
	b := buf.Bytes()
	if len(b) > 4 {
		b[4] = 0x31
	}
	_, err := w.Write(b)
	return err
}
