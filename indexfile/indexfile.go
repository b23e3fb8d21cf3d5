// Package indexfile reads and writes quantized images in a small compressed
// container: the palette followed by the raw index rows.
//
// A file starts with the magic "OQIX". Everything after it is a single zstd
// stream holding a version byte, the width and height as big-endian uint32,
// the transparent index, the color count as a big-endian uint16, one RGB
// triple per color and finally Height rows of Width index bytes.
package indexfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/klauspost/compress/zstd"

	"git.sr.ht/~rockorager/octquant"
	"git.sr.ht/~rockorager/octquant/internal/pool"
)

const (
	magic   = "OQIX"
	version = 1

	// maxPixels bounds the size of a decoded image.
	maxPixels = 400_000_000
)

// ErrFormat is returned when the input is not a valid index file.
var ErrFormat = errors.New("indexfile: invalid format")

var encoders = pool.New(func() *zstd.Encoder {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		panic(err)
	}
	return enc
})

// Write encodes m to w.
func Write(w io.Writer, m *octquant.Indexed) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if len(m.Palette.Colors) > 256 {
		return fmt.Errorf("indexfile: palette of %d colors", len(m.Palette.Colors))
	}
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	enc := encoders.Get()
	enc.Reset(w)
	defer encoders.Put(enc)
	bw := bufio.NewWriter(enc)
	hdr := make([]byte, 0, 12)
	hdr = append(hdr, version)
	hdr = binary.BigEndian.AppendUint32(hdr, uint32(m.Width))
	hdr = binary.BigEndian.AppendUint32(hdr, uint32(m.Height))
	hdr = append(hdr, m.Palette.Transparent)
	hdr = binary.BigEndian.AppendUint16(hdr, uint16(len(m.Palette.Colors)))
	bw.Write(hdr)
	for _, c := range m.Palette.Colors {
		bw.Write([]byte{c.R, c.G, c.B})
	}
	for y := 0; y < m.Height; y++ {
		off := m.PixOffset(0, y)
		bw.Write(m.Pix[off : off+m.Width])
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("zstd encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd encode: %w", err)
	}
	return nil
}

// Read decodes an index file from r. The returned buffer has a tight stride.
func Read(r io.Reader) (*octquant.Indexed, error) {
	var m [len(magic)]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if string(m[:]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, m[:])
	}
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	defer dec.Close()

	var hdr [12]byte
	if _, err := io.ReadFull(dec, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}
	if hdr[0] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, hdr[0])
	}
	w := int(binary.BigEndian.Uint32(hdr[1:5]))
	h := int(binary.BigEndian.Uint32(hdr[5:9]))
	if w < 0 || h < 0 || (h != 0 && w > maxPixels/h) {
		return nil, fmt.Errorf("%w: image too large (%dx%d)", ErrFormat, w, h)
	}
	n := int(binary.BigEndian.Uint16(hdr[10:12]))
	if n > 256 {
		return nil, fmt.Errorf("%w: palette of %d colors", ErrFormat, n)
	}
	rgb := make([]byte, 3*n)
	if _, err := io.ReadFull(dec, rgb); err != nil {
		return nil, fmt.Errorf("%w: palette: %v", ErrFormat, err)
	}
	out := octquant.NewIndexed(w, h)
	out.Palette.Transparent = hdr[9]
	out.Palette.Colors = make([]color.NRGBA, n)
	for i := range out.Palette.Colors {
		out.Palette.Colors[i] = color.NRGBA{R: rgb[3*i], G: rgb[3*i+1], B: rgb[3*i+2], A: 0xFF}
	}
	if _, err := io.ReadFull(dec, out.Pix); err != nil {
		return nil, fmt.Errorf("%w: pixels: %v", ErrFormat, err)
	}
	return out, nil
}
