// Command octquant reduces images to an adaptive palette of at most 255
// colors using an octree quantizer.
//
// Usage:
//
//	octquant quant [options] <input>   quantize to PNG, GIF or an index file
//	octquant sixel [options] <input>   quantize and print to the terminal as SIXEL
//	octquant info <input>              print image format and dimensions
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"

	"github.com/lmittmann/tint"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"

	"git.sr.ht/~rockorager/octquant"
	"git.sr.ht/~rockorager/octquant/indexfile"
	"git.sr.ht/~rockorager/octquant/internal/termsize"
	"git.sr.ht/~rockorager/octquant/log"
	"git.sr.ht/~rockorager/octquant/octreequant"
)

var formats = []string{"png", "gif", "oqix"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "quant":
		err = runQuant(os.Args[2:], os.Stdout)
	case "sixel":
		err = runSixel(os.Args[2:], os.Stdout)
	case "info":
		err = runInfo(os.Args[2:], os.Stdout)
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "octquant: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "octquant: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  octquant quant [options] <input>   Quantize to PNG, GIF or an index file (.oqix)
  octquant sixel [options] <input>   Quantize and print to the terminal as SIXEL
  octquant info <input>              Print image format and dimensions

Inputs may be PNG, JPEG, GIF, BMP, TIFF or WebP. Use "-" to read from stdin.

Run "octquant <command> -h" for command-specific options.
`)
}

func setupLogging(verbose bool) {
	if !verbose {
		return
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		AddSource:  true,
		Level:      log.LevelTrace,
		TimeFormat: "15:04:05.000",
	})
	log.SetLogger(slog.New(handler))
}

// openInput returns an io.ReadCloser for the given path.
// If path is "-", stdin is returned.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func decodeInput(path string) (image.Image, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	log.Debug("decoded %s image %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// paletted quantizes img. With dither set the octree only chooses the
// palette and pixels are mapped with Floyd-Steinberg error diffusion.
func paletted(q *octreequant.Quantizer, img image.Image, dither bool) (*image.Paletted, error) {
	if !dither {
		return q.Image(img)
	}
	b := img.Bounds()
	pi := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, 256), img))
	draw.FloydSteinberg.Draw(pi, b, img, b.Min)
	return pi, nil
}

// --- quant ---

func runQuant(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("quant", flag.ContinueOnError)
	colors := fs.Int("colors", 255, "maximum palette colors 1-255")
	bits := fs.Int("bits", 8, "significant bits per channel 1-8")
	skip := fs.Bool("skip-transparent", false, "keep fully transparent pixels out of the palette")
	dither := fs.Bool("dither", false, "map pixels with Floyd-Steinberg dithering")
	format := fs.String("f", "", "output format: png/gif/oqix (default: from output extension)")
	output := fs.String("o", "", `output path (default: <input>.<format>, "-" for stdout)`)
	verbose := fs.Bool("v", false, "verbose logging to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("quant: missing input file\nUsage: octquant quant [options] <input>")
	}
	setupLogging(*verbose)
	inputPath := fs.Arg(0)

	f := strings.ToLower(*format)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(*output)), ".")
	}
	if f == "" {
		f = "png"
	}
	if !slices.Contains(formats, f) {
		return fmt.Errorf("quant: unknown format %q (use %s)", f, strings.Join(formats, "/"))
	}
	if f == "oqix" && *dither {
		return fmt.Errorf("quant: dithering is not supported for oqix output")
	}

	q, err := octreequant.New(*colors, *bits)
	if err != nil {
		return err
	}
	q.SkipTransparent = *skip

	img, err := decodeInput(inputPath)
	if err != nil {
		return err
	}

	outPath := *output
	if outPath == "" {
		if inputPath == "-" {
			outPath = "-"
		} else {
			outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + f
		}
	}
	var w io.Writer = stdout
	if outPath != "-" {
		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}

	switch f {
	case "oqix":
		m, err := q.QuantizeBitmap(octquant.FromImage(img))
		if err != nil {
			return err
		}
		log.Info("quantized %s to %d colors", inputPath, len(m.Palette.Colors))
		err = indexfile.Write(w, m)
		if err != nil {
			return err
		}
	default:
		pi, err := paletted(q, img, *dither)
		if err != nil {
			return err
		}
		log.Info("quantized %s to a palette of %d entries", inputPath, len(pi.Palette))
		if f == "gif" {
			err = gif.Encode(w, pi, nil)
		} else {
			err = png.Encode(w, pi)
		}
		if err != nil {
			return err
		}
	}
	if c, ok := w.(io.Closer); ok && outPath != "-" {
		return c.Close()
	}
	return nil
}

// --- sixel ---

func runSixel(args []string, stdout *os.File) error {
	fs := flag.NewFlagSet("sixel", flag.ContinueOnError)
	colors := fs.Int("colors", octquant.MaxSixelColors-1, "maximum palette colors")
	bits := fs.Int("bits", 8, "significant bits per channel 1-8")
	dither := fs.Bool("dither", false, "map pixels with Floyd-Steinberg dithering")
	width := fs.Int("width", 0, "maximum width in pixels (default: terminal width)")
	height := fs.Int("height", 0, "maximum height in pixels (default: terminal height)")
	force := fs.Bool("force", false, "write even if stdout is not a terminal")
	verbose := fs.Bool("v", false, "verbose logging to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("sixel: missing input file\nUsage: octquant sixel [options] <input>")
	}
	setupLogging(*verbose)
	if !*force && !term.IsTerminal(int(stdout.Fd())) {
		return fmt.Errorf("sixel: stdout is not a terminal (use -force)")
	}
	if *colors >= octquant.MaxSixelColors {
		return fmt.Errorf("sixel: at most %d colors", octquant.MaxSixelColors-1)
	}
	q, err := octreequant.New(*colors, *bits)
	if err != nil {
		return err
	}
	q.SkipTransparent = true

	img, err := decodeInput(fs.Arg(0))
	if err != nil {
		return err
	}
	maxW, maxH := *width, *height
	if ws, err := termsize.Get(stdout); err != nil {
		log.Debug("couldn't get terminal size: %v", err)
	} else {
		_, cellH := ws.CellSize()
		if maxW == 0 {
			maxW = ws.XPixel
		}
		if maxH == 0 && ws.YPixel > 0 {
			// leave a line for the prompt
			maxH = ws.YPixel - cellH
		}
	}
	img = octquant.Fit(img, maxW, maxH)

	pi, err := paletted(q, img, *dither)
	if err != nil {
		return err
	}
	return octquant.EncodeSixel(stdout, pi)
}

// --- info ---

func runInfo(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("info: missing input file\nUsage: octquant info <input>")
	}
	path := fs.Arg(0)
	r, err := openInput(path)
	if err != nil {
		return err
	}
	defer r.Close()
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return fmt.Errorf("info %s: %w", path, err)
	}
	_, err = fmt.Fprintf(stdout, "%s: %s %dx%d\n", path, format, cfg.Width, cfg.Height)
	return err
}
