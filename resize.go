package octquant

import (
	"image"

	"golang.org/x/image/draw"

	"git.sr.ht/~rockorager/octquant/log"
)

// Fit scales img down to fit within maxW x maxH pixels, keeping its aspect
// ratio. Images that already fit are returned unchanged; images are never
// upscaled. A non-positive bound leaves that dimension unconstrained.
func Fit(img image.Image, maxW int, maxH int) image.Image {
	wPix := img.Bounds().Dx()
	hPix := img.Bounds().Dy()
	if (maxW <= 0 || wPix <= maxW) && (maxH <= 0 || hPix <= maxH) {
		return img
	}
	// calculate scale factors
	sf := 1.0
	if maxW > 0 && wPix > maxW {
		sf = float64(maxW) / float64(wPix)
	}
	if maxH > 0 && hPix > maxH {
		if sfY := float64(maxH) / float64(hPix); sfY < sf {
			sf = sfY
		}
	}
	newPixelWidth := int(sf * float64(wPix))
	newPixelHeight := int(sf * float64(hPix))
	if newPixelWidth < 1 {
		newPixelWidth = 1
	}
	if newPixelHeight < 1 {
		newPixelHeight = 1
	}
	log.Debug("resizing image from (%d x %d) to (%d x %d)", wPix, hPix, newPixelWidth, newPixelHeight)
	dst := image.NewNRGBA(image.Rect(0, 0, newPixelWidth, newPixelHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	return dst
}
