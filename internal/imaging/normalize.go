package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/palette-extract/internal/quant"
)

// Normalize converts any decoded image into the 8-bit buffer the quantizer
// accepts.
//
// Paletted, grayscale, YCbCr, CMYK and 16-bit images are all converted to
// non-premultiplied 8-bit RGBA first. Fully opaque images are then packed as
// quant.LayoutRGB8; anything with transparency stays quant.LayoutRGBA8 so the
// quantizer can apply its alpha filter.
func Normalize(img image.Image) quant.PixelBuffer {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()

	if !nrgba.Opaque() {
		return quant.PixelBuffer{Pix: nrgba.Pix, Layout: quant.LayoutRGBA8, Width: w, Height: h}
	}

	rgb := make([]byte, 0, w*h*3)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		rgb = append(rgb, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return quant.PixelBuffer{Pix: rgb, Layout: quant.LayoutRGB8, Width: w, Height: h}
}

// isOpaque reports whether img has no transparent pixels, using the
// image's own Opaque method when it has one.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

func layoutFor(hasAlpha bool) quant.Layout {
	if hasAlpha {
		return quant.LayoutRGBA8
	}
	return quant.LayoutRGB8
}
