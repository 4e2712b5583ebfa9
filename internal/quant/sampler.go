package quant

import (
	"fmt"
	"math"
)

// Layout describes how channels are interleaved in a PixelBuffer.
type Layout int

const (
	// LayoutRGB8 is 3 bytes per pixel: r, g, b.
	LayoutRGB8 Layout = iota + 1

	// LayoutRGBA8 is 4 bytes per pixel: r, g, b, a (non-premultiplied).
	LayoutRGBA8
)

// Channels returns the bytes per pixel, or 0 for an unknown layout.
func (l Layout) Channels() int {
	switch l {
	case LayoutRGB8:
		return 3
	case LayoutRGBA8:
		return 4
	default:
		return 0
	}
}

func (l Layout) String() string {
	switch l {
	case LayoutRGB8:
		return "rgb8"
	case LayoutRGBA8:
		return "rgba8"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// PixelBuffer is a row-major interleaved 8-bit pixel buffer with no
// row padding.
type PixelBuffer struct {
	Pix    []byte
	Layout Layout
	Width  int
	Height int
}

// Sample is a single sampled pixel. RGB samples carry A = 255.
type Sample struct {
	R, G, B, A uint8
}

// validate checks layout, then buffer length, then quality.
func (b PixelBuffer) validate(quality int) error {
	ch := b.Layout.Channels()
	if ch == 0 {
		return fmt.Errorf("%w: %v", ErrUnsupportedChannelLayout, b.Layout)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrBufferLengthMismatch, b.Width, b.Height)
	}
	if b.Width > 0 && b.Height > math.MaxInt/ch/b.Width {
		return fmt.Errorf("%w: %dx%d %v overflows the addressable size",
			ErrBufferLengthMismatch, b.Width, b.Height, b.Layout)
	}
	if want := b.Width * b.Height * ch; len(b.Pix) != want {
		return fmt.Errorf("%w: %dx%d %v needs %d bytes, got %d",
			ErrBufferLengthMismatch, b.Width, b.Height, b.Layout, want, len(b.Pix))
	}
	if quality < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidQuality, quality)
	}
	return nil
}

// samplePixels reads every quality-th pixel of an already validated buffer
// and applies the filter policy of opts:
//
//   - RGBA pixels with alpha below opts.AlphaThreshold are dropped.
//   - With opts.IgnoreNearWhite, pixels whose r, g and b are all above
//     opts.WhiteThreshold are dropped.
func samplePixels(b PixelBuffer, quality int, opts Options) []Sample {
	ch := b.Layout.Channels()
	n := b.Width * b.Height
	samples := make([]Sample, 0, n/quality+1)

	for i := 0; i < n; i += quality {
		off := i * ch
		s := Sample{R: b.Pix[off], G: b.Pix[off+1], B: b.Pix[off+2], A: 255}
		if ch == 4 {
			s.A = b.Pix[off+3]
			if s.A < opts.AlphaThreshold {
				continue
			}
		}
		if opts.IgnoreNearWhite && isNearWhite(s, opts.WhiteThreshold) {
			continue
		}
		samples = append(samples, s)
	}
	return samples
}

func isNearWhite(s Sample, threshold uint8) bool {
	return s.R > threshold && s.G > threshold && s.B > threshold
}
