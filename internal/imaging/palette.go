package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/palette-extract/internal/quant"
)

// DefaultQuality is the sampling stride used when none is given.
const DefaultQuality = 10

// PaletteOptions controls ExtractPalette.
type PaletteOptions struct {
	// Count is the maximum number of palette colors (0-255).
	Count uint8

	// Quality is the sampling stride in pixels. Zero selects DefaultQuality.
	Quality int

	// Region restricts extraction to part of the image. Nil means the
	// whole image.
	Region *Region

	// MaxDimension downscales the image (after cropping) so neither side
	// exceeds it. Zero disables downscaling.
	MaxDimension int

	// Quant holds the filtering and splitting policy.
	Quant quant.Options
}

// DefaultPaletteOptions returns options for a five color palette with the
// quantizer defaults.
func DefaultPaletteOptions() PaletteOptions {
	return PaletteOptions{
		Count:   5,
		Quality: DefaultQuality,
		Quant:   quant.DefaultOptions(),
	}
}

// PaletteResult is the outcome of ExtractPalette.
//
// Colors are in quantizer order (the order boxes became final), not sorted
// by population.
type PaletteResult struct {
	Colors       []PaletteColor `json:"colors"`
	SampleWidth  int            `json:"sample_width"`  // Width of the pixel buffer quantized
	SampleHeight int            `json:"sample_height"` // Height of the pixel buffer quantized
	Layout       string         `json:"layout"`        // "rgb8" or "rgba8"
}

// Palette returns just the colors of the result.
func (r *PaletteResult) Palette() quant.Palette {
	p := make(quant.Palette, len(r.Colors))
	for i, c := range r.Colors {
		p[i] = c.quantColor()
	}
	return p
}

// ExtractPalette computes the color palette of img.
//
// The pipeline is: optional crop to opts.Region, optional downscale to
// opts.MaxDimension, normalization to 8-bit RGB/RGBA, then quantization.
//
// Returns:
//   - *PaletteResult: up to opts.Count colors with population shares.
//   - error: region validation errors, or quantizer errors (classify with
//     errors.Is against quant.ErrInsufficientData and friends).
func ExtractPalette(img image.Image, opts PaletteOptions) (*PaletteResult, error) {
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}

	if opts.Region != nil {
		cropped, err := Crop(img, *opts.Region)
		if err != nil {
			return nil, err
		}
		img = cropped
	}
	img = Downscale(img, opts.MaxDimension)

	buf := Normalize(img)
	swatches, err := quant.QuantizeSwatches(buf, opts.Quality, opts.Count, opts.Quant)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize: %w", err)
	}

	total := 0
	for _, s := range swatches {
		total += s.Population
	}
	colors := make([]PaletteColor, 0, len(swatches))
	for _, s := range swatches {
		colors = append(colors, newPaletteColor(s, total))
	}

	return &PaletteResult{
		Colors:       colors,
		SampleWidth:  buf.Width,
		SampleHeight: buf.Height,
		Layout:       buf.Layout.String(),
	}, nil
}
