package quant

// Color is an 8-bit RGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Palette is an ordered list of representative colors.
type Palette []Color

// Swatch is a palette color together with the number of sampled pixels it
// represents.
type Swatch struct {
	Color
	Population int `json:"population"`
}

// buildPalette converts final boxes into swatches, preserving box order.
func buildPalette(boxes []*colorBox) []Swatch {
	swatches := make([]Swatch, 0, len(boxes))
	for _, b := range boxes {
		swatches = append(swatches, Swatch{Color: b.average(), Population: b.population})
	}
	return swatches
}

// Quantize extracts at most maxColors colors from buf using DefaultOptions.
//
// quality is the sampling stride in pixels: 1 reads every pixel, 10 reads
// every tenth. See QuantizeWithOptions for the error contract.
//
// Colors are bucketed at Options.SignificantBits per channel before
// splitting, so distinct colors that share a bucket come back as a single
// averaged entry. With the default 5 bits, {128,64,32} and {129,64,32}
// yield one color. Raise SignificantBits to 8 to keep them apart.
func Quantize(buf PixelBuffer, quality int, maxColors uint8) (Palette, error) {
	return QuantizeWithOptions(buf, quality, maxColors, DefaultOptions())
}

// QuantizeWithOptions is Quantize with an explicit filtering and splitting
// policy.
//
// Returns:
//   - Palette: at most maxColors colors, in the order their boxes became
//     final. Fewer colors are returned when the image does not have enough
//     distinct buckets to split further.
//   - error: ErrUnsupportedChannelLayout, ErrBufferLengthMismatch or
//     ErrInvalidQuality for bad input, ErrInsufficientData when filtering
//     leaves no pixels.
//
// maxColors == 0 yields an empty, non-nil palette once the input validates.
func QuantizeWithOptions(buf PixelBuffer, quality int, maxColors uint8, opts Options) (Palette, error) {
	swatches, err := QuantizeSwatches(buf, quality, maxColors, opts)
	if err != nil {
		return nil, err
	}
	palette := make(Palette, len(swatches))
	for i, s := range swatches {
		palette[i] = s.Color
	}
	return palette, nil
}

// QuantizeSwatches is QuantizeWithOptions but keeps the population of each
// palette color.
func QuantizeSwatches(buf PixelBuffer, quality int, maxColors uint8, opts Options) ([]Swatch, error) {
	if err := buf.validate(quality); err != nil {
		return nil, err
	}
	if maxColors == 0 {
		return []Swatch{}, nil
	}

	opts = opts.normalized()
	samples := samplePixels(buf, quality, opts)
	root, err := buildHistogram(samples, opts)
	if err != nil {
		return nil, err
	}

	boxes := quantize(root, int(maxColors), opts.Priority)
	return buildPalette(boxes), nil
}
