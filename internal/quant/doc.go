// Package quant extracts a small representative color palette from raw pixel data.
//
// The package implements median cut color quantization over a coarse 3-D
// histogram. It accepts only 8-bit RGB or RGBA interleaved buffers; decoding
// image files and converting other pixel formats is the caller's job (see
// the imaging package).
//
// # Pipeline
//
// A call to Quantize runs four stages in order:
//
//  1. Sampling: every Q-th pixel is read and near-transparent (and optionally
//     near-white) pixels are dropped.
//  2. Histogram: sampled channels are right-shifted to SignificantBits and
//     accumulated into sparse buckets holding a population and channel sums.
//     A single root box spans the populated range.
//  3. Median cut: the highest-priority box is split along its longest axis at
//     the population median until maxColors boxes exist or nothing can split.
//  4. Palette: each final box contributes its population-weighted average.
//
// # Determinism
//
// A run is a pure function of its inputs and Options. Buckets are kept in
// first-appearance order, box priority ties go to the box queued first, and
// the palette is emitted in the order boxes became final. Running Quantize
// twice on the same input yields the same palette in the same order, with or
// without partitioned histogram workers.
//
// # Priority
//
// PriorityPopulation (the default) always splits the most populated box.
// PriorityPopulationVolume weights population by the box volume in bucket
// space, which favors wide sparse regions. The choice changes which parts of
// color space receive more palette entries.
//
// # Errors
//
// Invalid input is reported with ErrUnsupportedChannelLayout,
// ErrBufferLengthMismatch or ErrInvalidQuality. ErrInsufficientData means the
// filters left no pixels at all. Use errors.Is to classify. Requesting zero
// colors is not an error and yields an empty palette.
package quant
