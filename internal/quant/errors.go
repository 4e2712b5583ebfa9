package quant

import "errors"

var (
	// ErrBufferLengthMismatch means the pixel buffer length does not equal
	// width × height × channels for the declared layout.
	ErrBufferLengthMismatch = errors.New("buffer length mismatch")

	// ErrUnsupportedChannelLayout means the buffer is not 8-bit RGB or RGBA.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")

	// ErrInsufficientData means no pixel survived sampling and filtering.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidQuality means the sampling stride was less than 1.
	ErrInvalidQuality = errors.New("invalid quality")
)

// errUnsplittable is returned by split for boxes that occupy a single bucket.
// The quantizer treats it as "this box is final" and never returns it.
var errUnsplittable = errors.New("box cannot be split")
