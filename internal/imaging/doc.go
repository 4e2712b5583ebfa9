// Package imaging turns image files into palettes.
//
// It owns everything around the quantizer that touches real images:
// decoding files, caching decoded images, converting arbitrary pixel formats
// into the 8-bit RGB/RGBA buffers package quant accepts, cropping and
// downscaling, and formatting palette colors for display.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Format Normalization
//
// The quantizer never reinterprets bytes. Normalize converts paletted,
// grayscale, YCbCr, CMYK and 16-bit images to 8-bit non-premultiplied RGBA
// and drops the alpha channel for fully opaque images. 16-bit channels are
// reduced to their high byte.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and can run concurrently on different images.
//
// # Color Representation
//
// Palette colors are reported as:
//   - Hex: 6 uppercase hex digits "RRGGBB" (the CLI default)
//   - CSS: lowercase "#rrggbb"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-359), Saturation (0-100), Lightness (0-100)
//
// RenderSwatches draws a palette as a horizontal strip, and ComparePalettes
// matches two palettes by CIEDE2000 distance.
//
// # Error Handling
//
// Decode failures wrap ErrDecode so callers can report them separately from
// quantization failures, which wrap the sentinel errors of package quant.
package imaging
