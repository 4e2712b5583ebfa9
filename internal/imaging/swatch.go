package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
)

// SwatchOptions controls RenderSwatches.
type SwatchOptions struct {
	// Width and Height of the strip in pixels. Zero selects 256x32.
	Width  int
	Height int

	// Proportional sizes each block by its population share instead of
	// giving every color the same width.
	Proportional bool

	// Labels draws each color's hex code in its block when it fits.
	Labels bool
}

// SwatchImageResult is a rendered swatch strip encoded for transport.
type SwatchImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

const (
	defaultSwatchWidth  = 256
	defaultSwatchHeight = 32
)

// RenderSwatches draws colors left to right as a horizontal strip.
func RenderSwatches(colors []PaletteColor, opts SwatchOptions) (*image.NRGBA, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("no colors to render")
	}
	if opts.Width == 0 {
		opts.Width = defaultSwatchWidth
	}
	if opts.Height == 0 {
		opts.Height = defaultSwatchHeight
	}
	if opts.Width < len(colors) || opts.Height < 1 {
		return nil, fmt.Errorf("swatch size %dx%d too small for %d colors", opts.Width, opts.Height, len(colors))
	}

	canvas := imaging.New(opts.Width, opts.Height, color.NRGBA{0, 0, 0, 255})
	edges := blockEdges(colors, opts.Width, opts.Proportional)

	for i, c := range colors {
		block := image.Rect(edges[i], 0, edges[i+1], opts.Height)
		fill := color.NRGBA{c.RGB.R, c.RGB.G, c.RGB.B, 255}
		draw.Draw(canvas, block, &image.Uniform{C: fill}, image.Point{}, draw.Src)

		if opts.Labels && block.Dx() >= labelWidth(c.Hex)+4 && opts.Height >= labelHeight+4 {
			fg, bg := labelColors(c)
			drawLabel(canvas, block.Min.X+2, 2, c.Hex, fg, bg)
		}
	}
	return canvas, nil
}

// EncodeSwatches renders colors and encodes the strip as base64 PNG.
func EncodeSwatches(colors []PaletteColor, opts SwatchOptions) (*SwatchImageResult, error) {
	img, err := RenderSwatches(colors, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &SwatchImageResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveSwatches renders colors and writes the strip to path. The format is
// taken from the file extension.
func SaveSwatches(path string, colors []PaletteColor, opts SwatchOptions) error {
	img, err := RenderSwatches(colors, opts)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save swatches: %w", err)
	}
	return nil
}

// blockEdges returns len(colors)+1 x positions. Every block is at least one
// pixel wide and the last edge is always width.
func blockEdges(colors []PaletteColor, width int, proportional bool) []int {
	n := len(colors)
	edges := make([]int, n+1)

	total := 0
	for _, c := range colors {
		total += c.Population
	}
	if !proportional || total == 0 {
		for i := range edges {
			edges[i] = i * width / n
		}
		return edges
	}

	// Reserve one pixel per block, spread the rest by population.
	spare := width - n
	cum := 0
	for i, c := range colors {
		cum += c.Population
		edges[i+1] = (i + 1) + cum*spare/total
	}
	return edges
}

// labelColors picks black text on light colors and white text on dark ones.
func labelColors(c PaletteColor) (fg, bg color.NRGBA) {
	if c.HSL.L > 55 {
		return color.NRGBA{0, 0, 0, 255}, color.NRGBA{255, 255, 255, 255}
	}
	return color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 255}
}

const (
	charWidth   = 4
	labelHeight = 6
)

func labelWidth(text string) int {
	return len(text) * charWidth
}

// 3x5 pixel glyphs for hex digits
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'A': {"010", "101", "111", "101", "101"},
	'B': {"110", "101", "110", "101", "110"},
	'C': {"011", "100", "100", "100", "011"},
	'D': {"110", "101", "101", "101", "110"},
	'E': {"111", "100", "110", "100", "111"},
	'F': {"111", "100", "110", "100", "100"},
}

// drawLabel draws text with its top-left corner at (x, y) over a backing
// rectangle. Pixels outside img are clipped.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	bounds := img.Bounds()
	set := func(px, py int, c color.NRGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetNRGBA(px, py, c)
		}
	}

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth(text); dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' {
					set(cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
