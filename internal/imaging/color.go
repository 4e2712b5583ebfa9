package imaging

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/palette-extract/internal/quant"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
//
// HSL is reported for display only; quantization works on raw RGB.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// PaletteColor is one palette entry in every representation the front-ends
// print.
type PaletteColor struct {
	Hex        string   `json:"hex"`        // Uppercase "RRGGBB"
	CSS        string   `json:"css"`        // Lowercase "#rrggbb"
	RGB        RGBColor `json:"rgb"`        // RGB components
	HSL        HSLColor `json:"hsl"`        // HSL representation
	Population int      `json:"population"` // Sampled pixels represented by this color
	Percentage float64  `json:"percentage"` // Share of sampled pixels (0-100)
}

// FormatHex formats c as six uppercase hex digits without a prefix, e.g.
// "FF8040".
func FormatHex(c quant.Color) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// FormatCSS formats c as a lowercase CSS hex color, e.g. "#ff8040".
func FormatCSS(c quant.Color) string {
	return toColorful(c).Hex()
}

// FormatANSISwatch renders a two-cell 24-bit background block in color c
// followed by its hex code. Only meaningful on a truecolor terminal.
func FormatANSISwatch(c quant.Color) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm    \x1b[0m %s", c.R, c.G, c.B, FormatHex(c))
}

// ToHSL converts c to rounded HSL.
func ToHSL(c quant.Color) HSLColor {
	h, s, l := toColorful(c).Hsl()
	hue := int(math.Round(h)) % 360
	return HSLColor{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

func (c PaletteColor) quantColor() quant.Color {
	return quant.Color{R: c.RGB.R, G: c.RGB.G, B: c.RGB.B}
}

func toColorful(c quant.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// newPaletteColor describes swatch s, whose population is a share of total
// sampled pixels.
func newPaletteColor(s quant.Swatch, total int) PaletteColor {
	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(s.Population)/float64(total)*1000) / 10
	}
	return PaletteColor{
		Hex:        FormatHex(s.Color),
		CSS:        FormatCSS(s.Color),
		RGB:        RGBColor{R: s.R, G: s.G, B: s.B},
		HSL:        ToHSL(s.Color),
		Population: s.Population,
		Percentage: pct,
	}
}
