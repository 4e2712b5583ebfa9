// Command palette prints the dominant colors of an image, one per line.
//
// Usage:
//
//	palette [flags] <image_path> <num_colors>
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ironsheep/palette-extract/internal/imaging"
	"github.com/ironsheep/palette-extract/internal/logging"
	"github.com/ironsheep/palette-extract/internal/quant"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	quality        int
	alpha          int
	ignoreWhite    bool
	whiteThreshold int
	bits           int
	priority       string
	workers        int
	maxDim         int
	format         string
	swatchOut      string
	version        bool
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [flags] <image_path> <num_colors>\n", fs.Name())
	fmt.Fprintln(w, "  <image_path>: path to the image file")
	fmt.Fprintln(w, "  <num_colors>: number of colors in the palette (must be a valid u8)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	fs.IntVar(&cfg.quality, "quality", imaging.DefaultQuality,
		"Sampling stride: every Nth pixel is considered (1 = all pixels)")
	fs.IntVar(&cfg.alpha, "alpha", 125,
		"Skip pixels whose alpha is below this value (0-255)")
	fs.BoolVar(&cfg.ignoreWhite, "ignore-white", false,
		"Skip near-white pixels")
	fs.IntVar(&cfg.whiteThreshold, "white-threshold", 250,
		"A pixel is near-white when r, g and b all exceed this value")
	fs.IntVar(&cfg.bits, "bits", 5,
		"Significant bits per channel used for color buckets (1-8)")
	fs.StringVar(&cfg.priority, "priority", "population",
		"Box split priority: population or volume")
	fs.IntVar(&cfg.workers, "workers", 1,
		"Goroutines used to build the color histogram")
	fs.IntVar(&cfg.maxDim, "max-dim", 0,
		"Downscale so neither side exceeds this many pixels (0 = off)")
	fs.StringVar(&cfg.format, "format", "hex",
		"Output format: hex, css, json or swatch")
	fs.StringVar(&cfg.swatchOut, "swatch-out", "",
		"Also write the palette as a labeled swatch strip to this image file")
	fs.BoolVar(&cfg.version, "version", false,
		"Print version information")
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, fs)
			return 0
		}
		printUsage(stderr, fs)
		return 1
	}

	if cfg.version {
		fmt.Fprintf(stdout, "palette %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}

	logger := logging.FromEnv(stderr)

	if fs.NArg() != 2 {
		fmt.Fprintf(stderr, "Error: wrong number of arguments. Expected 2, got %d\n", fs.NArg())
		printUsage(stdout, fs)
		return 1
	}
	imagePath := fs.Arg(0)

	numColors, err := strconv.ParseUint(fs.Arg(1), 10, 8)
	if err != nil {
		fmt.Fprintln(stderr, "Error: second argument must be a valid u8")
		return 1
	}

	opts, err := cfg.paletteOptions(uint8(numColors))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := os.Stat(imagePath); err != nil {
		fmt.Fprintf(stderr, "Error: failed to open file %s\n", imagePath)
		return 1
	}

	start := time.Now()
	img, err := imaging.NewImageCache().Load(imagePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open image file: %v\n", err)
		return 1
	}
	b := img.Bounds()
	logger.Debug("decoded image", "path", imagePath, "width", b.Dx(), "height", b.Dy(),
		"elapsed", time.Since(start))

	start = time.Now()
	result, err := imaging.ExtractPalette(img, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to get palette: %v\n", err)
		return 1
	}
	logger.Debug("extracted palette", "colors", len(result.Colors), "layout", result.Layout,
		"elapsed", time.Since(start))

	if err := writePalette(stdout, cfg.format, result); err != nil {
		logger.Error("failed to write palette", "err", err)
		return 1
	}

	if cfg.swatchOut != "" && len(result.Colors) > 0 {
		err := imaging.SaveSwatches(cfg.swatchOut, result.Colors, imaging.SwatchOptions{
			Proportional: true,
			Labels:       true,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		logger.Info("wrote swatches", "path", cfg.swatchOut)
	}
	return 0
}

// paletteOptions validates the flag values and maps them onto
// imaging.PaletteOptions.
func (c config) paletteOptions(count uint8) (imaging.PaletteOptions, error) {
	opts := imaging.DefaultPaletteOptions()
	opts.Count = count

	if c.quality < 1 {
		return opts, fmt.Errorf("-quality must be at least 1, got %d", c.quality)
	}
	opts.Quality = c.quality

	if c.alpha < 0 || c.alpha > 255 {
		return opts, fmt.Errorf("-alpha must be between 0 and 255, got %d", c.alpha)
	}
	if c.whiteThreshold < 0 || c.whiteThreshold > 255 {
		return opts, fmt.Errorf("-white-threshold must be between 0 and 255, got %d", c.whiteThreshold)
	}
	if c.bits < 1 || c.bits > 8 {
		return opts, fmt.Errorf("-bits must be between 1 and 8, got %d", c.bits)
	}
	if c.maxDim < 0 {
		return opts, fmt.Errorf("-max-dim must not be negative, got %d", c.maxDim)
	}
	switch c.format {
	case "hex", "css", "json", "swatch":
	default:
		return opts, fmt.Errorf("unknown format %q (valid: hex, css, json, swatch)", c.format)
	}

	priority, err := quant.ParsePriority(c.priority)
	if err != nil {
		return opts, err
	}

	opts.MaxDimension = c.maxDim
	opts.Quant.AlphaThreshold = uint8(c.alpha)
	opts.Quant.IgnoreNearWhite = c.ignoreWhite
	opts.Quant.WhiteThreshold = uint8(c.whiteThreshold)
	opts.Quant.SignificantBits = c.bits
	opts.Quant.Priority = priority
	opts.Quant.Workers = c.workers
	return opts, nil
}

// writePalette prints result in the requested format. Swatches fall back to
// hex when w is not a terminal.
func writePalette(w io.Writer, format string, result *imaging.PaletteResult) error {
	if format == "swatch" && !logging.IsTerminal(w) {
		format = "hex"
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Colors)
	}

	for _, c := range result.Palette() {
		var line string
		switch format {
		case "css":
			line = imaging.FormatCSS(c)
		case "swatch":
			line = imaging.FormatANSISwatch(c)
		default:
			line = imaging.FormatHex(c)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
