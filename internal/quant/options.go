package quant

import "fmt"

// Priority selects how the quantizer ranks boxes waiting to be split.
type Priority int

const (
	// PriorityPopulation splits the box holding the most samples first.
	PriorityPopulation Priority = iota

	// PriorityPopulationVolume splits the box with the largest
	// population × volume product first, volume measured in buckets.
	PriorityPopulationVolume
)

// String returns the flag/JSON name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityPopulation:
		return "population"
	case PriorityPopulationVolume:
		return "volume"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority maps "population" or "volume" to a Priority.
// The empty string selects PriorityPopulation.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "", "population":
		return PriorityPopulation, nil
	case "volume", "population-volume":
		return PriorityPopulationVolume, nil
	default:
		return 0, fmt.Errorf("unknown priority %q (valid: population, volume)", s)
	}
}

const (
	defaultAlphaThreshold  = 125
	defaultWhiteThreshold  = 250
	defaultSignificantBits = 5
	maxWorkers             = 64
)

// Options tunes the filtering and splitting policy of a quantization run.
//
// The zero value is usable but disables alpha filtering; start from
// DefaultOptions to get the documented defaults.
type Options struct {
	// AlphaThreshold drops RGBA pixels whose alpha is below it.
	// Ignored for RGB buffers.
	AlphaThreshold uint8 `json:"alpha_threshold"`

	// IgnoreNearWhite drops pixels whose r, g and b all exceed WhiteThreshold.
	IgnoreNearWhite bool `json:"ignore_near_white"`

	// WhiteThreshold is the per-channel cutoff used by IgnoreNearWhite.
	WhiteThreshold uint8 `json:"white_threshold"`

	// SignificantBits is the number of high bits per channel kept when
	// bucketing, 1 to 8. Zero selects the default of 5.
	SignificantBits int `json:"significant_bits"`

	// Priority picks the box splitting heuristic.
	Priority Priority `json:"priority"`

	// Workers partitions histogram construction across goroutines.
	// Values of 1 or less build sequentially. Output is identical either way.
	Workers int `json:"workers"`
}

// DefaultOptions returns the options used by Quantize.
//
// Pixels with alpha below 125 are dropped, near-white pixels are kept,
// buckets use 5 bits per channel and boxes are ranked by population.
func DefaultOptions() Options {
	return Options{
		AlphaThreshold:  defaultAlphaThreshold,
		IgnoreNearWhite: false,
		WhiteThreshold:  defaultWhiteThreshold,
		SignificantBits: defaultSignificantBits,
		Priority:        PriorityPopulation,
		Workers:         1,
	}
}

func (o Options) normalized() Options {
	n := o
	if n.SignificantBits <= 0 {
		n.SignificantBits = defaultSignificantBits
	}
	n.SignificantBits = clampInt(n.SignificantBits, 1, 8)

	if n.Priority != PriorityPopulationVolume {
		n.Priority = PriorityPopulation
	}

	n.Workers = clampInt(n.Workers, 1, maxWorkers)
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
