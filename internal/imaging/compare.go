package imaging

import (
	"fmt"
	"math"
)

// SimilarDeltaE is the population-weighted average CIEDE2000 difference at
// or below which two palettes are reported as similar.
const SimilarDeltaE = 5.0

// ColorMatch pairs a color of the first palette with its nearest color in
// the second.
type ColorMatch struct {
	From   string  `json:"from"`    // Hex of the color in the first palette
	To     string  `json:"to"`      // Hex of the nearest color in the second
	DeltaE float64 `json:"delta_e"` // CIEDE2000 difference (0 = identical, ~100 = opposite)
}

// PaletteComparison summarizes how far one palette is from another.
type PaletteComparison struct {
	Matches       []ColorMatch `json:"matches"`
	AverageDeltaE float64      `json:"average_delta_e"` // Weighted by population of the first palette
	MaxDeltaE     float64      `json:"max_delta_e"`
	Similar       bool         `json:"similar"`
}

// ComparePalettes matches every color of a to its perceptually nearest color
// in b. The comparison is directional: a palette that is a subset of
// another scores as similar one way only.
func ComparePalettes(a, b []PaletteColor) (*PaletteComparison, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("cannot compare empty palettes (%d and %d colors)", len(a), len(b))
	}

	total := 0
	for _, c := range a {
		total += c.Population
	}

	result := &PaletteComparison{Matches: make([]ColorMatch, 0, len(a))}
	var weighted float64
	for _, ca := range a {
		from := toColorful(ca.quantColor())

		best, bestDist := 0, math.Inf(1)
		for j, cb := range b {
			if d := from.DistanceCIEDE2000(toColorful(cb.quantColor())); d < bestDist {
				best, bestDist = j, d
			}
		}

		deltaE := bestDist * 100
		result.Matches = append(result.Matches, ColorMatch{
			From:   ca.Hex,
			To:     b[best].Hex,
			DeltaE: math.Round(deltaE*100) / 100,
		})
		result.MaxDeltaE = math.Max(result.MaxDeltaE, deltaE)

		if total > 0 {
			weighted += deltaE * float64(ca.Population) / float64(total)
		} else {
			weighted += deltaE / float64(len(a))
		}
	}

	result.AverageDeltaE = math.Round(weighted*100) / 100
	result.MaxDeltaE = math.Round(result.MaxDeltaE*100) / 100
	result.Similar = weighted <= SimilarDeltaE
	return result, nil
}
