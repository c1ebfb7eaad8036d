package render

import (
	"math"
	"sort"
)

const (
	// lowPercentile and highPercentile bound the visible dynamic range.
	// Voice recordings carry a long tail of one or two very loud frames that
	// would wash out quieter structure under linear min/max scaling;
	// clamping to the percentile range keeps contrast in the typical range
	// at the cost of saturating rare outliers.
	lowPercentile  = 0.05
	highPercentile = 0.95
)

// DynamicRangeNormalizer maps a magnitude matrix into [0, 1] visual
// intensities using global percentile clamping and a square-root curve
type DynamicRangeNormalizer struct {
	low  float64
	high float64
}

// NewDynamicRangeNormalizer creates a normalizer with the standard
// 5th/95th percentile bounds
func NewDynamicRangeNormalizer() *DynamicRangeNormalizer {
	return &DynamicRangeNormalizer{
		low:  lowPercentile,
		high: highPercentile,
	}
}

// Normalize converts a magnitude matrix into intensities in [0, 1].
// Non-positive values map to 0. When no positive values exist (silence),
// the whole output is 0. When the percentile bounds coincide (constant
// signal) the denominator is treated as 1, which also yields 0.
func (n *DynamicRangeNormalizer) Normalize(magnitude [][]float64) [][]float64 {
	normalized := make([][]float64, len(magnitude))

	var positives []float64
	for _, row := range magnitude {
		for _, v := range row {
			if v > 0 {
				positives = append(positives, v)
			}
		}
	}

	if len(positives) == 0 {
		for i, row := range magnitude {
			normalized[i] = make([]float64, len(row))
		}
		return normalized
	}

	sort.Float64s(positives)
	p5 := percentileValue(positives, n.low)
	p95 := percentileValue(positives, n.high)

	denom := p95 - p5
	if denom == 0 {
		denom = 1
	}

	for i, row := range magnitude {
		normalized[i] = make([]float64, len(row))
		for j, v := range row {
			if v <= 0 {
				continue
			}

			clamped := v
			if clamped < p5 {
				clamped = p5
			}
			if clamped > p95 {
				clamped = p95
			}

			// Square-root curve boosts low-intensity visibility
			normalized[i][j] = math.Sqrt((clamped - p5) / denom)
		}
	}

	return normalized
}

// percentileValue returns the value at the given percentile of a sorted
// slice using the floor(count*percentile) index convention, falling back to
// the raw extremes when the index lands outside the slice
func percentileValue(sorted []float64, percentile float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * percentile))
	if idx < 0 {
		return sorted[0]
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[idx]
}
