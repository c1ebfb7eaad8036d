package spectral

import (
	"math"
)

const (
	// DefaultFreqBins is the bin count for offline spectrogram analysis
	DefaultFreqBins = 128

	// MagnitudeGain is an empirical visual gain applied to every magnitude.
	// It brings typical voice-signal magnitudes into a useful display range
	// and is a tunable constant, not a physical quantity.
	MagnitudeGain = 10.0
)

// FrameTransform converts one windowed time-domain frame into a magnitude
// spectrum across a fixed number of frequency bins. Bin f covers the center
// frequency (f/bins) * Nyquist, so the bins span DC up to half the sample
// rate. This is a direct (non-fast) transform; bin count is independent of
// the frame length.
type FrameTransform struct {
	bins int
}

// NewFrameTransform creates a transform producing the given number of bins
func NewFrameTransform(bins int) *FrameTransform {
	if bins <= 0 {
		bins = DefaultFreqBins
	}
	return &FrameTransform{bins: bins}
}

// Bins returns the number of frequency bins produced per frame
func (ft *FrameTransform) Bins() int {
	return ft.bins
}

// Compute produces the magnitude spectrum of a windowed frame.
// Deterministic: the same frame always yields the same output. All output
// values are in [0, 1] after gain and clamping; non-finite magnitudes
// degrade to 0 so downstream rendering never sees NaN or Inf.
func (ft *FrameTransform) Compute(frame []float64) []float64 {
	spectrum := make([]float64, ft.bins)

	n := len(frame)
	if n == 0 {
		return spectrum
	}

	for f := 0; f < ft.bins; f++ {
		// Angular step for bin f: -2*pi * f/(2*bins) per sample,
		// placing bin centers on a linear DC..Nyquist grid
		omega := -math.Pi * float64(f) / float64(ft.bins)

		var re, im float64
		for t := 0; t < n; t++ {
			angle := omega * float64(t)
			re += frame[t] * math.Cos(angle)
			im += frame[t] * math.Sin(angle)
		}

		spectrum[f] = NormalizeMagnitude(math.Sqrt(re*re+im*im), n)
	}

	return spectrum
}

// NormalizeMagnitude scales a raw accumulated magnitude by frame length and
// the fixed visual gain, clamping into [0, 1]. NaN and Inf collapse to 0.
func NormalizeMagnitude(raw float64, frameLen int) float64 {
	if frameLen <= 0 {
		return 0
	}

	mag := raw / float64(frameLen) * MagnitudeGain

	if math.IsNaN(mag) || math.IsInf(mag, 0) {
		return 0
	}
	if mag < 0 {
		return 0
	}
	if mag > 1 {
		return 1
	}

	return mag
}
