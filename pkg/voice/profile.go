package voice

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/voice-spectra/pkg/dsp/spectral"
)

const (
	// lowMaxHz bounds the low band, roughly the fundamental range of speech
	lowMaxHz = 300.0

	// midMaxHz bounds the mid band, where most vowel formant energy sits
	midMaxHz = 2000.0
)

// Profile summarizes the spectral character of a voice recording as band
// energies and two derived ratios
type Profile struct {
	Label       string  `json:"label" yaml:"label"`
	Description string  `json:"description" yaml:"description"`
	LowEnergy   float64 `json:"low_energy" yaml:"low_energy"`
	MidEnergy   float64 `json:"mid_energy" yaml:"mid_energy"`
	HighEnergy  float64 `json:"high_energy" yaml:"high_energy"`
	Brightness  float64 `json:"brightness" yaml:"brightness"`
	Warmth      float64 `json:"warmth" yaml:"warmth"`
}

// ProfileAnalyzer derives a voice Profile from a spectrogram by averaging
// magnitude energy over three frequency bands
type ProfileAnalyzer struct {
	lowMaxHz float64
	midMaxHz float64
}

// NewProfileAnalyzer creates an analyzer with the standard speech band
// boundaries (300 Hz, 2 kHz)
func NewProfileAnalyzer() *ProfileAnalyzer {
	return &ProfileAnalyzer{
		lowMaxHz: lowMaxHz,
		midMaxHz: midMaxHz,
	}
}

// Analyze computes the voice profile of a spectrogram. An empty spectrogram
// carries no usable energy and is an error.
func (pa *ProfileAnalyzer) Analyze(spec *spectral.Spectrogram) (*Profile, error) {
	if spec == nil || spec.TimeFrames == 0 || spec.FreqBins == 0 {
		return nil, fmt.Errorf("spectrogram is empty, nothing to profile")
	}

	lowBin := pa.binForFreq(spec, pa.lowMaxHz)
	midBin := pa.binForFreq(spec, pa.midMaxHz)

	var low, mid, high []float64
	for _, frame := range spec.Magnitude {
		for bin, v := range frame {
			switch {
			case bin < lowBin:
				low = append(low, v)
			case bin < midBin:
				mid = append(mid, v)
			default:
				high = append(high, v)
			}
		}
	}

	profile := &Profile{
		LowEnergy:  meanOrZero(low),
		MidEnergy:  meanOrZero(mid),
		HighEnergy: meanOrZero(high),
	}

	total := profile.LowEnergy + profile.MidEnergy + profile.HighEnergy
	if total > 0 {
		profile.Brightness = profile.HighEnergy / total
		profile.Warmth = profile.LowEnergy / total
	}

	profile.Label, profile.Description = classify(profile, total)

	return profile, nil
}

// binForFreq maps a frequency in Hz to the first bin at or above it,
// clamped to the bin range
func (pa *ProfileAnalyzer) binForFreq(spec *spectral.Spectrogram, freqHz float64) int {
	if spec.FreqResolution <= 0 {
		return 0
	}
	bin := int(freqHz / spec.FreqResolution)
	if bin > spec.FreqBins {
		bin = spec.FreqBins
	}
	return bin
}

func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// classify assigns a coarse character label from the band balance
func classify(p *Profile, total float64) (label, description string) {
	switch {
	case total < 1e-9:
		return "quiet", "Very little spectral energy; likely silence or a very soft recording"
	case p.Warmth > 0.5:
		return "deep", "Energy concentrated below 300 Hz; a deep, bass-heavy voice"
	case p.Warmth > 0.35:
		return "warm", "Strong low-frequency presence with moderate mids; a warm, full voice"
	case p.Brightness > 0.35:
		return "bright", "Pronounced energy above 2 kHz; a bright, crisp voice"
	default:
		return "balanced", "Energy spread evenly across the speech bands"
	}
}
