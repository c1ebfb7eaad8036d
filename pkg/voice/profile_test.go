package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/voice-spectra/pkg/dsp/spectral"
)

// bandSpectrogram builds a synthetic spectrogram with constant energy
// between the given bin bounds, zero elsewhere
func bandSpectrogram(frames, bins, fromBin, toBin int, energy float64) *spectral.Spectrogram {
	magnitude := make([][]float64, frames)
	for i := range magnitude {
		row := make([]float64, bins)
		for j := fromBin; j < toBin && j < bins; j++ {
			row[j] = energy
		}
		magnitude[i] = row
	}
	return spectral.FromFrames(magnitude, 44100, bins)
}

func TestProfileEmptySpectrogram(t *testing.T) {
	pa := NewProfileAnalyzer()

	_, err := pa.Analyze(nil)
	assert.Error(t, err, "Nil spectrogram should error")

	_, err = pa.Analyze(spectral.FromFrames(nil, 44100, 128))
	assert.Error(t, err, "Empty spectrogram should error")
}

func TestProfileDeepVoice(t *testing.T) {
	pa := NewProfileAnalyzer()

	// 44100 Hz over 128 bins puts ~172 Hz per bin; bin 0 sits below 300 Hz
	spec := bandSpectrogram(10, 128, 0, 1, 0.8)

	profile, err := pa.Analyze(spec)
	require.NoError(t, err)

	assert.Equal(t, "deep", profile.Label)
	assert.Greater(t, profile.Warmth, 0.5)
	assert.Greater(t, profile.LowEnergy, 0.0)
	assert.Zero(t, profile.MidEnergy)
	assert.Zero(t, profile.HighEnergy)
}

func TestProfileBrightVoice(t *testing.T) {
	pa := NewProfileAnalyzer()

	// Energy only well above 2 kHz
	spec := bandSpectrogram(10, 128, 40, 128, 0.6)

	profile, err := pa.Analyze(spec)
	require.NoError(t, err)

	assert.Equal(t, "bright", profile.Label)
	assert.Greater(t, profile.Brightness, 0.35)
	assert.Zero(t, profile.LowEnergy)
}

func TestProfileBalancedVoice(t *testing.T) {
	pa := NewProfileAnalyzer()

	// Uniform energy across all bins: each band averages the same
	spec := bandSpectrogram(10, 128, 0, 128, 0.5)

	profile, err := pa.Analyze(spec)
	require.NoError(t, err)

	assert.Equal(t, "balanced", profile.Label)
	assert.InDelta(t, 1.0/3.0, profile.Warmth, 1e-9)
	assert.InDelta(t, 1.0/3.0, profile.Brightness, 1e-9)
}

func TestProfileQuietRecording(t *testing.T) {
	pa := NewProfileAnalyzer()

	spec := bandSpectrogram(10, 128, 0, 0, 0)

	profile, err := pa.Analyze(spec)
	require.NoError(t, err)

	assert.Equal(t, "quiet", profile.Label)
	assert.Zero(t, profile.Warmth)
	assert.Zero(t, profile.Brightness)
	assert.NotEmpty(t, profile.Description)
}

func TestProfileRatiosSumToOne(t *testing.T) {
	pa := NewProfileAnalyzer()

	spec := bandSpectrogram(5, 128, 0, 64, 0.4)

	profile, err := pa.Analyze(spec)
	require.NoError(t, err)

	total := profile.LowEnergy + profile.MidEnergy + profile.HighEnergy
	require.Greater(t, total, 0.0)

	midRatio := profile.MidEnergy / total
	assert.InDelta(t, 1.0, profile.Warmth+midRatio+profile.Brightness, 1e-9,
		"Band ratios should partition the total energy")
}
