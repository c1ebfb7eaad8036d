package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/voice-spectra/pkg/audio"
)

// sineWaveform generates a waveform of a pure sine aligned to a transform bin
func sineWaveform(samples, sampleRate, bins, bin int) *audio.Waveform {
	freq := float64(sampleRate) * float64(bin) / (2 * float64(bins))
	data := make([]float64, samples)
	for n := range data {
		data[n] = math.Sin(2 * math.Pi * freq * float64(n) / float64(sampleRate))
	}
	return audio.NewWaveform(data, sampleRate)
}

func TestBuilderValidation(t *testing.T) {
	_, err := NewBuilder(1, 256, 128)
	assert.Error(t, err, "Window size below 2 should be rejected")

	_, err = NewBuilder(1024, 0, 128)
	assert.Error(t, err, "Non-positive hop size should be rejected")

	_, err = NewBuilder(1024, 256, 0)
	assert.Error(t, err, "Non-positive bin count should be rejected")

	b, err := NewBuilder(1024, 256, 128)
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestBuildFrameCount(t *testing.T) {
	b := NewDefaultBuilder()

	tests := []struct {
		samples  int
		expected int
	}{
		{0, 0},
		{1023, 0},  // shorter than one window
		{1024, 1},  // exactly one window
		{1279, 1},  // one window plus a partial hop
		{1280, 2},  // one window plus one hop
		{44100, 169},
	}

	for _, tt := range tests {
		w := audio.NewWaveform(make([]float64, tt.samples), 44100)
		spec := b.Build(w)

		assert.Equal(t, tt.expected, spec.TimeFrames,
			"Unexpected frame count for %d samples", tt.samples)
		assert.Len(t, spec.Magnitude, tt.expected)
	}
}

func TestBuildShortWaveform(t *testing.T) {
	b := NewDefaultBuilder()
	spec := b.Build(audio.NewWaveform(make([]float64, 100), 44100))

	assert.Equal(t, 0, spec.TimeFrames, "Sub-window waveforms should yield an empty spectrogram")
	assert.Empty(t, spec.Magnitude)
	assert.Equal(t, DefaultFreqBins, spec.FreqBins, "Metadata should still be populated")
}

func TestBuildDimensionsAndMetadata(t *testing.T) {
	b := NewDefaultBuilder()
	w := sineWaveform(44100, 44100, DefaultFreqBins, 8)

	spec := b.Build(w)

	require.Equal(t, 169, spec.TimeFrames)
	for i, row := range spec.Magnitude {
		assert.Len(t, row, DefaultFreqBins, "Row %d should carry one value per bin", i)
	}

	assert.Equal(t, 44100, spec.SampleRate)
	assert.Equal(t, DefaultWindowSize, spec.WindowSize)
	assert.Equal(t, DefaultHopSize, spec.HopSize)
	assert.InDelta(t, 22050.0/128.0, spec.FreqResolution, 1e-9)
	assert.InDelta(t, 256.0/44100.0, spec.TimeResolution, 1e-9)
}

func TestBuildSilence(t *testing.T) {
	b := NewDefaultBuilder()
	spec := b.Build(audio.NewWaveform(make([]float64, 10000), 44100))

	for i, row := range spec.Magnitude {
		for j, v := range row {
			assert.Zero(t, v, "Silence should produce zero magnitude at [%d][%d]", i, j)
		}
	}
}

func TestBuildSinePeakPerFrame(t *testing.T) {
	b := NewDefaultBuilder()
	w := sineWaveform(44100, 44100, DefaultFreqBins, 8)

	spec := b.Build(w)
	require.NotZero(t, spec.TimeFrames)

	for i, row := range spec.Magnitude {
		peak := 0
		for j, v := range row {
			if v > row[peak] {
				peak = j
			}
		}
		assert.Equal(t, 8, peak, "Frame %d should peak at the sine's bin", i)
	}
}

func TestBuildOffGridSinePeak(t *testing.T) {
	b := NewDefaultBuilder()

	// A concert-pitch 440 Hz tone sits between bin centers; every windowed
	// frame should still peak at the nearest bin, 440/22050*128 = 2.55 -> 3
	data := make([]float64, 44100)
	for n := range data {
		data[n] = math.Sin(2 * math.Pi * 440 * float64(n) / 44100)
	}

	spec := b.Build(audio.NewWaveform(data, 44100))
	require.NotZero(t, spec.TimeFrames)

	for i, row := range spec.Magnitude {
		peak := 0
		for j, v := range row {
			if v > row[peak] {
				peak = j
			}
		}
		assert.Equal(t, 3, peak, "Frame %d should round 440 Hz to bin 3", i)
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	b := NewDefaultBuilder()
	w := sineWaveform(4*44100, 44100, DefaultFreqBins, 8)

	sequential := b.Build(w)
	parallel := b.BuildParallel(w)

	require.Equal(t, sequential.TimeFrames, parallel.TimeFrames)
	for i := range sequential.Magnitude {
		assert.InDeltaSlice(t, sequential.Magnitude[i], parallel.Magnitude[i], 1e-12,
			"Parallel frame %d should match the sequential result", i)
	}
}

func TestBuildParallelEmptyWaveform(t *testing.T) {
	b := NewDefaultBuilder()
	spec := b.BuildParallel(audio.NewWaveform(nil, 44100))

	assert.Equal(t, 0, spec.TimeFrames)
	assert.Empty(t, spec.Magnitude)
}

func TestFromFrames(t *testing.T) {
	frames := [][]float64{
		{0.1, 0.2},
		{0.3, 0.4},
		{0.5, 0.6},
	}

	spec := FromFrames(frames, 44100, 2)

	assert.Equal(t, 3, spec.TimeFrames)
	assert.Equal(t, 2, spec.FreqBins)
	assert.Equal(t, 44100, spec.SampleRate)
	assert.Equal(t, frames, spec.Magnitude)
	assert.InDelta(t, 22050.0/2.0, spec.FreqResolution, 1e-9)
}
