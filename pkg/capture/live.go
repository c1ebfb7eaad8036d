package capture

import (
	"fmt"
	"math/cmplx"

	"github.com/RyanBlaney/voice-spectra/pkg/dsp/spectral"
	"github.com/RyanBlaney/voice-spectra/pkg/dsp/windowing"
)

// DefaultFFTSize is the live-path FFT size; the live spectrum carries
// FFTSize/2 bins. This intentionally differs from the offline bin count:
// the two paths are configured independently and are not directly
// comparable without resampling.
const DefaultFFTSize = 2048

// LiveAnalyzer converts short raw PCM chunks into magnitude spectra for the
// rolling live view. Chunks shorter than the FFT size are zero-padded;
// longer chunks are truncated.
type LiveAnalyzer struct {
	fftSize int
	fft     *spectral.FFT
	window  *windowing.Hamming
}

// NewLiveAnalyzer creates an analyzer for the given FFT size
func NewLiveAnalyzer(fftSize int) (*LiveAnalyzer, error) {
	if fftSize < 2 {
		return nil, fmt.Errorf("fft size must be at least 2, got %d", fftSize)
	}
	if fftSize%2 != 0 {
		return nil, fmt.Errorf("fft size must be even, got %d", fftSize)
	}

	return &LiveAnalyzer{
		fftSize: fftSize,
		fft:     spectral.NewFFT(),
		window:  windowing.NewHamming(fftSize),
	}, nil
}

// Bins returns the number of frequency bins per live spectrum
func (a *LiveAnalyzer) Bins() int {
	return a.fftSize / 2
}

// AnalyzeChunk computes the magnitude spectrum of one PCM chunk. Output
// values are in [0, 1] after the same gain and clamp applied by the offline
// transform; non-finite magnitudes degrade to 0.
func (a *LiveAnalyzer) AnalyzeChunk(chunk []float64) []float64 {
	buf := make([]float64, a.fftSize)
	copy(buf, chunk)

	// Buffer length always matches the window, so this cannot fail
	_ = a.window.ApplyInPlace(buf)

	full := a.fft.Compute(buf)

	bins := a.fftSize / 2
	spectrum := make([]float64, bins)
	for i := 0; i < bins; i++ {
		spectrum[i] = spectral.NormalizeMagnitude(cmplx.Abs(full[i]), a.fftSize)
	}

	return spectrum
}
