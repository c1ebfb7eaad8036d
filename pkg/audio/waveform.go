package audio

import (
	"time"
)

// Waveform holds one channel of captured audio samples.
// Samples are semantically in the range [-1, 1]. A Waveform is created once
// per completed recording and treated as immutable afterwards.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// NewWaveform creates a waveform from raw samples
func NewWaveform(samples []float64, sampleRate int) *Waveform {
	return &Waveform{
		Samples:    samples,
		SampleRate: sampleRate,
	}
}

// Len returns the number of samples
func (w *Waveform) Len() int {
	return len(w.Samples)
}

// Duration returns the playback duration of the waveform
func (w *Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}
