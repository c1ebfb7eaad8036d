package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaveformLen(t *testing.T) {
	w := NewWaveform(make([]float64, 44100), 44100)
	assert.Equal(t, 44100, w.Len())

	empty := NewWaveform(nil, 44100)
	assert.Equal(t, 0, empty.Len())
}

func TestWaveformDuration(t *testing.T) {
	w := NewWaveform(make([]float64, 22050), 44100)
	assert.Equal(t, 500*time.Millisecond, w.Duration())

	zeroRate := NewWaveform(make([]float64, 100), 0)
	assert.Zero(t, zeroRate.Duration(), "Zero sample rate should not divide by zero")
}
