package analysis

import (
	"time"

	"github.com/RyanBlaney/voice-spectra/pkg/dsp/spectral"
	"github.com/RyanBlaney/voice-spectra/pkg/voice"
)

// Result holds everything one analysis run produced
type Result struct {
	Spectrogram *spectral.Spectrogram
	Normalized  [][]float64
	Profile     *voice.Profile
	Timings     StageTimings
	Source      string
	Duration    float64
}

// StageTimings records how long each pipeline stage took
type StageTimings struct {
	Decode    time.Duration `json:"decode" yaml:"decode"`
	Transform time.Duration `json:"transform" yaml:"transform"`
	Normalize time.Duration `json:"normalize" yaml:"normalize"`
	Total     time.Duration `json:"total" yaml:"total"`
}
