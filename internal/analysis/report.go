package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/voice-spectra/pkg/voice"
)

// Report is the serializable summary of an analysis run. The magnitude
// matrix itself is omitted; the heatmap image carries that data.
type Report struct {
	Source      string         `json:"source" yaml:"source"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Duration    float64        `json:"duration_seconds" yaml:"duration_seconds"`
	SampleRate  int            `json:"sample_rate" yaml:"sample_rate"`
	WindowSize  int            `json:"window_size" yaml:"window_size"`
	HopSize     int            `json:"hop_size" yaml:"hop_size"`
	TimeFrames  int            `json:"time_frames" yaml:"time_frames"`
	FreqBins    int            `json:"freq_bins" yaml:"freq_bins"`
	FreqResHz   float64        `json:"freq_resolution_hz" yaml:"freq_resolution_hz"`
	TimeResSec  float64        `json:"time_resolution_sec" yaml:"time_resolution_sec"`
	Profile     *voice.Profile `json:"profile,omitempty" yaml:"profile,omitempty"`
	Timings     StageTimings   `json:"timings" yaml:"timings"`
}

// BuildReport converts an analysis result into a report
func BuildReport(result *Result) *Report {
	spec := result.Spectrogram
	return &Report{
		Source:      result.Source,
		GeneratedAt: time.Now().UTC(),
		Duration:    result.Duration,
		SampleRate:  spec.SampleRate,
		WindowSize:  spec.WindowSize,
		HopSize:     spec.HopSize,
		TimeFrames:  spec.TimeFrames,
		FreqBins:    spec.FreqBins,
		FreqResHz:   spec.FreqResolution,
		TimeResSec:  spec.TimeResolution,
		Profile:     result.Profile,
		Timings:     result.Timings,
	}
}

// WriteReportFile serializes the report to a file, choosing the format from
// the extension: .yaml/.yml writes YAML, anything else writes indented JSON
func WriteReportFile(path string, report *Report) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(report)
	default:
		data, err = json.MarshalIndent(report, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}

	return nil
}
