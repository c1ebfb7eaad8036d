package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanBlaney/voice-spectra/logging"
	"github.com/RyanBlaney/voice-spectra/pkg/audio"
	"github.com/RyanBlaney/voice-spectra/pkg/dsp/spectral"
	"github.com/RyanBlaney/voice-spectra/pkg/render"
	"github.com/RyanBlaney/voice-spectra/pkg/voice"
)

// EngineConfig holds the analysis pipeline parameters
type EngineConfig struct {
	WindowSize int
	HopSize    int
	FreqBins   int
	Parallel   bool
	Decoder    *audio.DecoderConfig
	Logger     logging.Logger
}

// DefaultEngineConfig returns the standard offline analysis parameters
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		WindowSize: spectral.DefaultWindowSize,
		HopSize:    spectral.DefaultHopSize,
		FreqBins:   spectral.DefaultFreqBins,
		Parallel:   true,
		Decoder:    audio.DefaultDecoderConfig(),
	}
}

// Engine coordinates the full analysis pipeline: decode, spectrogram,
// normalization, and voice profiling
type Engine struct {
	config     *EngineConfig
	builder    *spectral.Builder
	normalizer *render.DynamicRangeNormalizer
	profiler   *voice.ProfileAnalyzer
	decoder    *audio.Decoder
	logger     logging.Logger
}

// NewEngine creates an analysis engine from a config
func NewEngine(config *EngineConfig) (*Engine, error) {
	if config == nil {
		config = DefaultEngineConfig()
	}
	if config.Logger == nil {
		config.Logger = logging.GetGlobalLogger()
	}
	if config.Decoder == nil {
		config.Decoder = audio.DefaultDecoderConfig()
	}

	builder, err := spectral.NewBuilder(config.WindowSize, config.HopSize, config.FreqBins)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis parameters: %w", err)
	}

	return &Engine{
		config:     config,
		builder:    builder,
		normalizer: render.NewDynamicRangeNormalizer(),
		profiler:   voice.NewProfileAnalyzer(),
		decoder:    audio.NewDecoder(config.Decoder),
		logger:     config.Logger,
	}, nil
}

// AnalyzeFile decodes an audio file and runs the analysis pipeline on it
func (e *Engine) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	e.logger.Debug("Decoding audio file", logging.Fields{
		"path":        path,
		"sample_rate": e.config.Decoder.TargetSampleRate,
	})

	decodeStart := time.Now()
	waveform, err := e.decoder.DecodeFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	decodeTime := time.Since(decodeStart)

	result, err := e.AnalyzeWaveform(waveform)
	if err != nil {
		return nil, err
	}

	result.Source = path
	result.Timings.Decode = decodeTime
	result.Timings.Total = time.Since(start)

	return result, nil
}

// AnalyzeWaveform runs the pipeline on already-decoded samples. A waveform
// too short for a single analysis window yields an empty spectrogram, not
// an error; only the voice profile degrades in that case.
func (e *Engine) AnalyzeWaveform(w *audio.Waveform) (*Result, error) {
	start := time.Now()

	e.logger.Debug("Building spectrogram", logging.Fields{
		"samples":     w.Len(),
		"sample_rate": w.SampleRate,
		"window_size": e.config.WindowSize,
		"hop_size":    e.config.HopSize,
		"freq_bins":   e.config.FreqBins,
		"parallel":    e.config.Parallel,
	})

	transformStart := time.Now()
	var spec *spectral.Spectrogram
	if e.config.Parallel {
		spec = e.builder.BuildParallel(w)
	} else {
		spec = e.builder.Build(w)
	}
	transformTime := time.Since(transformStart)

	normalizeStart := time.Now()
	normalized := e.normalizer.Normalize(spec.Magnitude)
	normalizeTime := time.Since(normalizeStart)

	result := &Result{
		Spectrogram: spec,
		Normalized:  normalized,
		Duration:    w.Duration().Seconds(),
		Timings: StageTimings{
			Transform: transformTime,
			Normalize: normalizeTime,
			Total:     time.Since(start),
		},
	}

	// Profiling failure is not fatal; the spectrogram is still useful
	profile, err := e.profiler.Analyze(spec)
	if err != nil {
		e.logger.Warn("Voice profiling skipped", logging.Fields{
			"error": err.Error(),
		})
	} else {
		result.Profile = profile
	}

	e.logger.Debug("Analysis complete", logging.Fields{
		"time_frames":  spec.TimeFrames,
		"freq_bins":    spec.FreqBins,
		"transform_ms": transformTime.Milliseconds(),
		"normalize_ms": normalizeTime.Milliseconds(),
	})

	return result, nil
}
