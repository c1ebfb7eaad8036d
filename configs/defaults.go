package configs

import (
	"time"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/voice-spectra/pkg/capture"
	"github.com/RyanBlaney/voice-spectra/pkg/dsp/spectral"
)

// SetDefaults sets default configuration values for all components.
// Defaults sit at the lowest precedence, so config files, environment
// variables and flags all override them.
func SetDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "json")

	// Audio decoding defaults
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.ffmpeg_path", "ffmpeg")
	v.SetDefault("audio.max_duration", 10*time.Minute)
	v.SetDefault("audio.decode_timeout", 30*time.Second)

	// Offline analysis defaults
	v.SetDefault("analysis.window_size", spectral.DefaultWindowSize)
	v.SetDefault("analysis.hop_size", spectral.DefaultHopSize)
	v.SetDefault("analysis.freq_bins", spectral.DefaultFreqBins)
	v.SetDefault("analysis.parallel", true)

	// Live capture defaults
	v.SetDefault("live.fft_size", capture.DefaultFFTSize)
	v.SetDefault("live.max_frames", capture.DefaultMaxFrames)
	v.SetDefault("live.chunk_size", capture.DefaultFFTSize)

	// Output defaults
	v.SetDefault("output.precision", 3)
	v.SetDefault("output.include_metadata", true)
}

// GetDefaultConfig returns a fully populated default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "json",
		Audio:        GetDefaultAudioConfig(),
		Analysis:     GetDefaultAnalysisConfig(),
		Live:         GetDefaultLiveConfig(),
		Output:       GetDefaultOutputConfig(),
	}
}

// GetDefaultAudioConfig returns default audio decoding settings
func GetDefaultAudioConfig() AudioConfig {
	return AudioConfig{
		SampleRate:    44100,
		FFmpegPath:    "ffmpeg",
		MaxDuration:   10 * time.Minute,
		DecodeTimeout: 30 * time.Second,
	}
}

// GetDefaultAnalysisConfig returns default offline analysis settings
func GetDefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		WindowSize: spectral.DefaultWindowSize,
		HopSize:    spectral.DefaultHopSize,
		FreqBins:   spectral.DefaultFreqBins,
		Parallel:   true,
	}
}

// GetDefaultLiveConfig returns default live capture settings
func GetDefaultLiveConfig() LiveConfig {
	return LiveConfig{
		FFTSize:   capture.DefaultFFTSize,
		MaxFrames: capture.DefaultMaxFrames,
		ChunkSize: capture.DefaultFFTSize,
	}
}

// GetDefaultOutputConfig returns default output formatting settings
func GetDefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Precision:       3,
		IncludeMetadata: true,
	}
}
