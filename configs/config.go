package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Audio decoding configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Offline analysis configuration
	Analysis AnalysisConfig `mapstructure:"analysis"`

	// Live capture configuration
	Live LiveConfig `mapstructure:"live"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// AudioConfig contains audio decoding settings.
// MaxDuration caps how much of a recording is decoded (0 means no cap);
// DecodeTimeout bounds the decode subprocess itself.
type AudioConfig struct {
	SampleRate    int           `mapstructure:"sample_rate"`
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	MaxDuration   time.Duration `mapstructure:"max_duration"`
	DecodeTimeout time.Duration `mapstructure:"decode_timeout"`
}

// AnalysisConfig contains offline spectrogram settings
type AnalysisConfig struct {
	WindowSize int  `mapstructure:"window_size"`
	HopSize    int  `mapstructure:"hop_size"`
	FreqBins   int  `mapstructure:"freq_bins"`
	Parallel   bool `mapstructure:"parallel"`
}

// LiveConfig contains live capture settings
type LiveConfig struct {
	FFTSize   int `mapstructure:"fft_size"`
	MaxFrames int `mapstructure:"max_frames"`
	ChunkSize int `mapstructure:"chunk_size"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision       int  `mapstructure:"precision"`
	IncludeMetadata bool `mapstructure:"include_metadata"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive")
	}

	if config.Audio.DecodeTimeout < 0 {
		return fmt.Errorf("audio decode timeout cannot be negative")
	}

	if config.Analysis.WindowSize < 2 {
		return fmt.Errorf("analysis window size must be at least 2")
	}

	if config.Analysis.HopSize <= 0 {
		return fmt.Errorf("analysis hop size must be positive")
	}

	if config.Analysis.FreqBins <= 0 {
		return fmt.Errorf("analysis frequency bin count must be positive")
	}

	if config.Live.FFTSize < 2 || config.Live.FFTSize%2 != 0 {
		return fmt.Errorf("live fft size must be an even number of at least 2")
	}

	if config.Live.MaxFrames <= 0 {
		return fmt.Errorf("live max frames must be positive")
	}

	if config.Live.ChunkSize <= 0 {
		return fmt.Errorf("live chunk size must be positive")
	}

	return nil
}
