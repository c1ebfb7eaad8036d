package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RyanBlaney/voice-spectra/configs"
	"github.com/RyanBlaney/voice-spectra/internal/analysis"
	"github.com/RyanBlaney/voice-spectra/logging"
	"github.com/RyanBlaney/voice-spectra/pkg/audio"
	"github.com/RyanBlaney/voice-spectra/pkg/render"
)

var (
	analyzeHeatmapPath string
	analyzeReportPath  string
	analyzeWindowSize  int
	analyzeHopSize     int
	analyzeFreqBins    int
	analyzeSequential  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [audio file]",
	Short: "Analyze a voice recording and render its spectrogram",
	Long: `Decode an audio file, build its magnitude spectrogram, normalize the
dynamic range, and render a color heatmap PNG. Optionally writes a JSON or
YAML report with spectral parameters and the voice character profile.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeHeatmapPath, "heatmap", "",
		"heatmap PNG output path (default: input name with .png extension)")
	analyzeCmd.Flags().StringVar(&analyzeReportPath, "report", "",
		"report output path (.json, .yaml)")
	analyzeCmd.Flags().IntVar(&analyzeWindowSize, "window-size", 0,
		"analysis window size in samples")
	analyzeCmd.Flags().IntVar(&analyzeHopSize, "hop-size", 0,
		"hop size between analysis frames")
	analyzeCmd.Flags().IntVar(&analyzeFreqBins, "freq-bins", 0,
		"frequency bin count per frame")
	analyzeCmd.Flags().BoolVar(&analyzeSequential, "sequential", false,
		"disable parallel frame processing")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	applyAnalyzeOverrides(config)

	inputPath := args[0]
	heatmapPath := analyzeHeatmapPath
	if heatmapPath == "" {
		heatmapPath = replaceExt(inputPath, ".png")
	}

	engine, err := analysis.NewEngine(&analysis.EngineConfig{
		WindowSize: config.Analysis.WindowSize,
		HopSize:    config.Analysis.HopSize,
		FreqBins:   config.Analysis.FreqBins,
		Parallel:   config.Analysis.Parallel,
		Decoder: &audio.DecoderConfig{
			TargetSampleRate: config.Audio.SampleRate,
			FFmpegPath:       config.Audio.FFmpegPath,
			MaxDuration:      config.Audio.MaxDuration,
			Timeout:          config.Audio.DecodeTimeout,
		},
		Logger: logging.GetGlobalLogger(),
	})
	if err != nil {
		return err
	}

	result, err := engine.AnalyzeFile(cmd.Context(), inputPath)
	if err != nil {
		return err
	}

	img := render.RenderHeatmap(result.Normalized)
	if err := render.WritePNGFile(heatmapPath, img); err != nil {
		return fmt.Errorf("failed to write heatmap: %w", err)
	}

	if analyzeReportPath != "" {
		report := analysis.BuildReport(result)
		if err := analysis.WriteReportFile(analyzeReportPath, report); err != nil {
			return err
		}
	}

	printAnalyzeSummary(cmd, config, result, heatmapPath)

	return nil
}

// applyAnalyzeOverrides folds command-line overrides into the config
func applyAnalyzeOverrides(config *configs.Config) {
	if analyzeWindowSize > 0 {
		config.Analysis.WindowSize = analyzeWindowSize
	}
	if analyzeHopSize > 0 {
		config.Analysis.HopSize = analyzeHopSize
	}
	if analyzeFreqBins > 0 {
		config.Analysis.FreqBins = analyzeFreqBins
	}
	if analyzeSequential {
		config.Analysis.Parallel = false
	}
}

func printAnalyzeSummary(cmd *cobra.Command, config *configs.Config, result *analysis.Result, heatmapPath string) {
	spec := result.Spectrogram
	p := config.Output.Precision

	cmd.Printf("Analyzed %s\n", result.Source)
	cmd.Printf("  duration:    %.*f s\n", p, result.Duration)
	cmd.Printf("  spectrogram: %d frames x %d bins\n", spec.TimeFrames, spec.FreqBins)
	cmd.Printf("  resolution:  %.*f Hz/bin, %.*f s/frame\n", p, spec.FreqResolution, p, spec.TimeResolution)
	cmd.Printf("  heatmap:     %s\n", heatmapPath)

	if result.Profile != nil {
		title := cases.Title(language.English)
		cmd.Printf("  voice:       %s (warmth %.*f, brightness %.*f)\n",
			title.String(result.Profile.Label), p, result.Profile.Warmth, p, result.Profile.Brightness)
	}

	if analyzeReportPath != "" {
		cmd.Printf("  report:      %s\n", analyzeReportPath)
	}
}

// replaceExt swaps a path's extension, appending when the path has none
func replaceExt(path, ext string) string {
	if idx := strings.LastIndex(path, "."); idx > strings.LastIndexAny(path, "/\\") {
		return path[:idx] + ext
	}
	return path + ext
}
