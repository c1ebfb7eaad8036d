package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/voice-spectra/configs"
	"github.com/RyanBlaney/voice-spectra/logging"
	"github.com/RyanBlaney/voice-spectra/pkg/audio"
	"github.com/RyanBlaney/voice-spectra/pkg/capture"
	"github.com/RyanBlaney/voice-spectra/pkg/dsp/spectral"
	"github.com/RyanBlaney/voice-spectra/pkg/render"
	"github.com/RyanBlaney/voice-spectra/pkg/voice"
)

var (
	liveInputPath   string
	liveHeatmapPath string
	liveSampleRate  int
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Capture a live PCM stream into a rolling spectral view",
	Long: `Read raw mono float64 little-endian PCM from stdin (or a file),
compute a magnitude spectrum per chunk into a bounded rolling buffer, and
render the buffered window as a heatmap PNG when the stream ends.

The buffer keeps only the most recent frames; older spectra are evicted
first-in first-out, so the output always shows the tail of the capture.`,
	RunE: runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().StringVarP(&liveInputPath, "input", "i", "",
		"raw PCM input file (default: stdin)")
	liveCmd.Flags().StringVar(&liveHeatmapPath, "heatmap", "live.png",
		"heatmap PNG output path")
	liveCmd.Flags().IntVar(&liveSampleRate, "sample-rate", 0,
		"PCM sample rate (default: audio.sample_rate)")
}

func runLive(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	sampleRate := config.Audio.SampleRate
	if liveSampleRate > 0 {
		sampleRate = liveSampleRate
	}

	var input io.Reader = cmd.InOrStdin()
	if liveInputPath != "" {
		f, err := os.Open(liveInputPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		input = f
	}

	analyzer, err := capture.NewLiveAnalyzer(config.Live.FFTSize)
	if err != nil {
		return err
	}

	session := capture.NewCaptureSession(config.Live.MaxFrames)
	logger := logging.GetGlobalLogger()

	logger.Info("Live capture started", logging.Fields{
		"fft_size":    config.Live.FFTSize,
		"chunk_size":  config.Live.ChunkSize,
		"max_frames":  config.Live.MaxFrames,
		"sample_rate": sampleRate,
	})

	chunks := 0
	for {
		chunk, err := audio.ReadPCMChunk(input, config.Live.ChunkSize)
		if len(chunk) > 0 {
			session.PushFrame(analyzer.AnalyzeChunk(chunk))
			chunks++
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read PCM chunk: %w", err)
		}
	}

	logger.Info("Live capture finished", logging.Fields{
		"chunks_read":     chunks,
		"frames_buffered": session.Len(),
	})

	if session.Len() == 0 {
		return fmt.Errorf("no audio captured")
	}

	snapshot := session.Snapshot()
	normalized := render.NewDynamicRangeNormalizer().Normalize(snapshot)

	img := render.RenderHeatmap(normalized)
	if err := render.WritePNGFile(liveHeatmapPath, img); err != nil {
		return fmt.Errorf("failed to write heatmap: %w", err)
	}

	cmd.Printf("Captured %d chunks (%d buffered)\n", chunks, session.Len())
	cmd.Printf("  heatmap: %s\n", liveHeatmapPath)

	printLiveProfile(cmd, config, snapshot, sampleRate, analyzer.Bins())

	return nil
}

// printLiveProfile runs the voice profiler over the captured spectra so the
// live path reports the same character summary as offline analysis
func printLiveProfile(cmd *cobra.Command, config *configs.Config, snapshot [][]float64, sampleRate, bins int) {
	spec := spectral.FromFrames(snapshot, sampleRate, bins)

	profile, err := voice.NewProfileAnalyzer().Analyze(spec)
	if err != nil {
		return
	}

	p := config.Output.Precision
	cmd.Printf("  voice:   %s (warmth %.*f, brightness %.*f)\n",
		profile.Label, p, profile.Warmth, p, profile.Brightness)
}
