package spectral

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/RyanBlaney/voice-spectra/pkg/audio"
	"github.com/RyanBlaney/voice-spectra/pkg/dsp/windowing"
)

const (
	// DefaultWindowSize is the analysis frame length in samples
	DefaultWindowSize = 1024

	// DefaultHopSize is the stride between consecutive frame offsets
	DefaultHopSize = 256

	// yieldInterval is how many frames the sequential builder processes
	// between cooperative yields to the scheduler
	yieldInterval = 50
)

// Spectrogram holds the time-by-frequency magnitude matrix of a waveform
type Spectrogram struct {
	Magnitude      [][]float64 `json:"magnitude"`       // Time x Frequency magnitude matrix
	TimeFrames     int         `json:"time_frames"`     // Number of time frames
	FreqBins       int         `json:"freq_bins"`       // Number of frequency bins
	SampleRate     int         `json:"sample_rate"`     // Sample rate of the source waveform
	WindowSize     int         `json:"window_size"`     // Analysis window size
	HopSize        int         `json:"hop_size"`        // Hop size between frames
	FreqResolution float64     `json:"freq_resolution"` // Frequency resolution (Hz/bin)
	TimeResolution float64     `json:"time_resolution"` // Time resolution (seconds/frame)
}

// Builder slides an analysis window across a waveform and assembles the
// magnitude spectra of its frames into a Spectrogram
type Builder struct {
	windowSize int
	hopSize    int
	window     *windowing.Hamming
	transform  *FrameTransform
}

// NewBuilder creates a spectrogram builder with explicit parameters
func NewBuilder(windowSize, hopSize, bins int) (*Builder, error) {
	if windowSize < 2 {
		return nil, fmt.Errorf("window size must be at least 2, got %d", windowSize)
	}
	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive, got %d", hopSize)
	}
	if bins <= 0 {
		return nil, fmt.Errorf("bin count must be positive, got %d", bins)
	}

	return &Builder{
		windowSize: windowSize,
		hopSize:    hopSize,
		window:     windowing.NewHamming(windowSize),
		transform:  NewFrameTransform(bins),
	}, nil
}

// NewDefaultBuilder creates a builder with the standard offline analysis
// parameters (window 1024, hop 256, 128 bins)
func NewDefaultBuilder() *Builder {
	b, _ := NewBuilder(DefaultWindowSize, DefaultHopSize, DefaultFreqBins)
	return b
}

// numFrames returns the frame count for a waveform length.
// A waveform shorter than the window yields zero frames, not an error.
func (b *Builder) numFrames(waveformLen int) int {
	if waveformLen < b.windowSize {
		return 0
	}
	return (waveformLen-b.windowSize)/b.hopSize + 1
}

// newSpectrogram allocates the result shell for a waveform
func (b *Builder) newSpectrogram(w *audio.Waveform, frames int) *Spectrogram {
	return &Spectrogram{
		Magnitude:      make([][]float64, frames),
		TimeFrames:     frames,
		FreqBins:       b.transform.Bins(),
		SampleRate:     w.SampleRate,
		WindowSize:     b.windowSize,
		HopSize:        b.hopSize,
		FreqResolution: float64(w.SampleRate) / 2.0 / float64(b.transform.Bins()),
		TimeResolution: float64(b.hopSize) / float64(w.SampleRate),
	}
}

// computeFrame windows and transforms the frame starting at the given
// offset, reusing frameBuf as scratch space
func (b *Builder) computeFrame(samples []float64, offset int, frameBuf []float64) []float64 {
	copy(frameBuf, samples[offset:offset+b.windowSize])
	// Window size always matches the buffer, so this cannot fail
	_ = b.window.ApplyInPlace(frameBuf)
	return b.transform.Compute(frameBuf)
}

// Build computes the spectrogram sequentially. Rows are appended in
// increasing offset order, encoding the time axis. On large inputs the loop
// yields to the scheduler every yieldInterval frames so cooperatively
// scheduled callers stay responsive; the output is identical regardless of
// yielding granularity. The builder is the sole writer of the matrix.
func (b *Builder) Build(w *audio.Waveform) *Spectrogram {
	frames := b.numFrames(w.Len())
	result := b.newSpectrogram(w, frames)

	frameBuf := make([]float64, b.windowSize)
	for i := 0; i < frames; i++ {
		result.Magnitude[i] = b.computeFrame(w.Samples, i*b.hopSize, frameBuf)

		if (i+1)%yieldInterval == 0 {
			runtime.Gosched()
		}
	}

	return result
}

// BuildParallel computes the same spectrogram with frame transforms spread
// over a worker pool. Each frame's spectrum is purely a function of its own
// slice, and every worker writes only the rows it was assigned, so the
// result is byte-identical to Build.
func (b *Builder) BuildParallel(w *audio.Waveform) *Spectrogram {
	frames := b.numFrames(w.Len())
	result := b.newSpectrogram(w, frames)

	if frames == 0 {
		return result
	}

	numWorkers := b.workerCount(frames)
	if numWorkers <= 1 {
		return b.Build(w)
	}

	jobs := make(chan int, frames)

	var wg sync.WaitGroup
	for worker := 0; worker < numWorkers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse frame buffer for this worker
			frameBuf := make([]float64, b.windowSize)

			for frameIdx := range jobs {
				result.Magnitude[frameIdx] = b.computeFrame(w.Samples, frameIdx*b.hopSize, frameBuf)
			}
		}()
	}

	for frameIdx := 0; frameIdx < frames; frameIdx++ {
		jobs <- frameIdx
	}
	close(jobs)

	wg.Wait()

	return result
}

// FromFrames wraps already-computed magnitude spectra (such as a live
// capture snapshot) in a Spectrogram so downstream consumers can treat both
// paths uniformly. Frames are assumed to share the given bin count.
func FromFrames(frames [][]float64, sampleRate, bins int) *Spectrogram {
	return &Spectrogram{
		Magnitude:      frames,
		TimeFrames:     len(frames),
		FreqBins:       bins,
		SampleRate:     sampleRate,
		WindowSize:     bins * 2,
		HopSize:        bins * 2,
		FreqResolution: float64(sampleRate) / 2.0 / float64(bins),
		TimeResolution: float64(bins*2) / float64(sampleRate),
	}
}

// workerCount picks a worker pool size based on the workload
func (b *Builder) workerCount(frames int) int {
	numCPU := runtime.NumCPU()

	if frames < 100 {
		return min(numCPU/2, frames)
	}
	if frames < 1000 {
		return min(numCPU, 8)
	}
	return numCPU
}
