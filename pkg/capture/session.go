package capture

import (
	"sync"
)

// DefaultMaxFrames is the rolling buffer capacity for live spectra
const DefaultMaxFrames = 200

// CaptureSession owns the live spectral state of one recording: a bounded
// rolling buffer of magnitude spectra with FIFO eviction. The capture loop
// pushes frames while a renderer may snapshot concurrently, so access is
// mutex-guarded. Starting a new recording must Reset the session so no
// stale rows from a previous recording are observable.
type CaptureSession struct {
	mu        sync.Mutex
	frames    [][]float64
	maxFrames int
}

// NewCaptureSession creates a session with the given rolling capacity.
// Non-positive capacities fall back to DefaultMaxFrames.
func NewCaptureSession(maxFrames int) *CaptureSession {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	return &CaptureSession{
		frames:    make([][]float64, 0, maxFrames),
		maxFrames: maxFrames,
	}
}

// PushFrame appends one live magnitude spectrum, evicting the oldest frame
// once the buffer is full. The frame is copied; callers may reuse their
// slice.
func (s *CaptureSession) PushFrame(frame []float64) {
	stored := make([]float64, len(frame))
	copy(stored, frame)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == s.maxFrames {
		copy(s.frames, s.frames[1:])
		s.frames = s.frames[:len(s.frames)-1]
	}
	s.frames = append(s.frames, stored)
}

// Reset discards all buffered frames
func (s *CaptureSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames = s.frames[:0]
}

// Snapshot returns a deep copy of the buffered frames in chronological
// order, oldest first
func (s *CaptureSession) Snapshot() [][]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([][]float64, len(s.frames))
	for i, frame := range s.frames {
		row := make([]float64, len(frame))
		copy(row, frame)
		snapshot[i] = row
	}
	return snapshot
}

// Len returns the number of buffered frames
func (s *CaptureSession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.frames)
}

// Cap returns the rolling buffer capacity
func (s *CaptureSession) Cap() int {
	return s.maxFrames
}
