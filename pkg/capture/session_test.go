package capture

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDefaults(t *testing.T) {
	assert.Equal(t, DefaultMaxFrames, NewCaptureSession(0).Cap(),
		"Non-positive capacity should fall back to the default")
	assert.Equal(t, 10, NewCaptureSession(10).Cap())
}

func TestSessionPushAndLen(t *testing.T) {
	s := NewCaptureSession(5)

	assert.Equal(t, 0, s.Len())

	s.PushFrame([]float64{0.1})
	s.PushFrame([]float64{0.2})

	assert.Equal(t, 2, s.Len())
}

func TestSessionEviction(t *testing.T) {
	s := NewCaptureSession(200)

	// Push 250 frames, each tagged with its index
	for i := 0; i < 250; i++ {
		s.PushFrame([]float64{float64(i)})
	}

	require.Equal(t, 200, s.Len(), "Buffer should never exceed its capacity")

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 200)

	// Oldest 50 frames were evicted; frames 50..249 remain in order
	assert.Equal(t, 50.0, snapshot[0][0], "Oldest surviving frame should be frame 50")
	assert.Equal(t, 249.0, snapshot[199][0], "Newest frame should be last")

	for i := range snapshot {
		assert.Equal(t, float64(i+50), snapshot[i][0], "Frames should stay in push order at %d", i)
	}
}

func TestSessionReset(t *testing.T) {
	s := NewCaptureSession(10)

	s.PushFrame([]float64{1})
	s.PushFrame([]float64{2})
	require.Equal(t, 2, s.Len())

	s.Reset()

	assert.Equal(t, 0, s.Len(), "Reset should discard all frames")
	assert.Empty(t, s.Snapshot())
}

func TestSessionCopiesOnPush(t *testing.T) {
	s := NewCaptureSession(10)

	frame := []float64{1.0, 2.0}
	s.PushFrame(frame)

	// Mutating the caller's slice must not affect the stored frame
	frame[0] = 99.0

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, 1.0, snapshot[0][0], "Stored frames should be isolated from caller mutation")
}

func TestSessionSnapshotIsolation(t *testing.T) {
	s := NewCaptureSession(10)
	s.PushFrame([]float64{1.0})

	first := s.Snapshot()
	first[0][0] = 99.0

	second := s.Snapshot()
	assert.Equal(t, 1.0, second[0][0], "Snapshot mutation should not leak back into the session")
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewCaptureSession(50)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.PushFrame([]float64{float64(i)})
				_ = s.Snapshot()
				_ = s.Len()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len(), "Capacity should hold under concurrent pushes")
}
