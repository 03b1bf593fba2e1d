package frontend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wavesurvivor/game"
)

// ErrProfilerBusy is returned when a capture is running or on cooldown
var ErrProfilerBusy = errors.New("profiler busy")

// Profiler captures a CPU profile and an execution trace when the frame
// rate drops. Captures run in the background and never touch game state.
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	logger          zerolog.Logger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, logger zerolog.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir %s: %w", dir, err)
	}
	return &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		logger:          logger.With().Str("component", "profiler").Logger(),
	}, nil
}

// Capture describes the frame that triggered a profile
type Capture struct {
	FPS         float64
	Wave        int
	Enemies     int
	Projectiles int
}

// newCapture reads the triggering state off a snapshot
func newCapture(fps float64, s game.Snapshot) Capture {
	return Capture{FPS: fps, Wave: s.Wave, Enemies: len(s.Enemies), Projectiles: len(s.Projectiles)}
}

// name is the file stem shared by every artifact of one capture
func (c Capture) name(at time.Time) string {
	return fmt.Sprintf("fps-drop-%s-wave%d-fps%.0f-e%d-p%d",
		at.Format("20060102-150405"), c.Wave, c.FPS, c.Enemies, c.Projectiles)
}

// profileWriter records one artifact over the capture window
type profileWriter struct {
	ext   string
	start func(io.Writer) error
	stop  func()
}

var profileWriters = []profileWriter{
	{ext: ".cpu.prof", start: pprof.StartCPUProfile, stop: pprof.StopCPUProfile},
	{ext: ".trace", start: trace.Start, stop: trace.Stop},
}

// CaptureProfile starts a background CPU profile and execution trace for c,
// followed by a heap profile once both have finished
func (p *Profiler) CaptureProfile(c Capture) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("capture in progress: %w", ErrProfilerBusy)
	}
	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return fmt.Errorf("last capture was %v ago: %w", since.Round(time.Millisecond), ErrProfilerBusy)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	base := c.name(p.lastCaptureTime)
	log := p.logger.With().Str("capture", base).Int("wave", c.Wave).Logger()

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		for _, w := range profileWriters {
			wg.Add(1)
			go func() {
				defer wg.Done()
				path, err := p.record(base+w.ext, w)
				if err != nil {
					log.Warn().Err(err).Str("kind", w.ext).Msg("capture failed")
					return
				}
				log.Info().Str("file", path).Msg("capture saved")
			}()
		}
		wg.Wait()

		p.writeHeap(base, log)
	}()
	return nil
}

func (p *Profiler) record(filename string, w profileWriter) (string, error) {
	path := filepath.Join(p.profilesDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := w.start(file); err != nil {
		return "", fmt.Errorf("failed to start %s: %w", w.ext, err)
	}
	time.Sleep(p.captureDuration)
	w.stop()
	return path, nil
}

// writeHeap saves the heap after the window and logs the allocator totals
func (p *Profiler) writeHeap(base string, log zerolog.Logger) {
	path := filepath.Join(p.profilesDir, base+".heap.prof")
	if file, err := os.Create(path); err != nil {
		log.Warn().Err(err).Msg("heap profile failed")
	} else {
		if err := pprof.WriteHeapProfile(file); err != nil {
			log.Warn().Err(err).Msg("heap profile failed")
		}
		file.Close()
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Info().
		Uint64("alloc_kb", m.Alloc/1024).
		Uint64("sys_kb", m.Sys/1024).
		Uint32("num_gc", m.NumGC).
		Uint64("heap_objects", m.HeapObjects).
		Msg("capture finished")
}

// FrameMonitor measures the frame rate over half-second windows and reports
// drops below a threshold once the warmup has passed
type FrameMonitor struct {
	Threshold float64
	Warmup    time.Duration

	elapsed time.Duration
	window  time.Duration
	frames  int
	fps     float64
}

// NewFrameMonitor creates a monitor; a zero threshold never reports drops
func NewFrameMonitor(threshold float64) *FrameMonitor {
	return &FrameMonitor{Threshold: threshold, Warmup: 3 * time.Second}
}

// Tick records one frame that took dt of wall-clock time. dropped is true once per window
// whose rate fell below the threshold.
func (m *FrameMonitor) Tick(dt time.Duration) (dropped bool) {
	m.elapsed += dt
	m.window += dt
	m.frames++
	if m.window < 500*time.Millisecond {
		return false
	}

	m.fps = float64(m.frames) / m.window.Seconds()
	m.frames = 0
	m.window = 0
	return m.Threshold > 0 && m.elapsed >= m.Warmup && m.fps < m.Threshold
}

// FPS returns the rate measured over the last complete window
func (m *FrameMonitor) FPS() float64 {
	return m.fps
}
