package profiling

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrCooldown is returned when a capture was requested too soon after the previous one
	ErrCooldown = errors.New("capture on cooldown")

	// ErrBusy is returned while another capture is still running
	ErrBusy = errors.New("already profiling")
)

// Profiler captures CPU profiles and execution traces when the frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
	log             zerolog.Logger

	now func() time.Time
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, logger zerolog.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}

	return &Profiler{
		captureCooldown: 10 * time.Second,
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
		log:             logger,
		now:             time.Now,
	}, nil
}

// SetCaptureDuration changes how long each capture records for
func (p *Profiler) SetCaptureDuration(d time.Duration) {
	p.mu.Lock()
	p.captureDuration = d
	p.mu.Unlock()
}

// CaptureProfile records a CPU profile and a trace in the background.
// It returns ErrCooldown or ErrBusy instead of starting a second capture.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if !p.lastCaptureTime.IsZero() && now.Sub(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("%w (last capture was %v ago)", ErrCooldown, now.Sub(p.lastCaptureTime))
	}
	if p.isProfiling {
		return ErrBusy
	}

	p.isProfiling = true
	p.lastCaptureTime = now
	baseName := fmt.Sprintf("fps-drop-%s-%s", now.Format("20060102-150405"), reason)
	duration := p.captureDuration

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()
		if err := p.capture(baseName, duration); err != nil {
			p.log.Error().Err(err).Str("capture", baseName).Msg("Profile capture failed")
		}
	}()

	return nil
}

// CaptureProfileSync records a CPU profile and a trace and blocks until both are written
func (p *Profiler) CaptureProfileSync(reason string, duration time.Duration) error {
	p.mu.Lock()
	if p.isProfiling {
		p.mu.Unlock()
		return ErrBusy
	}
	p.isProfiling = true
	now := p.now()
	p.lastCaptureTime = now
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.isProfiling = false
		p.mu.Unlock()
	}()

	baseName := fmt.Sprintf("fps-drop-%s-%s", now.Format("20060102-150405"), reason)
	return p.capture(baseName, duration)
}

// IsProfiling reports whether a capture is running
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) capture(baseName string, duration time.Duration) error {
	var wg sync.WaitGroup
	var cpuErr, traceErr error
	wg.Add(2)

	go func() {
		defer wg.Done()
		cpuErr = p.captureCPUProfile(baseName, duration)
	}()
	go func() {
		defer wg.Done()
		traceErr = p.captureTrace(baseName, duration)
	}()
	wg.Wait()

	if err := errors.Join(cpuErr, traceErr); err != nil {
		return err
	}
	p.analyzeProfile(baseName)
	return nil
}

func (p *Profiler) captureCPUProfile(baseName string, duration time.Duration) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(duration)
	pprof.StopCPUProfile()

	p.log.Info().Str("path", profilePath).Msg("CPU profile saved")
	return nil
}

func (p *Profiler) captureTrace(baseName string, duration time.Duration) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(duration)
	trace.Stop()

	p.log.Info().Str("path", tracePath).Msg("Trace saved")
	return nil
}

// analyzeProfile logs the profile size and memory stats alongside the pprof command to inspect it
func (p *Profiler) analyzeProfile(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	info, err := os.Stat(profilePath)
	if err != nil {
		p.log.Warn().Err(err).Msg("Could not analyze profile")
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.log.Info().
		Str("profile", profilePath).
		Float64("sizeKB", float64(info.Size())/1024).
		Uint64("allocKB", m.Alloc/1024).
		Uint64("sysKB", m.Sys/1024).
		Uint32("numGC", m.NumGC).
		Uint64("heapObjects", m.HeapObjects).
		Str("view", "go tool pprof -http=:8080 "+profilePath).
		Msg("Performance profile captured")
}
