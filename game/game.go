package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"solarflight/config"
	"solarflight/profiling"
	"solarflight/sim"
	"solarflight/telemetry"
)

const wheelZoomStep = 1.1

// Game drives the simulation from ebiten's update loop and draws its snapshots
type Game struct {
	ctx    context.Context
	config Config
	log    zerolog.Logger

	state    *sim.State
	snapshot sim.Snapshot
	visuals  []bodyVisual

	camera   *Camera
	renderer *Renderer
	models   *ModelLoader
	keyboard *KeyboardInput
	pointer  PointerInput
	debug    DebugState

	metrics  *telemetry.FrameMetrics
	profiler *profiling.Profiler

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64
	lastUpdateTime   time.Time
	gameStartTime    time.Time
	lastFPSDropTime  time.Time
	fpsDropCooldown  time.Duration
}

// NewGame builds the simulation from cfg and starts loading models.
// The loop stops with ebiten.Termination once ctx is done.
func NewGame(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Game, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	state, err := sim.NewState(reg, cfg.Craft(), cfg.Physics, logger.With().Str("component", "sim").Logger())
	if err != nil {
		return nil, err
	}

	metrics, err := telemetry.NewFrameMetrics(telemetry.Meter())
	if err != nil {
		return nil, err
	}

	gc := ConfigFrom(cfg)
	models := NewModelLoader(logger.With().Str("component", "models").Logger())
	camera := NewCamera(float64(gc.ScreenWidth), float64(gc.ScreenHeight), gc.Zoom)

	g := &Game{
		ctx:             ctx,
		config:          gc,
		log:             logger,
		state:           state,
		visuals:         visualsFrom(cfg.Bodies),
		camera:          camera,
		renderer:        NewRenderer(camera, models),
		models:          models,
		keyboard:        NewKeyboardInput(DefaultKeyBindings()),
		metrics:         metrics,
		fps:             60,
		fpsDropCooldown: 10 * time.Second,
		gameStartTime:   time.Now(),
		lastUpdateTime:  time.Now(),
	}

	if gc.Profiling {
		g.profiler, err = profiling.NewProfiler(gc.ProfilesDir, logger.With().Str("component", "profiler").Logger())
		if err != nil {
			return nil, err
		}
	}

	for _, v := range g.visuals {
		models.Load(v.model)
	}
	models.Load(gc.CraftModel)

	g.snapshot = state.Snapshot()
	camera.Follow(g.snapshot.Bodies[0].Position)
	return g, nil
}

// Update advances the simulation by one frame
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}
	g.trackFPS(deltaTime)

	g.debug.HandleKeys()
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.camera.ZoomBy(math.Pow(wheelZoomStep, dy), g.config.MinZoom, g.config.MaxZoom)
	}

	g.keyboard.Poll(g.state)
	if b := g.pointer.Poll(g.state, g.camera); b != nil {
		g.metrics.RecordLock(g.ctx, b.Name)
	}

	start := time.Now()
	report := g.state.Step()
	g.metrics.RecordStep(g.ctx, time.Since(start), report)
	if err := g.state.Validate(); err != nil {
		return err
	}

	g.snapshot = g.state.Snapshot()
	for i := range g.visuals {
		g.visuals[i].spin += g.snapshot.SpinStep
	}
	g.camera.Follow(g.snapshot.Bodies[0].Position)
	return nil
}

// trackFPS updates the FPS estimate every half second and captures a profile on drops
func (g *Game) trackFPS(deltaTime float64) {
	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < 0.5 {
		return
	}
	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0

	// Startup frames are noisy.
	if g.profiler == nil || time.Since(g.gameStartTime) < 3*time.Second {
		return
	}
	if g.fps >= g.config.FPSThreshold || time.Since(g.lastFPSDropTime) < g.fpsDropCooldown {
		return
	}
	g.lastFPSDropTime = time.Now()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	g.log.Warn().
		Float64("fps", g.fps).
		Uint32("numGC", m.NumGC).
		Uint64("heapAllocKB", m.HeapAlloc/1024).
		Msg("FPS drop detected, capturing profile")

	reason := fmt.Sprintf("fps%.0f-frame%d", g.fps, g.snapshot.Frame)
	if err := g.profiler.CaptureProfile(reason); err != nil && !errors.Is(err, profiling.ErrCooldown) {
		g.log.Warn().Err(err).Msg("Failed to capture profile")
	}
}

// Draw renders the last snapshot
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.config.Background)
	g.renderer.Render(screen, g.snapshot, g.visuals, g.config.CraftModel, g.debug)
	if !g.debug.HideHUD {
		drawHUD(screen, g.snapshot, g.visuals, g.fps, g.camera.Zoom)
	}
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}
