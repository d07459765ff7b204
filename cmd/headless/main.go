// Command headless steps the simulation without a window and logs periodic snapshots.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/spatial/r3"

	"solarflight/config"
	"solarflight/logging"
	"solarflight/sim"
	"solarflight/telemetry"
)

// options are the runner-only flags
type options struct {
	frames      uint64
	target      string
	reportEvery uint64
}

func main() {
	flags := pflag.NewFlagSet("headless", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "path to a JSON, YAML or TOML config file")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	jsonLogs := flags.Bool("json", false, "write JSON log lines instead of console output")
	frames := flags.Uint64P("frames", "n", 3600, "number of frames to simulate")
	target := flags.StringP("target", "t", "", "body name to lock the autopilot onto at start")
	reportEvery := flags.Uint64("report-every", 600, "log a snapshot every N frames (0 disables)")
	_ = flags.Parse(os.Args[1:])

	v := config.New()
	_ = v.BindPFlag("logLevel", flags.Lookup("log-level"))

	cfg, err := config.LoadWith(v, *configPath)
	if err != nil {
		logger := logging.Setup(os.Stderr, "info", !*jsonLogs)
		logger.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load config")
	}
	logger := logging.Setup(os.Stderr, cfg.LogLevel, !*jsonLogs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{frames: *frames, target: *target, reportEvery: *reportEvery}
	if err := run(ctx, cfg, opts, logger); err != nil && !errors.Is(err, context.Canceled) {
		stop()
		logger.Fatal().Err(err).Msg("Simulation failed")
	}
}

func run(ctx context.Context, cfg config.Config, opts options, logger zerolog.Logger) error {
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}
	state, err := sim.NewState(reg, cfg.Craft(), cfg.Physics, logger.With().Str("component", "sim").Logger())
	if err != nil {
		return err
	}
	metrics, err := telemetry.NewFrameMetrics(telemetry.Meter())
	if err != nil {
		return err
	}

	if opts.target != "" {
		if err := state.SelectTargetByName(opts.target); err != nil {
			return err
		}
		metrics.RecordLock(ctx, opts.target)
	}

	start := time.Now()
	for state.Frame() < opts.frames {
		if err := ctx.Err(); err != nil {
			logger.Warn().Uint64("frame", state.Frame()).Msg("Interrupted")
			return err
		}

		stepStart := time.Now()
		report := state.Step()
		metrics.RecordStep(ctx, time.Since(stepStart), report)
		if err := state.Validate(); err != nil {
			return err
		}

		if report.Arrived {
			logger.Info().Uint64("frame", report.Frame).Msg("Autopilot arrived")
		}
		if opts.reportEvery > 0 && report.Frame%opts.reportEvery == 0 {
			logSnapshot(logger, state.Snapshot())
		}
	}

	logger.Info().
		Uint64("frames", state.Frame()).
		Dur("elapsed", time.Since(start)).
		Msg("Simulation complete")
	logSnapshot(logger, state.Snapshot())
	return nil
}

func logSnapshot(logger zerolog.Logger, snap sim.Snapshot) {
	nearby, target := "none", "none"
	if snap.Nearby >= 0 {
		nearby = snap.Bodies[snap.Nearby].Name
	}
	if snap.Target >= 0 {
		target = snap.Bodies[snap.Target].Name
	}

	logger.Info().
		Uint64("frame", snap.Frame).
		Floats64("position", []float64{snap.CraftPosition.X, snap.CraftPosition.Y, snap.CraftPosition.Z}).
		Float64("speed", r3.Norm(snap.CraftVelocity)).
		Str("nearby", nearby).
		Stringer("band", snap.NearbyBand).
		Str("target", target).
		Int("trailPoints", len(snap.Trail)/3).
		Msg("Snapshot")
}
