package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"solarflight/config"
	"solarflight/game"
	"solarflight/logging"
)

func main() {
	flags := pflag.NewFlagSet("solarflight", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "path to a JSON, YAML or TOML config file")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	_ = flags.Parse(os.Args[1:])

	v := config.New()
	_ = v.BindPFlag("logLevel", flags.Lookup("log-level"))

	cfg, err := config.LoadWith(v, *configPath)
	if err != nil {
		logger := logging.Setup(os.Stderr, "info", true)
		logger.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load config")
	}
	logger := logging.Setup(os.Stderr, cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.NewGame(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create game")
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info().
		Int("bodies", len(cfg.Bodies)).
		Str("primary", cfg.Bodies[0].Name).
		Msg("Starting simulation")

	if err := ebiten.RunGame(g); err != nil {
		stop()
		logger.Fatal().Err(err).Msg("Simulation stopped")
	}
	logger.Info().Msg("Simulation closed")
}
