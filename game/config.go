package game

import (
	"image/color"

	"solarflight/config"
)

// Config holds presentation settings derived from the application config
type Config struct {
	// ScreenWidth is the logical screen width in pixels
	ScreenWidth int

	// ScreenHeight is the logical screen height in pixels
	ScreenHeight int

	// Zoom is the initial pixels-per-world-unit scale
	Zoom float64

	// MinZoom and MaxZoom bound mouse-wheel zoom
	MinZoom float64
	MaxZoom float64

	// Profiling enables CPU profile capture when FPS falls below FPSThreshold
	Profiling    bool
	ProfilesDir  string
	FPSThreshold float64

	// CraftModel is an optional image path for the spacecraft
	CraftModel string

	Background color.RGBA
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 800,
		Zoom:         0.35,
		MinZoom:      0.02,
		MaxZoom:      8,
		ProfilesDir:  "profiles",
		FPSThreshold: 45,
		Background:   color.RGBA{5, 5, 15, 255},
	}
}

// ConfigFrom maps the loaded application config onto presentation settings
func ConfigFrom(c config.Config) Config {
	gc := DefaultConfig()
	gc.ScreenWidth = c.Window.Width
	gc.ScreenHeight = c.Window.Height
	gc.Zoom = c.Window.Zoom
	gc.Profiling = c.Profiling.Enabled
	gc.ProfilesDir = c.Profiling.Dir
	gc.FPSThreshold = c.Profiling.FPSThreshold
	gc.CraftModel = c.Spacecraft.Model
	return gc
}

// bodyVisual is presentation-only state kept per registry index
type bodyVisual struct {
	color color.RGBA
	info  string
	model string
	spin  float64
}

func visualsFrom(bodies []config.BodyConfig) []bodyVisual {
	visuals := make([]bodyVisual, len(bodies))
	for i, b := range bodies {
		// Colors were validated at load time.
		clr, _ := config.ParseColor(b.Color)
		visuals[i] = bodyVisual{
			color: clr,
			info:  b.Info,
			model: b.Model,
		}
	}
	return visuals
}
