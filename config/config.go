package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"

	"solarflight/sim"
)

// EnvPrefix prefixes environment overrides, e.g. SOLARFLIGHT_PHYSICS_ORBITBLEND
const EnvPrefix = "SOLARFLIGHT"

// BodyConfig describes one body at simulation start
type BodyConfig struct {
	Name        string     `mapstructure:"name"`
	Mass        float64    `mapstructure:"mass"`
	Radius      float64    `mapstructure:"radius"`
	OrbitRadius float64    `mapstructure:"orbitRadius"`
	Position    [3]float64 `mapstructure:"position"`
	Velocity    [3]float64 `mapstructure:"velocity"`

	// Color is a #rrggbb hex string used when no model is loaded
	Color string `mapstructure:"color"`

	// Model is an optional image path attached to the body once loaded
	Model string `mapstructure:"model"`

	// Info is shown in the info panel while the body is nearby
	Info string `mapstructure:"info"`
}

// SpacecraftConfig describes the spacecraft at simulation start
type SpacecraftConfig struct {
	Position [3]float64 `mapstructure:"position"`
	Velocity [3]float64 `mapstructure:"velocity"`
	Heading  float64    `mapstructure:"heading"`
	Model    string     `mapstructure:"model"`
}

// WindowConfig holds presentation settings
type WindowConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Title  string  `mapstructure:"title"`
	Zoom   float64 `mapstructure:"zoom"`
}

// ProfilingConfig controls CPU profile capture on frame-rate drops
type ProfilingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Dir          string  `mapstructure:"dir"`
	FPSThreshold float64 `mapstructure:"fpsThreshold"`
}

// Config is the complete application configuration
type Config struct {
	LogLevel   string           `mapstructure:"logLevel"`
	Window     WindowConfig     `mapstructure:"window"`
	Physics    sim.Tuning       `mapstructure:"physics"`
	Spacecraft SpacecraftConfig `mapstructure:"spacecraft"`
	Bodies     []BodyConfig     `mapstructure:"bodies"`
	Profiling  ProfilingConfig  `mapstructure:"profiling"`
}

// New returns a viper instance with every default set and environment overrides enabled
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers default values for every scalar key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.title", "Solar Flight")
	v.SetDefault("window.zoom", 0.35)

	t := sim.DefaultTuning()
	v.SetDefault("physics.gravitationalConstant", t.GravitationalConstant)
	v.SetDefault("physics.minDistance", t.MinDistance)
	v.SetDefault("physics.thrustSpeed", t.ThrustSpeed)
	v.SetDefault("physics.boostSpeed", t.BoostSpeed)
	v.SetDefault("physics.turnStep", t.TurnStep)
	v.SetDefault("physics.collisionDamping", t.CollisionDamping)
	v.SetDefault("physics.orbitBlend", t.OrbitBlend)
	v.SetDefault("physics.noticeFactor", t.NoticeFactor)
	v.SetDefault("physics.autopilotSpeed", t.AutopilotSpeed)
	v.SetDefault("physics.autopilotBlend", t.AutopilotBlend)
	v.SetDefault("physics.trailCapacity", t.TrailCapacity)
	v.SetDefault("physics.spinStep", t.SpinStep)

	v.SetDefault("spacecraft.position", []float64{300, 0, 0})
	v.SetDefault("spacecraft.velocity", []float64{0, 2, 0})
	v.SetDefault("spacecraft.heading", 0.0)
	v.SetDefault("spacecraft.model", "")

	v.SetDefault("profiling.enabled", false)
	v.SetDefault("profiling.dir", "profiles")
	v.SetDefault("profiling.fpsThreshold", 45.0)
}

// Load reads configuration from path (JSON, YAML or TOML by extension) on top of the
// defaults. An empty path uses defaults and environment overrides only.
func Load(path string) (Config, error) {
	return LoadWith(New(), path)
}

// LoadWith is Load on a caller-provided viper instance, e.g. one with bound flags
func LoadWith(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if len(cfg.Bodies) == 0 {
		cfg.Bodies = DefaultBodies()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks tuning, window and body descriptors
func (c Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if !(c.Window.Zoom > 0) {
		return fmt.Errorf("invalid window zoom %v", c.Window.Zoom)
	}
	var errs []error
	for _, b := range c.Bodies {
		if _, err := ParseColor(b.Color); err != nil {
			errs = append(errs, fmt.Errorf("body %s: %w", b.Name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	_, err := c.Registry()
	return err
}

// Registry builds the simulation bodies in configured order
func (c Config) Registry() (*sim.Registry, error) {
	bodies := make([]*sim.Body, 0, len(c.Bodies))
	for i, bc := range c.Bodies {
		b, err := sim.NewBody(bc.Name, bc.Mass, bc.Radius, bc.OrbitRadius, vec(bc.Position), vec(bc.Velocity))
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return sim.NewRegistry(bodies...)
}

// Craft returns the spacecraft's initial state
func (c Config) Craft() sim.Spacecraft {
	return sim.Spacecraft{
		Position: vec(c.Spacecraft.Position),
		Velocity: vec(c.Spacecraft.Velocity),
		Rotation: r3.Vec{Z: c.Spacecraft.Heading},
	}
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

// ParseColor parses #rrggbb. An empty string yields a neutral grey.
func ParseColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{200, 200, 200, 255}, nil
	}
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		if n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
}

// DefaultBodies returns the Sun, Earth and Mars system
func DefaultBodies() []BodyConfig {
	return []BodyConfig{
		{
			Name:        "Sun",
			Mass:        10000000,
			Radius:      40,
			OrbitRadius: 200,
			Color:       "#ffff00",
			Info:        "This is the Sun. It is the center of the solar system.",
		},
		{
			Name:        "Earth",
			Mass:        10000,
			Radius:      20,
			OrbitRadius: 300,
			Position:    [3]float64{450, 0, 0},
			Velocity:    [3]float64{0, 1, 0},
			Color:       "#0000ff",
			Info:        "This is Earth. It is the third planet from the Sun.",
		},
		{
			Name:        "Mars",
			Mass:        500000,
			Radius:      15,
			OrbitRadius: 200,
			Position:    [3]float64{-1000, 0, 0},
			Velocity:    [3]float64{0, -1, 0},
			Color:       "#ff0000",
			Info:        "This is Mars. It is the fourth planet from the Sun.",
		},
	}
}
