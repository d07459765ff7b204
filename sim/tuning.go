package sim

import (
	"fmt"
	"math"
)

// Tuning holds every tunable scalar of the simulation.
// All velocities are in world units per frame; angles are radians per frame.
type Tuning struct {
	// GravitationalConstant scales every force computation
	GravitationalConstant float64 `mapstructure:"gravitationalConstant"`

	// MinDistance clamps distances before dividing by them
	MinDistance float64 `mapstructure:"minDistance"`

	// ThrustSpeed is added along the nose per frame while thrusting
	ThrustSpeed float64 `mapstructure:"thrustSpeed"`

	// BoostSpeed replaces ThrustSpeed while boost is held
	BoostSpeed float64 `mapstructure:"boostSpeed"`

	// TurnStep is the rotation applied per frame while turning
	TurnStep float64 `mapstructure:"turnStep"`

	// CollisionDamping divides mass/radius to get the repulsion speed
	CollisionDamping float64 `mapstructure:"collisionDamping"`

	// OrbitBlend is the per-frame blend fraction toward orbit velocity
	OrbitBlend float64 `mapstructure:"orbitBlend"`

	// NoticeFactor multiplies the orbit radius to get the notice band's outer edge
	NoticeFactor float64 `mapstructure:"noticeFactor"`

	// AutopilotSpeed is the cruise speed toward a locked target
	AutopilotSpeed float64 `mapstructure:"autopilotSpeed"`

	// AutopilotBlend is the per-frame blend fraction toward cruise velocity
	AutopilotBlend float64 `mapstructure:"autopilotBlend"`

	// TrailCapacity is the maximum number of scalars held by the trail (3 per point)
	TrailCapacity int `mapstructure:"trailCapacity"`

	// SpinStep is the visual rotation applied to every body per frame
	SpinStep float64 `mapstructure:"spinStep"`
}

// DefaultTuning returns the reference tuning for the default solar system
func DefaultTuning() Tuning {
	return Tuning{
		GravitationalConstant: 0.0001,
		MinDistance:           0.001,
		ThrustSpeed:           0.01,
		BoostSpeed:            0.03,
		TurnStep:              0.05,
		CollisionDamping:      40000,
		OrbitBlend:            0.1,
		NoticeFactor:          2,
		AutopilotSpeed:        3,
		AutopilotBlend:        0.05,
		TrailCapacity:         10000,
		SpinStep:              0.01,
	}
}

// Validate checks that every parameter is in range
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"gravitationalConstant", t.GravitationalConstant},
		{"minDistance", t.MinDistance},
		{"collisionDamping", t.CollisionDamping},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"thrustSpeed", t.ThrustSpeed},
		{"boostSpeed", t.BoostSpeed},
		{"turnStep", t.TurnStep},
		{"autopilotSpeed", t.AutopilotSpeed},
		{"spinStep", t.SpinStep},
	}
	for _, p := range nonNegative {
		if !(p.value >= 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidTuning, p.name, p.value)
		}
	}

	if !(t.OrbitBlend > 0 && t.OrbitBlend <= 1) {
		return fmt.Errorf("%w: orbitBlend must be in (0,1], got %v", ErrInvalidTuning, t.OrbitBlend)
	}
	if !(t.AutopilotBlend > 0 && t.AutopilotBlend <= 1) {
		return fmt.Errorf("%w: autopilotBlend must be in (0,1], got %v", ErrInvalidTuning, t.AutopilotBlend)
	}
	if !(t.NoticeFactor >= 1) || math.IsInf(t.NoticeFactor, 0) {
		return fmt.Errorf("%w: noticeFactor must be at least 1, got %v", ErrInvalidTuning, t.NoticeFactor)
	}
	if t.TrailCapacity < 3 {
		return fmt.Errorf("%w: trailCapacity must hold at least one point, got %d", ErrInvalidTuning, t.TrailCapacity)
	}
	return nil
}
