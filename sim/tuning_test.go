package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTuning_Valid(t *testing.T) {
	assert.NoError(t, DefaultTuning().Validate())
}

func TestTuning_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero G", func(t *Tuning) { t.GravitationalConstant = 0 }},
		{"infinite G", func(t *Tuning) { t.GravitationalConstant = math.Inf(1) }},
		{"zero min distance", func(t *Tuning) { t.MinDistance = 0 }},
		{"zero damping", func(t *Tuning) { t.CollisionDamping = 0 }},
		{"negative thrust", func(t *Tuning) { t.ThrustSpeed = -1 }},
		{"NaN turn step", func(t *Tuning) { t.TurnStep = math.NaN() }},
		{"zero orbit blend", func(t *Tuning) { t.OrbitBlend = 0 }},
		{"orbit blend above one", func(t *Tuning) { t.OrbitBlend = 1.5 }},
		{"zero autopilot blend", func(t *Tuning) { t.AutopilotBlend = 0 }},
		{"notice inside orbit", func(t *Tuning) { t.NoticeFactor = 0.5 }},
		{"trail too small", func(t *Tuning) { t.TrailCapacity = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)
			assert.ErrorIs(t, tuning.Validate(), ErrInvalidTuning)
		})
	}
}
