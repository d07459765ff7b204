package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func testFlight() FlightController {
	tuning := DefaultTuning()
	return FlightController{
		ThrustSpeed: tuning.ThrustSpeed,
		BoostSpeed:  tuning.BoostSpeed,
		TurnStep:    tuning.TurnStep,
	}
}

func TestSpacecraft_Forward(t *testing.T) {
	tests := []struct {
		name     string
		rotation r3.Vec
		want     r3.Vec
	}{
		{"unrotated", r3.Vec{}, r3.Vec{Y: 1}},
		{"quarter turn left", r3.Vec{Z: math.Pi / 2}, r3.Vec{X: -1}},
		{"half turn", r3.Vec{Z: math.Pi}, r3.Vec{Y: -1}},
		{"quarter turn right", r3.Vec{Z: -math.Pi / 2}, r3.Vec{X: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			craft := Spacecraft{Rotation: tt.rotation}
			requireVecInDelta(t, tt.want, craft.Forward(), 1e-12)
		})
	}
}

func TestFlightController_Thrust(t *testing.T) {
	f := testFlight()

	tests := []struct {
		name     string
		controls []Control
		want     r3.Vec
	}{
		{"idle", nil, r3.Vec{}},
		{"forward", []Control{ControlForward}, r3.Vec{Y: 0.01}},
		{"boosted forward", []Control{ControlForward, ControlBoost}, r3.Vec{Y: 0.03}},
		{"reverse", []Control{ControlReverse}, r3.Vec{Y: -0.01}},
		{"boosted reverse", []Control{ControlReverse, ControlBoost}, r3.Vec{Y: -0.03}},
		{"forward and reverse cancel", []Control{ControlForward, ControlReverse}, r3.Vec{}},
		{"boost alone does nothing", []Control{ControlBoost}, r3.Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in InputState
			for _, c := range tt.controls {
				in.Set(c, true)
			}
			var craft Spacecraft
			f.Apply(&in, &craft)
			requireVecInDelta(t, tt.want, craft.Velocity, 1e-15)
		})
	}
}

func TestFlightController_ThrustCompounds(t *testing.T) {
	f := testFlight()
	var in InputState
	in.Set(ControlForward, true)
	craft := Spacecraft{Velocity: r3.Vec{X: 1}}

	for i := 0; i < 5; i++ {
		f.Apply(&in, &craft)
	}

	requireVecInDelta(t, r3.Vec{X: 1, Y: 0.05}, craft.Velocity, 1e-12)
}

func TestFlightController_Turn(t *testing.T) {
	f := testFlight()
	var in InputState
	var craft Spacecraft

	in.Set(ControlTurnLeft, true)
	f.Apply(&in, &craft)
	f.Apply(&in, &craft)
	assert.InDelta(t, 0.1, craft.Rotation.Z, 1e-12)

	in.Set(ControlTurnLeft, false)
	in.Set(ControlTurnRight, true)
	f.Apply(&in, &craft)
	assert.InDelta(t, 0.05, craft.Rotation.Z, 1e-12)
	assert.Equal(t, r3.Vec{}, craft.Velocity, "turning applies no thrust")
}

func TestFlightController_ThrustUsesOrientationAtFrameStart(t *testing.T) {
	f := testFlight()
	var in InputState
	in.Set(ControlForward, true)
	in.Set(ControlTurnLeft, true)
	var craft Spacecraft

	f.Apply(&in, &craft)

	requireVecInDelta(t, r3.Vec{Y: 0.01}, craft.Velocity, 1e-15)
	assert.InDelta(t, 0.05, craft.Rotation.Z, 1e-15)
}
