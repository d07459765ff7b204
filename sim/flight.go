package sim

import "gonum.org/v1/gonum/spatial/r3"

// FlightController turns held controls into thrust and steering
type FlightController struct {
	ThrustSpeed float64
	BoostSpeed  float64
	TurnStep    float64
}

// Apply reads input once and mutates the spacecraft.
// Thrust uses the orientation at frame start; turning is applied afterwards.
func (f FlightController) Apply(in *InputState, craft *Spacecraft) {
	speed := f.ThrustSpeed
	if in.Pressed(ControlBoost) {
		speed = f.BoostSpeed
	}

	forward := in.Pressed(ControlForward)
	reverse := in.Pressed(ControlReverse)
	if forward || reverse {
		nose := craft.Forward()
		if forward {
			craft.Velocity = r3.Add(craft.Velocity, r3.Scale(speed, nose))
		}
		if reverse {
			craft.Velocity = r3.Sub(craft.Velocity, r3.Scale(speed, nose))
		}
	}

	if in.Pressed(ControlTurnLeft) {
		craft.Rotation.Z += f.TurnStep
	}
	if in.Pressed(ControlTurnRight) {
		craft.Rotation.Z -= f.TurnStep
	}
}
