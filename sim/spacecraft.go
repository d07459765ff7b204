package sim

import "gonum.org/v1/gonum/spatial/r3"

// forwardAxis is the spacecraft's nose direction at zero rotation
var forwardAxis = r3.Vec{Y: 1}

// Spacecraft is the single player-controlled vessel.
// It has implicit unit mass and exerts no gravity on bodies.
type Spacecraft struct {
	// Position in world units
	Position r3.Vec

	// Velocity in world units per frame
	Velocity r3.Vec

	// Rotation holds Euler angles in radians, applied Z then Y then X.
	// Only Z is steered by the flight controller.
	Rotation r3.Vec
}

// Forward returns the unit vector the spacecraft's nose points along
func (s *Spacecraft) Forward() r3.Vec {
	v := forwardAxis
	if s.Rotation.Z != 0 {
		v = r3.NewRotation(s.Rotation.Z, r3.Vec{Z: 1}).Rotate(v)
	}
	if s.Rotation.Y != 0 {
		v = r3.NewRotation(s.Rotation.Y, r3.Vec{Y: 1}).Rotate(v)
	}
	if s.Rotation.X != 0 {
		v = r3.NewRotation(s.Rotation.X, r3.Vec{X: 1}).Rotate(v)
	}
	return v
}

// Speed returns the magnitude of the velocity
func (s *Spacecraft) Speed() float64 {
	return r3.Norm(s.Velocity)
}
