package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Band is a concentric distance range around a body
type Band int

const (
	BandNone Band = iota
	BandNotice
	BandOrbit
	BandCollision
)

func (b Band) String() string {
	switch b {
	case BandNotice:
		return "notice"
	case BandOrbit:
		return "orbit"
	case BandCollision:
		return "collision"
	default:
		return "none"
	}
}

// Proximity applies the per-body collision, orbit-insertion and notice bands
type Proximity struct {
	G                float64
	MinDistance      float64
	CollisionDamping float64
	OrbitBlend       float64
	NoticeFactor     float64
}

// Classify returns the innermost band that contains distance d
func (p Proximity) Classify(b *Body, d float64) Band {
	switch {
	case d <= b.radius:
		return BandCollision
	case d <= b.orbitRadius:
		return BandOrbit
	case d <= p.NoticeFactor*b.orbitRadius:
		return BandNotice
	default:
		return BandNone
	}
}

// OrbitVelocity returns the absolute velocity of a circular orbit around b through pos.
// The tangent lies in the XY plane, perpendicular to the radial vector.
func (p Proximity) OrbitVelocity(b *Body, pos r3.Vec) r3.Vec {
	radial := unit(r3.Sub(b.Position, pos))
	tangent := unit(r3.Vec{X: radial.Y, Y: -radial.X})
	d := math.Max(distance(b.Position, pos), p.MinDistance)
	speed := math.Sqrt(p.G * b.mass / d)
	return r3.Add(r3.Scale(speed, tangent), b.Velocity)
}

// RepulsionVelocity returns the bounce velocity away from b's surface
func (p Proximity) RepulsionVelocity(b *Body, pos r3.Vec) r3.Vec {
	outward := unit(r3.Sub(pos, b.Position))
	return r3.Scale(b.mass/b.radius/p.CollisionDamping, outward)
}

// Apply classifies the spacecraft against b and mutates its velocity for that band.
// Collision overwrites the velocity; orbit blends toward the orbit velocity.
func (p Proximity) Apply(b *Body, craft *Spacecraft) Band {
	band := p.Classify(b, distance(craft.Position, b.Position))
	switch band {
	case BandCollision:
		craft.Velocity = p.RepulsionVelocity(b, craft.Position)
	case BandOrbit:
		craft.Velocity = BlendVelocity(craft.Velocity, p.OrbitVelocity(b, craft.Position), p.OrbitBlend)
	}
	return band
}
