package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Gravity accumulates Newtonian pulls into velocities.
// One call per frame is one forward-Euler substep with dt = 1.
type Gravity struct {
	G           float64
	MinDistance float64
}

// strength returns G*m1*m2/d² with d clamped to MinDistance
func (g Gravity) strength(m1, m2, d float64) float64 {
	d = math.Max(d, g.MinDistance)
	return g.G * m1 * m2 / (d * d)
}

// PairForce returns the force exerted on a by b.
// Coincident bodies have no defined direction and exert no force.
func (g Gravity) PairForce(a, b *Body) r3.Vec {
	offset := r3.Sub(b.Position, a.Position)
	dir := unit(offset)
	if dir == (r3.Vec{}) {
		return r3.Vec{}
	}
	return r3.Scale(g.strength(a.mass, b.mass, r3.Norm(offset)), dir)
}

// AccumulateBodies applies every unordered pair's mutual pull to both bodies.
func (g Gravity) AccumulateBodies(bodies []*Body) {
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			f := g.PairForce(a, b)
			a.Velocity = r3.Add(a.Velocity, r3.Scale(1/a.mass, f))
			b.Velocity = r3.Sub(b.Velocity, r3.Scale(1/b.mass, f))
		}
	}
}

// Acceleration returns the pull of body on a unit mass located at pos
func (g Gravity) Acceleration(body *Body, pos r3.Vec) r3.Vec {
	offset := r3.Sub(body.Position, pos)
	dir := unit(offset)
	if dir == (r3.Vec{}) {
		return r3.Vec{}
	}
	return r3.Scale(g.strength(body.mass, 1, r3.Norm(offset)), dir)
}

// AccumulateSpacecraft adds every body's pull to the spacecraft velocity.
// Bodies feel no reaction.
func (g Gravity) AccumulateSpacecraft(bodies []*Body, craft *Spacecraft) {
	for _, b := range bodies {
		craft.Velocity = r3.Add(craft.Velocity, g.Acceleration(b, craft.Position))
	}
}

// Integrate advances a body's position by its velocity
func Integrate(b *Body) {
	b.Position = r3.Add(b.Position, b.Velocity)
}
