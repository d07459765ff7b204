package sim

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Body represents a gravitationally massive object (star or planet).
// Position and Velocity change every frame; mass and both radii are fixed at creation.
type Body struct {
	// Name identifies the body in the registry
	Name string

	// Position in world units
	Position r3.Vec

	// Velocity in world units per frame
	Velocity r3.Vec

	mass        float64
	radius      float64
	orbitRadius float64
}

// NewBody creates a body with validated physical parameters
func NewBody(name string, mass, radius, orbitRadius float64, pos, vel r3.Vec) (*Body, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidBody)
	}
	if !(mass > 0) || !isFinite(mass) {
		return nil, fmt.Errorf("%w: %s: mass must be positive, got %v", ErrInvalidBody, name, mass)
	}
	if !(radius > 0) || !isFinite(radius) {
		return nil, fmt.Errorf("%w: %s: radius must be positive, got %v", ErrInvalidBody, name, radius)
	}
	if !(orbitRadius > 0) || !isFinite(orbitRadius) {
		return nil, fmt.Errorf("%w: %s: orbit radius must be positive, got %v", ErrInvalidBody, name, orbitRadius)
	}
	if !finite(pos) || !finite(vel) {
		return nil, fmt.Errorf("%w: %s: position and velocity must be finite", ErrInvalidBody, name)
	}

	return &Body{
		Name:        name,
		Position:    pos,
		Velocity:    vel,
		mass:        mass,
		radius:      radius,
		orbitRadius: orbitRadius,
	}, nil
}

// Mass returns the body's mass
func (b *Body) Mass() float64 { return b.mass }

// Radius returns the collision radius
func (b *Body) Radius() float64 { return b.radius }

// OrbitRadius returns the outer edge of the orbit-insertion band
func (b *Body) OrbitRadius() float64 { return b.orbitRadius }

// Momentum returns mass times velocity
func (b *Body) Momentum() r3.Vec {
	return r3.Scale(b.mass, b.Velocity)
}

// Registry holds the fixed, ordered list of bodies for one run.
// Index 0 is the primary body used as the camera and trail anchor.
type Registry struct {
	bodies []*Body
	byName map[string]int
}

// NewRegistry creates a registry from an ordered body list.
// At least one body is required and names must be unique.
func NewRegistry(bodies ...*Body) (*Registry, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one body", ErrInvalidBody)
	}

	r := &Registry{
		bodies: make([]*Body, 0, len(bodies)),
		byName: make(map[string]int, len(bodies)),
	}
	for i, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("%w: nil body at index %d", ErrInvalidBody, i)
		}
		if _, dup := r.byName[b.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidBody, b.Name)
		}
		r.byName[b.Name] = i
		r.bodies = append(r.bodies, b)
	}
	return r, nil
}

// Len returns the number of bodies
func (r *Registry) Len() int { return len(r.bodies) }

// At returns the body at index i
func (r *Registry) At(i int) *Body { return r.bodies[i] }

// Primary returns body 0
func (r *Registry) Primary() *Body { return r.bodies[0] }

// Bodies returns the bodies in registry order. The slice must not be modified.
func (r *Registry) Bodies() []*Body { return r.bodies }

// Index returns the registry index of b, or -1 if b is not registered
func (r *Registry) Index(b *Body) int {
	if b == nil {
		return -1
	}
	if i, ok := r.byName[b.Name]; ok && r.bodies[i] == b {
		return i
	}
	return -1
}

// ByName returns the body with the given name, or nil
func (r *Registry) ByName(name string) *Body {
	if i, ok := r.byName[name]; ok {
		return r.bodies[i]
	}
	return nil
}

// Momentum returns the total momentum of all bodies
func (r *Registry) Momentum() r3.Vec {
	var p r3.Vec
	for _, b := range r.bodies {
		p = r3.Add(p, b.Momentum())
	}
	return p
}
