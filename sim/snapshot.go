package sim

import "gonum.org/v1/gonum/spatial/r3"

// BodyView is the per-frame output for one body
type BodyView struct {
	Name        string
	Position    r3.Vec
	Radius      float64
	OrbitRadius float64
}

// Snapshot is the per-frame output consumed by presentation.
// It shares no memory with the State it was taken from.
type Snapshot struct {
	Frame  uint64
	Bodies []BodyView

	// SpinStep is the fixed visual rotation each body gains per frame
	SpinStep float64

	// NoticeFactor scales OrbitRadius to the notice band's outer edge
	NoticeFactor float64

	CraftPosition r3.Vec
	CraftVelocity r3.Vec
	CraftRotation r3.Vec

	// Nearby is the registry index of the body raising the nearby signal, -1 for none
	Nearby     int
	NearbyBand Band

	// Target is the registry index of the autopilot target, -1 for none
	Target int

	// Trail holds x,y,z triples, oldest first
	Trail []float64
}

// Snapshot copies the current state for presentation
func (s *State) Snapshot() Snapshot {
	bodies := s.Bodies.Bodies()
	views := make([]BodyView, len(bodies))
	for i, b := range bodies {
		views[i] = BodyView{
			Name:        b.Name,
			Position:    b.Position,
			Radius:      b.radius,
			OrbitRadius: b.orbitRadius,
		}
	}

	return Snapshot{
		Frame:         s.frame,
		Bodies:        views,
		SpinStep:      s.tuning.SpinStep,
		NoticeFactor:  s.tuning.NoticeFactor,
		CraftPosition: s.Craft.Position,
		CraftVelocity: s.Craft.Velocity,
		CraftRotation: s.Craft.Rotation,
		Nearby:        s.Bodies.Index(s.nearby),
		NearbyBand:    s.nearbyBand,
		Target:        s.Bodies.Index(s.Target.Target()),
		Trail:         s.Trail.Flat(s.Bodies.Primary().Position),
	}
}
