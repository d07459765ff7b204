package sim

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is the complete simulation owned by the frame driver.
// Input and target lock are mutated through methods between frames; Step advances
// everything by one frame. State is not safe for concurrent use.
type State struct {
	Bodies *Registry
	Craft  Spacecraft
	Input  InputState
	Target TargetLock
	Trail  *TrailBuffer

	tuning    Tuning
	gravity   Gravity
	flight    FlightController
	proximity Proximity
	autopilot Autopilot

	nearby     *Body
	nearbyBand Band
	frame      uint64
	bands      []Band // previous frame's band per body, for transition logging

	log zerolog.Logger
}

// Report summarizes what happened during one Step
type Report struct {
	Frame       uint64
	Nearby      int  // registry index of the nearby body, -1 for none
	NearbyBand  Band // band of the nearby body
	Collisions  int  // bodies whose surface the spacecraft touched
	Orbiting    bool // spacecraft was inside at least one orbit band
	Arrived     bool // autopilot released its lock this frame
	TargetIndex int  // registry index of the locked target after the step, -1 for none
}

// NewState creates a simulation over reg with the spacecraft in its initial state
func NewState(reg *Registry, craft Spacecraft, tuning Tuning, logger zerolog.Logger) (*State, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidBody)
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	if !finite(craft.Position) || !finite(craft.Velocity) || !finite(craft.Rotation) {
		return nil, fmt.Errorf("%w: spacecraft state must be finite", ErrNumericDegeneracy)
	}

	return &State{
		Bodies: reg,
		Craft:  craft,
		Trail:  NewTrailBuffer(tuning.TrailCapacity),
		tuning: tuning,
		gravity: Gravity{
			G:           tuning.GravitationalConstant,
			MinDistance: tuning.MinDistance,
		},
		flight: FlightController{
			ThrustSpeed: tuning.ThrustSpeed,
			BoostSpeed:  tuning.BoostSpeed,
			TurnStep:    tuning.TurnStep,
		},
		proximity: Proximity{
			G:                tuning.GravitationalConstant,
			MinDistance:      tuning.MinDistance,
			CollisionDamping: tuning.CollisionDamping,
			OrbitBlend:       tuning.OrbitBlend,
			NoticeFactor:     tuning.NoticeFactor,
		},
		autopilot: Autopilot{
			CruiseSpeed: tuning.AutopilotSpeed,
			Blend:       tuning.AutopilotBlend,
		},
		bands: make([]Band, reg.Len()),
		log:   logger,
	}, nil
}

// Tuning returns the parameters the state was built with
func (s *State) Tuning() Tuning { return s.tuning }

// Frame returns the number of completed steps
func (s *State) Frame() uint64 { return s.frame }

// Nearby returns the body that raised the nearby signal in the last step, or nil
func (s *State) Nearby() *Body { return s.nearby }

// SetControl records a control press or release
func (s *State) SetControl(c Control, down bool) {
	s.Input.Set(c, down)
}

// SelectTarget locks the autopilot onto b, replacing any previous lock
func (s *State) SelectTarget(b *Body) error {
	if s.Bodies.Index(b) < 0 {
		return fmt.Errorf("%w: not in registry", ErrUnknownBody)
	}
	if s.Target.Target() != b {
		s.log.Debug().Str("target", b.Name).Uint64("frame", s.frame).Msg("Target locked")
	}
	s.Target.Set(b)
	return nil
}

// SelectTargetByName locks the autopilot onto the named body
func (s *State) SelectTargetByName(name string) error {
	b := s.Bodies.ByName(name)
	if b == nil {
		return fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return s.SelectTarget(b)
}

// ClearTarget drops any autopilot lock
func (s *State) ClearTarget() {
	s.Target.Clear()
}

// Step advances the simulation by one frame in a fixed order:
// body gravity, spacecraft gravity, flight input, per-body integration and bands,
// trail, autopilot, spacecraft integration.
func (s *State) Step() Report {
	bodies := s.Bodies.Bodies()

	s.gravity.AccumulateBodies(bodies)
	s.gravity.AccumulateSpacecraft(bodies, &s.Craft)
	s.flight.Apply(&s.Input, &s.Craft)

	s.nearby = nil
	s.nearbyBand = BandNone

	report := Report{Nearby: -1, TargetIndex: -1}
	for i, b := range bodies {
		Integrate(b)

		band := s.proximity.Apply(b, &s.Craft)
		switch band {
		case BandCollision:
			report.Collisions++
		case BandOrbit:
			report.Orbiting = true
		}
		if band != BandNone {
			// Registry order breaks ties: the last body wins.
			s.nearby = b
			s.nearbyBand = band
			report.Nearby = i
		}
		s.logTransition(i, b, band)
	}

	s.Trail.Record(s.Craft.Position, s.Bodies.Primary().Position)

	if target := s.Target.Target(); target != nil {
		if s.autopilot.Apply(&s.Target, &s.Craft) {
			report.Arrived = true
			s.log.Debug().Str("target", target.Name).Uint64("frame", s.frame).Msg("Target reached, lock released")
		}
	}

	s.Craft.Position = r3.Add(s.Craft.Position, s.Craft.Velocity)

	s.frame++
	report.Frame = s.frame
	report.NearbyBand = s.nearbyBand
	report.TargetIndex = s.Bodies.Index(s.Target.Target())
	return report
}

func (s *State) logTransition(i int, b *Body, band Band) {
	prev := s.bands[i]
	s.bands[i] = band
	if band == prev || band == BandNotice || band == BandNone {
		return
	}
	s.log.Debug().
		Str("body", b.Name).
		Stringer("band", band).
		Stringer("previous", prev).
		Uint64("frame", s.frame).
		Msg("Spacecraft entered band")
}

// Validate returns ErrNumericDegeneracy if any position or velocity is not finite
func (s *State) Validate() error {
	for _, b := range s.Bodies.Bodies() {
		if !finite(b.Position) || !finite(b.Velocity) {
			return fmt.Errorf("%w: body %s at frame %d", ErrNumericDegeneracy, b.Name, s.frame)
		}
	}
	if !finite(s.Craft.Position) || !finite(s.Craft.Velocity) || !finite(s.Craft.Rotation) {
		return fmt.Errorf("%w: spacecraft at frame %d", ErrNumericDegeneracy, s.frame)
	}
	return nil
}
