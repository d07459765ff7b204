package sim

import "gonum.org/v1/gonum/spatial/r3"

// TargetLock is the optional autopilot destination
type TargetLock struct {
	body *Body
}

// Set locks onto b, replacing any previous target
func (t *TargetLock) Set(b *Body) { t.body = b }

// Clear drops the lock
func (t *TargetLock) Clear() { t.body = nil }

// Target returns the locked body, or nil
func (t *TargetLock) Target() *Body { return t.body }

// Active reports whether a target is locked
func (t *TargetLock) Active() bool { return t.body != nil }

// Autopilot steers the spacecraft toward a locked target at cruise speed
type Autopilot struct {
	CruiseSpeed float64
	Blend       float64
}

// Apply steers toward the lock's target. Inside the target's orbit radius the lock
// is released without steering and Apply reports arrival; orbit insertion takes over
// from the next frame.
func (a Autopilot) Apply(lock *TargetLock, craft *Spacecraft) (arrived bool) {
	target := lock.Target()
	if target == nil {
		return false
	}

	offset := r3.Sub(target.Position, craft.Position)
	if r3.Norm(offset) < target.orbitRadius {
		lock.Clear()
		return true
	}

	desired := r3.Scale(a.CruiseSpeed, unit(offset))
	craft.Velocity = BlendVelocity(craft.Velocity, desired, a.Blend)
	return false
}
