package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTargetLock(t *testing.T) {
	a := mustBody(t, "A", 1, 1, 1, r3.Vec{}, r3.Vec{})
	b := mustBody(t, "B", 1, 1, 1, r3.Vec{}, r3.Vec{})
	var lock TargetLock

	assert.False(t, lock.Active())
	lock.Set(a)
	assert.Same(t, a, lock.Target())
	lock.Set(b)
	assert.Same(t, b, lock.Target())
	lock.Clear()
	assert.False(t, lock.Active())
	assert.Nil(t, lock.Target())
}

func TestAutopilot_InactiveWithoutLock(t *testing.T) {
	ap := Autopilot{CruiseSpeed: 3, Blend: 0.05}
	var lock TargetLock
	craft := Spacecraft{Velocity: r3.Vec{X: 1}}

	assert.False(t, ap.Apply(&lock, &craft))
	assert.Equal(t, r3.Vec{X: 1}, craft.Velocity)
}

func TestAutopilot_BlendsTowardCruise(t *testing.T) {
	ap := Autopilot{CruiseSpeed: 3, Blend: 0.05}
	target := mustBody(t, "Mars", 5e5, 15, 200, r3.Vec{X: 1000}, r3.Vec{})
	var lock TargetLock
	lock.Set(target)
	var craft Spacecraft

	assert.False(t, ap.Apply(&lock, &craft))
	requireVecInDelta(t, r3.Vec{X: 0.15}, craft.Velocity, 1e-12)
	assert.True(t, lock.Active())

	for i := 0; i < 500; i++ {
		ap.Apply(&lock, &craft)
	}
	requireVecInDelta(t, r3.Vec{X: 3}, craft.Velocity, 1e-6)
}

func TestAutopilot_ReleasesInsideOrbitRadius(t *testing.T) {
	ap := Autopilot{CruiseSpeed: 3, Blend: 0.05}
	target := mustBody(t, "Mars", 5e5, 15, 200, r3.Vec{X: 100}, r3.Vec{})
	var lock TargetLock
	lock.Set(target)
	craft := Spacecraft{Velocity: r3.Vec{Y: 7}}

	assert.True(t, ap.Apply(&lock, &craft))
	assert.False(t, lock.Active())
	assert.Equal(t, r3.Vec{Y: 7}, craft.Velocity, "arrival applies no steering")
}

func TestState_AutopilotTerminatesInSameFrame(t *testing.T) {
	target := mustBody(t, "Beacon", 1, 10, 100, r3.Vec{}, r3.Vec{})
	s := mustState(t, Spacecraft{Position: r3.Vec{X: 105}, Velocity: r3.Vec{X: -10}}, target)
	require.NoError(t, s.SelectTarget(target))

	r := s.Step()
	assert.False(t, r.Arrived)
	assert.True(t, s.Target.Active())
	assert.Equal(t, 0, r.TargetIndex)

	// the spacecraft is now inside the orbit radius
	require.Less(t, distance(s.Craft.Position, target.Position), target.OrbitRadius())

	r = s.Step()
	assert.True(t, r.Arrived)
	assert.False(t, s.Target.Active())
	assert.Equal(t, -1, r.TargetIndex)

	for i := 0; i < 100; i++ {
		r = s.Step()
		require.False(t, r.Arrived)
		require.False(t, s.Target.Active())
	}
}

func TestState_SelectTarget(t *testing.T) {
	sun := mustBody(t, "Sun", 1e7, 40, 200, r3.Vec{}, r3.Vec{})
	mars := mustBody(t, "Mars", 5e5, 15, 200, r3.Vec{X: -1000}, r3.Vec{})
	s := mustState(t, Spacecraft{Position: r3.Vec{X: 5000}}, sun, mars)

	require.NoError(t, s.SelectTarget(sun))
	require.NoError(t, s.SelectTargetByName("Mars"))
	assert.Same(t, mars, s.Target.Target())

	stray := mustBody(t, "Sun", 1, 1, 1, r3.Vec{}, r3.Vec{})
	assert.ErrorIs(t, s.SelectTarget(stray), ErrUnknownBody)
	assert.ErrorIs(t, s.SelectTarget(nil), ErrUnknownBody)
	assert.ErrorIs(t, s.SelectTargetByName("Pluto"), ErrUnknownBody)
	assert.Same(t, mars, s.Target.Target(), "failed selections keep the previous lock")

	s.ClearTarget()
	assert.False(t, s.Target.Active())
}
