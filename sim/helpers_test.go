package sim

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func mustBody(t *testing.T, name string, mass, radius, orbitRadius float64, pos, vel r3.Vec) *Body {
	t.Helper()
	b, err := NewBody(name, mass, radius, orbitRadius, pos, vel)
	require.NoError(t, err)
	return b
}

func mustState(t *testing.T, craft Spacecraft, bodies ...*Body) *State {
	t.Helper()
	reg, err := NewRegistry(bodies...)
	require.NoError(t, err)
	s, err := NewState(reg, craft, DefaultTuning(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func requireVecInDelta(t *testing.T, want, got r3.Vec, delta float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, delta, "X")
	require.InDelta(t, want.Y, got.Y, delta, "Y")
	require.InDelta(t, want.Z, got.Z, delta, "Z")
}
