package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTrailBuffer_Capacity(t *testing.T) {
	assert.Equal(t, 3333, NewTrailBuffer(10000).Cap())
	assert.Equal(t, 10, NewTrailBuffer(30).Cap())
	assert.Equal(t, 1, NewTrailBuffer(0).Cap())
}

func TestTrailBuffer_NeverExceedsCap(t *testing.T) {
	trail := NewTrailBuffer(30)

	for i := 0; i < 1000; i++ {
		trail.Record(r3.Vec{X: float64(i)}, r3.Vec{})
		require.LessOrEqual(t, trail.Scalars(), 30)
		require.Equal(t, min(i+1, 10), trail.Len())
	}
}

func TestTrailBuffer_EvictsExactlyOldest(t *testing.T) {
	trail := NewTrailBuffer(12)
	for i := 0; i < 4; i++ {
		trail.Record(r3.Vec{X: float64(i)}, r3.Vec{})
	}
	before := trail.Offsets()
	require.Len(t, before, 4)

	trail.Record(r3.Vec{X: 99}, r3.Vec{})
	after := trail.Offsets()

	require.Len(t, after, 4)
	assert.Equal(t, before[1:], after[:3])
	assert.Equal(t, r3.Vec{X: 99}, after[3])
}

func TestTrailBuffer_Flat(t *testing.T) {
	trail := NewTrailBuffer(9)
	trail.Record(r3.Vec{X: 10}, r3.Vec{})
	trail.Record(r3.Vec{X: 12, Y: 1}, r3.Vec{X: 1})

	assert.Equal(t, []float64{15, 5, 0, 16, 6, 0}, trail.Flat(r3.Vec{X: 5, Y: 5}))

	trail.Reset()
	assert.Equal(t, 0, trail.Len())
	assert.Empty(t, trail.Flat(r3.Vec{}))
}

// The co-moving trail must match shifting every stored coordinate by the anchor's
// velocity each frame and then appending the new absolute position.
func TestTrailBuffer_MatchesShiftThenAppend(t *testing.T) {
	const capacity = 30
	trail := NewTrailBuffer(capacity)
	var shifted []float64

	anchor := r3.Vec{X: 3, Y: -2}
	anchorVel := r3.Vec{X: 0.7, Y: -0.3, Z: 0.1}
	craft := r3.Vec{X: 300}

	for frame := 0; frame < 25; frame++ {
		anchor = r3.Add(anchor, anchorVel)
		craft = r3.Add(craft, r3.Vec{X: -1, Y: float64(frame) * 0.5})

		for i := range shifted {
			switch i % 3 {
			case 0:
				shifted[i] += anchorVel.X
			case 1:
				shifted[i] += anchorVel.Y
			case 2:
				shifted[i] += anchorVel.Z
			}
		}
		shifted = append(shifted, craft.X, craft.Y, craft.Z)
		if len(shifted) > capacity {
			shifted = shifted[3:]
		}

		trail.Record(craft, anchor)
	}

	got := trail.Flat(anchor)
	require.Len(t, got, len(shifted))
	for i := range got {
		assert.InDelta(t, shifted[i], got[i], 1e-9, "scalar %d", i)
	}
}
