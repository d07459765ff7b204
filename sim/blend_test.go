package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBlendVelocity(t *testing.T) {
	current := r3.Vec{X: 2}
	target := r3.Vec{Y: 4}

	tests := []struct {
		name     string
		fraction float64
		want     r3.Vec
	}{
		{"zero keeps current", 0, current},
		{"negative keeps current", -0.5, current},
		{"one snaps to target", 1, target},
		{"above one clamps", 3, target},
		{"half is midpoint", 0.5, r3.Vec{X: 1, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlendVelocity(current, target, tt.fraction))
		})
	}
}

func TestBlendVelocity_MonotonicConvergence(t *testing.T) {
	v := r3.Vec{X: -3, Y: 7, Z: 1}
	target := r3.Vec{X: 5, Y: -2}

	prev := distance(v, target)
	for i := 0; i < 100; i++ {
		v = BlendVelocity(v, target, 0.2)
		d := distance(v, target)
		assert.Less(t, d, prev, "frame %d", i)
		prev = d
	}
	assert.Less(t, prev, 1e-8)
}
