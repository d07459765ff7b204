package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// unit returns v scaled to length 1, or the zero vector when v has no length.
// r3.Unit divides by the norm unconditionally and would yield NaN here.
func unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// distance returns the Euclidean distance between a and b
func distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// finite reports whether every component of v is a finite number
func finite(v r3.Vec) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
