package sim

import "gonum.org/v1/gonum/spatial/r3"

// BlendVelocity moves current toward target by fraction of the remaining difference.
// Applied once per frame this converges exponentially instead of snapping.
// fraction is clamped to [0,1]: 0 leaves current unchanged, 1 returns target.
func BlendVelocity(current, target r3.Vec, fraction float64) r3.Vec {
	switch {
	case !(fraction > 0):
		return current
	case fraction >= 1:
		return target
	}
	return r3.Add(current, r3.Scale(fraction, r3.Sub(target, current)))
}
