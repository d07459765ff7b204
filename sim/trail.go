package sim

import "gonum.org/v1/gonum/spatial/r3"

// TrailBuffer records the spacecraft's recent path in the primary body's co-moving
// frame. Points are stored as offsets from the anchor at the time of recording, so
// the whole trail follows the anchor without rewriting stored points.
type TrailBuffer struct {
	points []r3.Vec
	head   int // index of the oldest point
	size   int
}

// NewTrailBuffer creates a trail bounded to maxScalars coordinates (three per point)
func NewTrailBuffer(maxScalars int) *TrailBuffer {
	n := maxScalars / 3
	if n < 1 {
		n = 1
	}
	return &TrailBuffer{points: make([]r3.Vec, n)}
}

// Record appends position relative to anchor, evicting the oldest point when full
func (t *TrailBuffer) Record(position, anchor r3.Vec) {
	offset := r3.Sub(position, anchor)
	if t.size == len(t.points) {
		t.points[t.head] = offset
		t.head = (t.head + 1) % len(t.points)
		return
	}
	t.points[(t.head+t.size)%len(t.points)] = offset
	t.size++
}

// Len returns the number of points held
func (t *TrailBuffer) Len() int { return t.size }

// Scalars returns the number of coordinates held
func (t *TrailBuffer) Scalars() int { return t.size * 3 }

// Cap returns the maximum number of points
func (t *TrailBuffer) Cap() int { return len(t.points) }

// Reset empties the trail
func (t *TrailBuffer) Reset() {
	t.head = 0
	t.size = 0
}

// Each calls fn for every stored offset, oldest first
func (t *TrailBuffer) Each(fn func(i int, offset r3.Vec)) {
	for i := 0; i < t.size; i++ {
		fn(i, t.points[(t.head+i)%len(t.points)])
	}
}

// Offsets returns a copy of the stored offsets, oldest first
func (t *TrailBuffer) Offsets() []r3.Vec {
	out := make([]r3.Vec, 0, t.size)
	t.Each(func(_ int, offset r3.Vec) {
		out = append(out, offset)
	})
	return out
}

// Flat returns the trail as x,y,z triples placed around anchor, oldest first
func (t *TrailBuffer) Flat(anchor r3.Vec) []float64 {
	out := make([]float64, 0, t.Scalars())
	t.Each(func(_ int, offset r3.Vec) {
		p := r3.Add(anchor, offset)
		out = append(out, p.X, p.Y, p.Z)
	})
	return out
}
