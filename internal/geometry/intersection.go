package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// homogeneous lifts the planar part of l to (x, y, 1).
func homogeneous(l Location) r3.Vector { return r3.Vector{X: l.X, Y: l.Y, Z: 1} }

// LineThrough returns the homogeneous line through the planar projections
// of a and b. Z is ignored.
func LineThrough(a, b Location) r3.Vector {
	return homogeneous(a).Cross(homogeneous(b))
}

// IntersectLines returns the planar point where the line through a1, a2
// meets the line through b1, b2, with Z set to 0.
//
// The homogeneous scale factor of the result is compared against epsilon:
// when |w| <= epsilon the lines are treated as parallel (or coincident) and
// Infinity is returned. An epsilon of 0 keeps the exact w == 0 test, so
// nearly parallel lines yield large but finite coordinates.
func IntersectLines(a1, a2, b1, b2 Location, epsilon float64) Location {
	p := LineThrough(a1, a2).Cross(LineThrough(b1, b2))
	if math.Abs(p.Z) <= epsilon {
		return Infinity
	}
	return Location{X: p.X / p.Z, Y: p.Y / p.Z}
}
