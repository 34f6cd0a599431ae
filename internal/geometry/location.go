// Package geometry provides the world-frame Location type and the planar
// line-intersection arithmetic used by the scenario helpers.
package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Location is a point in the simulated world frame, in metres.
type Location struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Infinity is returned when two lines have no finite intersection.
var Infinity = Location{X: math.Inf(1), Y: math.Inf(1)}

// FromVector converts an r3 vector to a Location.
func FromVector(v r3.Vector) Location { return Location{X: v.X, Y: v.Y, Z: v.Z} }

// Vector returns l as an r3 vector.
func (l Location) Vector() r3.Vector { return r3.Vector{X: l.X, Y: l.Y, Z: l.Z} }

// Distance returns the Euclidean distance between l and other.
func (l Location) Distance(other Location) float64 {
	return l.Vector().Distance(other.Vector())
}

// IsInfinite reports whether l is the no-intersection sentinel (or any
// location with an infinite planar coordinate).
func (l Location) IsInfinite() bool {
	return math.IsInf(l.X, 0) || math.IsInf(l.Y, 0)
}

func (l Location) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", l.X, l.Y, l.Z)
}
