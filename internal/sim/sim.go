// Package sim describes the slice of a driving simulator's object model that
// the scenario helpers read through. Implementations may be backed by a live
// simulator connection or by an in-memory road network.
package sim

import "github.com/cxd309/scenario-helper/internal/geometry"

// Waypoint is a handle to a point on the road network.
type Waypoint interface {
	// Location returns the world-frame position of the waypoint.
	Location() geometry.Location

	// IsIntersection reports whether the waypoint lies inside a junction.
	IsIntersection() bool

	// Next returns the waypoints roughly distance metres further along the
	// lane. Branching roads yield several waypoints; a dead end yields none.
	Next(distance float64) ([]Waypoint, error)
}

// Map resolves world locations onto the road network.
type Map interface {
	// Waypoint returns the drivable waypoint nearest to loc.
	Waypoint(loc geometry.Location) (Waypoint, error)
}

// World is the simulated world an actor lives in.
type World interface {
	Map() Map
}

// Actor is a simulated vehicle or pedestrian.
type Actor interface {
	World() World
	Location() geometry.Location
}
