package scenario

import (
	"github.com/golang/geo/r3"

	"github.com/cxd309/scenario-helper/internal/geometry"
	"github.com/cxd309/scenario-helper/internal/sim"
)

// straightRoad is a single lane starting at origin and heading along dir.
// When junction is set, waypoints with junctionFrom <= s <= junctionTo are
// inside a junction. A zero length makes the lane endless.
type straightRoad struct {
	origin       r3.Vector
	dir          r3.Vector
	junction     bool
	junctionFrom float64
	junctionTo   float64
	length       float64
}

func (r *straightRoad) at(s float64) *roadWaypoint { return &roadWaypoint{road: r, s: s} }

type roadWaypoint struct {
	road *straightRoad
	s    float64
}

func (w *roadWaypoint) Location() geometry.Location {
	return geometry.FromVector(w.road.origin.Add(w.road.dir.Mul(w.s)))
}

func (w *roadWaypoint) IsIntersection() bool {
	return w.road.junction && w.s >= w.road.junctionFrom && w.s <= w.road.junctionTo
}

func (w *roadWaypoint) Next(distance float64) ([]sim.Waypoint, error) {
	s := w.s + distance
	if w.road.length > 0 && s > w.road.length {
		return nil, nil
	}
	return []sim.Waypoint{w.road.at(s)}, nil
}

// node is a hand-built waypoint whose successors ignore the step distance.
type node struct {
	loc      geometry.Location
	junction bool
	next     []*node
	err      error
	calls    int
}

func (n *node) Location() geometry.Location { return n.loc }

func (n *node) IsIntersection() bool { return n.junction }

func (n *node) Next(float64) ([]sim.Waypoint, error) {
	n.calls++
	if n.err != nil {
		return nil, n.err
	}
	out := make([]sim.Waypoint, len(n.next))
	for i, s := range n.next {
		out[i] = s
	}
	return out, nil
}

// fixedMap resolves every location to the same waypoint.
type fixedMap struct {
	wp  sim.Waypoint
	err error
}

func (m fixedMap) Waypoint(geometry.Location) (sim.Waypoint, error) { return m.wp, m.err }

type fakeWorld struct{ m sim.Map }

func (w fakeWorld) Map() sim.Map { return w.m }

type fakeActor struct {
	world sim.World
	loc   geometry.Location
}

func (a fakeActor) World() sim.World            { return a.world }
func (a fakeActor) Location() geometry.Location { return a.loc }

// actorOn places an actor on wp.
func actorOn(wp sim.Waypoint) fakeActor {
	return fakeActor{world: fakeWorld{m: fixedMap{wp: wp}}, loc: wp.Location()}
}

var (
	xAxis = r3.Vector{X: 1}
	yAxis = r3.Vector{Y: 1}
)
