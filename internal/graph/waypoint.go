package graph

import (
	"github.com/cxd309/scenario-helper/internal/geometry"
	"github.com/cxd309/scenario-helper/internal/sim"
)

var (
	_ sim.Map      = (*Graph)(nil)
	_ sim.Waypoint = (*Waypoint)(nil)
)

// Waypoint is a Position bound to the graph it lies on.
type Waypoint struct {
	g    *Graph
	edge Edge
	pos  Position
}

// WaypointAt returns the waypoint at pos.
func (g *Graph) WaypointAt(pos Position) (*Waypoint, error) {
	edge, err := g.CheckPosition(pos)
	if err != nil {
		return nil, err
	}
	return &Waypoint{g: g, edge: edge, pos: pos}, nil
}

// Waypoint returns the waypoint nearest to loc.
func (g *Graph) Waypoint(loc geometry.Location) (sim.Waypoint, error) {
	pos, err := g.Nearest(loc)
	if err != nil {
		return nil, err
	}
	return g.WaypointAt(pos)
}

// Position returns the graph position of the waypoint.
func (w *Waypoint) Position() Position { return w.pos }

// Location returns the world coordinates of the waypoint.
func (w *Waypoint) Location() geometry.Location {
	return w.g.locate(w.edge, w.pos.DistanceAlongEdge)
}

// IsIntersection reports whether the waypoint lies in a junction.
func (w *Waypoint) IsIntersection() bool {
	return w.g.isIntersection(w.edge, w.pos.DistanceAlongEdge)
}

// Next returns the waypoints distance metres further along the lane, one
// per branch. See Graph.Advance.
func (w *Waypoint) Next(distance float64) ([]sim.Waypoint, error) {
	positions, err := w.g.Advance(w.pos, distance)
	if err != nil {
		return nil, err
	}
	out := make([]sim.Waypoint, len(positions))
	for i, p := range positions {
		out[i] = &Waypoint{g: w.g, edge: w.g.edgeMap[p.Edge], pos: p}
	}
	return out, nil
}
