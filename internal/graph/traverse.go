package graph

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r3"

	"github.com/cxd309/scenario-helper/internal/geometry"
)

// endTolerance is how close to an edge end a position must be to count as
// sitting on the end node.
const endTolerance = 1e-9

// Locate returns the world location of pos, interpolated linearly between
// the edge's end nodes.
func (g *Graph) Locate(pos Position) (geometry.Location, error) {
	edge, err := g.CheckPosition(pos)
	if err != nil {
		return geometry.Location{}, err
	}
	return g.locate(edge, pos.DistanceAlongEdge), nil
}

func (g *Graph) locate(edge Edge, along float64) geometry.Location {
	a, b := g.nodeMap[edge.U].Loc, g.nodeMap[edge.V].Loc
	switch {
	case along <= 0:
		return a
	case along >= edge.Length:
		return b
	}
	// Scale before dividing so whole-metre positions on whole-metre
	// geometry come out exact.
	d := b.Vector().Sub(a.Vector())
	return geometry.FromVector(a.Vector().Add(r3.Vector{
		X: d.X * along / edge.Length,
		Y: d.Y * along / edge.Length,
		Z: d.Z * along / edge.Length,
	}))
}

// IsIntersection reports whether pos lies on a junction edge or on a
// junction node.
func (g *Graph) IsIntersection(pos Position) (bool, error) {
	edge, err := g.CheckPosition(pos)
	if err != nil {
		return false, err
	}
	return g.isIntersection(edge, pos.DistanceAlongEdge), nil
}

func (g *Graph) isIntersection(edge Edge, along float64) bool {
	if edge.Junction {
		return true
	}
	if along <= endTolerance && g.nodeMap[edge.U].Type == NodeTypeJunction {
		return true
	}
	return edge.Length-along <= endTolerance && g.nodeMap[edge.V].Type == NodeTypeJunction
}

// Advance returns the positions dist metres further along the network from
// pos. The walk fans out over the outgoing edges of the first node it
// reaches, in insertion order, so a branching road yields one position per
// branch. Past that node each branch keeps to the first outgoing edge, and a
// branch that runs into a dead end yields nothing.
//
// A walk never runs through a junction: it stops on a junction node it
// arrives at, and at the start of a junction edge it enters from an ordinary
// road. Walks that start on a junction node or edge continue normally.
func (g *Graph) Advance(pos Position, dist float64) ([]Position, error) {
	edge, err := g.CheckPosition(pos)
	if err != nil {
		return nil, err
	}
	if dist < 0 || math.IsNaN(dist) || math.IsInf(dist, 0) {
		return nil, errors.Newf("cannot advance %v m", dist)
	}

	remaining := edge.Length - pos.DistanceAlongEdge
	if dist <= remaining {
		return []Position{{Edge: edge.ID, DistanceAlongEdge: pos.DistanceAlongEdge + dist}}, nil
	}
	if end, ok := g.stopBefore(edge, remaining); ok {
		return []Position{end}, nil
	}

	dist -= remaining
	var out []Position
	for _, id := range g.outgoing[edge.V] {
		if next, ok := g.follow(edge, g.edgeMap[id], dist); ok {
			out = append(out, next)
		}
	}
	return out, nil
}

// follow walks dist metres from the start of edge, which was entered from
// prev, taking the first outgoing edge at every node it passes.
func (g *Graph) follow(prev, edge Edge, dist float64) (Position, bool) {
	for {
		if edge.Junction && !prev.Junction {
			return Position{Edge: edge.ID}, true
		}
		if dist <= edge.Length {
			return Position{Edge: edge.ID, DistanceAlongEdge: dist}, true
		}
		if end, ok := g.stopBefore(edge, edge.Length); ok {
			return end, true
		}
		outs := g.outgoing[edge.V]
		if len(outs) == 0 {
			return Position{}, false
		}
		dist -= edge.Length
		prev, edge = edge, g.edgeMap[outs[0]]
	}
}

// stopBefore reports the end of edge when a walk with remaining metres left
// on it would cross into a junction node.
func (g *Graph) stopBefore(edge Edge, remaining float64) (Position, bool) {
	if remaining > endTolerance && g.nodeMap[edge.V].Type == NodeTypeJunction {
		return Position{Edge: edge.ID, DistanceAlongEdge: edge.Length}, true
	}
	return Position{}, false
}

// Nearest projects loc onto every edge and returns the closest position.
// Ties keep the edge that was added first.
func (g *Graph) Nearest(loc geometry.Location) (Position, error) {
	if len(g.edges) == 0 {
		return Position{}, errors.New("road network has no edges")
	}
	p := loc.Vector()
	best := Position{}
	bestDist := math.Inf(1)
	for _, e := range g.edges {
		a, b := g.nodeMap[e.U].Loc.Vector(), g.nodeMap[e.V].Loc.Vector()
		ab := b.Sub(a)
		along := 0.0
		if n2 := ab.Norm2(); n2 > 0 {
			along = math.Max(0, math.Min(e.Length, p.Sub(a).Dot(ab)*e.Length/n2))
		}
		d := p.Distance(g.locate(e, along).Vector())
		if d < bestDist {
			bestDist = d
			best = Position{Edge: e.ID, DistanceAlongEdge: along}
		}
	}
	return best, nil
}
