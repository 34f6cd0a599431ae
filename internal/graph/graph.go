// Package graph provides an in-memory directed road network that satisfies
// the sim interfaces, so scenario queries can run without a live simulator.
package graph

import (
	"github.com/cockroachdb/errors"

	"github.com/cxd309/scenario-helper/internal/geometry"
)

// NodeID, EdgeID are string aliases used as identifiers.
type (
	NodeID = string
	EdgeID = string
)

// NodeType classifies a node in the network.
type NodeType string

const (
	NodeTypeRoad     NodeType = "road"
	NodeTypeJunction NodeType = "junction"
)

// Node is a point in the road network.
type Node struct {
	ID   NodeID            `json:"node_id" yaml:"node_id"`
	Loc  geometry.Location `json:"loc" yaml:"loc"`
	Type NodeType          `json:"type,omitempty" yaml:"type,omitempty"` // defaults to road
}

// Edge is a directed lane segment between two nodes, in metres.
// Length defaults to the straight-line distance between the nodes.
// Junction marks a connecting lane inside an intersection.
type Edge struct {
	ID       EdgeID  `json:"edge_id" yaml:"edge_id"`
	U        NodeID  `json:"u" yaml:"u"`
	V        NodeID  `json:"v" yaml:"v"`
	Length   float64 `json:"length,omitempty" yaml:"length,omitempty"`
	Junction bool    `json:"junction,omitempty" yaml:"junction,omitempty"`
}

// GraphData is the serialisable input representation of a road network.
type GraphData struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Position is a point along a directed edge in the graph.
type Position struct {
	Edge              EdgeID  `json:"edge" yaml:"edge"`
	DistanceAlongEdge float64 `json:"distance_along_edge" yaml:"distance_along_edge"` // metres
}

// Graph is a directed road network. It is not safe for concurrent mutation,
// but once built every read method may be called from many goroutines.
type Graph struct {
	nodes    []Node
	edges    []Edge
	nodeMap  map[NodeID]Node
	edgeMap  map[EdgeID]Edge
	outgoing map[NodeID][]EdgeID // insertion order
}

// NewGraph builds a Graph from GraphData, returning an error if any node or
// edge is invalid.
func NewGraph(data GraphData) (*Graph, error) {
	g := &Graph{
		nodeMap:  make(map[NodeID]Node),
		edgeMap:  make(map[EdgeID]Edge),
		outgoing: make(map[NodeID][]EdgeID),
	}
	for _, n := range data.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddNode adds a node to the graph. Returns an error if the node ID already
// exists or its type is unknown.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return errors.New("node has no id")
	}
	if _, exists := g.nodeMap[n.ID]; exists {
		return errors.Newf("node %q already exists", n.ID)
	}
	switch n.Type {
	case "":
		n.Type = NodeTypeRoad
	case NodeTypeRoad, NodeTypeJunction:
	default:
		return errors.Newf("node %q: unknown type %q", n.ID, n.Type)
	}
	g.nodes = append(g.nodes, n)
	g.nodeMap[n.ID] = n
	return nil
}

// AddEdge adds a directed edge to the graph. Returns an error if the edge ID
// already exists, either endpoint node is missing, or the edge has no length.
func (g *Graph) AddEdge(e Edge) error {
	if e.ID == "" {
		return errors.New("edge has no id")
	}
	if _, exists := g.edgeMap[e.ID]; exists {
		return errors.Newf("edge %q already exists", e.ID)
	}
	u, ok := g.nodeMap[e.U]
	if !ok {
		return errors.Newf("edge %q: source node %q not found", e.ID, e.U)
	}
	v, ok := g.nodeMap[e.V]
	if !ok {
		return errors.Newf("edge %q: target node %q not found", e.ID, e.V)
	}
	if e.Length < 0 {
		return errors.Newf("edge %q: negative length %v", e.ID, e.Length)
	}
	if e.Length == 0 {
		e.Length = u.Loc.Distance(v.Loc)
	}
	if e.Length == 0 {
		return errors.Newf("edge %q: zero length between %q and %q", e.ID, e.U, e.V)
	}
	g.edges = append(g.edges, e)
	g.edgeMap[e.ID] = e
	g.outgoing[e.U] = append(g.outgoing[e.U], e.ID)
	return nil
}

// GetNode looks up a node by its ID.
func (g *Graph) GetNode(id NodeID) (Node, error) {
	n, ok := g.nodeMap[id]
	if !ok {
		return Node{}, errors.Newf("node %q not found", id)
	}
	return n, nil
}

// GetEdgeByID looks up an edge by its ID.
func (g *Graph) GetEdgeByID(id EdgeID) (Edge, error) {
	e, ok := g.edgeMap[id]
	if !ok {
		return Edge{}, errors.Newf("edge %q not found", id)
	}
	return e, nil
}

// Outgoing returns the edges leaving node, in insertion order.
func (g *Graph) Outgoing(node NodeID) []Edge {
	ids := g.outgoing[node]
	out := make([]Edge, len(ids))
	for i, id := range ids {
		out[i] = g.edgeMap[id]
	}
	return out
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int { return len(g.edges) }

// CheckPosition returns the edge pos lies on, or an error if pos is off the graph.
func (g *Graph) CheckPosition(pos Position) (Edge, error) {
	edge, err := g.GetEdgeByID(pos.Edge)
	if err != nil {
		return Edge{}, err
	}
	if pos.DistanceAlongEdge < 0 || pos.DistanceAlongEdge > edge.Length {
		return Edge{}, errors.Newf("position %.2f m is outside edge %q (length %.2f m)",
			pos.DistanceAlongEdge, edge.ID, edge.Length)
	}
	return edge, nil
}
