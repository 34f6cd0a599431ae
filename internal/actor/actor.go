// Package actor places scenario actors on an in-memory road network and
// exposes them through the sim interfaces.
package actor

import (
	"github.com/cockroachdb/errors"

	"github.com/cxd309/scenario-helper/internal/geometry"
	"github.com/cxd309/scenario-helper/internal/graph"
	"github.com/cxd309/scenario-helper/internal/sim"
)

// ActorID is a unique string identifier for an actor.
type ActorID = string

// ActorType describes what kind of entity an actor is.
type ActorType string

const (
	TypeVehicle    ActorType = "vehicle"
	TypePedestrian ActorType = "pedestrian"
)

// Spec is the static definition of an actor. Exactly one of Location and
// Position places it in the world.
type Spec struct {
	ID       ActorID            `json:"actor_id" yaml:"actor_id"`
	Type     ActorType          `json:"type,omitempty" yaml:"type,omitempty"` // defaults to vehicle
	Location *geometry.Location `json:"location,omitempty" yaml:"location,omitempty"`
	Position *graph.Position    `json:"position,omitempty" yaml:"position,omitempty"`
}

// World is a road network seen through the sim interfaces.
type World struct {
	g *graph.Graph
}

var (
	_ sim.World = (*World)(nil)
	_ sim.Actor = (*Actor)(nil)
)

// NewWorld wraps g.
func NewWorld(g *graph.Graph) *World { return &World{g: g} }

// Map returns the world's road network.
func (w *World) Map() sim.Map { return w.g }

// Graph returns the underlying road graph.
func (w *World) Graph() *graph.Graph { return w.g }

// Actor is a Spec resolved to a fixed world location.
type Actor struct {
	Spec  Spec
	world *World
	loc   geometry.Location
}

// New validates spec and places the actor in w.
func New(spec Spec, w *World) (*Actor, error) {
	if spec.ID == "" {
		return nil, errors.New("actor has no id")
	}
	switch spec.Type {
	case "":
		spec.Type = TypeVehicle
	case TypeVehicle, TypePedestrian:
	default:
		return nil, errors.Newf("actor %q: unknown type %q", spec.ID, spec.Type)
	}

	var loc geometry.Location
	switch {
	case spec.Location != nil && spec.Position != nil:
		return nil, errors.Newf("actor %q: set either location or position, not both", spec.ID)
	case spec.Location != nil:
		loc = *spec.Location
	case spec.Position != nil:
		l, err := w.g.Locate(*spec.Position)
		if err != nil {
			return nil, errors.Wrapf(err, "actor %q position", spec.ID)
		}
		loc = l
	default:
		return nil, errors.Newf("actor %q: missing location or position", spec.ID)
	}

	return &Actor{Spec: spec, world: w, loc: loc}, nil
}

// World returns the world the actor was placed in.
func (a *Actor) World() sim.World { return a.world }

// Location returns the actor's world location.
func (a *Actor) Location() geometry.Location { return a.loc }
