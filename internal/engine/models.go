package engine

import (
	"github.com/cxd309/scenario-helper/internal/actor"
	"github.com/cxd309/scenario-helper/internal/geometry"
	"github.com/cxd309/scenario-helper/internal/graph"
	"github.com/cxd309/scenario-helper/internal/scenario"
)

// QueryKind selects which scenario helper a query runs.
type QueryKind string

const (
	KindCrossingPoint      QueryKind = "crossing_point"
	KindLinearIntersection QueryKind = "linear_intersection"
	KindLocationInDistance QueryKind = "location_in_distance"
)

// DefaultWorkers is the number of queries evaluated concurrently when the
// input does not say otherwise.
const DefaultWorkers = 4

// ScenarioMeta holds the identity and execution parameters for a run.
type ScenarioMeta struct {
	ScenarioID string `json:"scenario_id" yaml:"scenario_id"`
	Workers    int    `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// Query is one helper invocation. Other is required for
// linear_intersection; Distance is used by location_in_distance.
type Query struct {
	ID       string        `json:"query_id" yaml:"query_id"`
	Kind     QueryKind     `json:"kind" yaml:"kind"`
	Actor    actor.ActorID `json:"actor" yaml:"actor"`
	Other    actor.ActorID `json:"other,omitempty" yaml:"other,omitempty"`
	Distance float64       `json:"distance,omitempty" yaml:"distance,omitempty"` // metres
}

// ScenarioInput is the serialisable input to the engine.
type ScenarioInput struct {
	Meta      ScenarioMeta     `json:"scenario_meta" yaml:"scenario_meta"`
	GraphData graph.GraphData  `json:"graph_data" yaml:"graph_data"`
	Actors    []actor.Spec     `json:"actors" yaml:"actors"`
	Queries   []Query          `json:"queries" yaml:"queries"`
	Helper    *scenario.Config `json:"helper,omitempty" yaml:"helper,omitempty"` // nil = defaults
}

// QueryResult is the outcome of a single query. Location is nil when the
// query failed or when two driving lines never meet (NoIntersection).
// Distance is set for location_in_distance only.
type QueryResult struct {
	ID             string             `json:"query_id"`
	Kind           QueryKind          `json:"kind"`
	Location       *geometry.Location `json:"location,omitempty"`
	Distance       *float64           `json:"distance,omitempty"` // metres actually traveled
	NoIntersection bool               `json:"no_intersection,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// Report is the complete output of a run, with results in query order.
type Report struct {
	Meta    ScenarioMeta    `json:"scenario_meta"`
	Results []QueryResult   `json:"results"`
	Helper  scenario.Config `json:"helper"`
}
