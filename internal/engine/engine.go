// Package engine evaluates a batch of scenario queries against a road network.
//
// A run has two phases:
//
//  1. Setup - the road graph is built, every actor is placed on it, and each
//     query is checked for known actors and a supported kind.
//
//  2. Evaluation - queries run concurrently against the graph, which is
//     read-only from here on. Each result is written to the slot of its
//     query, so the report keeps input order.
package engine

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cxd309/scenario-helper/internal/actor"
	"github.com/cxd309/scenario-helper/internal/graph"
	"github.com/cxd309/scenario-helper/internal/scenario"
)

// Evaluator holds a fully validated scenario ready to run.
type Evaluator struct {
	meta    ScenarioMeta
	actors  map[actor.ActorID]*actor.Actor
	queries []Query
	helper  *scenario.Helper
	log     *zap.Logger
}

// NewEvaluator builds the road graph, places the actors, and validates the
// queries of input. A nil logger disables logging.
func NewEvaluator(input ScenarioInput, logger *zap.Logger) (*Evaluator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	meta := input.Meta
	if meta.ScenarioID == "" {
		meta.ScenarioID = uuid.NewString()
	}
	switch {
	case meta.Workers == 0:
		meta.Workers = DefaultWorkers
	case meta.Workers < 0:
		return nil, errors.Newf("workers must be positive, got %d", meta.Workers)
	}

	cfg := scenario.DefaultConfig()
	if input.Helper != nil {
		cfg = *input.Helper
	}
	helper, err := scenario.New(cfg, scenario.WithLogger(logger.Named("scenario")))
	if err != nil {
		return nil, err
	}

	g, err := graph.NewGraph(input.GraphData)
	if err != nil {
		return nil, errors.Wrap(err, "building graph")
	}
	if len(input.Queries) > 0 && g.NumEdges() == 0 {
		return nil, errors.New("building graph: road network has no edges")
	}
	world := actor.NewWorld(g)

	actors := make(map[actor.ActorID]*actor.Actor, len(input.Actors))
	for _, spec := range input.Actors {
		if _, exists := actors[spec.ID]; exists {
			return nil, errors.Newf("actor %q already exists", spec.ID)
		}
		a, err := actor.New(spec, world)
		if err != nil {
			return nil, errors.Wrap(err, "placing actor")
		}
		actors[spec.ID] = a
	}

	queries := make([]Query, len(input.Queries))
	seen := make(map[string]struct{}, len(input.Queries))
	for i, q := range input.Queries {
		if q.ID == "" {
			q.ID = fmt.Sprintf("query-%d", i)
		}
		if _, exists := seen[q.ID]; exists {
			return nil, errors.Newf("query %q already exists", q.ID)
		}
		seen[q.ID] = struct{}{}
		if err := validateQuery(q, actors); err != nil {
			return nil, errors.Wrapf(err, "query %q", q.ID)
		}
		queries[i] = q
	}

	return &Evaluator{
		meta:    meta,
		actors:  actors,
		queries: queries,
		helper:  helper,
		log:     logger.With(zap.String("scenario_id", meta.ScenarioID)),
	}, nil
}

func validateQuery(q Query, actors map[actor.ActorID]*actor.Actor) error {
	if _, ok := actors[q.Actor]; !ok {
		return errors.Newf("unknown actor %q", q.Actor)
	}
	switch q.Kind {
	case KindCrossingPoint, KindLocationInDistance:
	case KindLinearIntersection:
		if q.Other == "" {
			return errors.New("linear_intersection needs an other actor")
		}
		if _, ok := actors[q.Other]; !ok {
			return errors.Newf("unknown other actor %q", q.Other)
		}
	default:
		return errors.Newf("unknown kind %q", q.Kind)
	}
	return nil
}

// Meta returns the resolved scenario metadata.
func (e *Evaluator) Meta() ScenarioMeta { return e.meta }

// Evaluate runs every query and returns the report. Traversal failures
// (step bound, dead end) are recorded on the query's result; any other
// failure, or cancellation of ctx, aborts the run.
func (e *Evaluator) Evaluate(ctx context.Context) (Report, error) {
	e.log.Info("evaluating scenario",
		zap.Int("actors", len(e.actors)),
		zap.Int("queries", len(e.queries)),
		zap.Int("workers", e.meta.Workers),
	)

	results := make([]QueryResult, len(e.queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.meta.Workers)
	for i, q := range e.queries {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.evaluate(q)
			if err != nil {
				return errors.Wrapf(err, "query %q", q.ID)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	e.log.Info("scenario evaluated", zap.Int("failed", failed))

	return Report{Meta: e.meta, Results: results, Helper: e.helper.Config()}, nil
}

// evaluate runs a single query.
func (e *Evaluator) evaluate(q Query) (QueryResult, error) {
	res := QueryResult{ID: q.ID, Kind: q.Kind}
	a := e.actors[q.Actor]

	var err error
	switch q.Kind {
	case KindCrossingPoint:
		err = e.crossingPoint(a, &res)
	case KindLinearIntersection:
		err = e.linearIntersection(a, e.actors[q.Other], &res)
	case KindLocationInDistance:
		err = e.locationInDistance(a, q.Distance, &res)
	default:
		return QueryResult{}, errors.Newf("unknown kind %q", q.Kind)
	}

	if err != nil {
		if !errors.Is(err, scenario.ErrStepLimit) && !errors.Is(err, scenario.ErrDeadEnd) {
			return QueryResult{}, err
		}
		e.log.Warn("query failed", zap.String("query_id", q.ID), zap.Error(err))
		return QueryResult{ID: q.ID, Kind: q.Kind, Error: err.Error()}, nil
	}

	e.log.Debug("query evaluated", zap.String("query_id", q.ID), zap.String("kind", string(q.Kind)))
	return res, nil
}

func (e *Evaluator) crossingPoint(a *actor.Actor, res *QueryResult) error {
	loc, err := e.helper.CrossingPoint(a)
	if err != nil {
		return err
	}
	res.Location = &loc
	return nil
}

func (e *Evaluator) linearIntersection(ego, other *actor.Actor, res *QueryResult) error {
	loc, err := e.helper.LinearIntersection(ego, other)
	if err != nil {
		return err
	}
	if loc.IsInfinite() {
		res.NoIntersection = true
		return nil
	}
	res.Location = &loc
	return nil
}

func (e *Evaluator) locationInDistance(a *actor.Actor, distance float64, res *QueryResult) error {
	loc, traveled, err := e.helper.LocationInDistance(a, distance)
	if err != nil {
		return err
	}
	res.Location = &loc
	res.Distance = &traveled
	return nil
}

// Execute builds an Evaluator for input and runs it.
func Execute(ctx context.Context, input ScenarioInput, logger *zap.Logger) (Report, error) {
	ev, err := NewEvaluator(input, logger)
	if err != nil {
		return Report{}, err
	}
	return ev.Evaluate(ctx)
}
