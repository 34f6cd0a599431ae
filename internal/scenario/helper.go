// Package scenario answers geometric questions about actors on a road
// network: where the road ahead meets a junction, where two actors' driving
// lines cross, and which point lies a given lane distance ahead.
//
// All queries are read-only. The road network is only reached through the
// sim interfaces, so a Helper works the same against a live simulator or the
// in-memory graph.
package scenario

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/cxd309/scenario-helper/internal/geometry"
	"github.com/cxd309/scenario-helper/internal/sim"
)

// Helper runs the scenario queries with a fixed Config.
type Helper struct {
	cfg Config
	log *zap.Logger
}

// Option customises a Helper.
type Option func(*Helper)

// WithLogger sets the logger used for per-query debug output.
func WithLogger(l *zap.Logger) Option {
	return func(h *Helper) {
		if l != nil {
			h.log = l
		}
	}
}

// New returns a Helper using cfg, or an error if cfg is invalid.
func New(cfg Config, opts ...Option) (*Helper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid helper config")
	}
	h := &Helper{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Config returns the configuration the helper was built with.
func (h *Helper) Config() Config { return h.cfg }

var defaultHelper = &Helper{cfg: DefaultConfig(), log: zap.NewNop()}

// CrossingPoint runs Helper.CrossingPoint with the default configuration.
func CrossingPoint(actor sim.Actor) (geometry.Location, error) {
	return defaultHelper.CrossingPoint(actor)
}

// LinearIntersection runs Helper.LinearIntersection with the default configuration.
func LinearIntersection(ego, other sim.Actor) (geometry.Location, error) {
	return defaultHelper.LinearIntersection(ego, other)
}

// LocationInDistance runs Helper.LocationInDistance with the default configuration.
func LocationInDistance(actor sim.Actor, distance float64) (geometry.Location, float64, error) {
	return defaultHelper.LocationInDistance(actor, distance)
}

// CrossingPoint returns the location of the first junction waypoint ahead of
// actor. The lane is followed in CrossingStep increments, always taking the
// first successor where the road branches.
func (h *Helper) CrossingPoint(actor sim.Actor) (geometry.Location, error) {
	wp, err := actorWaypoint(actor)
	if err != nil {
		return geometry.Location{}, err
	}

	steps := 0
	for !wp.IsIntersection() {
		if h.exhausted(steps) {
			return geometry.Location{}, errors.Wrapf(ErrStepLimit,
				"crossing point search stopped at %s after %d steps", wp.Location(), steps)
		}
		next, err := successors(wp, h.cfg.CrossingStep)
		if err != nil {
			return geometry.Location{}, errors.Wrap(err, "crossing point search")
		}
		wp = next[0]
		steps++
	}

	crossing := wp.Location()
	h.log.Debug("crossing point found",
		zap.Stringer("location", crossing),
		zap.Int("steps", steps),
	)
	return crossing, nil
}

// LinearIntersection estimates where the driving lines of ego and other
// cross. Each line runs through the actor's current waypoint and the first
// waypoint LookaheadStep further along its lane. Heights are ignored and the
// result has Z = 0.
//
// Parallel or coincident lines return geometry.Infinity and a nil error;
// callers must check Location.IsInfinite.
func (h *Helper) LinearIntersection(ego, other sim.Actor) (geometry.Location, error) {
	ego1, ego2, err := h.drivingLine(ego)
	if err != nil {
		return geometry.Location{}, errors.Wrap(err, "ego driving line")
	}
	other1, other2, err := h.drivingLine(other)
	if err != nil {
		return geometry.Location{}, errors.Wrap(err, "other driving line")
	}

	p := geometry.IntersectLines(ego1, ego2, other1, other2, h.cfg.Epsilon)
	if p.IsInfinite() {
		h.log.Debug("driving lines are parallel",
			zap.Stringer("ego", ego1),
			zap.Stringer("other", other1),
		)
	}
	return p, nil
}

// LocationInDistance walks along actor's lane in DistanceStep increments,
// taking the last successor where the road branches, until at least distance
// metres have been covered or a junction waypoint is reached. It returns the
// final location and the straight-line distance summed over every step, which
// may overshoot distance by up to one step or fall short if a junction came
// first.
func (h *Helper) LocationInDistance(actor sim.Actor, distance float64) (geometry.Location, float64, error) {
	wp, err := actorWaypoint(actor)
	if err != nil {
		return geometry.Location{}, 0, err
	}

	traveled := 0.0
	steps := 0
	for !wp.IsIntersection() && traveled < distance {
		if h.exhausted(steps) {
			return geometry.Location{}, traveled, errors.Wrapf(ErrStepLimit,
				"location search stopped at %s after %d steps (%.2f of %.2f m)",
				wp.Location(), steps, traveled, distance)
		}
		next, err := successors(wp, h.cfg.DistanceStep)
		if err != nil {
			return geometry.Location{}, traveled, errors.Wrap(err, "location search")
		}
		n := next[len(next)-1]
		traveled += n.Location().Distance(wp.Location())
		wp = n
		steps++
	}

	loc := wp.Location()
	h.log.Debug("location in distance found",
		zap.Stringer("location", loc),
		zap.Float64("requested", distance),
		zap.Float64("traveled", traveled),
		zap.Int("steps", steps),
	)
	return loc, traveled, nil
}

func (h *Helper) exhausted(steps int) bool {
	return h.cfg.MaxSteps > 0 && steps >= h.cfg.MaxSteps
}

// drivingLine returns the actor's waypoint location and the location one
// lookahead step further along its lane.
func (h *Helper) drivingLine(actor sim.Actor) (geometry.Location, geometry.Location, error) {
	wp, err := actorWaypoint(actor)
	if err != nil {
		return geometry.Location{}, geometry.Location{}, err
	}
	next, err := successors(wp, h.cfg.LookaheadStep)
	if err != nil {
		return geometry.Location{}, geometry.Location{}, err
	}
	return wp.Location(), next[0].Location(), nil
}

func actorWaypoint(actor sim.Actor) (sim.Waypoint, error) {
	loc := actor.Location()
	wp, err := actor.World().Map().Waypoint(loc)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving waypoint at %s", loc)
	}
	return wp, nil
}

// successors calls wp.Next and rejects an empty result.
func successors(wp sim.Waypoint, distance float64) ([]sim.Waypoint, error) {
	next, err := wp.Next(distance)
	if err != nil {
		return nil, errors.Wrapf(err, "advancing %.2f m from %s", distance, wp.Location())
	}
	if len(next) == 0 {
		return nil, errors.Wrapf(ErrDeadEnd, "advancing %.2f m from %s", distance, wp.Location())
	}
	return next, nil
}
