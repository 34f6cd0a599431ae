package scenario

import "github.com/cockroachdb/errors"

var (
	// ErrStepLimit is returned when a traversal exhausts Config.MaxSteps
	// without meeting its stop condition.
	ErrStepLimit = errors.New("no intersection found within step bound")

	// ErrDeadEnd is returned when the road network offers no successor
	// waypoint to continue a traversal.
	ErrDeadEnd = errors.New("road network has no successor waypoint")
)
