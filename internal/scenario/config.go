package scenario

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultCrossingStep is the lane distance advanced per step while
	// searching for the next crossing.
	DefaultCrossingStep = 2.0
	// DefaultLookaheadStep is the extrapolation distance that defines an
	// actor's driving line.
	DefaultLookaheadStep = 1.0
	// DefaultDistanceStep is the lane distance advanced per step by the
	// bounded-distance search.
	DefaultDistanceStep = 1.0
	// DefaultMaxSteps bounds every traversal loop.
	DefaultMaxSteps = 100_000
)

// Config tunes the helper traversals.
type Config struct {
	CrossingStep  float64 `json:"crossing_step" yaml:"crossing_step"`
	LookaheadStep float64 `json:"lookahead_step" yaml:"lookahead_step"`
	DistanceStep  float64 `json:"distance_step" yaml:"distance_step"`
	// MaxSteps caps the number of Next calls a single search may make.
	// Zero disables the cap and searches until the road network terminates.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`
	// Epsilon is the tolerance on the homogeneous scale factor below which
	// two driving lines count as parallel. Zero means exact comparison.
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
}

// DefaultConfig returns the step sizes used by the scenario runner.
func DefaultConfig() Config {
	return Config{
		CrossingStep:  DefaultCrossingStep,
		LookaheadStep: DefaultLookaheadStep,
		DistanceStep:  DefaultDistanceStep,
		MaxSteps:      DefaultMaxSteps,
	}
}

// Validate checks that every step is positive and the bounds are non-negative.
func (c Config) Validate() error {
	switch {
	case c.CrossingStep <= 0:
		return errors.Newf("crossing_step must be positive, got %v", c.CrossingStep)
	case c.LookaheadStep <= 0:
		return errors.Newf("lookahead_step must be positive, got %v", c.LookaheadStep)
	case c.DistanceStep <= 0:
		return errors.Newf("distance_step must be positive, got %v", c.DistanceStep)
	case c.MaxSteps < 0:
		return errors.Newf("max_steps must not be negative, got %d", c.MaxSteps)
	case c.Epsilon < 0:
		return errors.Newf("epsilon must not be negative, got %v", c.Epsilon)
	}
	return nil
}

// plainConfig has Config's fields without its decoding methods.
type plainConfig Config

// configKeys lists the field names accepted in a helper config document.
var configKeys = map[string]struct{}{
	"crossing_step":  {},
	"lookahead_step": {},
	"distance_step":  {},
	"max_steps":      {},
	"epsilon":        {},
}

// UnmarshalJSON fills fields absent from data with their defaults. Unknown
// fields are rejected.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode((*plainConfig)(c))
}

// UnmarshalYAML fills fields absent from value with their defaults. Unknown
// fields are rejected.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	*c = DefaultConfig()
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i]
			if _, ok := configKeys[key.Value]; !ok {
				return errors.Newf("line %d: unknown helper field %q", key.Line, key.Value)
			}
		}
	}
	return value.Decode((*plainConfig)(c))
}
