package scenario

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	for name, mutate := range map[string]func(*Config){
		"crossing step":  func(c *Config) { c.CrossingStep = 0 },
		"lookahead step": func(c *Config) { c.LookaheadStep = -1 },
		"distance step":  func(c *Config) { c.DistanceStep = 0 },
		"max steps":      func(c *Config) { c.MaxSteps = -1 },
		"epsilon":        func(c *Config) { c.Epsilon = -1e-9 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
			_, err := New(cfg)
			require.Error(t, err)
		})
	}
}

func TestConfigDecodingKeepsDefaults(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var cfg Config
		require.NoError(t, json.Unmarshal([]byte(`{"max_steps": 50, "epsilon": 1e-9}`), &cfg))
		require.Equal(t, 50, cfg.MaxSteps)
		require.Equal(t, 1e-9, cfg.Epsilon)
		require.Equal(t, DefaultCrossingStep, cfg.CrossingStep)
		require.Equal(t, DefaultLookaheadStep, cfg.LookaheadStep)
		require.Equal(t, DefaultDistanceStep, cfg.DistanceStep)
	})

	t.Run("YAML", func(t *testing.T) {
		var cfg Config
		require.NoError(t, yaml.Unmarshal([]byte("crossing_step: 0.5\n"), &cfg))
		require.Equal(t, 0.5, cfg.CrossingStep)
		require.Equal(t, DefaultMaxSteps, cfg.MaxSteps)
		require.Equal(t, DefaultDistanceStep, cfg.DistanceStep)
	})

	t.Run("Nested pointer", func(t *testing.T) {
		var doc struct {
			Helper *Config `json:"helper"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"helper": {"distance_step": 0.25}}`), &doc))
		require.NotNil(t, doc.Helper)
		require.Equal(t, 0.25, doc.Helper.DistanceStep)
		require.Equal(t, DefaultCrossingStep, doc.Helper.CrossingStep)
	})
}

func TestConfigDecodingRejectsUnknownFields(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var cfg Config
		err := json.Unmarshal([]byte(`{"max_step": 10}`), &cfg)
		require.ErrorContains(t, err, "max_step")
	})

	t.Run("YAML", func(t *testing.T) {
		var cfg Config
		err := yaml.Unmarshal([]byte("max_steps: 10\nmax_step: 10\n"), &cfg)
		require.ErrorContains(t, err, `"max_step"`)
	})

	t.Run("Known keys", func(t *testing.T) {
		var cfg Config
		doc := "crossing_step: 3\nlookahead_step: 2\ndistance_step: 0.5\nmax_steps: 7\nepsilon: 0.001\n"
		require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))
		require.Equal(t, Config{CrossingStep: 3, LookaheadStep: 2, DistanceStep: 0.5, MaxSteps: 7, Epsilon: 0.001}, cfg)
	})
}
