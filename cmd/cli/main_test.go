package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxd309/scenario-helper/internal/engine"
)

const ringYAML = `
scenario_meta: {scenario_id: ring}
graph_data:
  nodes:
    - {node_id: a, loc: {x: 0, y: 0, z: 0}}
    - {node_id: b, loc: {x: 10, y: 0, z: 0}}
    - {node_id: c, loc: {x: 5, y: 10, z: 0}}
  edges:
    - {edge_id: ab, u: a, v: b}
    - {edge_id: bc, u: b, v: c}
    - {edge_id: ca, u: c, v: a}
actors:
  - {actor_id: ego, location: {x: 5, y: 0, z: 0}}
queries:
  - {query_id: loop, kind: crossing_point, actor: ego}
`

func execute(t *testing.T, stdin string, args ...string) (engine.Report, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return engine.Report{}, err
	}
	var report engine.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	return report, nil
}

func TestRootCmd(t *testing.T) {
	t.Run("YAML file with overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ring.yaml")
		require.NoError(t, os.WriteFile(path, []byte(ringYAML), 0o644))

		report, err := execute(t, "", path, "--max-steps", "50", "--workers", "1", "--log-level", "error")
		require.NoError(t, err)
		require.Equal(t, "ring", report.Meta.ScenarioID)
		require.Equal(t, 1, report.Meta.Workers)
		require.Equal(t, 50, report.Helper.MaxSteps)
		require.Len(t, report.Results, 1)
		require.Contains(t, report.Results[0].Error, "step bound")
	})

	t.Run("Stdin with explicit format", func(t *testing.T) {
		report, err := execute(t, ringYAML, "--format", "yaml", "--max-steps", "10", "--log-level", "error")
		require.NoError(t, err)
		require.Equal(t, 10, report.Helper.MaxSteps)
	})

	t.Run("Bad format", func(t *testing.T) {
		_, err := execute(t, ringYAML, "--format", "toml")
		require.Error(t, err)
	})

	t.Run("Bad log level", func(t *testing.T) {
		_, err := execute(t, ringYAML, "--format", "yaml", "--log-level", "loud")
		require.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := execute(t, "", filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}
