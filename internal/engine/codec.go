package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a scenario input document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.Newf("unknown input format %q", s)
}

// FormatFromPath guesses the format of a file from its extension,
// defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode parses a scenario input document. Unknown fields are rejected.
func Decode(data []byte, format Format) (ScenarioInput, error) {
	var input ScenarioInput
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&input); err != nil {
			return ScenarioInput{}, errors.Wrap(err, "invalid input JSON")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&input); err != nil {
			return ScenarioInput{}, errors.Wrap(err, "invalid input YAML")
		}
	default:
		return ScenarioInput{}, errors.Newf("unknown input format %q", format)
	}
	return input, nil
}

// Encode renders a report as JSON.
func Encode(report Report) ([]byte, error) {
	out, err := json.Marshal(report)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling report")
	}
	return out, nil
}

// Run decodes data, evaluates it, and returns the JSON report.
func Run(ctx context.Context, data []byte, format Format, logger *zap.Logger) ([]byte, error) {
	input, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	report, err := Execute(ctx, input, logger)
	if err != nil {
		return nil, err
	}
	return Encode(report)
}

// RunJSON is the entry point shared by the CLI and WASM targets. It accepts
// a JSON-encoded ScenarioInput and returns a JSON-encoded Report.
func RunJSON(jsonInput string) (string, error) {
	out, err := Run(context.Background(), []byte(jsonInput), FormatJSON, nil)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RunYAML is RunJSON for a YAML-encoded ScenarioInput. The report is still JSON.
func RunYAML(yamlInput string) (string, error) {
	out, err := Run(context.Background(), []byte(yamlInput), FormatYAML, nil)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
