//go:build js && wasm

// Command wasm exposes the scenario helpers to the browser via WebAssembly.
// After loading, it registers a global JavaScript function:
//
//	evaluateScenario(jsonString) -> jsonString
//
// The input and output are JSON-encoded ScenarioInput and Report
// respectively, matching the contract used by the CLI.
package main

import (
	"syscall/js"

	"github.com/cxd309/scenario-helper/internal/engine"
)

func main() {
	js.Global().Set("evaluateScenario", js.FuncOf(evaluateScenario))
	select {} // keep the WASM module alive until the page is closed
}

func evaluateScenario(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := engine.RunJSON(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}
