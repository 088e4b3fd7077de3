//go:build js && wasm

// Command gomodifier-wasm-js is the WebAssembly entrypoint for browser and
// Node.js.
//
// It exposes a global `gomodifier` object with the following API:
//
//	gomodifier.version()                 → string
//	gomodifier.functions()               → JSON array of { name, shape }
//	gomodifier.apply(name, argsJSON)     → resultJSON, or null when not applicable  (throws on error)
//	gomodifier.batch(callsJSON)          → JSON array of { id, present, result, error }  (throws on error)
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o gomodifier.wasm ./cmd/wasm/js/
//
// Usage in Node.js:
//
//	const gm = await load()
//	const out = gm.apply('leftPad', JSON.stringify(['ab', 5, '0']))
//	console.log(JSON.parse(out)) // '000ab'
package main

import (
	"context"
	"fmt"
	"syscall/js"
	_ "time/tzdata"

	"github.com/oarkflow/json"

	"github.com/sandrolain/gomodifier"
	"github.com/sandrolain/gomodifier/pkg/batch"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

func marshal(fn string, v interface{}) string {
	out, err := json.Marshal(v)
	if err != nil {
		jsThrow(fmt.Sprintf("gomodifier.%s: marshal result: %v", fn, err))
	}
	return string(out)
}

// jsApply implements gomodifier.apply(name, argsJSON) → resultJSON | null.
func jsApply(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("gomodifier.apply requires at least 1 argument: name (string) and optionally args (JSON array string)")
	}
	name := args[0].String()

	var fnArgs []interface{}
	if len(args) > 1 && !args[1].IsUndefined() && !args[1].IsNull() {
		if err := json.Unmarshal([]byte(args[1].String()), &fnArgs); err != nil {
			jsThrow(fmt.Sprintf("gomodifier.apply: invalid args JSON: %v", err))
		}
	}

	res, err := gomodifier.Apply(name, fnArgs...)
	if err != nil {
		jsThrow(fmt.Sprintf("gomodifier.apply: %v", err))
	}
	v, ok := res.Get()
	if !ok {
		return js.Null()
	}
	return marshal("apply", v)
}

type callResult struct {
	ID      string      `json:"id,omitempty"`
	Present bool        `json:"present"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// jsBatch implements gomodifier.batch(callsJSON) → resultsJSON.
func jsBatch(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("gomodifier.batch requires 1 argument: calls (JSON array string)")
	}
	var calls []batch.Call
	if err := json.Unmarshal([]byte(args[0].String()), &calls); err != nil {
		jsThrow(fmt.Sprintf("gomodifier.batch: invalid calls JSON: %v", err))
	}

	results, err := gomodifier.Default().Batch(context.Background(), calls, batch.Options{})
	if err != nil {
		jsThrow(fmt.Sprintf("gomodifier.batch: %v", err))
	}
	out := make([]callResult, len(results))
	for i, r := range results {
		out[i] = callResult{ID: r.Call.ID}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
			continue
		}
		out[i].Result, out[i].Present = r.Value.Get()
	}
	return marshal("batch", out)
}

// jsFunctions implements gomodifier.functions() → JSON array of { name, shape }.
func jsFunctions(_ js.Value, _ []js.Value) interface{} {
	reg := gomodifier.Default().Registry()
	type entry struct {
		Name  string `json:"name"`
		Shape string `json:"shape"`
	}
	var list []entry
	for _, name := range reg.Names() {
		fn, _ := reg.Lookup(name)
		list = append(list, entry{Name: name, Shape: fn.Shape().String()})
	}
	return marshal("functions", list)
}

func main() {
	api := map[string]interface{}{
		"apply":     js.FuncOf(jsApply),
		"batch":     js.FuncOf(jsBatch),
		"functions": js.FuncOf(jsFunctions),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return gomodifier.Version()
		}),
	}
	js.Global().Set("gomodifier", js.ValueOf(api))

	// Block forever: the JS event loop owns execution from here.
	select {}
}
