//go:build wasip1

// Command gomodifier-wasm-wasi is the WASI (wasip1) entrypoint for use from
// any language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "function": "<name>", "args": [<any JSON value>, ...] }
//	stdout: { "present": true, "result": <any JSON value> }   on success
//	        { "present": false }                               when not applicable
//	        { "error":  "<message>" }                          on failure (exit code 1)
//
// A request may also carry "calls": [{ "id", "function", "args" }, ...]; the
// response is then { "results": [...] } in the same order.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o gomodifier.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"function":"leftPad","args":["ab",5,"0"]}' | wasmtime gomodifier.wasm
package main

import (
	"context"
	"io"
	"os"
	_ "time/tzdata"

	"github.com/oarkflow/json"

	"github.com/sandrolain/gomodifier"
	"github.com/sandrolain/gomodifier/pkg/batch"
)

type request struct {
	Function string        `json:"function"`
	Args     []interface{} `json:"args"`
	Calls    []batch.Call  `json:"calls,omitempty"`
}

type response struct {
	Present bool         `json:"present"`
	Result  interface{}  `json:"result,omitempty"`
	Results []callResult `json:"results,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type callResult struct {
	ID      string      `json:"id,omitempty"`
	Present bool        `json:"present"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeResponse(r response, exitCode int) {
	out, _ := json.Marshal(r)
	os.Stdout.Write(append(out, '\n'))
	os.Exit(exitCode)
}

func main() {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		writeResponse(response{Error: "read request: " + err.Error()}, 1)
	}
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		writeResponse(response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	m := gomodifier.Default()
	if len(req.Calls) > 0 {
		results, err := m.Batch(context.Background(), req.Calls, batch.Options{Concurrency: 1})
		if err != nil {
			writeResponse(response{Error: err.Error()}, 1)
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
		writeResponse(response{Present: true, Results: out}, 0)
	}

	res, err := m.Apply(req.Function, req.Args...)
	if err != nil {
		writeResponse(response{Error: err.Error()}, 1)
	}
	v, ok := res.Get()
	writeResponse(response{Present: ok, Result: v}, 0)
}
