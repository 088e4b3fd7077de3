//go:build (js && wasm) || wasip1

package batch

// The js/wasm runtime is single-threaded and the WASI threading proposal is
// not supported by the Go runtime, so batches run on one worker there.
func init() {
	defaultConcurrency = 1
}
