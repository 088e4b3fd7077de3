// Package batch evaluates many function calls against a registry on a bounded
// pool of goroutines.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/oarkflow/json"
	"github.com/oarkflow/xid"
	"golang.org/x/time/rate"

	"github.com/sandrolain/gomodifier/pkg/functions"
	"github.com/sandrolain/gomodifier/pkg/types"
)

// defaultConcurrency is the worker count used when Options.Concurrency is not
// positive. WebAssembly builds lower it to 1 (see batch_wasm.go).
var defaultConcurrency = runtime.NumCPU()

// maxLineSize bounds a single NDJSON call in Stream.
const maxLineSize = 4 << 20

// Applier invokes a function by name. *functions.Registry implements it.
type Applier interface {
	Apply(name string, args ...interface{}) (functions.Optional, error)
}

// Call is one function invocation. Calls without an ID are given a
// generated one when they are applied.
type Call struct {
	ID       string        `json:"id,omitempty" yaml:"id,omitempty"`
	Function string        `json:"function" yaml:"function"`
	Args     []interface{} `json:"args,omitempty" yaml:"args,omitempty"`
}

// Result is the outcome of a Call. Err is set when the call could not be
// made at all (unknown function, invalid request, cancellation); an empty
// Optional with a nil Err means the function did not apply.
type Result struct {
	Call  Call
	Value functions.Optional
	Err   error
}

// Options configures Run and Stream.
type Options struct {
	// Concurrency is the number of workers. Values <= 0 select the default,
	// runtime.NumCPU() or 1 on WebAssembly.
	Concurrency int
	// Logger receives per-call debug records and warnings for failed calls.
	// Defaults to slog.Default().
	Logger *slog.Logger
	// RateLimit caps the calls started per second across all workers.
	// Zero means unlimited.
	RateLimit float64
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o Options) limiter() *rate.Limiter {
	if o.RateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(o.RateLimit), 1)
}

// wait blocks until limiter admits one more call. A nil limiter never blocks.
func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return ctx.Err()
	}
	return limiter.Wait(ctx)
}

// Run evaluates calls and returns one Result per call, in input order.
//
// When ctx is cancelled the calls not yet started get ctx.Err() as their
// error and Run returns ctx.Err() alongside the partial results.
func Run(ctx context.Context, a Applier, calls []Call, opts Options) ([]Result, error) {
	opts = opts.withDefaults()
	results := make([]Result, len(calls))
	if len(calls) == 0 {
		return results, nil
	}

	workers := opts.Concurrency
	if workers > len(calls) {
		workers = len(calls)
	}

	limiter := opts.limiter()
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := wait(ctx, limiter); err != nil {
					results[i] = Result{Call: calls[i], Err: err}
					continue
				}
				results[i] = apply(a, calls[i], opts.Logger)
			}
		}()
	}

	for i := range calls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Stream reads newline-delimited JSON calls from r and sends their results
// on the returned channel, in input order.
//
// The channel is closed when all input has been consumed or the context is
// cancelled. A fatal read or decode error is sent as a Result with a non-nil
// Err and then the channel is closed. The caller must either drain the
// channel or cancel ctx; cancelling releases the goroutine even when nothing
// reads the channel any more.
func Stream(ctx context.Context, a Applier, r io.Reader, opts Options) <-chan Result {
	opts = opts.withDefaults()
	ch := make(chan Result, 16)

	go func() {
		defer close(ch)

		// send gives up when ctx is cancelled so an abandoned reader never
		// blocks the goroutine.
		send := func(res Result) bool {
			select {
			case ch <- res:
				return true
			case <-ctx.Done():
				return false
			}
		}

		limiter := opts.limiter()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		line := 0
		for scanner.Scan() {
			line++
			if err := ctx.Err(); err != nil {
				send(Result{Err: err})
				return
			}
			raw := scanner.Bytes()
			if len(bytes.TrimSpace(raw)) == 0 {
				continue
			}

			var call Call
			if err := json.Unmarshal(raw, &call); err != nil {
				send(Result{Err: types.Errorf(types.ErrInvalidRequest, "line %d: invalid call", line).WithCause(err)})
				return
			}
			if err := wait(ctx, limiter); err != nil {
				send(Result{Err: err})
				return
			}
			if !send(apply(a, call, opts.Logger)) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(Result{Err: err})
		}
	}()

	return ch
}

func apply(a Applier, call Call, logger *slog.Logger) Result {
	if call.ID == "" {
		call.ID = xid.New().String()
	}
	if call.Function == "" {
		err := types.Errorf(types.ErrInvalidRequest, "call %q has no function name", call.ID)
		logger.Warn("invalid call", "id", call.ID, "error", err)
		return Result{Call: call, Err: err}
	}

	value, err := a.Apply(call.Function, call.Args...)
	if err != nil {
		logger.Warn("call failed", "id", call.ID, "function", call.Function, "error", err)
		return Result{Call: call, Err: err}
	}
	logger.Debug("call applied", "id", call.ID, "function", call.Function, "present", value.IsPresent())
	return Result{Call: call, Value: value}
}
