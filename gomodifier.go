// Package gomodifier provides the string and date modifier functions of a
// JSON-to-JSON transformation engine.
//
// Each function takes an ordered argument list and returns an optional
// result. An empty result means "not applicable": the caller should leave
// the target untouched.
//
// # Quick Start
//
//	// Built-in functions, shared registry
//	res, err := gomodifier.Apply("leftPad", "42", 5, "0") // Optional["00042"]
//
//	// Own instance with a case-conversion locale and extra functions
//	m, err := gomodifier.New(
//	    gomodifier.WithLocale(language.Turkish),
//	    gomodifier.WithFunctions(myFn),
//	)
//	res, err := m.Apply("toUpperCase", "istanbul") // Optional["İSTANBUL"]
//
//	// Many calls at once
//	results, err := m.Batch(ctx, calls, batch.Options{Concurrency: 4})
//
// # More Information
//
// For detailed documentation, see:
//   - Calling contract: github.com/sandrolain/gomodifier/pkg/functions
//   - String functions: github.com/sandrolain/gomodifier/pkg/fn/fnstring
//   - Date functions: github.com/sandrolain/gomodifier/pkg/fn/fndatetime
//   - Batches: github.com/sandrolain/gomodifier/pkg/batch
package gomodifier

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"github.com/sandrolain/gomodifier/pkg/batch"
	"github.com/sandrolain/gomodifier/pkg/fn"
	"github.com/sandrolain/gomodifier/pkg/functions"
)

// Version returns the current version of gomodifier.
func Version() string {
	return "v0.1.0-dev"
}

// Modifier is a registry of modifier functions. It is safe for concurrent
// use.
type Modifier struct {
	reg *functions.Registry
}

type options struct {
	locale language.Tag
	extra  []functions.Function
}

// Option configures New.
type Option func(*options)

// WithLocale sets the locale used by toLowerCase and toUpperCase. The default
// is language.Und, which gives the same result on every host.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// WithFunctions registers additional functions next to the built-in ones.
func WithFunctions(fns ...functions.Function) Option {
	return func(o *options) {
		o.extra = append(o.extra, fns...)
	}
}

// New returns a Modifier with every built-in function plus those added with
// WithFunctions. A name clash is reported as an error.
func New(opts ...Option) (*Modifier, error) {
	o := options{locale: language.Und}
	for _, opt := range opts {
		opt(&o)
	}

	reg := functions.NewRegistry()
	if err := fn.Register(reg, fn.WithLocale(o.locale)); err != nil {
		return nil, err
	}
	if err := reg.Register(o.extra...); err != nil {
		return nil, fmt.Errorf("register custom functions: %w", err)
	}
	return &Modifier{reg: reg}, nil
}

// MustNew is like New but panics on error.
// It simplifies safe initialization of global variables.
func MustNew(opts ...Option) *Modifier {
	m, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("gomodifier: New: %v", err))
	}
	return m
}

// Apply invokes the function registered under name. The error is non-nil
// only when there is no such function.
func (m *Modifier) Apply(name string, args ...interface{}) (functions.Optional, error) {
	return m.reg.Apply(name, args...)
}

// Batch evaluates calls concurrently, see batch.Run.
func (m *Modifier) Batch(ctx context.Context, calls []batch.Call, opts batch.Options) ([]batch.Result, error) {
	return batch.Run(ctx, m.reg, calls, opts)
}

// Registry returns the underlying registry.
func (m *Modifier) Registry() *functions.Registry {
	return m.reg
}

var (
	defaultOnce     sync.Once
	defaultModifier *Modifier
)

// Default returns the shared Modifier holding the built-in functions with
// the default locale.
func Default() *Modifier {
	defaultOnce.Do(func() {
		defaultModifier = MustNew()
	})
	return defaultModifier
}

// Apply invokes a built-in function on the Default Modifier.
//
// Example:
//
//	res, err := gomodifier.Apply("substring", "hello", 1, 3) // Optional["el"]
func Apply(name string, args ...interface{}) (functions.Optional, error) {
	return Default().Apply(name, args...)
}
