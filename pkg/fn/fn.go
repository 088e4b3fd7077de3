// Package fn collects the built-in modifier functions.
//
// The functions live in sub-packages grouped by category:
//   - fnstring: toLowerCase, toUpperCase, trim, concat, substring, join,
//     split, leftPad, rightPad
//   - fndatetime: transformDate
//
// # Integration: everything at once
//
//	reg := functions.NewRegistry()
//	if err := fn.Register(reg); err != nil {
//	    return err
//	}
//
// # Integration: by category
//
//	reg.MustRegister(fnstring.All()...)
//
// # Integration: single function
//
//	reg.MustRegister(fnstring.LeftPad(), fndatetime.TransformDate())
package fn

import (
	"golang.org/x/text/language"

	"github.com/sandrolain/gomodifier/pkg/fn/fndatetime"
	"github.com/sandrolain/gomodifier/pkg/fn/fnstring"
	"github.com/sandrolain/gomodifier/pkg/functions"
)

type options struct {
	locale language.Tag
}

// Option configures the built-in functions.
type Option func(*options)

// WithLocale sets the locale of the case conversion functions.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// All returns every built-in function definition.
func All(opts ...Option) []functions.Function {
	o := options{locale: language.Und}
	for _, opt := range opts {
		opt(&o)
	}
	var all []functions.Function
	all = append(all, fnstring.All(fnstring.WithLocale(o.locale))...)
	all = append(all, fndatetime.All()...)
	return all
}

// Register adds every built-in function to reg.
func Register(reg *functions.Registry, opts ...Option) error {
	return reg.Register(All(opts...)...)
}
