// Package fnutil provides argument extraction helpers shared by the function
// packages. Every helper reports failure with a boolean so function bodies can
// be written as a flat sequence of guard clauses.
package fnutil

import (
	"unicode/utf8"

	"github.com/sandrolain/gomodifier/pkg/types"
)

// Arity reports whether args has exactly n elements.
func Arity(args []interface{}, n int) bool {
	return len(args) == n
}

// AtLeast reports whether args has at least n elements.
func AtLeast(args []interface{}, n int) bool {
	return len(args) >= n
}

// String returns args[i] when it exists and is a string.
func String(args []interface{}, i int) (string, bool) {
	if i < 0 || i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}

// Int returns args[i] when it exists and is an integer (see types.AsInt).
func Int(args []interface{}, i int) (int, bool) {
	if i < 0 || i >= len(args) {
		return 0, false
	}
	return types.AsInt(args[i])
}

// Optional returns args[i], or nil and false when the position is absent.
func Optional(args []interface{}, i int) (interface{}, bool) {
	if i < 0 || i >= len(args) {
		return nil, false
	}
	return args[i], true
}

// RuneLen returns the number of code points in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
