// Package fnstring provides the string transformation functions:
// toLowerCase, toUpperCase, trim, concat, substring, join, split, leftPad
// and rightPad.
//
// Register them with a [functions.Registry] or through the top-level fn
// package:
//
//	reg := functions.NewRegistry()
//	reg.MustRegister(fnstring.All(fnstring.WithLocale(language.Turkish))...)
package fnstring

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sandrolain/gomodifier/pkg/cache"
	"github.com/sandrolain/gomodifier/pkg/fn/fnutil"
	"github.com/sandrolain/gomodifier/pkg/functions"
	"github.com/sandrolain/gomodifier/pkg/types"
)

// MaxPadWidth is the largest width leftPad and rightPad accept.
const MaxPadWidth = 500

type options struct {
	locale language.Tag
}

// Option configures the string functions.
type Option func(*options)

// WithLocale sets the locale used by toLowerCase and toUpperCase.
// The default is language.Und, the locale-neutral root.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

func newOptions(opts []Option) options {
	o := options{locale: language.Und}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// splitPatterns holds compiled split separators.
var splitPatterns = cache.New[*regexp.Regexp](cache.DefaultCapacity)

// All returns every string function definition.
func All(opts ...Option) []functions.Function {
	return []functions.Function{
		ToLowerCase(opts...),
		ToUpperCase(opts...),
		Trim(),
		Concat(),
		Substring(),
		Join(),
		Split(),
		LeftPad(),
		RightPad(),
	}
}

// ToLowerCase returns the definition for toLowerCase(value).
func ToLowerCase(opts ...Option) functions.Function {
	o := newOptions(opts)
	return functions.NewSingle("toLowerCase", func(arg interface{}) functions.Optional {
		s, ok := arg.(string)
		if !ok {
			return functions.None()
		}
		// A Caser keeps state between calls and must not be shared.
		return functions.Some(cases.Lower(o.locale).String(s))
	})
}

// ToUpperCase returns the definition for toUpperCase(value).
func ToUpperCase(opts ...Option) functions.Function {
	o := newOptions(opts)
	return functions.NewSingle("toUpperCase", func(arg interface{}) functions.Optional {
		s, ok := arg.(string)
		if !ok {
			return functions.None()
		}
		return functions.Some(cases.Upper(o.locale).String(s))
	})
}

// Trim returns the definition for trim(value).
// Leading and trailing code points up to and including U+0020 are removed.
func Trim() functions.Function {
	return functions.NewSingle("trim", func(arg interface{}) functions.Optional {
		s, ok := arg.(string)
		if !ok {
			return functions.None()
		}
		return functions.Some(strings.TrimFunc(s, func(r rune) bool { return r <= ' ' }))
	})
}

// Concat returns the definition for concat(args...).
// Null entries are skipped, everything else is appended in textual form.
func Concat() functions.Function {
	return functions.NewList("concat", func(args []interface{}) functions.Optional {
		var b strings.Builder
		for _, arg := range args {
			if arg == nil {
				continue
			}
			b.WriteString(types.String(arg))
		}
		return functions.Some(b.String())
	})
}

// Substring returns the definition for substring(str, start, end), the
// half-open code point range [start, end).
func Substring() functions.Function {
	return functions.NewList("substring", func(args []interface{}) functions.Optional {
		if !fnutil.Arity(args, 3) {
			return functions.None()
		}
		str, ok := fnutil.String(args, 0)
		if !ok {
			return functions.None()
		}
		start, ok := fnutil.Int(args, 1)
		if !ok {
			return functions.None()
		}
		end, ok := fnutil.Int(args, 2)
		if !ok {
			return functions.None()
		}
		runes := []rune(str)
		if start >= end || start < 0 || end < 1 || end > len(runes) {
			return functions.None()
		}
		return functions.Some(string(runes[start:end]))
	})
}

// Join returns the definition for join(separator, args...).
//
// Null entries and entries whose text is empty are skipped. The separator
// follows every appended entry except one at the last index of args, so an
// empty entry in last position leaves a trailing separator behind.
func Join() functions.Function {
	return functions.NewDriverList("join", func(sep string, args []interface{}) functions.Optional {
		var b strings.Builder
		for i, arg := range args {
			if arg == nil {
				continue
			}
			text := types.String(arg)
			if text == "" {
				continue
			}
			b.WriteString(text)
			if i < len(args)-1 {
				b.WriteString(sep)
			}
		}
		return functions.Some(b.String())
	})
}

// Split returns the definition for split(separator, str).
//
// The separator is a regular expression. Trailing empty strings are dropped
// and a zero-width match at the start of str does not produce a leading
// empty string. An invalid separator yields None.
func Split() functions.Function {
	return functions.NewDriverSingle("split", func(sep string, source interface{}) functions.Optional {
		if source == nil {
			return functions.None()
		}
		str, ok := source.(string)
		if !ok {
			return functions.None()
		}
		re, err := splitPatterns.GetOrCreate(sep, func() (*regexp.Regexp, error) {
			return regexp.Compile(sep)
		})
		if err != nil {
			return functions.None()
		}
		return functions.Some(splitPattern(re, str))
	})
}

func splitPattern(re *regexp.Regexp, s string) []interface{} {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return []interface{}{s}
	}
	parts := make([]string, 0, len(locs)+1)
	start := 0
	for _, loc := range locs {
		if loc[1] == 0 {
			continue
		}
		parts = append(parts, s[start:loc[0]])
		start = loc[1]
	}
	parts = append(parts, s[start:])

	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		out[i] = parts[i]
	}
	return out
}

// LeftPad returns the definition for leftPad(source, width, filler).
func LeftPad() functions.Function {
	return functions.NewDriverList("leftPad", func(source string, args []interface{}) functions.Optional {
		return pad(true, source, args)
	})
}

// RightPad returns the definition for rightPad(source, width, filler).
func RightPad() functions.Function {
	return functions.NewDriverList("rightPad", func(source string, args []interface{}) functions.Optional {
		return pad(false, source, args)
	})
}

// pad fills source up to width code points with a single filler character.
// A source already at least width long is returned unchanged.
func pad(left bool, source string, args []interface{}) functions.Optional {
	if !fnutil.AtLeast(args, 2) {
		return functions.None()
	}
	width, ok := fnutil.Int(args, 0)
	if !ok {
		return functions.None()
	}
	filler, ok := fnutil.String(args, 1)
	if !ok {
		return functions.None()
	}
	if width <= 0 || width > MaxPadWidth {
		return functions.None()
	}
	if fnutil.RuneLen(filler) != 1 {
		return functions.None()
	}

	length := fnutil.RuneLen(source)
	if width <= length {
		return functions.Some(source)
	}
	fill := strings.Repeat(filler, width-length)
	if left {
		return functions.Some(fill + source)
	}
	return functions.Some(source + fill)
}
