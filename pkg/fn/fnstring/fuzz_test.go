package fnstring_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandrolain/gomodifier/pkg/fn/fnstring"
)

func FuzzSubstring(f *testing.F) {
	f.Add("hello", 1, 3)
	f.Add("héllo wörld", 0, 11)
	f.Add("", 0, 1)
	f.Add("abc", -1, 2)
	f.Add("日本語", 2, 3)

	fn := fnstring.Substring()
	f.Fuzz(func(t *testing.T, s string, start, end int) {
		if !utf8.ValidString(s) {
			return
		}
		got, ok := fn.Apply(s, start, end).Get()
		length := utf8.RuneCountInString(s)
		valid := start < end && start >= 0 && end >= 1 && end <= length
		if ok != valid {
			t.Fatalf("substring(%q, %d, %d) present = %v, want %v", s, start, end, ok, valid)
		}
		if !ok {
			return
		}
		sub := got.(string)
		if n := utf8.RuneCountInString(sub); n != end-start {
			t.Errorf("substring(%q, %d, %d) has %d code points, want %d", s, start, end, n, end-start)
		}
		if !strings.Contains(s, sub) {
			t.Errorf("substring(%q, %d, %d) = %q is not part of the source", s, start, end, sub)
		}
	})
}

func FuzzPad(f *testing.F) {
	f.Add("ab", 5, "0")
	f.Add("abc", 2, "x")
	f.Add("", 500, "é")
	f.Add("x", 501, "-")
	f.Add("x", 3, "ab")

	left, right := fnstring.LeftPad(), fnstring.RightPad()
	f.Fuzz(func(t *testing.T, source string, width int, filler string) {
		if !utf8.ValidString(source) || !utf8.ValidString(filler) {
			return
		}
		valid := width > 0 && width <= fnstring.MaxPadWidth && utf8.RuneCountInString(filler) == 1
		want := utf8.RuneCountInString(source)
		if width > want {
			want = width
		}
		for _, fn := range []struct {
			name  string
			apply func(...interface{}) interface{}
			affix func(string, string) bool
		}{
			{"leftPad", func(a ...interface{}) interface{} { return left.Apply(a...).Value() }, strings.HasSuffix},
			{"rightPad", func(a ...interface{}) interface{} { return right.Apply(a...).Value() }, strings.HasPrefix},
		} {
			got := fn.apply(source, width, filler)
			if (got != nil) != valid {
				t.Fatalf("%s(%q, %d, %q) = %v, valid = %v", fn.name, source, width, filler, got, valid)
			}
			if got == nil {
				continue
			}
			s := got.(string)
			if n := utf8.RuneCountInString(s); n != want {
				t.Errorf("%s(%q, %d, %q) has %d code points, want %d", fn.name, source, width, filler, n, want)
			}
			if !fn.affix(s, source) {
				t.Errorf("%s(%q, %d, %q) = %q lost the source", fn.name, source, width, filler, s)
			}
		}
	})
}

func FuzzSplit(f *testing.F) {
	f.Add(",", "a,b,,c,,")
	f.Add("[;|]", "a;b|c")
	f.Add("", "abc")
	f.Add("(", "abc")

	fn := fnstring.Split()
	f.Fuzz(func(t *testing.T, sep, s string) {
		got, ok := fn.Apply(sep, s).Get()
		if !ok {
			return
		}
		parts := got.([]interface{})
		if len(parts) > 1 && parts[len(parts)-1] == "" {
			t.Errorf("split(%q, %q) = %q ends with an empty string", sep, s, parts)
		}
	})
}

func BenchmarkSubstring(b *testing.B) {
	fn := fnstring.Substring()
	s := strings.Repeat("héllo ", 32)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fn.Apply(s, 10, 90)
	}
}

func BenchmarkSplit(b *testing.B) {
	fn := fnstring.Split()
	s := strings.Repeat("alpha,beta;gamma|", 16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fn.Apply("[,;|]", s)
	}
}

func BenchmarkLeftPad(b *testing.B) {
	fn := fnstring.LeftPad()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fn.Apply("42", 12, "0")
	}
}

func BenchmarkToUpperCase(b *testing.B) {
	fn := fnstring.ToUpperCase()
	s := strings.Repeat("mixed Case text ", 8)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fn.Apply(s)
	}
}
