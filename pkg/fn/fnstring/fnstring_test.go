package fnstring_test

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/sandrolain/gomodifier/pkg/fn/fnstring"
	"github.com/sandrolain/gomodifier/pkg/functions"
	"github.com/sandrolain/gomodifier/pkg/types"
)

type applyCase struct {
	name    string
	args    []interface{}
	want    interface{}
	present bool
}

func runApply(t *testing.T, fn functions.Function, tests []applyCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fn.Apply(tt.args...).Get()
			if ok != tt.present {
				t.Fatalf("%s(%v): present = %v, want %v (value %v)", fn.Name(), tt.args, ok, tt.present, got)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s(%v) = %#v, want %#v", fn.Name(), tt.args, got, tt.want)
			}
		})
	}
}

func TestCaseAndTrim(t *testing.T) {
	runApply(t, fnstring.ToLowerCase(), []applyCase{
		{"mixed", []interface{}{"HeLLo WORLD"}, "hello world", true},
		{"unicode", []interface{}{"ÀÉÎ"}, "àéî", true},
		{"number", []interface{}{float64(1)}, nil, false},
		{"null", []interface{}{nil}, nil, false},
		{"no args", nil, nil, false},
	})
	runApply(t, fnstring.ToUpperCase(), []applyCase{
		{"mixed", []interface{}{"HeLLo world"}, "HELLO WORLD", true},
		{"bool", []interface{}{true}, nil, false},
	})
	runApply(t, fnstring.Trim(), []applyCase{
		{"spaces", []interface{}{"  padded  "}, "padded", true},
		{"controls", []interface{}{"\t\n x \r\x00"}, "x", true},
		{"inner kept", []interface{}{" a b "}, "a b", true},
		{"nbsp kept", []interface{}{"\u00a0x\u00a0"}, "\u00a0x\u00a0", true},
		{"sequence", []interface{}{[]interface{}{" a "}}, nil, false},
	})
}

func TestCaseLocale(t *testing.T) {
	lower := fnstring.ToLowerCase(fnstring.WithLocale(language.Turkish))
	upper := fnstring.ToUpperCase(fnstring.WithLocale(language.Turkish))

	if got := lower.Apply("I").Value(); got != "ı" {
		t.Errorf("turkish lower(I) = %q, want %q", got, "ı")
	}
	if got := upper.Apply("i").Value(); got != "İ" {
		t.Errorf("turkish upper(i) = %q, want %q", got, "İ")
	}
	if got := fnstring.ToLowerCase().Apply("I").Value(); got != "i" {
		t.Errorf("root lower(I) = %q, want %q", got, "i")
	}
}

func TestCaseIdempotent(t *testing.T) {
	inputs := []string{"", "abc", "ABC", "MiXeD 123", "  spaced  ", "Straße", "ÇĞİÖŞÜ"}
	fns := []functions.Function{fnstring.ToLowerCase(), fnstring.ToUpperCase(), fnstring.Trim()}
	for _, fn := range fns {
		for _, in := range inputs {
			once := fn.Apply(in).Value()
			twice := fn.Apply(once).Value()
			if once != twice {
				t.Errorf("%s not idempotent on %q: %q then %q", fn.Name(), in, once, twice)
			}
		}
	}
}

func TestConcat(t *testing.T) {
	runApply(t, fnstring.Concat(), []applyCase{
		{"empty", nil, "", true},
		{"all null", []interface{}{nil, nil}, "", true},
		{"mixed", []interface{}{nil, "a", 1}, "a1", true},
		{"float", []interface{}{"v", 1.5}, "v1.5", true},
		{"integral float", []interface{}{"n", float64(3)}, "n3", true},
		{"bool", []interface{}{"is ", true}, "is true", true},
		{"single sequence unwrapped", []interface{}{[]interface{}{"a", "b"}}, "ab", true},
		{"nested sequence", []interface{}{"x", []interface{}{"a", float64(1)}}, "x[a, 1]", true},
		{"mapping", []interface{}{"m", map[string]interface{}{"b": 2, "a": "x"}}, "m{a=x, b=2}", true},
	})
}

func TestSubstring(t *testing.T) {
	runApply(t, fnstring.Substring(), []applyCase{
		{"middle", []interface{}{"hello", 1, 3}, "el", true},
		{"whole", []interface{}{"hello", 0, 5}, "hello", true},
		{"float indices", []interface{}{"hello", float64(0), float64(1)}, "h", true},
		{"reversed", []interface{}{"hello", 3, 1}, nil, false},
		{"equal", []interface{}{"hello", 2, 2}, nil, false},
		{"end past length", []interface{}{"hello", 0, 10}, nil, false},
		{"negative start", []interface{}{"hello", -1, 2}, nil, false},
		{"end zero", []interface{}{"hello", -1, 0}, nil, false},
		{"fractional index", []interface{}{"hello", 0.5, 2}, nil, false},
		{"string index", []interface{}{"hello", "0", 2}, nil, false},
		{"not a string", []interface{}{12345, 0, 2}, nil, false},
		{"two args", []interface{}{"hello", 1}, nil, false},
		{"four args", []interface{}{"hello", 1, 2, 3}, nil, false},
		{"runes", []interface{}{"héllo", 1, 2}, "é", true},
	})
}

func TestJoin(t *testing.T) {
	runApply(t, fnstring.Join(), []applyCase{
		{"skip empty", []interface{}{",", "a", "", "b"}, "a,b", true},
		{"empty list", []interface{}{",", []interface{}{}}, "", true},
		{"driver only", []interface{}{","}, "", true},
		{"sequence", []interface{}{"-", []interface{}{"a", "b", "c"}}, "a-b-c", true},
		{"nulls", []interface{}{",", nil, "a", nil, "b"}, "a,b", true},
		{"trailing empty keeps separator", []interface{}{",", "a", "b", ""}, "a,b,", true},
		{"trailing null keeps separator", []interface{}{",", "a", nil}, "a,", true},
		{"numbers", []interface{}{"+", 1, float64(2)}, "1+2", true},
		{"non-string separator", []interface{}{1, "a", "b"}, nil, false},
		{"null separator", []interface{}{nil, "a"}, nil, false},
		{"no args", nil, nil, false},
	})
}

func TestSplit(t *testing.T) {
	runApply(t, fnstring.Split(), []applyCase{
		{"comma", []interface{}{",", "a,b,c"}, []interface{}{"a", "b", "c"}, true},
		{"inner empties kept", []interface{}{",", "a,,b"}, []interface{}{"a", "", "b"}, true},
		{"trailing empties dropped", []interface{}{",", "a,b,,"}, []interface{}{"a", "b"}, true},
		{"leading empty kept", []interface{}{`\s+`, " a b"}, []interface{}{"", "a", "b"}, true},
		{"pattern", []interface{}{`[;|]`, "a;b|c"}, []interface{}{"a", "b", "c"}, true},
		{"dot is a pattern", []interface{}{".", "a.b"}, []interface{}{}, true},
		{"escaped dot", []interface{}{`\.`, "a.b"}, []interface{}{"a", "b"}, true},
		{"empty pattern", []interface{}{"", "abc"}, []interface{}{"a", "b", "c"}, true},
		{"no match", []interface{}{",", "abc"}, []interface{}{"abc"}, true},
		{"empty source", []interface{}{",", ""}, []interface{}{""}, true},
		{"only separators", []interface{}{",", ",,"}, []interface{}{}, true},
		{"invalid pattern", []interface{}{"[", "a[b"}, nil, false},
		{"null source", []interface{}{",", nil}, nil, false},
		{"null separator", []interface{}{nil, "a,b"}, nil, false},
		{"number source", []interface{}{",", 12}, nil, false},
		{"missing source", []interface{}{","}, nil, false},
	})
}

func TestPad(t *testing.T) {
	runApply(t, fnstring.LeftPad(), []applyCase{
		{"pads", []interface{}{"ab", 5, "0"}, "000ab", true},
		{"list form", []interface{}{"ab", []interface{}{5, "0"}}, "000ab", true},
		{"exact width", []interface{}{"ab", 2, "0"}, "ab", true},
		{"max width", []interface{}{"", 500, "x"}, strings.Repeat("x", 500), true},
		{"width too large", []interface{}{"ab", 501, "0"}, nil, false},
		{"width zero", []interface{}{"ab", 0, "0"}, nil, false},
		{"width negative", []interface{}{"ab", -3, "0"}, nil, false},
		{"multi char filler", []interface{}{"ab", 5, "xy"}, nil, false},
		{"empty filler", []interface{}{"ab", 5, ""}, nil, false},
		{"multibyte filler", []interface{}{"ab", 4, "é"}, "ééab", true},
		{"width string", []interface{}{"ab", "5", "0"}, nil, false},
		{"filler number", []interface{}{"ab", 5, 0}, nil, false},
		{"missing filler", []interface{}{"ab", 5}, nil, false},
		{"null source", []interface{}{nil, 5, "0"}, nil, false},
		{"number source", []interface{}{12, 5, "0"}, nil, false},
	})
	runApply(t, fnstring.RightPad(), []applyCase{
		{"pads", []interface{}{"ab", 5, "0"}, "ab000", true},
		{"never truncates", []interface{}{"ab", 1, "0"}, "ab", true},
		{"rune length", []interface{}{"éé", 3, "-"}, "éé-", true},
	})
}

func TestConcatCanonicalForms(t *testing.T) {
	ordered := types.NewOrderedObject()
	ordered.Set("z", 1)
	ordered.Set("a", nil)
	got := fnstring.Concat().Apply("o", ordered).Value()
	if got != "o{z=1, a=null}" {
		t.Errorf("concat ordered = %q", got)
	}
}
