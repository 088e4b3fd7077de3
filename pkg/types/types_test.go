package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		v    interface{}
		want Kind
	}{
		{nil, KindNull},
		{true, KindBool},
		{1.5, KindNumber},
		{42, KindNumber},
		{json.Number("7"), KindNumber},
		{"s", KindString},
		{[]interface{}{1}, KindSequence},
		{map[string]interface{}{}, KindMapping},
		{NewOrderedObject(), KindMapping},
		{struct{}{}, KindUnknown},
	}
	for _, tt := range tests {
		if got := KindOf(tt.v); got != tt.want {
			t.Errorf("KindOf(%#v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		v    interface{}
		want int
		ok   bool
	}{
		{3, 3, true},
		{int64(-7), -7, true},
		{uint8(200), 200, true},
		{float64(5), 5, true},
		{float32(2), 2, true},
		{json.Number("12"), 12, true},
		{2.5, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{float64(math.MaxInt32) + 1, 0, false},
		{int64(math.MinInt32) - 1, 0, false},
		{uint64(math.MaxInt32) + 1, 0, false},
		{json.Number("1.5"), 0, false},
		{"3", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := AsInt(tt.v)
		if ok != tt.ok || got != tt.want {
			t.Errorf("AsInt(%#v) = %d, %v, want %d, %v", tt.v, got, ok, tt.want, tt.ok)
		}
	}
}

type stringer struct{}

func (stringer) String() string { return "custom" }

func TestString(t *testing.T) {
	ordered := NewOrderedObject()
	ordered.Set("b", 1)
	ordered.Set("a", []interface{}{true, nil})
	var nilOrdered *OrderedObject

	tests := []struct {
		v    interface{}
		want string
	}{
		{nil, "null"},
		{"text", "text"},
		{false, "false"},
		{float64(3), "3"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
		{int64(-9), "-9"},
		{uint32(9), "9"},
		{json.Number("1.50"), "1.50"},
		{[]interface{}{"a", float64(1), nil}, "[a, 1, null]"},
		{map[string]interface{}{"z": 1, "a": "x"}, "{a=x, z=1}"},
		{ordered, "{b=1, a=[true, null]}"},
		{nilOrdered, "null"},
		{stringer{}, "custom"},
		{struct{ N int }{N: 1}, `{"N":1}`},
	}
	for _, tt := range tests {
		if got := String(tt.v); got != tt.want {
			t.Errorf("String(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestOrderedObject(t *testing.T) {
	o := &OrderedObject{}
	o.Set("z", 1)
	o.Set("a", "x")
	o.Set("z", 2)
	if o.Len() != 2 {
		t.Errorf("Len() = %d", o.Len())
	}
	if v, ok := o.Get("z"); !ok || v != 2 {
		t.Errorf("Get(z) = %v, %v", v, ok)
	}
	raw, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"z":2,"a":"x"}` {
		t.Errorf("MarshalJSON = %s", raw)
	}
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(ErrInvalidDatePattern, "bad pattern", 3).WithCause(cause).WithToken("qq")

	if got := err.Error(); got != "D3101 at position 3: bad pattern: boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not unwrapped")
	}
	if !IsCode(fmt.Errorf("wrapped: %w", err), ErrInvalidDatePattern) {
		t.Error("IsCode through fmt wrapping failed")
	}
	if IsCode(err, ErrDateParse) {
		t.Error("IsCode matched another code")
	}
	if IsCode(cause, ErrDateParse) {
		t.Error("IsCode matched a plain error")
	}
	if got := Errorf(ErrInvalidRequest, "call %d", 2).Error(); got != "B0101: call 2" {
		t.Errorf("Errorf = %q", got)
	}
}
