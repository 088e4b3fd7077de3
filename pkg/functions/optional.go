package functions

import "fmt"

// Optional is the result of a function call: either a present value or the
// empty marker meaning "not applicable, leave the target untouched".
//
// A present value may itself be nil (a JSON null).
type Optional struct {
	value   interface{}
	present bool
}

// Some returns a present Optional holding v.
func Some(v interface{}) Optional {
	return Optional{value: v, present: true}
}

// None returns the empty Optional.
func None() Optional {
	return Optional{}
}

// Get returns the value and whether it is present.
func (o Optional) Get() (interface{}, bool) {
	return o.value, o.present
}

// IsPresent reports whether o holds a value.
func (o Optional) IsPresent() bool {
	return o.present
}

// Value returns the held value, or nil when empty.
func (o Optional) Value() interface{} {
	return o.value
}

// OrElse returns the held value, or fallback when empty.
func (o Optional) OrElse(fallback interface{}) interface{} {
	if !o.present {
		return fallback
	}
	return o.value
}

func (o Optional) String() string {
	if !o.present {
		return "Optional.empty"
	}
	return fmt.Sprintf("Optional[%v]", o.value)
}
