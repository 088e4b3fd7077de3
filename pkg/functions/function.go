// Package functions defines the calling contract between a transformation
// engine and the functions it invokes.
//
// A [Function] is a named value tagged with one of four calling shapes:
//
//	ShapeSingle        f(value)
//	ShapeList          f(args...)
//	ShapeDriverList    f(driver, args...)
//	ShapeDriverSingle  f(driver, value)
//
// The driver is the first logical argument of driver-shaped functions, such
// as the separator of join. Every call returns an [Optional]; argument
// mismatches yield [None] and never panic.
//
// # Example
//
//	shout := functions.NewSingle("shout", func(arg interface{}) functions.Optional {
//	    s, ok := arg.(string)
//	    if !ok {
//	        return functions.None()
//	    }
//	    return functions.Some(strings.ToUpper(s) + "!")
//	})
//	reg := functions.NewRegistry()
//	_ = reg.Register(shout)
//	res, _ := reg.Apply("shout", "hi") // Optional["HI!"]
package functions

// Shape is the calling convention a function implements.
type Shape int

// Calling shapes.
const (
	ShapeSingle Shape = iota
	ShapeList
	ShapeDriverList
	ShapeDriverSingle
)

func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeList:
		return "list"
	case ShapeDriverList:
		return "driver+list"
	case ShapeDriverSingle:
		return "driver+single"
	default:
		return "unknown"
	}
}

// SingleFunc takes one value.
type SingleFunc func(arg interface{}) Optional

// ListFunc takes the full ordered argument list.
type ListFunc func(args []interface{}) Optional

// DriverListFunc takes a driver value plus the remaining arguments.
type DriverListFunc func(driver interface{}, args []interface{}) Optional

// DriverSingleFunc takes a driver value plus exactly one further value.
type DriverSingleFunc func(driver interface{}, arg interface{}) Optional

// Function is a named transformation function. Only the implementation that
// matches Shape is set.
type Function struct {
	name         string
	shape        Shape
	single       SingleFunc
	list         ListFunc
	driverList   DriverListFunc
	driverSingle DriverSingleFunc
}

// NewSingle creates a ShapeSingle function.
func NewSingle(name string, fn SingleFunc) Function {
	return Function{name: name, shape: ShapeSingle, single: fn}
}

// NewList creates a ShapeList function.
func NewList(name string, fn ListFunc) Function {
	return Function{name: name, shape: ShapeList, list: fn}
}

// NewDriverList creates a ShapeDriverList function whose driver must be of
// type D. A nil driver or one of another type yields None.
func NewDriverList[D any](name string, fn func(driver D, args []interface{}) Optional) Function {
	return Function{
		name:  name,
		shape: ShapeDriverList,
		driverList: func(driver interface{}, args []interface{}) Optional {
			d, ok := driver.(D)
			if !ok {
				return None()
			}
			return fn(d, args)
		},
	}
}

// NewDriverSingle creates a ShapeDriverSingle function whose driver must be of
// type D. A nil driver or one of another type yields None.
func NewDriverSingle[D any](name string, fn func(driver D, arg interface{}) Optional) Function {
	return Function{
		name:  name,
		shape: ShapeDriverSingle,
		driverSingle: func(driver interface{}, arg interface{}) Optional {
			d, ok := driver.(D)
			if !ok {
				return None()
			}
			return fn(d, arg)
		},
	}
}

// Name returns the function name.
func (f Function) Name() string {
	return f.name
}

// Shape returns the calling shape.
func (f Function) Shape() Shape {
	return f.shape
}

// valid reports whether f has a name and the implementation for its shape.
func (f Function) valid() bool {
	if f.name == "" {
		return false
	}
	switch f.shape {
	case ShapeSingle:
		return f.single != nil
	case ShapeList:
		return f.list != nil
	case ShapeDriverList:
		return f.driverList != nil
	case ShapeDriverSingle:
		return f.driverSingle != nil
	}
	return false
}

// CallSingle invokes a ShapeSingle function.
func (f Function) CallSingle(arg interface{}) Optional {
	if f.single == nil {
		return None()
	}
	return f.single(arg)
}

// CallList invokes a ShapeList function.
func (f Function) CallList(args []interface{}) Optional {
	if f.list == nil {
		return None()
	}
	return f.list(args)
}

// CallDriverList invokes a ShapeDriverList function.
func (f Function) CallDriverList(driver interface{}, args []interface{}) Optional {
	if f.driverList == nil {
		return None()
	}
	return f.driverList(driver, args)
}

// CallDriverSingle invokes a ShapeDriverSingle function.
func (f Function) CallDriverSingle(driver interface{}, arg interface{}) Optional {
	if f.driverSingle == nil {
		return None()
	}
	return f.driverSingle(driver, arg)
}

// Apply invokes f with a flat argument list, extracting the driver and the
// remaining arguments according to the function's shape:
//
//   - single: the first argument; no arguments yield None
//   - list: the arguments, or the elements of a lone sequence argument
//   - driver+list: args[0] is the driver, the rest (or the elements of a lone
//     sequence) is the list; no arguments yield None
//   - driver+single: exactly a driver and one value, otherwise None
func (f Function) Apply(args ...interface{}) Optional {
	switch f.shape {
	case ShapeSingle:
		if len(args) == 0 {
			return None()
		}
		return f.CallSingle(args[0])
	case ShapeList:
		return f.CallList(unwrapList(args))
	case ShapeDriverList:
		if len(args) == 0 {
			return None()
		}
		return f.CallDriverList(args[0], unwrapList(args[1:]))
	case ShapeDriverSingle:
		if len(args) != 2 {
			return None()
		}
		return f.CallDriverSingle(args[0], args[1])
	}
	return None()
}

// unwrapList treats a single sequence argument as the argument list itself.
func unwrapList(args []interface{}) []interface{} {
	if len(args) == 1 {
		if seq, ok := args[0].([]interface{}); ok {
			return seq
		}
	}
	return args
}
