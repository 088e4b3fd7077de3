package functions

import (
	"sort"
	"sync"

	"github.com/sandrolain/gomodifier/pkg/types"
)

// Registry maps function names to functions.
//
// Safe for concurrent use; registration normally happens once at start-up.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Function)}
}

// Register adds fns to the registry. Either all of fns are added or, when
// one is invalid or its name is taken (already registered or repeated in
// fns), none is.
func (r *Registry) Register(fns ...Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{}, len(fns))
	for _, fn := range fns {
		if !fn.valid() {
			return types.Errorf(types.ErrInvalidFunction, "function %q has no implementation for shape %s", fn.name, fn.shape)
		}
		_, exists := r.fns[fn.name]
		_, repeated := seen[fn.name]
		if exists || repeated {
			return types.Errorf(types.ErrDuplicateFunction, "function %q is already registered", fn.name).WithToken(fn.name)
		}
		seen[fn.name] = struct{}{}
	}
	for _, fn := range fns {
		r.fns[fn.name] = fn
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(fns ...Function) {
	if err := r.Register(fns...); err != nil {
		panic("functions: " + err.Error())
	}
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Function, bool) {
	r.mu.RLock()
	fn, ok := r.fns[name]
	r.mu.RUnlock()
	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fns)
}

// Apply looks up name and invokes it with args (see [Function.Apply]).
// The error is non-nil only when no function is registered under name;
// non-applicable arguments are reported through the Optional.
func (r *Registry) Apply(name string, args ...interface{}) (Optional, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return None(), types.Errorf(types.ErrUndefinedFunction, "function %q is not defined", name).WithToken(name)
	}
	return fn.Apply(args...), nil
}
