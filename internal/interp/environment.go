package interp

import "fmt"

// Environment is one lexical scope frame: a flat map plus a link to
// the enclosing frame it shadows. The global environment is the one
// frame with a nil Outer (spec.md §4.3).
type Environment struct {
	Outer  *Environment
	values map[string]Value
}

// NewEnvironment creates a top-level (global) environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewChildEnvironment creates a new scope nested directly inside outer,
// e.g. for a block, a function call, or a class's "this"/"super" frames.
func NewChildEnvironment(outer *Environment) *Environment {
	return &Environment{Outer: outer, values: make(map[string]Value)}
}

// Define binds name in this frame, shadowing any outer binding of the
// same name. Re-defining an existing name in the same frame (legal at
// the top level; rejected earlier, in the resolver, for blocks) simply
// overwrites it.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks a name up starting in this frame and walking outward.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.Outer != nil {
		return e.Outer.Get(name)
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// Assign rebinds an already-declared name, walking outward like Get.
// Unlike Define, it errors on an undeclared name (spec.md §4.3).
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.Outer != nil {
		return e.Outer.Assign(name, value)
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}

// Ancestor walks outward exactly n frames. It is used together with
// the resolver's hop-count table: a variable resolved to hop count n
// lives in Ancestor(n), never searched for by name beyond that frame.
func (e *Environment) Ancestor(n int) *Environment {
	env := e
	for i := 0; i < n; i++ {
		env = env.Outer
	}
	return env
}

// GetAt reads name directly out of the frame n hops out, skipping the
// walk Get would otherwise do.
func (e *Environment) GetAt(n int, name string) (Value, error) {
	env := e.Ancestor(n)
	if v, ok := env.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// AssignAt writes name directly into the frame n hops out.
func (e *Environment) AssignAt(n int, name string, value Value) {
	e.Ancestor(n).values[name] = value
}
