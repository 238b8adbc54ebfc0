package interp

import "fmt"

// Instance is a runtime object: a class reference and a field map
// created lazily on first write (spec.md §3, "Instance value").
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (i *Instance) Type() string   { return "instance" }
func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get resolves a property: fields shadow methods, methods are bound to
// this instance the moment they're returned (spec.md §4.4, "Property access").
func (i *Instance) Get(name string) (Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name)
}

func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}
