package interp

// Class is a Lox class value: its name, an optional superclass link,
// and its own (unbound) methods. Calling a Class constructs an
// Instance and, if an "init" method exists, runs it (spec.md §4.4,
// "Instantiation").
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() string   { return "class" }
func (c *Class) String() string { return c.Name }

// Arity is the arity of "init", or 0 if the class declares none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(i *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// FindMethod walks this class then its superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}
