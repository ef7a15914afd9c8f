package interp

// Environment is one frame of the runtime scope chain. Frames nest strictly:
// a frame is created when its block, loop, or call begins and dropped when it
// ends, however it ends.
type Environment struct {
	parent *Environment
	table  map[string]Value
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, table: map[string]Value{}}
}

// Define binds a name in this frame, shadowing any outer binding.
func (e *Environment) Define(name string, value Value) {
	e.table[name] = value
}

// Get walks the chain outward looking for a binding.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if value, ok := env.table[name]; ok {
			return value, true
		}
	}
	return nil, false
}

// Assign walks the chain outward and overwrites the first binding found. It
// reports false when the name is bound nowhere.
func (e *Environment) Assign(name string, value Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.table[name]; ok {
			env.table[name] = value
			return true
		}
	}
	return false
}

// Ancestor returns the frame the given number of hops out, or nil when the
// chain is shorter than that. Distances come from the resolver; the chain can
// still be short when a nested function reads an enclosing local, since calls
// run on a fresh chain to the globals rather than a closure.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for n := 0; n < distance && env != nil; n++ {
		env = env.parent
	}
	return env
}

// GetAt reads a name at an exact distance computed by the resolver.
func (e *Environment) GetAt(distance int, name string) (Value, bool) {
	env := e.Ancestor(distance)
	if env == nil {
		return nil, false
	}
	value, ok := env.table[name]
	return value, ok
}

// AssignAt overwrites a name at an exact distance computed by the resolver.
// It reports false when the chain is too short to reach the frame.
func (e *Environment) AssignAt(distance int, name string, value Value) bool {
	env := e.Ancestor(distance)
	if env == nil {
		return false
	}
	env.table[name] = value
	return true
}
