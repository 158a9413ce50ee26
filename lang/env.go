package lang

// Env implements a lexical environment chain. The interpreter's globals are
// the root frame; a user-function call layers one child frame over it.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Define binds name to value in the current frame.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Get retrieves a binding, searching parents if necessary.
func (e *Env) Get(name string) (Value, error) {
	if val, ok := e.values[name]; ok {
		return val, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, &EvalError{Msg: "unknown variable: " + name}
}

// Names returns the names bound in the current frame only.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	return names
}
