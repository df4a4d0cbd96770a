package cse

// Environment is one lexical frame: a flat, case-sensitive name table (the
// `head`) with a pointer to the enclosing frame (the `tail`), matching
// spec.md §3's `{ head, tail, closure }` shape. It is the runtime
// counterpart of the resolver's Scope, generalized from the teacher's
// (go-dws) interp/runtime.Environment by dropping case-insensitivity —
// pycse is Python, not DWScript.
type Environment struct {
	Vars    map[string]Value
	Outer   *Environment
	Closure *Closure // non-nil only for a function-call frame (spec.md §4.5)
}

// NewEnvironment creates a root frame with no outer scope (the global/
// builtins frame).
func NewEnvironment() *Environment {
	return &Environment{Vars: make(map[string]Value)}
}

// NewCallFrame creates the frame pushed by an Application instruction: its
// tail is the closure's captured environment, not the caller's frame
// (spec.md §4.5), which is what gives closures their lexical — not
// dynamic — scoping.
func NewCallFrame(closure *Closure) *Environment {
	return &Environment{Vars: make(map[string]Value), Outer: closure.Env, Closure: closure}
}

// Get resolves name by walking head -> tail -> ... -> the root frame,
// applying the UnboundLocalError trap from spec.md §4.5: if this frame
// belongs to a closure that assigns name somewhere in its own body, but it
// is not yet present in this frame's head, the walk must not fall through
// to an outer scope of the same name.
func (e *Environment) Get(name string) (Value, error) {
	if e.Closure != nil {
		if _, ok := e.Vars[name]; !ok && e.Closure.LocalVars[name] {
			return nil, &RuntimeError{Name: "UnboundLocalError",
				Message: "local variable " + name + " referenced before assignment"}
		}
	}
	for env := e; env != nil; env = env.Outer {
		if v, ok := env.Vars[name]; ok {
			return v, nil
		}
	}
	return nil, &RuntimeError{Name: "NameError", Message: "name " + name + " is not defined"}
}

// Bind defines or rebinds name in this exact frame (spec.md §4.5's
// Assignment instruction: "defines if new, rebinds if present").
func (e *Environment) Bind(name string, v Value) {
	e.Vars[name] = v
}
