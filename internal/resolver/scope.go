package resolver

// bindingState distinguishes a pass-1 hoisted placeholder from a real,
// pass-2 declaration (spec.md §4.3): only the latter triggers
// NameReassignmentError on a repeat declareName.
type bindingState int

const (
	placeholder bindingState = iota
	declared
)

// scopeKind marks whether a Scope is a function boundary, used by the
// nonlocal-ancestor check and the "assign walks toward the enclosing
// function frame" reassignment rule (spec.md §4.3).
type scopeKind int

const (
	scopeBlock scopeKind = iota
	scopeFunction
)

// Scope is one lexical frame in the resolver's environment chain: a flat
// name table with a pointer to its enclosing frame, the same shape as the
// teacher's (go-dws) semantic.SymbolTable, but case-sensitive (pycse is
// Python, not DWScript) and tracking placeholder-vs-declared per spec.md
// §4.3's two-pass rule instead of DWScript's overload sets.
type Scope struct {
	names  map[string]bindingState
	outer  *Scope
	kind   scopeKind
	isFunc bool
}

func newScope(outer *Scope, kind scopeKind) *Scope {
	return &Scope{names: make(map[string]bindingState), outer: outer, kind: kind, isFunc: kind == scopeFunction}
}

// declarePlaceholder records name as a pass-1 hoisted FunctionDef; it never
// fails, even if name already exists (mutual top-level reference, spec.md
// §4.3).
func (s *Scope) declarePlaceholder(name string) {
	if _, ok := s.names[name]; !ok {
		s.names[name] = placeholder
	}
}

// declare records a real pass-2 binding. ok is false if name was already
// declared (not merely hoisted) in this exact scope.
func (s *Scope) declare(name string) (ok bool) {
	if state, exists := s.names[name]; exists && state == declared {
		return false
	}
	s.names[name] = declared
	return true
}

// resolve walks outward from s looking for name in any frame.
func (s *Scope) resolve(name string) (*Scope, bool) {
	for sc := s; sc != nil; sc = sc.outer {
		if _, ok := sc.names[name]; ok {
			return sc, true
		}
	}
	return nil, false
}

// declaredInAncestor reports whether name is bound in any frame strictly
// outside s, used by the `nonlocal` check (spec.md §4.3).
func (s *Scope) declaredInAncestor(name string) bool {
	if s.outer == nil {
		return false
	}
	_, ok := s.outer.resolve(name)
	return ok
}

// enclosingFunction returns the nearest function-boundary frame at or
// above s, used by the assignment reassignment-prevention rule.
func (s *Scope) enclosingFunction() *Scope {
	for sc := s; sc != nil; sc = sc.outer {
		if sc.kind == scopeFunction {
			return sc
		}
	}
	return nil
}

// allNames collects every visible name from s up through every ancestor,
// for the Levenshtein "did you mean?" search (spec.md §4.3, §4.6).
func (s *Scope) allNames() []string {
	seen := map[string]bool{}
	var names []string
	for sc := s; sc != nil; sc = sc.outer {
		for name := range sc.names {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
