// Package module implements the host side of `from M import a, b, c`
// (spec.md §6.2): a Loader resolves a module name to host callables, each
// wrapped as a cse.ForeignClosure whose invocation marshals interpreter
// values to host values and back. The loader's fetch mechanism, caching
// strategy, and the surrounding host conductor/runtime plugin are
// explicitly out of scope for this sublanguage (spec.md's Non-goals); this
// package only implements the marshalling contract and a single in-memory
// Loader, modeled on the teacher's unit registry (internal/units) —
// a name-keyed, fetch-once, read-thereafter cache of resolved bundles.
package module

import (
	"fmt"
	"sync"

	"github.com/cwbudde/pycse/internal/ast"
	"github.com/cwbudde/pycse/internal/cse"
	"github.com/cwbudde/pycse/internal/numeric"
)

// HostFunc is a single host-provided callable, in the host's own value
// representation (spec.md §6.2's marshalling table governs conversion at
// the boundary; HostFunc itself never touches cse.Value).
type HostFunc func(args []any) (any, error)

// Loader resolves a module name to its exported callables. Implementations
// own whatever fetch/cache strategy they like; this package only specifies
// the contract and the value-marshalling side of it.
type Loader interface {
	Load(name string) (map[string]HostFunc, error)
}

// MapLoader is a Loader backed by a fixed, in-memory table — suitable for
// embedding host-provided functions directly into the binary, or for
// tests. It never performs network I/O (spec.md explicitly scopes the real
// fetch mechanism out of this module).
type MapLoader struct {
	mu      sync.RWMutex
	modules map[string]map[string]HostFunc
	cache   map[string]map[string]*cse.ForeignClosure
}

// NewMapLoader creates a MapLoader over modules (name -> exported name ->
// host callable).
func NewMapLoader(modules map[string]map[string]HostFunc) *MapLoader {
	return &MapLoader{modules: modules, cache: make(map[string]map[string]*cse.ForeignClosure)}
}

// Load looks name up in the fixed table and returns its host callables; it
// neither wraps nor caches them. Resolve is the method that caches the
// wrapped closures per module (spec.md §5's "written once per name and
// thereafter read-only" module cache contract).
func (l *MapLoader) Load(name string) (map[string]HostFunc, error) {
	l.mu.RLock()
	fns, ok := l.modules[name]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("module %q not found", name)
	}
	return fns, nil
}

// Resolve loads name and returns its exports as ready-to-bind
// cse.ForeignClosure values, caching the wrapped result per module.
func (l *MapLoader) Resolve(name string) (map[string]*cse.ForeignClosure, error) {
	l.mu.RLock()
	cached, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}

	fns, err := l.Load(name)
	if err != nil {
		return nil, err
	}

	wrapped := make(map[string]*cse.ForeignClosure, len(fns))
	for fnName, fn := range fns {
		wrapped[fnName] = Wrap(fnName, fn)
	}

	l.mu.Lock()
	l.cache[name] = wrapped
	l.mu.Unlock()
	return wrapped, nil
}

// CollectImports walks stmts — recursively through every nested block, not
// just the top level — and returns the first *ast.FromImport node naming
// each distinct module, in first-occurrence order. This is the AST scan
// spec.md §6.2 requires before evaluation starts ("the core scans the AST
// for every FromImport node and invokes the loader for each distinct M").
func CollectImports(stmts []ast.Stmt) []*ast.FromImport {
	var imports []*ast.FromImport
	seen := make(map[string]bool)

	var walk func([]ast.Stmt)
	walk = func(body []ast.Stmt) {
		for _, s := range body {
			switch st := s.(type) {
			case *ast.FromImport:
				if !seen[st.Module.Lexeme] {
					seen[st.Module.Lexeme] = true
					imports = append(imports, st)
				}
			case *ast.FunctionDef:
				walk(st.Body)
			case *ast.If:
				walk(st.Body)
				walk(st.Else)
			case *ast.While:
				walk(st.Body)
			case *ast.For:
				walk(st.Body)
			}
		}
	}
	walk(stmts)
	return imports
}

// Preload implements spec.md §6.2's pre-evaluation step: for every distinct
// module M reached by CollectImports, it invokes loader.Load(M), wraps the
// returned host callables as ForeignClosure values, and binds M itself —
// never the individual imported names (spec.md §9's Open Question) — into
// root before the CSE machine runs. A load failure is reported as a
// ModuleConnectionError positioned at the `from M import ...` statement.
func Preload(stmts []ast.Stmt, loader Loader, root *cse.Environment) *cse.RuntimeError {
	for _, imp := range CollectImports(stmts) {
		name := imp.Module.Lexeme
		fns, err := loader.Load(name)
		if err != nil {
			return &cse.RuntimeError{
				Name:    "ModuleConnectionError",
				Message: err.Error(),
				Pos:     imp.Module.Pos,
			}
		}

		exports := make(map[string]*cse.ForeignClosure, len(fns))
		for fnName, fn := range fns {
			exports[fnName] = Wrap(fnName, fn)
		}
		root.Bind(name, &cse.ModuleVal{Name: name, Exports: exports})
	}
	return nil
}

// Wrap adapts a HostFunc into a cse.ForeignClosure, marshalling arguments
// and the return value across the interpreter/host boundary per spec.md
// §6.2's table.
func Wrap(name string, fn HostFunc) *cse.ForeignClosure {
	return &cse.ForeignClosure{Name: name, Fn: func(args []cse.Value) (cse.Value, error) {
		hostArgs := make([]any, len(args))
		for i, a := range args {
			h, err := ToHost(a)
			if err != nil {
				return nil, fmt.Errorf("%s(): argument %d: %w", name, i, err)
			}
			hostArgs[i] = h
		}
		result, err := fn(hostArgs)
		if err != nil {
			return nil, err
		}
		return FromHost(result)
	}}
}

// ToHost marshals a pycse Value to a host value per spec.md §6.2's table.
// Complex and any other variant are not passable and raise at marshal time.
func ToHost(v cse.Value) (any, error) {
	switch val := v.(type) {
	case cse.BigIntVal:
		return val.V.V.Int64(), nil
	case cse.FloatVal:
		return float64(val), nil
	case cse.StringVal:
		return string(val), nil
	case cse.Bool:
		return bool(val), nil
	case cse.Undefined:
		return nil, nil
	default:
		return nil, fmt.Errorf("value of kind %s is not passable to a host function", v.Kind())
	}
}

// FromHost marshals a host return value back to a pycse Value, the inverse
// of ToHost's table.
func FromHost(v any) (cse.Value, error) {
	switch val := v.(type) {
	case nil:
		return cse.Undefined{}, nil
	case int:
		return cse.BigIntVal{V: numeric.NewBigIntFromInt64(int64(val))}, nil
	case int64:
		return cse.BigIntVal{V: numeric.NewBigIntFromInt64(val)}, nil
	case float64:
		return cse.FloatVal(val), nil
	case string:
		return cse.StringVal(val), nil
	case bool:
		return cse.Bool(val), nil
	default:
		return nil, fmt.Errorf("host value of type %T is not representable as a pycse value", v)
	}
}
