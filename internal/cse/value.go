// Package cse implements pycse's Control-Stash-Environment machine: an
// explicit-control, stack-based evaluator over the resolved AST (spec.md
// §4.5). It has no literal precedent in the teacher (go-dws walks the AST
// directly with a recursive Eval), so its architecture is a deliberate
// redesign; the Value-as-interface convention, the Environment chain shape,
// and the builtins dispatch style are grounded in the teacher's
// interp.Value / interp.Environment / interp/builtins_*.go (see DESIGN.md).
package cse

import (
	"fmt"

	"github.com/cwbudde/pycse/internal/ast"
	"github.com/cwbudde/pycse/internal/numeric"
)

// Value is the runtime representation of every pycse value. Concrete types
// are a closed set matched with type switches, never a tagged interface{}
// union (spec.md §3).
type Value interface {
	Kind() string
	fmt.Stringer
}

// Undefined is the result of a body that falls off the end without a
// Return, and the value None maps to.
type Undefined struct{}

func (Undefined) Kind() string   { return "Undefined" }
func (Undefined) String() string { return "None" }

// Bool is a Python boolean.
type Bool bool

func (Bool) Kind() string { return "Bool" }
func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

// BigIntVal wraps an arbitrary-precision integer.
type BigIntVal struct{ V *numeric.BigInt }

func (BigIntVal) Kind() string     { return "BigInt" }
func (b BigIntVal) String() string { return b.V.String() }

// FloatVal is an IEEE-754 double.
type FloatVal float64

func (FloatVal) Kind() string     { return "Float" }
func (f FloatVal) String() string { return numeric.FormatFloat(float64(f)) }

// StringVal is a decoded string value.
type StringVal string

func (StringVal) Kind() string     { return "String" }
func (s StringVal) String() string { return string(s) }

// ComplexVal wraps a Python-faithful complex number.
type ComplexVal struct{ V numeric.Complex }

func (ComplexVal) Kind() string     { return "Complex" }
func (c ComplexVal) String() string { return c.V.String() }

// Closure is a user-defined function or (multi-)lambda: the node that
// produced it plus the environment it closes over (spec.md §3).
type Closure struct {
	Name      string
	Params    []string
	Body      []ast.Stmt // FunctionDef / MultiLambda body
	Expr      ast.Expr   // single-expression Lambda body, nil otherwise
	Env       *Environment
	LocalVars map[string]bool // assignment targets, pre-scanned (spec.md §3)
	IsLambda  bool
}

func (*Closure) Kind() string { return "Closure" }
func (c *Closure) String() string {
	if c.Name == "" {
		return "<function <lambda>>"
	}
	return fmt.Sprintf("<function %s>", c.Name)
}

// ForeignClosure wraps a host-provided callable reached via `from M import
// ...` (spec.md §6.2). Marshalling happens at call time in the Application
// instruction handler.
type ForeignClosure struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*ForeignClosure) Kind() string     { return "ForeignClosure" }
func (f *ForeignClosure) String() string { return fmt.Sprintf("<function %s>", f.Name) }

// ModuleVal is what a `from M import ...` statement binds M to: the
// preloaded module's exports, wrapped as ForeignClosure values (spec.md
// §6.2). Individual imported names are never bound on their own — only M
// itself (spec.md §9's Open Question) — so a program reaches an export
// only by going through the bound module value.
type ModuleVal struct {
	Name    string
	Exports map[string]*ForeignClosure
}

func (*ModuleVal) Kind() string     { return "Module" }
func (m *ModuleVal) String() string { return fmt.Sprintf("<module %s>", m.Name) }

// Builtin is a host function registered directly in the global frame
// (print, abs, math_sqrt, ...), invoked as fn(m, args) per spec.md §4.5.
type Builtin struct {
	Name string
	Fn   func(m *Machine, args []Value) (Value, error)
}

func (*Builtin) Kind() string     { return "Builtin" }
func (b *Builtin) String() string { return fmt.Sprintf("<function %s>", b.Name) }

// Truthy implements spec.md §4.5's truthiness table.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Undefined:
		return false
	case Bool:
		return bool(val)
	case BigIntVal:
		return !val.V.IsZero()
	case FloatVal:
		return float64(val) != 0
	case StringVal:
		return len(val) != 0
	case ComplexVal:
		return !val.V.IsZero()
	default:
		return true
	}
}
