// Package resolver implements pycse's two-pass static name resolution
// (spec.md §4.3): hoisting of top-level function declarations, nonlocal
// and reassignment enforcement, and Levenshtein-based "did you mean?"
// diagnostics for unresolved names.
package resolver

import (
	"fmt"

	"github.com/cwbudde/pycse/internal/ast"
	"github.com/cwbudde/pycse/internal/errors"
	"github.com/cwbudde/pycse/internal/token"
)

// builtinNames seeds the global frame per spec.md §4.3: the curated
// print/abs/max/min/round/str/_int/input set plus the math_* and random_*
// names spec.md §7 enumerates.
var builtinNames = []string{
	"print", "abs", "max", "min", "round", "str", "_int", "input",
	"math_pi", "math_e", "math_inf", "math_nan", "math_tau",
	"math_sqrt", "math_floor", "math_ceil", "math_sin", "math_cos",
	"math_log", "math_log2", "math_log10", "math_exp", "math_pow",
	"math_isnan", "math_isinf",
	"random_random", "random_randint", "random_seed",
}

// Resolver walks a parsed FileInput validating names against a chain of
// lexical Scopes, the same SymbolTable-with-outer-pointer shape as the
// teacher's (go-dws) internal/semantic.SymbolTable, generalized to
// case-sensitive Python scoping and the two-pass hoist/declare rule
// spec.md §4.3 describes.
type Resolver struct {
	source string
	scope  *Scope
	errs   []*errors.Diagnostic
}

// New builds a Resolver with a pre-seeded builtin frame.
func New(source string) *Resolver {
	builtins := newScope(nil, scopeBlock)
	for _, name := range builtinNames {
		builtins.declare(name)
	}
	return &Resolver{source: source, scope: builtins}
}

// Errors returns every ResolverError collected during Resolve.
func (r *Resolver) Errors() []*errors.Diagnostic { return r.errs }

// Resolve validates file, creating its fresh top-level environment over
// the builtin frame (spec.md §4.3).
func (r *Resolver) Resolve(file *ast.FileInput) {
	saved := r.scope
	r.scope = newScope(saved, scopeBlock)
	r.resolveBlock(file.Stmts)
	r.scope = saved
}

// withBlockScope resolves fn against a fresh child scope (one per
// Indent-marking block, spec.md §3), then leaks every name the block
// really declared back into the enclosing scope — matching the CSE
// machine's actual runtime model, where If/While/For bodies share their
// enclosing frame rather than pushing one of their own (spec.md §4.5's
// machine never creates an Environment for these nodes, only for calls).
// Without this merge, a name assigned only inside an if/else branch (or a
// for-loop target) would resolve fine at runtime but spuriously fail
// NameNotFoundError for any statement after the block. A name that
// already exists in the enclosing scope is left untouched, preserving the
// reassignment-from-a-nested-block check that runs while fn() is live.
func (r *Resolver) withBlockScope(fn func()) {
	saved := r.scope
	child := newScope(saved, scopeBlock)
	r.scope = child
	fn()
	r.scope = saved
	for name, state := range child.names {
		if state != declared {
			continue
		}
		if _, exists := saved.names[name]; !exists {
			saved.names[name] = declared
		}
	}
}

// resolveBlock runs the two passes spec.md §4.3 describes over one block's
// statement list: hoist every top-level FunctionDef as a placeholder, then
// visit each statement declaring names for real.
func (r *Resolver) resolveBlock(stmts []ast.Stmt) {
	for _, s := range stmts {
		if fd, ok := s.(*ast.FunctionDef); ok {
			r.scope.declarePlaceholder(fd.Name.Lexeme)
		}
	}
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.SimpleExpr:
		r.resolveExpr(st.Expr)
	case *ast.Assign:
		r.resolveExpr(st.Value)
		r.declareAssignTarget(st.Name)
	case *ast.AnnAssign:
		r.resolveExpr(st.Annotation)
		r.resolveExpr(st.Value)
		r.declareAssignTarget(st.Name)
	case *ast.FunctionDef:
		r.declareFunctionName(st.Name)
		funcScope := newScope(r.scope, scopeFunction)
		for _, p := range st.Params {
			funcScope.declare(p.Lexeme)
		}
		saved := r.scope
		r.scope = funcScope
		r.resolveBlock(st.Body)
		r.scope = saved
	case *ast.Return:
		if st.Value != nil {
			r.resolveExpr(st.Value)
		}
	case *ast.If:
		r.resolveExpr(st.Cond)
		r.withBlockScope(func() { r.resolveBlock(st.Body) })
		if len(st.Else) > 0 {
			r.withBlockScope(func() { r.resolveBlock(st.Else) })
		}
	case *ast.While:
		r.resolveExpr(st.Cond)
		r.withBlockScope(func() { r.resolveBlock(st.Body) })
	case *ast.For:
		r.resolveExpr(st.Iter)
		r.withBlockScope(func() {
			r.scope.declare(st.Target.Lexeme)
			r.resolveBlock(st.Body)
		})
	case *ast.Assert:
		r.resolveExpr(st.Value)
	case *ast.FromImport:
		// Only the module name M is bound, never the individual imported
		// names (spec.md §9's Open Question, resolved in DESIGN.md:
		// module.Preload loads M's exports and binds M itself into the
		// global environment before evaluation begins).
		r.scope.declare(st.Module.Lexeme)
	case *ast.Global:
		if _, ok := r.scope.resolve(st.Name.Lexeme); !ok {
			r.nameNotFound(st.Name)
		}
	case *ast.NonLocal:
		if !r.scope.declaredInAncestor(st.Name.Lexeme) {
			r.err("NonLocalNotFoundError", st.Name, "no binding for nonlocal name %q in an enclosing scope", st.Name.Lexeme)
			return
		}
		r.scope.names[st.Name.Lexeme] = placeholder
	case *ast.Pass, *ast.Break, *ast.Continue, *ast.Indent, *ast.Dedent:
		// no names to resolve
	}
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.None, *ast.BoolLiteral, *ast.NumberLiteral, *ast.BigIntLiteral, *ast.Complex, *ast.StringLiteral:
		// literals bind no names
	case *ast.Variable:
		if _, ok := r.scope.resolve(ex.Name.Lexeme); !ok {
			r.nameNotFound(ex.Name)
		}
	case *ast.Grouping:
		r.resolveExpr(ex.Inner)
	case *ast.Unary:
		r.resolveExpr(ex.Operand)
	case *ast.Binary:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.BoolOp:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Compare:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Call:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *ast.Ternary:
		r.resolveExpr(ex.Predicate)
		r.resolveExpr(ex.Consequent)
		r.resolveExpr(ex.Alternative)
	case *ast.Lambda:
		funcScope := newScope(r.scope, scopeFunction)
		for _, p := range ex.Params {
			funcScope.declare(p.Lexeme)
		}
		saved := r.scope
		r.scope = funcScope
		r.resolveExpr(ex.Body)
		r.scope = saved
	case *ast.MultiLambda:
		funcScope := newScope(r.scope, scopeFunction)
		for _, p := range ex.Params {
			funcScope.declare(p.Lexeme)
		}
		saved := r.scope
		r.scope = funcScope
		r.resolveBlock(ex.Body)
		r.scope = saved
	}
}

// declareAssignTarget implements spec.md §4.3's reassignment-prevention
// rule: outside any function, a plain redeclare in the current scope is
// checked; inside a function, the walk continues outward up to (and
// including) the enclosing function frame so an implicit rebind of a
// closed-over name without `nonlocal` is caught.
func (r *Resolver) declareAssignTarget(name token.Token) {
	boundary := r.scope.enclosingFunction()
	if boundary == nil {
		if !r.scope.declare(name.Lexeme) {
			r.err("NameReassignmentError", name, "name %q is already defined", name.Lexeme)
		}
		return
	}
	for sc := r.scope; sc != nil; sc = sc.outer {
		if state, ok := sc.names[name.Lexeme]; ok && state == declared {
			r.err("NameReassignmentError", name, "name %q is already defined", name.Lexeme)
			return
		}
		if sc == boundary {
			break
		}
	}
	r.scope.names[name.Lexeme] = declared
}

func (r *Resolver) declareFunctionName(name token.Token) {
	if state, ok := r.scope.names[name.Lexeme]; ok && state == declared {
		r.err("NameReassignmentError", name, "name %q is already defined", name.Lexeme)
		return
	}
	r.scope.names[name.Lexeme] = declared
}

func (r *Resolver) nameNotFound(tok token.Token) {
	d := errors.New(errors.KindResolver, "NameNotFoundError",
		fmt.Sprintf("name %q is not defined", tok.Lexeme), tok.Pos, r.source)
	d.CaretWidth = maxInt(1, len(tok.Lexeme))
	if suggestion := closestName(tok.Lexeme, r.scope.allNames()); suggestion != "" {
		d.Suggestion = errors.Suggest(suggestion)
	}
	r.errs = append(r.errs, d)
}

func (r *Resolver) err(name string, tok token.Token, format string, args ...any) {
	d := errors.New(errors.KindResolver, name, fmt.Sprintf(format, args...), tok.Pos, r.source)
	d.CaretWidth = maxInt(1, len(tok.Lexeme))
	r.errs = append(r.errs, d)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
