package cse

import (
	"fmt"

	"github.com/cwbudde/pycse/internal/ast"
	"github.com/cwbudde/pycse/internal/numeric"
	"github.com/cwbudde/pycse/internal/token"
)

// Machine is the CSE evaluator: a Control stack, a Stash stack, and the
// current lexical Environment (spec.md §4.5). Scheduling is
// single-threaded and cooperative — one Run() drains one chunk to
// completion or to the first fault.
type Machine struct {
	control    []any
	stash      []Value
	currentEnv *Environment
	source     string
	steps      int
	stepLimit  int
	Output     func(string)
}

// Options mirrors spec.md §6.4's `{ isPrelude, envSteps, stepLimit }`.
// IsPrelude and EnvSteps are accepted for parity, but New does not keep them
// and they affect nothing (spec.md describes them as accounting-only); StepLimit is enforced
// because SPEC_FULL.md resolves that Open Question in favor of
// enforcement.
type Options struct {
	IsPrelude bool
	EnvSteps  int
	StepLimit int
}

// New builds a Machine whose global frame is root (already seeded with
// builtins by the caller) over source text source, for diagnostic
// rendering.
func New(root *Environment, source string, opts Options) *Machine {
	return &Machine{currentEnv: root, source: source, stepLimit: opts.StepLimit}
}

func (m *Machine) push(item any)    { m.control = append(m.control, item) }
func (m *Machine) pushVal(v Value)  { m.stash = append(m.stash, v) }

func (m *Machine) pop() any {
	n := len(m.control) - 1
	item := m.control[n]
	m.control = m.control[:n]
	return item
}

func (m *Machine) popVal() Value {
	n := len(m.stash) - 1
	v := m.stash[n]
	m.stash = m.stash[:n]
	return v
}

func (m *Machine) pushStmts(stmts []ast.Stmt) {
	for i := len(stmts) - 1; i >= 0; i-- {
		m.push(stmts[i])
	}
}

// Run drives file to completion and returns the final Stash top (the last
// top-level expression-statement's value), or the first runtime fault as a
// *RuntimeError, which the caller renders with its Diagnostic method.
func (m *Machine) Run(file *ast.FileInput) (Value, *RuntimeError) {
	m.pushStmts(file.Stmts)
	for len(m.control) > 0 {
		m.steps++
		if m.stepLimit > 0 && m.steps > m.stepLimit {
			return nil, &RuntimeError{Name: "StepLimitExceededError", Message: "step limit exceeded"}
		}
		item := m.pop()
		if rerr := m.step(item); rerr != nil {
			return nil, rerr
		}
	}
	if len(m.stash) == 0 {
		return Undefined{}, nil
	}
	return m.stash[len(m.stash)-1], nil
}

func (m *Machine) step(item any) *RuntimeError {
	switch it := item.(type) {
	case ast.Stmt:
		return m.stepStmt(it)
	case ast.Expr:
		return m.stepExpr(it)
	case Instruction:
		return m.stepInstr(it)
	default:
		panic(fmt.Sprintf("cse: unknown control item %T", item))
	}
}

// --- Statements --------------------------------------------------------

func (m *Machine) stepStmt(s ast.Stmt) *RuntimeError {
	switch st := s.(type) {
	case *ast.SimpleExpr:
		m.push(st.Expr)
	case *ast.Assign:
		m.push(AssignmentInstr{Name: st.Name.Lexeme})
		m.push(st.Value)
	case *ast.AnnAssign:
		m.push(AssignmentInstr{Name: st.Name.Lexeme})
		m.push(st.Value)
	case *ast.FunctionDef:
		m.currentEnv.Bind(st.Name.Lexeme, m.makeClosure(st.Name.Lexeme, st.Params, st.Body, nil, st.VarDecls, false))
	case *ast.Return:
		for len(m.control) > 0 {
			if _, ok := m.control[len(m.control)-1].(ResetInstr); ok {
				break
			}
			m.control = m.control[:len(m.control)-1]
		}
		if st.Value != nil {
			m.push(st.Value)
		} else {
			m.pushVal(Undefined{})
		}
	case *ast.If:
		m.push(BranchInstr{ConsequentStmts: st.Body, AlternateStmts: st.Else})
		m.push(st.Cond)
	case *ast.While:
		m.push(&LoopInstr{Cond: st.Cond, Body: st.Body})
		m.push(st.Cond)
	case *ast.For:
		m.push(forStartInstr{target: st.Target.Lexeme, body: st.Body, node: st})
		m.push(st.Iter)
	case *ast.Assert:
		m.push(AssertInstr{Node: st})
		m.push(st.Value)
	case *ast.Pass, *ast.Global, *ast.NonLocal, *ast.Indent, *ast.Dedent:
		// no runtime effect
	case *ast.FromImport:
		// no-op at step time: module.Preload already bound the module
		// name before Run started (spec.md §6.2).
	case *ast.Break:
		m.unwindLoop(false)
	case *ast.Continue:
		m.unwindLoop(true)
	}
	return nil
}

// forStartInstr seeds a For loop's LoopInstr once its iterable has been
// evaluated onto the Stash (only String is iterable in this sublanguage,
// per SPEC_FULL.md's resolution of the reserved While/For instruction
// kinds).
type forStartInstr struct {
	target string
	body   []ast.Stmt
	node   ast.Stmt
}

func (forStartInstr) isInstruction() {}

func (m *Machine) unwindLoop(keep bool) {
	for len(m.control) > 0 {
		if li, ok := m.control[len(m.control)-1].(*LoopInstr); ok {
			if !keep {
				m.control = m.control[:len(m.control)-1]
				return
			}
			if !li.IsFor {
				// While's Cond was discarded along with the rest of this
				// iteration's remaining body; push it back on top of li so
				// continuing re-evaluates the condition instead of letting
				// execLoop pop a stash value nothing produced this round.
				m.control = m.control[:len(m.control)-1]
				m.push(li)
				m.push(li.Cond)
			}
			return
		}
		m.control = m.control[:len(m.control)-1]
	}
}

func (m *Machine) makeClosure(name string, params []token.Token, body []ast.Stmt, expr ast.Expr, varDecls []string, isLambda bool) *Closure {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	locals := make(map[string]bool, len(varDecls))
	for _, v := range varDecls {
		locals[v] = true
	}
	return &Closure{Name: name, Params: names, Body: body, Expr: expr, Env: m.currentEnv, LocalVars: locals, IsLambda: isLambda}
}

// --- Expressions ---------------------------------------------------------

func (m *Machine) stepExpr(e ast.Expr) *RuntimeError {
	switch ex := e.(type) {
	case *ast.None:
		m.pushVal(Undefined{})
	case *ast.BoolLiteral:
		m.pushVal(Bool(ex.Value))
	case *ast.NumberLiteral:
		m.pushVal(FloatVal(ex.Value))
	case *ast.BigIntLiteral:
		b, err := numeric.ParseBigInt(ex.Lexeme)
		if err != nil {
			return &RuntimeError{Name: "RuntimeError", Message: err.Error(), Pos: ex.Start().Pos}
		}
		m.pushVal(BigIntVal{V: b})
	case *ast.Complex:
		m.pushVal(ComplexVal{V: numeric.Complex{Real: ex.Real, Imag: ex.Imag}})
	case *ast.StringLiteral:
		m.pushVal(StringVal(ex.Value))
	case *ast.Variable:
		v, err := m.currentEnv.Get(ex.Name.Lexeme)
		if err != nil {
			rerr := err.(*RuntimeError)
			rerr.Pos = ex.Name.Pos
			rerr.Width = max1(len(ex.Name.Lexeme))
			return rerr
		}
		m.pushVal(v)
	case *ast.Grouping:
		m.push(ex.Inner)
	case *ast.Unary:
		m.push(UnaryOpInstr{Op: ex.Op, Node: ex})
		m.push(ex.Operand)
	case *ast.Binary:
		m.push(BinaryOpInstr{Op: ex.Op, Node: ex})
		m.push(ex.Right)
		m.push(ex.Left)
	case *ast.Compare:
		m.push(BinaryOpInstr{Op: ex.Op, Node: ex})
		m.push(ex.Right)
		m.push(ex.Left)
	case *ast.BoolOp:
		m.push(BoolOpInstr{Op: ex.Op, Right: ex.Right})
		m.push(ex.Left)
	case *ast.Call:
		m.push(ApplicationInstr{Argc: len(ex.Args), Node: ex})
		for i := len(ex.Args) - 1; i >= 0; i-- {
			m.push(ex.Args[i])
		}
		m.push(ex.Callee)
	case *ast.Ternary:
		m.push(BranchInstr{ConsequentExpr: ex.Consequent, AlternateExpr: ex.Alternative})
		m.push(ex.Predicate)
	case *ast.Lambda:
		m.pushVal(m.makeClosure("", ex.Params, nil, ex.Body, nil, true))
	case *ast.MultiLambda:
		m.pushVal(m.makeClosure("", ex.Params, ex.Body, nil, ex.VarDecls, true))
	}
	return nil
}
