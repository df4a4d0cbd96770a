package cse

import (
	"github.com/cwbudde/pycse/internal/ast"
	"github.com/cwbudde/pycse/internal/token"
)

// Instruction is a pending post-evaluation step on the Control stack,
// distinct from an AST node (spec.md §3, §4.5).
type Instruction interface{ isInstruction() }

// UnaryOpInstr applies a unary operator to the single value the preceding
// operand pushed onto the Stash.
type UnaryOpInstr struct {
	Op   token.Kind
	Node ast.Expr
}

func (UnaryOpInstr) isInstruction() {}

// BinaryOpInstr applies a binary arithmetic or comparison operator to the
// two values the preceding operands pushed (right popped before left).
type BinaryOpInstr struct {
	Op   token.Kind
	Node ast.Expr
}

func (BinaryOpInstr) isInstruction() {}

// BoolOpInstr implements short-circuit `and`/`or` (spec.md §9 Open
// Question, resolved in SPEC_FULL.md in favor of true short-circuiting):
// it pops only the left operand; if the left's truthiness already decides
// the result it is pushed back without evaluating Right at all, otherwise
// Right is pushed to be evaluated next.
type BoolOpInstr struct {
	Op    token.Kind
	Right ast.Expr
}

func (BoolOpInstr) isInstruction() {}

// AssignmentInstr binds the single popped value under Name in the current
// frame.
type AssignmentInstr struct {
	Name string
}

func (AssignmentInstr) isInstruction() {}

// ApplicationInstr pops Argc values (original order) then the callee, and
// dispatches per spec.md §4.5's four callable kinds.
type ApplicationInstr struct {
	Argc int
	Node ast.Expr
}

func (ApplicationInstr) isInstruction() {}

// ResetInstr marks the boundary of a call frame; Return unwinds the
// Control stack to it (leaving it in place) before pushing its result
// expression. Executing it makes Env, the caller's frame, current again.
type ResetInstr struct {
	Env *Environment
}

func (ResetInstr) isInstruction() {}

// EndOfFunctionBodyInstr is reached when a function body completes without
// an explicit Return; it pushes Undefined onto the Stash.
type EndOfFunctionBodyInstr struct{}

func (EndOfFunctionBodyInstr) isInstruction() {}

// BranchInstr pops the condition value the preceding push evaluated and
// selects consequent or alternate (spec.md §4.5: If and Ternary share this
// instruction).
type BranchInstr struct {
	ConsequentStmts []ast.Stmt
	AlternateStmts  []ast.Stmt
	ConsequentExpr  ast.Expr
	AlternateExpr   ast.Expr
}

func (BranchInstr) isInstruction() {}

// PopInstr discards the Stash top (used to drop the value of a statement
// expression that isn't the program's result, e.g. an assert's operand is
// consumed by AssertInstr instead, but Pop is kept as the general-purpose
// discard spec.md §3 names).
type PopInstr struct{}

func (PopInstr) isInstruction() {}

// AssertInstr pops the asserted value; if falsy it raises AssertionError.
type AssertInstr struct {
	Node ast.Stmt
}

func (AssertInstr) isInstruction() {}

// LoopInstr drives While and For (spec.md §4.5's Instruction enum reserves
// While/For as future kinds; this port gives them real control-stack
// semantics — see SPEC_FULL.md). Popping it re-checks Cond (While) or pulls
// the next character of Chars (For); Break discards it, Continue leaves it
// in place so the next pop re-enters the loop.
type LoopInstr struct {
	IsFor  bool
	Cond   ast.Expr // While only
	Body   []ast.Stmt
	Target string   // For only: the loop variable name
	Chars  []rune   // For only: the whole string being iterated
	Index  int      // For only: next index into Chars
}

func (*LoopInstr) isInstruction() {}
