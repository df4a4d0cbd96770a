// Package ast defines the typed Abstract Syntax Tree node types produced by
// the parser and consumed by the resolver and the CSE machine (spec.md §3).
//
// Each node is an immutable Go struct implementing either Expr or Stmt.
// Dispatch throughout the rest of the interpreter is done with a plain type
// switch on the concrete struct, not with a virtual accept()/visitor method
// pair — matching the teacher's (go-dws) `ast.Node` + concrete-struct
// convention, and pyscn's NodeType-per-struct convention from the reference
// corpus, adapted here as a `Kind()` method used only for diagnostics and
// tracing, never for control flow.
package ast

import "github.com/cwbudde/pycse/internal/token"

// Node is the interface common to every expression and statement: every
// node carries its start and end token for diagnostics (spec.md §3's range
// invariant).
type Node interface {
	Start() token.Token
	End() token.Token
	String() string
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Span is embedded by every node to satisfy Node without repeating the two
// fields and their accessors everywhere.
type Span struct {
	StartTok token.Token
	EndTok   token.Token
}

func (s Span) Start() token.Token { return s.StartTok }
func (s Span) End() token.Token   { return s.EndTok }

// NewSpan builds the embeddable (start, end) pair.
func NewSpan(start, end token.Token) Span { return Span{StartTok: start, EndTok: end} }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// None is the `None` literal.
type None struct{ Span }

func (*None) exprNode() {}

// BoolLiteral is `True` or `False`.
type BoolLiteral struct {
	Span
	Value bool
}

func (*BoolLiteral) exprNode() {}

// NumberLiteral is a float literal (NUMBER token).
type NumberLiteral struct {
	Span
	Value float64
}

func (*NumberLiteral) exprNode() {}

// BigIntLiteral is an arbitrary-precision integer literal; Lexeme is kept
// (not a parsed value) so the CSE machine can parse 0x/0o/0b prefixes at
// evaluation time per spec.md §4.5.
type BigIntLiteral struct {
	Span
	Lexeme string
}

func (*BigIntLiteral) exprNode() {}

// Complex is a `Nj` or `N.Mj` literal; Real is always 0 for a bare `Nj`.
type Complex struct {
	Span
	Real float64
	Imag float64
}

func (*Complex) exprNode() {}

// StringLiteral is a decoded (escapes already resolved) string literal.
type StringLiteral struct {
	Span
	Value string
}

func (*StringLiteral) exprNode() {}

// Variable is a bare name reference.
type Variable struct {
	Span
	Name token.Token
}

func (*Variable) exprNode() {}

// Grouping is a parenthesized expression, kept as its own node so
// diagnostics can point at the parentheses rather than the inner expression.
type Grouping struct {
	Span
	Inner Expr
}

func (*Grouping) exprNode() {}

// Unary is `-x`, `+x`, or `not x`.
type Unary struct {
	Span
	Op      token.Kind
	Operand Expr
}

func (*Unary) exprNode() {}

// Binary is an arithmetic or comparison-adjacent binary expression
// (+ - * / // % **); comparisons use Compare instead.
type Binary struct {
	Span
	Left  Expr
	Op    token.Kind
	Right Expr
}

func (*Binary) exprNode() {}

// BoolOp is `and`/`or`.
type BoolOp struct {
	Span
	Left  Expr
	Op    token.Kind
	Right Expr
}

func (*BoolOp) exprNode() {}

// Compare is a single comparison operator application. Chained comparisons
// (`a < b < c`) parse as nested Compare nodes — see spec.md §9's Open
// Question; this is a deliberate, documented deviation from true Python
// chained-comparison short-circuiting, not a bug.
type Compare struct {
	Span
	Left  Expr
	Op    token.Kind
	Right Expr
}

func (*Compare) exprNode() {}

// Call is a function application; chained calls (`f()()`) are represented
// as nested Call nodes with the outer Call's Callee being the inner Call.
type Call struct {
	Span
	Callee Expr
	Args   []Expr
}

func (*Call) exprNode() {}

// Ternary is `consequent if predicate else alternative`.
type Ternary struct {
	Span
	Predicate   Expr
	Consequent  Expr
	Alternative Expr
}

func (*Ternary) exprNode() {}

// Lambda is a single-expression anonymous function.
type Lambda struct {
	Span
	Params []token.Token
	Body   Expr
}

func (*Lambda) exprNode() {}

// MultiLambda is a statement-bodied anonymous function (a pycse extension
// beyond single-expression Python lambdas, parsed the same way a FunctionDef
// body is).
type MultiLambda struct {
	Span
	Params   []token.Token
	Body     []Stmt
	VarDecls []string
}

func (*MultiLambda) exprNode() {}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// FileInput is the root node of a parsed program or chunk.
type FileInput struct {
	Span
	Stmts    []Stmt
	VarDecls []string
}

func (*FileInput) stmtNode() {}

// SimpleExpr is an expression used as a statement (its value is discarded,
// except at top level where the final expression's stash value is the
// program's result).
type SimpleExpr struct {
	Span
	Expr Expr
}

func (*SimpleExpr) stmtNode() {}

// Assign is `name = value`.
type Assign struct {
	Span
	Name  token.Token
	Value Expr
}

func (*Assign) stmtNode() {}

// AnnAssign is `name: annotation = value`. The annotation is parsed but not
// enforced at runtime (this sublanguage has no static type system beyond
// the annotation's own well-formedness as an expression).
type AnnAssign struct {
	Span
	Name       token.Token
	Annotation Expr
	Value      Expr
}

func (*AnnAssign) stmtNode() {}

// FunctionDef is `def name(params): body`.
type FunctionDef struct {
	Span
	Name     token.Token
	Params   []token.Token
	Body     []Stmt
	VarDecls []string
}

func (*FunctionDef) stmtNode() {}

// Return is `return [value]`.
type Return struct {
	Span
	Value Expr // nil if bare `return`
}

func (*Return) stmtNode() {}

// If is `if cond: body else: elseBody` (an `if` without `else`/`elif` is a
// parse error — spec.md §4.2 — so Else is never nil after a successful parse).
type If struct {
	Span
	Cond Expr
	Body []Stmt
	Else []Stmt
}

func (*If) stmtNode() {}

// While is `while cond: body`.
type While struct {
	Span
	Cond Expr
	Body []Stmt
}

func (*While) stmtNode() {}

// For is `for target in iter: body`.
type For struct {
	Span
	Target token.Token
	Iter   Expr
	Body   []Stmt
}

func (*For) stmtNode() {}

// Pass is `pass`.
type Pass struct{ Span }

func (*Pass) stmtNode() {}

// Break is `break`.
type Break struct{ Span }

func (*Break) stmtNode() {}

// Continue is `continue`.
type Continue struct{ Span }

func (*Continue) stmtNode() {}

// Assert is `assert value`.
type Assert struct {
	Span
	Value Expr
}

func (*Assert) stmtNode() {}

// FromImport is `from module import names...`.
type FromImport struct {
	Span
	Module token.Token
	Names  []token.Token
}

func (*FromImport) stmtNode() {}

// Global is `global name`.
type Global struct {
	Span
	Name token.Token
}

func (*Global) stmtNode() {}

// NonLocal is `nonlocal name`.
type NonLocal struct {
	Span
	Name token.Token
}

func (*NonLocal) stmtNode() {}

// Indent and Dedent mark block boundaries explicitly in the statement list
// of a block-bearing construct whose parser chooses to retain them (most
// parses fold these into Body slices instead; reserved for diagnostics that
// want to walk raw layout structure).
type Indent struct{ Span }

func (*Indent) stmtNode() {}

type Dedent struct{ Span }

func (*Dedent) stmtNode() {}
