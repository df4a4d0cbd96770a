package parser

import (
	"strings"
	"testing"

	"github.com/cwbudde/pycse/internal/ast"
)

func parseOK(t *testing.T, src string) *ast.FileInput {
	t.Helper()
	p := New(src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3\n")
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	se, ok := prog.Stmts[0].(*ast.SimpleExpr)
	if !ok {
		t.Fatalf("expected SimpleExpr, got %T", prog.Stmts[0])
	}
	bin, ok := se.Expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level Binary (+), got %T", se.Expr)
	}
	if bin.Op.String() != "PLUS" {
		t.Fatalf("expected PLUS at top level, got %s", bin.Op)
	}
	if _, ok := bin.Right.(*ast.Binary); !ok {
		t.Fatalf("expected right operand to be the nested Binary(*), got %T", bin.Right)
	}
}

func TestUnaryIsRightRecursive(t *testing.T) {
	prog := parseOK(t, "--x\n")
	se := prog.Stmts[0].(*ast.SimpleExpr)
	outer, ok := se.Expr.(*ast.Unary)
	if !ok {
		t.Fatalf("expected outer Unary, got %T", se.Expr)
	}
	inner, ok := outer.Operand.(*ast.Unary)
	if !ok {
		t.Fatalf("expected nested Unary operand, got %T", outer.Operand)
	}
	if _, ok := inner.Operand.(*ast.Variable); !ok {
		t.Fatalf("expected innermost operand to be Variable, got %T", inner.Operand)
	}
}

func TestChainedCallsAreLeftAssociative(t *testing.T) {
	prog := parseOK(t, "f()()\n")
	se := prog.Stmts[0].(*ast.SimpleExpr)
	outer, ok := se.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected outer Call, got %T", se.Expr)
	}
	inner, ok := outer.Callee.(*ast.Call)
	if !ok {
		t.Fatalf("expected outer.Callee to itself be a Call, got %T", outer.Callee)
	}
	if _, ok := inner.Callee.(*ast.Variable); !ok {
		t.Fatalf("expected innermost callee to be Variable, got %T", inner.Callee)
	}
}

func TestChainedComparisonsNestDeliberately(t *testing.T) {
	// spec.md §9's documented, deliberate deviation: `a < b < c` nests as
	// Compare(Compare(a,<,b),<,c), not Python's short-circuited chain.
	prog := parseOK(t, "a < b < c\n")
	se := prog.Stmts[0].(*ast.SimpleExpr)
	outer, ok := se.Expr.(*ast.Compare)
	if !ok {
		t.Fatalf("expected outer Compare, got %T", se.Expr)
	}
	if _, ok := outer.Left.(*ast.Compare); !ok {
		t.Fatalf("expected outer.Left to be the nested Compare(a,<,b), got %T", outer.Left)
	}
}

func TestIfWithoutElseIsAnError(t *testing.T) {
	p := New("if True:\n    pass\n")
	p.ParseProgram()
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatal("expected NoElseBlockError")
	}
	if errs[0].Name != "NoElseBlockError" {
		t.Fatalf("expected NoElseBlockError, got %s", errs[0].Name)
	}
}

func TestIfElifElse(t *testing.T) {
	prog := parseOK(t, "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n")
	ifStmt := prog.Stmts[0].(*ast.If)
	if len(ifStmt.Else) != 1 {
		t.Fatalf("expected elif to desugar into a single nested If, got %d stmts", len(ifStmt.Else))
	}
	if _, ok := ifStmt.Else[0].(*ast.If); !ok {
		t.Fatalf("expected nested If for elif, got %T", ifStmt.Else[0])
	}
}

func TestTernary(t *testing.T) {
	prog := parseOK(t, "a if b else c\n")
	se := prog.Stmts[0].(*ast.SimpleExpr)
	tern, ok := se.Expr.(*ast.Ternary)
	if !ok {
		t.Fatalf("expected Ternary, got %T", se.Expr)
	}
	if tern.Consequent.String() != "a" || tern.Predicate.String() != "b" || tern.Alternative.String() != "c" {
		t.Fatalf("unexpected ternary parts: %s / %s / %s", tern.Consequent, tern.Predicate, tern.Alternative)
	}
}

func TestLambdaSingleExpr(t *testing.T) {
	prog := parseOK(t, "lambda x, y: x + y\n")
	se := prog.Stmts[0].(*ast.SimpleExpr)
	lam, ok := se.Expr.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected Lambda, got %T", se.Expr)
	}
	if len(lam.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(lam.Params))
	}
}

func TestFunctionDefAndReturn(t *testing.T) {
	prog := parseOK(t, "def f(n):\n    if n <= 1:\n        return n\n    else:\n        return f(n-1) + f(n-2)\n")
	fd, ok := prog.Stmts[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected FunctionDef, got %T", prog.Stmts[0])
	}
	if fd.Name.Lexeme != "f" || len(fd.Params) != 1 {
		t.Fatalf("unexpected function signature: %s(%v)", fd.Name.Lexeme, fd.Params)
	}
}

func TestFromImport(t *testing.T) {
	prog := parseOK(t, "from mymod import a, b, c\n")
	fi, ok := prog.Stmts[0].(*ast.FromImport)
	if !ok {
		t.Fatalf("expected FromImport, got %T", prog.Stmts[0])
	}
	if fi.Module.Lexeme != "mymod" || len(fi.Names) != 3 {
		t.Fatalf("unexpected import: %s %v", fi.Module.Lexeme, fi.Names)
	}
}

func TestAnnAssign(t *testing.T) {
	prog := parseOK(t, "x: int = 5\n")
	aa, ok := prog.Stmts[0].(*ast.AnnAssign)
	if !ok {
		t.Fatalf("expected AnnAssign, got %T", prog.Stmts[0])
	}
	if aa.Name.Lexeme != "x" {
		t.Fatalf("unexpected name %s", aa.Name.Lexeme)
	}
}

func TestWhileForBreakContinue(t *testing.T) {
	prog := parseOK(t, "while True:\n    break\nfor c in s:\n    continue\n")
	if _, ok := prog.Stmts[0].(*ast.While); !ok {
		t.Fatalf("expected While, got %T", prog.Stmts[0])
	}
	if _, ok := prog.Stmts[1].(*ast.For); !ok {
		t.Fatalf("expected For, got %T", prog.Stmts[1])
	}
}

func TestAssert(t *testing.T) {
	prog := parseOK(t, "assert x > 0\n")
	if _, ok := prog.Stmts[0].(*ast.Assert); !ok {
		t.Fatalf("expected Assert, got %T", prog.Stmts[0])
	}
}

func TestGlobalAndNonLocal(t *testing.T) {
	prog := parseOK(t, "global x\nnonlocal y\n")
	if _, ok := prog.Stmts[0].(*ast.Global); !ok {
		t.Fatalf("expected Global, got %T", prog.Stmts[0])
	}
	if _, ok := prog.Stmts[1].(*ast.NonLocal); !ok {
		t.Fatalf("expected NonLocal, got %T", prog.Stmts[1])
	}
}

// TestASTRangeInvariant checks spec.md §8's "every node's start token index
// is no later than its end token index" invariant across a representative
// program.
func TestASTRangeInvariant(t *testing.T) {
	prog := parseOK(t, "def f(n):\n    if n <= 1:\n        return n\n    else:\n        return f(n-1) + f(n-2)\nf(10)\n")
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		if n.Start().Pos.SourceIndex > n.End().Pos.SourceIndex {
			t.Errorf("node %T violates range invariant: start=%d end=%d",
				n, n.Start().Pos.SourceIndex, n.End().Pos.SourceIndex)
		}
	}
	for _, s := range prog.Stmts {
		walk(s)
		switch st := s.(type) {
		case *ast.FunctionDef:
			for _, b := range st.Body {
				walk(b)
			}
		case *ast.SimpleExpr:
			walk(st.Expr)
		}
	}
}

func TestParserSynchronizesAfterError(t *testing.T) {
	// A malformed statement should not prevent the rest of the file from
	// parsing (spec.md §4.2's synchronize-at-NEWLINE recovery).
	p := New(")\nx = 1\n")
	prog := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one parser error")
	}
	found := false
	for _, s := range prog.Stmts {
		if a, ok := s.(*ast.Assign); ok && a.Name.Lexeme == "x" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected parser to recover and still parse `x = 1`")
	}
}

func TestFileInputStringRendersStatements(t *testing.T) {
	prog := parseOK(t, "x = 1\ny = 2\n")
	got := prog.String()
	if !strings.Contains(got, "x = 1") || !strings.Contains(got, "y = 2") {
		t.Fatalf("unexpected rendering: %q", got)
	}
}
