package ast

import (
	"fmt"
	"strings"
)

// Kind returns a short, stable tag for the node's concrete type. Nothing in
// this module calls it (the `parse --dump-ast` CLI subcommand prints the Go
// type instead), and it is never switched on for control flow — dispatch
// always uses a Go type switch.
type Kind string

func (n *None) Kind() Kind          { return "None" }
func (n *BoolLiteral) Kind() Kind   { return "BoolLiteral" }
func (n *NumberLiteral) Kind() Kind { return "NumberLiteral" }
func (n *BigIntLiteral) Kind() Kind { return "BigIntLiteral" }
func (n *Complex) Kind() Kind       { return "Complex" }
func (n *StringLiteral) Kind() Kind { return "StringLiteral" }
func (n *Variable) Kind() Kind      { return "Variable" }
func (n *Grouping) Kind() Kind      { return "Grouping" }
func (n *Unary) Kind() Kind         { return "Unary" }
func (n *Binary) Kind() Kind        { return "Binary" }
func (n *BoolOp) Kind() Kind        { return "BoolOp" }
func (n *Compare) Kind() Kind       { return "Compare" }
func (n *Call) Kind() Kind          { return "Call" }
func (n *Ternary) Kind() Kind       { return "Ternary" }
func (n *Lambda) Kind() Kind        { return "Lambda" }
func (n *MultiLambda) Kind() Kind   { return "MultiLambda" }
func (n *FileInput) Kind() Kind     { return "FileInput" }
func (n *SimpleExpr) Kind() Kind    { return "SimpleExpr" }
func (n *Assign) Kind() Kind        { return "Assign" }
func (n *AnnAssign) Kind() Kind     { return "AnnAssign" }
func (n *FunctionDef) Kind() Kind   { return "FunctionDef" }
func (n *Return) Kind() Kind        { return "Return" }
func (n *If) Kind() Kind            { return "If" }
func (n *While) Kind() Kind         { return "While" }
func (n *For) Kind() Kind           { return "For" }
func (n *Pass) Kind() Kind          { return "Pass" }
func (n *Break) Kind() Kind         { return "Break" }
func (n *Continue) Kind() Kind      { return "Continue" }
func (n *Assert) Kind() Kind        { return "Assert" }
func (n *FromImport) Kind() Kind    { return "FromImport" }
func (n *Global) Kind() Kind        { return "Global" }
func (n *NonLocal) Kind() Kind      { return "NonLocal" }
func (n *Indent) Kind() Kind        { return "Indent" }
func (n *Dedent) Kind() Kind        { return "Dedent" }

func (n *None) String() string        { return "None" }
func (n *BoolLiteral) String() string { return fmt.Sprintf("%t", n.Value) }
func (n *NumberLiteral) String() string {
	return fmt.Sprintf("%g", n.Value)
}
func (n *BigIntLiteral) String() string { return n.Lexeme }
func (n *Complex) String() string       { return fmt.Sprintf("(%g+%gj)", n.Real, n.Imag) }
func (n *StringLiteral) String() string { return fmt.Sprintf("%q", n.Value) }
func (n *Variable) String() string      { return n.Name.Lexeme }
func (n *Grouping) String() string      { return "(" + n.Inner.String() + ")" }
func (n *Unary) String() string         { return n.Op.String() + n.Operand.String() }
func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op, n.Right.String())
}
func (n *BoolOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op, n.Right.String())
}
func (n *Compare) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op, n.Right.String())
}
func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Callee.String(), strings.Join(args, ", "))
}
func (n *Ternary) String() string {
	return fmt.Sprintf("%s if %s else %s", n.Consequent.String(), n.Predicate.String(), n.Alternative.String())
}
func (n *Lambda) String() string { return "lambda: " + n.Body.String() }
func (n *MultiLambda) String() string {
	return fmt.Sprintf("lambda(%d stmts)", len(n.Body))
}
func (n *FileInput) String() string {
	parts := make([]string, len(n.Stmts))
	for i, s := range n.Stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}
func (n *SimpleExpr) String() string { return n.Expr.String() }
func (n *Assign) String() string     { return fmt.Sprintf("%s = %s", n.Name.Lexeme, n.Value.String()) }
func (n *AnnAssign) String() string {
	return fmt.Sprintf("%s: %s = %s", n.Name.Lexeme, n.Annotation.String(), n.Value.String())
}
func (n *FunctionDef) String() string { return fmt.Sprintf("def %s(...)", n.Name.Lexeme) }
func (n *Return) String() string {
	if n.Value == nil {
		return "return"
	}
	return "return " + n.Value.String()
}
func (n *If) String() string       { return fmt.Sprintf("if %s: ...", n.Cond.String()) }
func (n *While) String() string    { return fmt.Sprintf("while %s: ...", n.Cond.String()) }
func (n *For) String() string      { return fmt.Sprintf("for %s in %s: ...", n.Target.Lexeme, n.Iter.String()) }
func (n *Pass) String() string     { return "pass" }
func (n *Break) String() string    { return "break" }
func (n *Continue) String() string { return "continue" }
func (n *Assert) String() string   { return "assert " + n.Value.String() }
func (n *FromImport) String() string {
	names := make([]string, len(n.Names))
	for i, t := range n.Names {
		names[i] = t.Lexeme
	}
	return fmt.Sprintf("from %s import %s", n.Module.Lexeme, strings.Join(names, ", "))
}
func (n *Global) String() string   { return "global " + n.Name.Lexeme }
func (n *NonLocal) String() string { return "nonlocal " + n.Name.Lexeme }
func (n *Indent) String() string   { return "<INDENT>" }
func (n *Dedent) String() string   { return "<DEDENT>" }
