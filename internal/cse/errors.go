package cse

import (
	"fmt"

	"github.com/cwbudde/pycse/internal/ast"
	"github.com/cwbudde/pycse/internal/errors"
	"github.com/cwbudde/pycse/internal/token"
)

// RuntimeError is the CSE machine's internal fault value; the machine
// attaches position information and Run returns it to the caller, which
// renders it as an *errors.Diagnostic via Diagnostic, mirroring spec.md §4.5's
// "handleRuntimeError(context, err)" / §7 RuntimeError taxonomy
// (UnsupportedOperandType, ZeroDivision, UnboundLocal, NameError, plus
// StepLimitExceeded as this port's resolution of §9's Open Question).
type RuntimeError struct {
	Name    string
	Message string
	Pos     token.Position
	Width   int
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("%s: %s", e.Name, e.Message) }

// Diagnostic renders e as a structured three-line-snippet diagnostic
// against source (spec.md §4.6).
func (e *RuntimeError) Diagnostic(source string) *errors.Diagnostic {
	d := errors.New(errors.KindRuntime, e.Name, e.Message, e.Pos, source)
	if e.Width > 0 {
		d.CaretWidth = e.Width
	}
	return d
}

func unsupportedOperand(op string, n ast.Node, left, right Value) *RuntimeError {
	var msg string
	if right == nil {
		msg = fmt.Sprintf("unsupported operand type for %s: %s", op, left.Kind())
	} else {
		msg = fmt.Sprintf("unsupported operand type(s) for %s: %s and %s", op, left.Kind(), right.Kind())
	}
	return &RuntimeError{Name: "UnsupportedOperandTypeError", Message: msg, Pos: n.Start().Pos, Width: max1(len(n.Start().Lexeme))}
}

func zeroDivision(n ast.Node) *RuntimeError {
	return &RuntimeError{Name: "ZeroDivisionError", Message: "division by zero", Pos: n.Start().Pos, Width: max1(len(n.Start().Lexeme))}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
