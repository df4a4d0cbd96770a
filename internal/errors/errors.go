// Package errors formats pycse's structured diagnostics: a three-line
// snippet (error name + line, source line, caret) plus an optional
// suggestion line, adapted from the teacher's (go-dws)
// internal/errors.CompilerError formatter and generalized to the five
// error kinds of spec.md §7.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/pycse/internal/token"
)

// Kind is the coarse error taxonomy of spec.md §7.
type Kind string

const (
	KindTokenizer Kind = "TokenizerError"
	KindParser    Kind = "ParserError"
	KindResolver  Kind = "ResolverError"
	KindRuntime   Kind = "RuntimeError"
	KindModule    Kind = "ModuleError"
)

// Diagnostic is a single structured error: a name (e.g. "ZeroDivisionError"),
// a position, the offending source, and an optional suggestion line (used
// by the resolver's "did you mean?" hint, spec.md §4.6).
type Diagnostic struct {
	Kind       Kind
	Name       string // e.g. "NameNotFoundError", "ZeroDivisionError"
	Message    string
	Pos        token.Position
	Source     string
	CaretWidth int // caret span in columns; defaults to 1
	Suggestion string
}

// New builds a Diagnostic with a single-column caret.
func New(kind Kind, name, message string, pos token.Position, source string) *Diagnostic {
	return &Diagnostic{Kind: kind, Name: name, Message: message, Pos: pos, Source: source, CaretWidth: 1}
}

// Error implements the standard error interface.
func (d *Diagnostic) Error() string { return d.Format() }

// Format renders the three-line snippet plus suggestion, per spec.md §4.6:
//
//	<Name> at line L
//	<full source line>
//	~~~^~~~
//	<message>
//	Perhaps you meant to type X?
func (d *Diagnostic) Format() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s at line %d\n", d.Name, d.Pos.Line)

	line := sourceLine(d.Source, d.Pos.Line)
	if line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(caretLine(line, d.Pos.Column, d.CaretWidth))
		sb.WriteString("\n")
	}

	sb.WriteString(d.Message)

	if d.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(d.Suggestion)
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// caretLine draws "~" for every column before the caret and "^" (repeated
// width times) at the reported column, matching spec.md §4.6's
// `~…^~…` convention. The caret sits at whatever column the caller reports;
// the CSE machine reports operand-type errors at the start of the whole
// expression, not at the operator token.
func caretLine(line string, column, width int) string {
	if column < 1 {
		column = 1
	}
	if width < 1 {
		width = 1
	}
	runes := []rune(line)
	var sb strings.Builder
	for i := 0; i < len(runes); i++ {
		if i+1 == column {
			break
		}
		sb.WriteRune('~')
	}
	sb.WriteString(strings.Repeat("^", width))
	for i := column - 1 + width; i < len(runes); i++ {
		sb.WriteRune('~')
	}
	return sb.String()
}

// Suggest formats the "Perhaps you meant to type X?" line the resolver
// attaches to NameNotFoundError (spec.md §4.3, §4.6).
func Suggest(name string) string {
	return fmt.Sprintf("Perhaps you meant to type %s?", name)
}
