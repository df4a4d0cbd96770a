package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/pycse/internal/token"
)

func TestFormatRendersThreeLineSnippet(t *testing.T) {
	source := "x = 1\ny = x / 0\n"
	d := New(KindRuntime, "ZeroDivisionError", "division by zero", token.Position{Line: 2, Column: 7}, source)

	got := d.Format()
	lines := strings.Split(got, "\n")
	if len(lines) < 4 {
		t.Fatalf("expected at least 4 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "ZeroDivisionError at line 2" {
		t.Errorf("line 0: got %q", lines[0])
	}
	if lines[1] != "y = x / 0" {
		t.Errorf("line 1: got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "~~~~~~^") {
		t.Errorf("caret line: got %q", lines[2])
	}
	if lines[3] != "division by zero" {
		t.Errorf("message line: got %q", lines[3])
	}
}

func TestFormatAppendsSuggestion(t *testing.T) {
	d := New(KindResolver, "NameNotFoundError", "name 'pritn' is not defined", token.Position{Line: 1, Column: 1}, "pritn(1)")
	d.Suggestion = Suggest("print")

	got := d.Format()
	if !strings.HasSuffix(got, "Perhaps you meant to type print?") {
		t.Errorf("expected a trailing suggestion line, got %q", got)
	}
}

func TestFormatWithoutSourceSkipsSnippetLines(t *testing.T) {
	d := New(KindRuntime, "StepLimitExceededError", "step limit exceeded", token.Position{}, "")
	got := d.Format()
	if strings.Contains(got, "^") {
		t.Errorf("expected no caret line when source is empty, got %q", got)
	}
	if !strings.HasSuffix(got, "step limit exceeded") {
		t.Errorf("expected the message to follow the header, got %q", got)
	}
}

func TestCaretWidthSpansMultipleColumns(t *testing.T) {
	d := New(KindParser, "ParserError", "unexpected token", token.Position{Line: 1, Column: 3}, "1 ++ 2")
	d.CaretWidth = 2

	got := d.Format()
	lines := strings.Split(got, "\n")
	if lines[2] != "~~^^~~" {
		t.Errorf("caret line: got %q, want %q", lines[2], "~~^^~~")
	}
}

func TestErrorImplementsStandardErrorInterface(t *testing.T) {
	var err error = New(KindTokenizer, "TokenizerError", "unterminated string", token.Position{Line: 1, Column: 1}, "'abc")
	if !strings.HasPrefix(err.Error(), "TokenizerError at line 1") {
		t.Errorf("Error(): got %q", err.Error())
	}
}

func TestSuggestFormatsQuestion(t *testing.T) {
	if got := Suggest("total"); got != "Perhaps you meant to type total?" {
		t.Errorf("Suggest(total): got %q", got)
	}
}
