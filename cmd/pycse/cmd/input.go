package cmd

import (
	"fmt"
	"io"
	"os"
)

// readInput resolves the source text for a pipeline subcommand: an inline
// -e expression takes priority, then a file argument, then stdin — the same
// precedence the teacher's lex/run/parse commands use.
func readInput(evalExpr string, args []string) (input, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}
