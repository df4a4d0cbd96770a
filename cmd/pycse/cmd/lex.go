package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pycse/internal/errors"
	"github.com/cwbudde/pycse/internal/lexer"
	"github.com/cwbudde/pycse/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a pycse file or expression",
	Long: `Tokenize (lex) a pycse program and print the resulting tokens.

Examples:
  pycse lex script.py
  pycse lex -e "x = 1 + 2"
  pycse lex --show-pos script.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Println("---")
	}

	l := lexer.New(input)
	count := 0
	for {
		tok := l.NextToken()
		count++
		printToken(tok)
		if tok.Kind == token.ENDMARKER {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, le := range errs {
			d := errors.New(errors.KindTokenizer, le.Kind, le.Message, le.Pos, input)
			fmt.Fprintln(os.Stderr, d.Format())
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", count)
	}

	return nil
}

func printToken(tok token.Token) {
	output := fmt.Sprintf("[%-10s] %q", tok.Kind, tok.Lexeme)
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(output)
}
