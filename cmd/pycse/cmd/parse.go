package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pycse/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	parseDumpAST  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse pycse source and display the AST",
	Long: `Parse pycse source code and display the Abstract Syntax Tree.

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump one line per node instead of the source-like rendering")
}

func runParse(_ *cobra.Command, args []string) error {
	input, _, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	p := parser.New(input)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, d := range errs {
			fmt.Fprintln(os.Stderr, d.Format())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if parseDumpAST {
		for _, s := range program.Stmts {
			fmt.Printf("%T: %s\n", s, s.String())
		}
		return nil
	}

	fmt.Println(program.String())
	return nil
}
