package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pycse/internal/parser"
	"github.com/cwbudde/pycse/internal/resolver"
	"github.com/spf13/cobra"
)

var resolveEvalExpr string

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Run the static resolver and print diagnostics only",
	Long: `Parse pycse source and run the two-pass name resolver, printing every
NameNotFoundError/NameReassignmentError diagnostic without evaluating the
program.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveEvalExpr, "eval", "e", "", "resolve inline code instead of reading from file")
}

func runResolve(_ *cobra.Command, args []string) error {
	input, _, err := readInput(resolveEvalExpr, args)
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

	r := resolver.New(input)
	r.Resolve(program)
	if errs := r.Errors(); len(errs) > 0 {
		for _, d := range errs {
			fmt.Fprintln(os.Stderr, d.Format())
		}
		return fmt.Errorf("resolution failed with %d error(s)", len(errs))
	}

	fmt.Println("ok")
	return nil
}
