package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pycse/internal/builtins"
	"github.com/cwbudde/pycse/internal/cse"
	"github.com/cwbudde/pycse/internal/module"
	"github.com/cwbudde/pycse/internal/parser"
	"github.com/cwbudde/pycse/internal/resolver"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr string
	runDumpAST  bool
	stepLimit   int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a pycse file or expression",
	Long: `Execute a pycse program from a file or inline expression, printing any
print() output followed by the string representation of the final
top-level expression's value.

Examples:
  pycse run script.py
  pycse run -e "x = 3\ny = 4\nx + y"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().IntVar(&stepLimit, "step-limit", 1_000_000, "abort with StepLimitExceededError after this many CSE steps (0 disables)")
}

func runScript(_ *cobra.Command, args []string) error {
	input, _, err := readInput(runEvalExpr, args)
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

	if runDumpAST {
		fmt.Println(program.String())
		fmt.Println()
	}

	r := resolver.New(input)
	r.Resolve(program)
	if errs := r.Errors(); len(errs) > 0 {
		for _, d := range errs {
			fmt.Fprintln(os.Stderr, d.Format())
		}
		return fmt.Errorf("resolution failed with %d error(s)", len(errs))
	}

	root := cse.NewEnvironment()
	builtins.New().Seed(root)

	// spec.md §6.2: scan the AST for every FromImport and invoke the
	// loader for each distinct module name before evaluation starts. The
	// CLI has no host conductor wiring any module bundles in, so it runs
	// an empty MapLoader — any `from M import ...` in the program fails
	// with ModuleConnectionError, matching a host with no modules loaded.
	loader := module.NewMapLoader(nil)
	if rerr := module.Preload(program.Stmts, loader, root); rerr != nil {
		fmt.Fprintln(os.Stderr, rerr.Diagnostic(input).Format())
		return fmt.Errorf("module preload failed: %s", rerr.Name)
	}

	m := cse.New(root, input, cse.Options{StepLimit: stepLimit})
	m.Output = func(s string) { fmt.Print(s) }

	result, rerr := m.Run(program)
	if rerr != nil {
		fmt.Fprintln(os.Stderr, rerr.Diagnostic(input).Format())
		return fmt.Errorf("execution failed: %s", rerr.Name)
	}

	fmt.Println(cse.FormatResult(result))
	return nil
}
