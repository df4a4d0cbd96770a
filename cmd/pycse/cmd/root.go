package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pycse",
	Short: "pycse interpreter",
	Long: `pycse is a Go implementation of a strict Python teaching sublanguage.

It implements the full pipeline from source text to a final value:
  - a tokenizer with significant indentation and Python numeric literals
  - a recursive-descent parser producing a typed AST
  - a two-pass static resolver enforcing name scoping
  - a Control-Stash-Environment machine evaluating the AST

This is a deliberate reimplementation for teaching purposes, not a
general-purpose Python runtime.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
