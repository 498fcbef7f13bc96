package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"trylint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "trylint",
	Short: "Guard-idiom linter for try-capable values",
	Long:  "trylint reads a resolved-module artifact and flags guard blocks that are exactly equivalent to the `?` operator, with automatic rewrites.",
}

// main registers subcommands and persistent flags, then executes the root
// command. A command error exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", -1, "maximum number of diagnostics to report")
	rootCmd.PersistentFlags().Int("jobs", -1, "lint workers (0 = one per CPU)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
