package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trylint/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [directory]",
	Short: "Print the effective configuration",
	Long:  "Locate the nearest trylint.toml above the given directory (default: the working directory) and print the effective configuration after defaults.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		start := "."
		if len(args) == 1 {
			start = args[0]
		}
		cfg, path, err := config.Discover(start)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if path == "" {
			fmt.Fprintln(out, "# no trylint.toml found, using defaults")
		} else {
			fmt.Fprintf(out, "# %s\n", path)
		}
		fmt.Fprint(out, cfg.String())
		return nil
	},
}
