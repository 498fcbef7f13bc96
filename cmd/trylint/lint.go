package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trylint/internal/diag"
	"trylint/internal/diagfmt"
	"trylint/internal/driver"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <module-artifact>",
	Short: "Lint a resolved-module artifact",
	Long:  "Load a module artifact produced by the frontend and report every guard block that may be rewritten with the `?` operator.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().String("format", "", "output format (pretty|short|json)")
	lintCmd.Flags().Bool("used", false, "also flag `?` uses (question-mark-used lint)")
	lintCmd.Flags().Bool("no-fixes", false, "hide fix suggestions in pretty output")
}

func runLint(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	artifactPath := args[0]

	if err := checkArtifactPath(artifactPath); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, artifactPath)
	if err != nil {
		return err
	}
	if v, err := cmd.Flags().GetString("format"); err == nil && v != "" {
		cfg.Output.Format = v
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if v, err := cmd.Flags().GetBool("used"); err == nil && v {
		cfg.Lint.QuestionMarkUsed = true
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := driver.LintFile(cmd.Context(), artifactPath, driverOptions(cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case "short":
		if rendered := diag.FormatShortDiagnostics(res.Bag.Items(), res.Files, false); rendered != "" {
			fmt.Fprintln(out, rendered)
		}
	case "json":
		err = diagfmt.JSON(out, res.Bag, res.Files, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode(cfg),
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  true,
		})
		if err != nil {
			return err
		}
	default:
		opts := prettyOpts(cfg)
		if v, err := cmd.Flags().GetBool("no-fixes"); err == nil && v {
			opts.ShowFixes = false
			opts.ShowPreview = false
		}
		diagfmt.Pretty(out, res.Bag, res.Files, opts)
	}

	return lintExitStatus(res)
}

// lintExitStatus makes findings visible to scripts: any warning or error in
// the bag fails the command.
func lintExitStatus(res *driver.Result) error {
	findings := 0
	for _, d := range res.Bag.Items() {
		if d.Severity >= diag.SevWarning {
			findings++
		}
	}
	if findings == 0 {
		return nil
	}
	return fmt.Errorf("%d problem(s) found", findings+res.Bag.Dropped())
}
