package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trylint/internal/diag"
	"trylint/internal/driver"
	"trylint/internal/fix"
	"trylint/internal/source"
	"trylint/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <module-artifact>",
	Short: "Apply suggested rewrites to the module's source files",
	Long:  "Lint a module artifact, then apply the suggested `?` rewrites to the source files it references, according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every fix under the confidence gate")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "stage edits without writing files")
	fixCmd.Flags().Bool("tui", false, "review fixes interactively before applying")
	fixCmd.Flags().String("max-applicability", "", "confidence gate (always-safe|safe-with-heuristics)")
}

func runFix(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	artifactPath := args[0]

	applyAll, _ := cmd.Flags().GetBool("all")
	applyOnce, _ := cmd.Flags().GetBool("once")
	targetID, _ := cmd.Flags().GetString("id")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	tui, _ := cmd.Flags().GetBool("tui")

	if targetID != "" && (applyAll || applyOnce || tui) {
		return fmt.Errorf("--id cannot be combined with --all, --once or --tui")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	if tui && (applyAll || applyOnce) {
		return fmt.Errorf("--tui picks its own selection; drop --all/--once")
	}

	if err := checkArtifactPath(artifactPath); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, artifactPath)
	if err != nil {
		return err
	}
	if v, err := cmd.Flags().GetString("max-applicability"); err == nil && v != "" {
		cfg.Fix.MaxApplicability = v
	}
	gate, err := cfg.Fix.Applicability()
	if err != nil {
		return err
	}
	dryRun = dryRun || cfg.Fix.DryRun

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := driver.LintFile(cmd.Context(), artifactPath, driverOptions(cfg))
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		diags := diag.FormatShortDiagnostics(res.Bag.Items(), res.Files, false)
		return fmt.Errorf("cannot fix, the artifact did not load:\n%s", diags)
	}

	opts := fix.ApplyOptions{
		Mode:             fix.ApplyModeOnce,
		MaxApplicability: gate,
		DryRun:           dryRun,
	}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
		opts.TargetID = targetID
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	case tui:
		accepted, err := reviewFixes(res, gate)
		if err != nil {
			return err
		}
		if len(accepted) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no fixes selected")
			return nil
		}
		opts.Mode = fix.ApplyModeID
		opts.TargetIDs = accepted
	}

	result, err := fix.Apply(res.Files, res.Bag.Items(), opts)
	if err != nil {
		reportFixResult(cmd, result, dryRun)
		return err
	}
	reportFixResult(cmd, result, dryRun)
	return nil
}

// reviewFixes runs the interactive screen and returns the accepted fix ids.
func reviewFixes(res *driver.Result, gate diag.FixApplicability) ([]string, error) {
	candidates := fix.Candidates(res.Files, res.Bag.Items())
	if len(candidates) == 0 {
		return nil, nil
	}

	items := make([]ui.FixCandidate, 0, len(candidates))
	for _, c := range candidates {
		item := ui.FixCandidate{
			Code:          c.Code.ID(),
			Message:       c.Message,
			Location:      formatLocation(res.Files, c.Primary),
			Title:         c.Title,
			Applicability: c.Applicability,
			Accepted: c.Applicability != diag.FixApplicabilityManualReview &&
				c.Applicability <= gate,
		}
		for _, edit := range c.Edits {
			if edit.OldText != "" {
				item.Before = append(item.Before, strings.Split(edit.OldText, "\n")...)
			}
			item.After = append(item.After, strings.Split(edit.NewText, "\n")...)
		}
		items = append(items, item)
	}

	result, err := ui.Review(items)
	if err != nil {
		return nil, err
	}
	if result.Aborted {
		return nil, nil
	}
	ids := make([]string, 0, len(result.Accepted))
	for _, idx := range result.Accepted {
		ids = append(ids, candidates[idx].ID)
	}
	return ids, nil
}

func formatLocation(fs *source.FileSet, span source.Span) string {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath("auto", fs.BaseDir()), start.Line, start.Col)
}

func reportFixResult(cmd *cobra.Command, result *fix.ApplyResult, dryRun bool) {
	if result == nil {
		return
	}
	out := cmd.OutOrStdout()
	for _, applied := range result.Applied {
		fmt.Fprintf(out, "applied %s: %s (%s)\n", applied.ID, applied.Title, applied.PrimaryPath)
	}
	for _, skipped := range result.Skipped {
		if skipped.ID != "" {
			fmt.Fprintf(out, "skipped %s: %s\n", skipped.ID, skipped.Reason)
		} else {
			fmt.Fprintf(out, "skipped: %s\n", skipped.Reason)
		}
	}
	for _, change := range result.FileChanges {
		if dryRun {
			fmt.Fprintf(out, "would change %s (%d edits)\n", change.Path, change.EditCount)
		} else {
			fmt.Fprintf(out, "changed %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
}
