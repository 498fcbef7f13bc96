package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"trylint/internal/config"
	"trylint/internal/diagfmt"
	"trylint/internal/driver"
)

// loadConfig discovers trylint.toml starting next to the artifact and folds
// the persistent flag overrides in.
func loadConfig(cmd *cobra.Command, artifactPath string) (config.Config, error) {
	cfg, _, err := config.Discover(filepath.Dir(artifactPath))
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Root().PersistentFlags()
	if v, err := flags.GetInt("max-diagnostics"); err == nil && v >= 0 {
		cfg.Lint.MaxDiagnostics = v
	}
	if v, err := flags.GetInt("jobs"); err == nil && v >= 0 {
		cfg.Lint.Jobs = v
	}
	if v, err := flags.GetBool("timings"); err == nil && v {
		cfg.Lint.Timings = true
	}
	if v, err := flags.GetString("color"); err == nil && v != "" {
		cfg.Output.Color = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func driverOptions(cfg config.Config) driver.Options {
	return driver.Options{
		MaxDiagnostics: cfg.Lint.MaxDiagnostics,
		Jobs:           cfg.Lint.Jobs,
		UsedLint:       cfg.Lint.QuestionMarkUsed,
		Timings:        cfg.Lint.Timings,
	}
}

func colorEnabled(cfg config.Config) bool {
	switch cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isTerminal(os.Stdout)
}

func pathMode(cfg config.Config) diagfmt.PathMode {
	switch cfg.Output.PathMode {
	case "absolute":
		return diagfmt.PathModeAbsolute
	case "relative":
		return diagfmt.PathModeRelative
	case "basename":
		return diagfmt.PathModeBasename
	}
	return diagfmt.PathModeAuto
}

func prettyOpts(cfg config.Config) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:       colorEnabled(cfg),
		Context:     cfg.Output.Context,
		PathMode:    pathMode(cfg),
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	}
}

func checkArtifactPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("artifact: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("artifact: %s is a directory, want a module artifact file", path)
	}
	return nil
}
