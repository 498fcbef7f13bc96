// Package config loads trylint.toml, the per-project lint configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"trylint/internal/diag"
)

// ManifestName is the file the loader walks up the tree to find.
const ManifestName = "trylint.toml"

// Lint configures the engine run.
type Lint struct {
	// MaxDiagnostics caps the merged diagnostics; <=0 means unlimited.
	MaxDiagnostics int `toml:"max-diagnostics"`
	// Jobs is the worker count; <=0 means one per CPU.
	Jobs int `toml:"jobs"`
	// QuestionMarkUsed enables the companion lint that flags `?` usage.
	QuestionMarkUsed bool `toml:"question-mark-used"`
	// Timings appends a pipeline-timing diagnostic.
	Timings bool `toml:"timings"`
}

// Fix configures automatic fix application.
type Fix struct {
	// MaxApplicability is the strongest confidence tier that may be applied
	// unattended: "always-safe" or "safe-with-heuristics". Manual-review
	// fixes can only ever be applied by explicit id.
	MaxApplicability string `toml:"max-applicability"`
	DryRun           bool   `toml:"dry-run"`
}

// Output configures diagnostic rendering.
type Output struct {
	// Format is "pretty", "short" or "json".
	Format string `toml:"format"`
	// Color is "auto", "always" or "never".
	Color string `toml:"color"`
	// Context is the number of context lines around a finding.
	Context int `toml:"context"`
	// PathMode is "auto", "absolute", "relative" or "basename".
	PathMode string `toml:"path-mode"`
}

// Config is the root of trylint.toml.
type Config struct {
	Lint   Lint   `toml:"lint"`
	Fix    Fix    `toml:"fix"`
	Output Output `toml:"output"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Lint: Lint{
			MaxDiagnostics: 200,
		},
		Fix: Fix{
			MaxApplicability: "safe-with-heuristics",
		},
		Output: Output{
			Format:   "pretty",
			Color:    "auto",
			Context:  2,
			PathMode: "auto",
		},
	}
}

// Applicability parses the fix gate into the diag taxonomy.
func (f Fix) Applicability() (diag.FixApplicability, error) {
	switch f.MaxApplicability {
	case "", "safe-with-heuristics":
		return diag.FixApplicabilitySafeWithHeuristics, nil
	case "always-safe":
		return diag.FixApplicabilityAlwaysSafe, nil
	}
	return 0, fmt.Errorf("invalid [fix].max-applicability %q: want %q or %q",
		f.MaxApplicability, "always-safe", "safe-with-heuristics")
}

func (o Output) validate() error {
	switch o.Format {
	case "", "pretty", "short", "json":
	default:
		return fmt.Errorf("invalid [output].format %q: want pretty, short or json", o.Format)
	}
	switch o.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid [output].color %q: want auto, always or never", o.Color)
	}
	switch o.PathMode {
	case "", "auto", "absolute", "relative", "basename":
	default:
		return fmt.Errorf("invalid [output].path-mode %q: want auto, absolute, relative or basename", o.PathMode)
	}
	return nil
}

// Load parses and validates the manifest at path. Unset fields keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enum-valued fields.
func (c Config) Validate() error {
	if _, err := c.Fix.Applicability(); err != nil {
		return err
	}
	return c.Output.validate()
}

// Find walks up from startDir to locate trylint.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest manifest above startDir, falling back to the
// defaults when none exists.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// String renders the effective configuration, for `trylint config`.
func (c Config) String() string {
	var sb strings.Builder
	enc := toml.NewEncoder(&sb)
	if err := enc.Encode(c); err != nil {
		return fmt.Sprintf("<unprintable config: %v>", err)
	}
	return sb.String()
}
