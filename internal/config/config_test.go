package config

import (
	"os"
	"path/filepath"
	"testing"

	"trylint/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lint]
max-diagnostics = 50
jobs = 4
question-mark-used = true

[fix]
max-applicability = "always-safe"
dry-run = true

[output]
format = "json"
color = "never"
context = 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Lint.MaxDiagnostics != 50 || cfg.Lint.Jobs != 4 || !cfg.Lint.QuestionMarkUsed {
		t.Fatalf("lint section: %+v", cfg.Lint)
	}
	app, err := cfg.Fix.Applicability()
	if err != nil || app != diag.FixApplicabilityAlwaysSafe {
		t.Fatalf("fix gate: %v %v", app, err)
	}
	if !cfg.Fix.DryRun {
		t.Fatalf("fix section: %+v", cfg.Fix)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color != "never" || cfg.Output.Context != 0 {
		t.Fatalf("output section: %+v", cfg.Output)
	}
	// Unset fields keep the defaults.
	if cfg.Output.PathMode != "auto" {
		t.Fatalf("default lost: %+v", cfg.Output)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad applicability", "[fix]\nmax-applicability = \"manual-review\"\n"},
		{"bad format", "[output]\nformat = \"xml\"\n"},
		{"bad color", "[output]\ncolor = \"sometimes\"\n"},
		{"bad path mode", "[output]\npath-mode = \"uri\"\n"},
		{"bad syntax", "[lint\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.toml)
			if _, err := Load(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[lint]\nmax-diagnostics = 7\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Discover(nested)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if path == "" {
		t.Fatal("manifest not found")
	}
	if cfg.Lint.MaxDiagnostics != 7 {
		t.Fatalf("wrong config: %+v", cfg.Lint)
	}
}

func TestDiscoverFallsBackToDefaults(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if path != "" {
		t.Fatalf("unexpected manifest %q", path)
	}
	if cfg.Lint.MaxDiagnostics != 200 || cfg.Output.Format != "pretty" {
		t.Fatalf("defaults mismatch: %+v", cfg)
	}
}
