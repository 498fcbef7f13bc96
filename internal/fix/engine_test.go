package fix

import (
	"errors"
	"testing"

	"trylint/internal/diag"
	"trylint/internal/source"
)

func makeDiag(file source.FileID, start, end uint32, f diag.Fix) diag.Diagnostic {
	d := diag.New(diag.SevWarning, diag.LintQuestionMark,
		source.Span{File: file, Start: start, End: end},
		"this block may be rewritten with the try operator")
	return d.WithFixSuggestion(f)
}

func TestApplyAllDryRun(t *testing.T) {
	fs := source.NewFileSet()
	content := "if value.is_none() { return none; }"
	file := fs.AddVirtual("guard.txt", []byte(content))

	f := ReplaceSpan("use the try operator",
		source.Span{File: file, Start: 0, End: uint32(len(content))},
		"value?;", content)

	result, err := Apply(fs, []diag.Diagnostic{makeDiag(file, 0, uint32(len(content)), f)},
		ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %d", len(result.Applied))
	}
	if len(result.FileChanges) != 1 {
		t.Fatalf("expected 1 file change, got %d", len(result.FileChanges))
	}
	if got := string(result.FileChanges[0].NewContent); got != "value?;" {
		t.Fatalf("unexpected rewritten content: %q", got)
	}
}

func TestApplySkipsStaleGuard(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("guard.txt", []byte("something else entirely"))

	f := ReplaceSpan("use the try operator",
		source.Span{File: file, Start: 0, End: 5},
		"value?;", "if value")

	result, err := Apply(fs, []diag.Diagnostic{makeDiag(file, 0, 5, f)},
		ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("expected 1 skipped fix, got %d", len(result.Skipped))
	}
	if result.Skipped[0].Reason != "existing text does not match expected content" {
		t.Fatalf("unexpected skip reason: %q", result.Skipped[0].Reason)
	}
}

func TestApplyAllGatesOnApplicability(t *testing.T) {
	fs := source.NewFileSet()
	content := "if let some(v) = opt { v } else { return none; }"
	file := fs.AddVirtual("guard.txt", []byte(content))
	span := source.Span{File: file, Start: 0, End: uint32(len(content))}

	heuristic := ReplaceSpan("use the try operator", span, "opt?", content,
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics))

	// Default gate only admits always-safe fixes.
	_, err := Apply(fs, []diag.Diagnostic{makeDiag(file, 0, span.End, heuristic)},
		ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected heuristic fix to be gated, got %v", err)
	}

	// Raising the gate admits it.
	result, err := Apply(fs, []diag.Diagnostic{makeDiag(file, 0, span.End, heuristic)},
		ApplyOptions{Mode: ApplyModeAll, MaxApplicability: diag.FixApplicabilitySafeWithHeuristics, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %d", len(result.Applied))
	}
}

func TestApplyNeverAutoAppliesManualReview(t *testing.T) {
	fs := source.NewFileSet()
	content := "let some(v) = opt else { return none; };"
	file := fs.AddVirtual("guard.txt", []byte(content))
	span := source.Span{File: file, Start: 0, End: uint32(len(content))}

	manual := ReplaceSpan("use the try operator", span, "let v = opt?;", content,
		WithApplicability(diag.FixApplicabilityManualReview), WithID("lnt2001-manual"))

	_, err := Apply(fs, []diag.Diagnostic{makeDiag(file, 0, span.End, manual)},
		ApplyOptions{Mode: ApplyModeAll, MaxApplicability: diag.FixApplicabilityManualReview, DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("manual review fix must not auto-apply, got %v", err)
	}

	// Explicit selection by ID is the only way in.
	result, err := Apply(fs, []diag.Diagnostic{makeDiag(file, 0, span.End, manual)},
		ApplyOptions{Mode: ApplyModeID, TargetID: "lnt2001-manual", DryRun: true})
	if err != nil {
		t.Fatalf("apply by id: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %d", len(result.Applied))
	}
}

func TestApplySkipsConflictingFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := "if v.is_none() { return none; }"
	file := fs.AddVirtual("guard.txt", []byte(content))
	span := source.Span{File: file, Start: 0, End: uint32(len(content))}

	first := ReplaceSpan("use the try operator", span, "v?;", content, WithID("a"))
	second := ReplaceSpan("use the try operator", span, "v.as_ref()?;", content, WithID("b"))

	result, err := Apply(fs, []diag.Diagnostic{
		makeDiag(file, 0, span.End, first),
		makeDiag(file, 0, span.End, second),
	}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %d", len(result.Applied))
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("expected 1 skipped fix, got %d", len(result.Skipped))
	}
}

func TestApplyByIDSet(t *testing.T) {
	fs := source.NewFileSet()
	content := "if a.is_none() { return none; }\nif b.is_none() { return none; }\n"
	file := fs.AddVirtual("guards.txt", []byte(content))

	first := ReplaceSpan("use the try operator",
		source.Span{File: file, Start: 0, End: 31},
		"a?;", "if a.is_none() { return none; }", WithID("a"))
	second := ReplaceSpan("use the try operator",
		source.Span{File: file, Start: 32, End: 63},
		"b?;", "if b.is_none() { return none; }",
		WithID("b"), WithApplicability(diag.FixApplicabilityManualReview))

	result, err := Apply(fs, []diag.Diagnostic{
		makeDiag(file, 0, 31, first),
		makeDiag(file, 32, 63, second),
	}, ApplyOptions{Mode: ApplyModeID, TargetIDs: []string{"a", "b", "missing"}, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// The id set bypasses the gate, manual-review included.
	if len(result.Applied) != 2 {
		t.Fatalf("expected 2 applied fixes, got %d", len(result.Applied))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "fix id not found" {
		t.Fatalf("unexpected skips: %+v", result.Skipped)
	}
	if got := string(result.FileChanges[0].NewContent); got != "a?;\nb?;\n" {
		t.Fatalf("unexpected rewritten content: %q", got)
	}
}

func TestCandidatesListsEngineIDs(t *testing.T) {
	fs := source.NewFileSet()
	content := "if v.is_none() { return none; }"
	file := fs.AddVirtual("guard.txt", []byte(content))
	span := source.Span{File: file, Start: 0, End: uint32(len(content))}

	// No explicit id: the engine synthesises one.
	f := ReplaceSpan("use the try operator", span, "v?;", content)
	cands := Candidates(fs, []diag.Diagnostic{makeDiag(file, 0, span.End, f)})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].ID == "" {
		t.Fatal("candidate id must be synthesised")
	}

	// The synthesised id selects the fix in Apply.
	result, err := Apply(fs, []diag.Diagnostic{makeDiag(file, 0, span.End, f)},
		ApplyOptions{Mode: ApplyModeID, TargetIDs: []string{cands[0].ID}, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(result.Applied) != 1 || result.Applied[0].ID != cands[0].ID {
		t.Fatalf("id mismatch: %+v", result.Applied)
	}
}
