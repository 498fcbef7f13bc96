package diag

import (
	"testing"

	"trylint/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/lib/guards.txt", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     LintQuestionMark,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevError,
			Code:     ArtDanglingRef,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
	}

	expected := "warning LNT2001 lib/guards.txt:1:1 first line second\n" +
		"error ART1004 lib/guards.txt:2:1 another\n" +
		"note LNT2001 lib/guards.txt:2:1 note line"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("a.txt", []byte("abc\n"), 0)

	bag := NewBag(2)
	bag.Add(New(SevWarning, LintQuestionMark, source.Span{File: file, Start: 2, End: 3}, "late"))
	bag.Add(New(SevWarning, LintQuestionMark, source.Span{File: file, Start: 0, End: 1}, "early"))
	bag.Add(New(SevWarning, LintQuestionMark, source.Span{File: file, Start: 1, End: 2}, "dropped"))

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if bag.Dropped() != 1 {
		t.Fatalf("expected 1 dropped, got %d", bag.Dropped())
	}

	bag.Sort()
	if bag.Items()[0].Message != "early" || bag.Items()[1].Message != "late" {
		t.Fatalf("unexpected order: %q, %q", bag.Items()[0].Message, bag.Items()[1].Message)
	}
}

func TestBagDedup(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("a.txt", []byte("abc\n"), 0)
	span := source.Span{File: file, Start: 0, End: 1}

	bag := NewBag(0)
	bag.Add(New(SevWarning, LintQuestionMark, span, "same"))
	bag.Add(New(SevWarning, LintQuestionMark, span, "same"))
	bag.Add(New(SevWarning, LintQuestionMark, span, "other"))

	bag.Sort()
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 after dedup, got %d", bag.Len())
	}
}

func TestBagMerge(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("a.txt", []byte("abc\n"), 0)

	left := NewBag(0)
	left.Add(New(SevError, ArtCorruptPayload, source.Span{File: file}, "bad payload"))

	right := NewBag(0)
	right.Add(New(SevWarning, LintQuestionMark, source.Span{File: file}, "guard"))

	left.Merge(right)
	if left.Len() != 2 {
		t.Fatalf("expected 2 after merge, got %d", left.Len())
	}
	if !left.HasErrors() {
		t.Fatal("expected merged bag to report errors")
	}
}

type stubThunk struct {
	fix Fix
}

func (s stubThunk) Build(FixBuildContext) (Fix, error) { return s.fix, nil }

func TestMaterializeFixes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("a.txt", []byte("value.is_none()"), 0)

	edit := TextEdit{
		Span:    source.Span{File: file, Start: 0, End: 15},
		NewText: "value?;",
		OldText: "value.is_none()",
	}
	fixes := []Fix{
		{ID: "eager", Title: "replace guard", Edits: []TextEdit{edit}},
		{ID: "lazy", Thunk: stubThunk{fix: Fix{Title: "built", Edits: []TextEdit{edit}}}},
	}

	out, err := MaterializeFixes(FixBuildContext{FileSet: fs}, fixes)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 fixes, got %d", len(out))
	}
	if out[1].ID != "lazy" || out[1].Title != "built" || out[1].Thunk != nil {
		t.Fatalf("thunk not expanded correctly: %+v", out[1])
	}
}

func TestApplicabilityDegrade(t *testing.T) {
	if got := FixApplicabilityAlwaysSafe.Degrade(); got != FixApplicabilitySafeWithHeuristics {
		t.Fatalf("expected degrade to heuristics, got %v", got)
	}
	if got := FixApplicabilityManualReview.Degrade(); got != FixApplicabilityManualReview {
		t.Fatalf("manual review must not change, got %v", got)
	}
}
