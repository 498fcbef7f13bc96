package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"trylint/internal/diag"
	"trylint/internal/source"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs, _ := guardBag(t)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})

	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count mismatch: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "LNT2001" || d.Severity != "WARNING" {
		t.Fatalf("header mismatch: %+v", d)
	}
	if d.Location.File != "lib.txt" || d.Location.StartByte != 16 || d.Location.EndByte != 46 {
		t.Fatalf("location mismatch: %+v", d.Location)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Fatalf("position mismatch: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message == "" {
		t.Fatalf("notes mismatch: %+v", d.Notes)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("fixes mismatch: %+v", d.Fixes)
	}
	fix := d.Fixes[0]
	if fix.Applicability != "always-safe" || fix.Kind != "rewrite" || !fix.IsPreferred {
		t.Fatalf("fix header mismatch: %+v", fix)
	}
	if len(fix.Edits) != 1 || fix.Edits[0].NewText != "v?;" {
		t.Fatalf("edits mismatch: %+v", fix.Edits)
	}
	if len(fix.Edits[0].BeforeLines) == 0 || len(fix.Edits[0].AfterLines) == 0 {
		t.Fatalf("previews missing: %+v", fix.Edits[0])
	}
	if fix.Edits[0].AfterLines[0] != "    v?;" {
		t.Fatalf("after preview %q", fix.Edits[0].AfterLines[0])
	}
}

func TestBuildDiagnosticsOutputMax(t *testing.T) {
	bag, fs, span := guardBag(t)
	bag.Add(diag.New(diag.SevWarning, diag.LintQuestionMark, span, "second"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("truncation failed: %+v", out)
	}
	// The bag itself is untouched.
	if bag.Len() != 2 {
		t.Fatalf("bag mutated: %d", bag.Len())
	}
}

func TestJSONEncodes(t *testing.T) {
	bag, fs, _ := guardBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludeFixes: true}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var round DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &round); err != nil {
		t.Fatalf("invalid JSON emitted: %v", err)
	}
	if round.Count != 1 {
		t.Fatalf("round trip count %d", round.Count)
	}
}

func TestTimingNotesAlwaysIncluded(t *testing.T) {
	_, fs, _ := guardBag(t)
	bag := diag.NewBag(0)
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings (lint): total 1.00 ms")
	entry.Notes = append(entry.Notes, diag.Note{Msg: `{"total_ms":1}`})
	bag.Add(entry)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: false})
	if len(out.Diagnostics) != 1 || len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("timing note dropped: %+v", out)
	}
}
