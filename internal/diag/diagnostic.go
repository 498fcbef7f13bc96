package diag

import (
	"trylint/internal/source"
)

// Note is a secondary span/message pair attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the text covered by Span with NewText.
// OldText, when non-empty, is a guard: the fix engine refuses the edit if
// the file no longer contains exactly that text at the span.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixKind is a coarse classification of a fix.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactorRewrite
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactorRewrite:
		return "rewrite"
	}
	return "unknown"
}

// FixApplicability is the shared confidence taxonomy for suggestions.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe: definite; safe to apply unattended.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	// FixApplicabilitySafeWithHeuristics: likely correct; the replacement was
	// built from degraded inputs (e.g. a snippet that could not be reproduced
	// exactly) and deserves a glance.
	FixApplicabilitySafeWithHeuristics
	// FixApplicabilityManualReview: needs review; the rewrite may change
	// semantics (ownership transfer, inferred initializer types).
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Degrade lowers a towards ManualReview by one step, never upwards.
func (a FixApplicability) Degrade() FixApplicability {
	if a == FixApplicabilityAlwaysSafe {
		return FixApplicabilitySafeWithHeuristics
	}
	return a
}

// Fix represents a possible automated correction. Data-only; materialisation
// and application live in internal/fix.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	RequiresAll   bool
	Edits         []TextEdit
	Thunk         FixThunk
}

// FixThunk builds fix edits lazily, for producers whose edits are expensive.
type FixThunk interface {
	Build(ctx FixBuildContext) (Fix, error)
}

// FixBuildContext carries the services a thunk may need.
type FixBuildContext struct {
	FileSet *source.FileSet
}

// MaterializeFixes expands thunked fixes deterministically. Fixes without a
// thunk pass through unchanged.
func MaterializeFixes(ctx FixBuildContext, fixes []Fix) ([]Fix, error) {
	out := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		if f.Thunk == nil {
			out = append(out, f)
			continue
		}
		built, err := f.Thunk.Build(ctx)
		if err != nil {
			return nil, err
		}
		built.Thunk = nil
		if built.ID == "" {
			built.ID = f.ID
		}
		out = append(out, built)
	}
	return out, nil
}

// Diagnostic is the central record produced by every phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Kind: FixKindQuickFix, Edits: edits})
	return d
}

func (d Diagnostic) WithFixSuggestion(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}
