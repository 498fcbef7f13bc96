// Package diag defines the diagnostic model shared by the artifact loader and
// the lint passes.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by artifact validation and lint passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the driver or CLI can
//     materialise and optionally apply.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// whereas orchestration and application of fixes lives in internal/fix and the
// driver layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// # Fix suggestions
//
// Fix represents a possible automated correction. Each fix carries:
//
//   - Title – short label used in UI listings.
//   - Kind – coarse classification (quick fix, rewrite).
//   - Applicability – confidence level: AlwaysSafe, SafeWithHeuristics,
//     ManualReview. Lint passes pick the level from how faithfully the
//     replacement text could be derived and whether the rewrite may shift
//     semantics; the fix engine and the interactive picker gate on it.
//   - IsPreferred – optionally mark the most relevant fix when several exist.
//   - Edits – concrete text edits (Span + new/old text) to apply.
//   - Thunk – optional lazy builder used when edits are expensive to construct.
//
// Fixes are intentionally data-only. Producers can attach thunks to defer heavy
// computation; formatters and the fix engine call MaterializeFixes to expand
// them deterministically.
//
// TextEdit spans are byte offsets in source coordinates; OldText acts as an
// optional guard that the fix engine uses to validate the context before
// applying edits.
//
// # Emitting diagnostics
//
// Passes should use a diag.Reporter to decouple emission from storage, chaining
// WithNote / WithFix on a ReportBuilder before calling Emit. diag.BagReporter
// aggregates diagnostics into a Bag, which supports sorting, deduplication and
// merging across worker goroutines.
package diag
