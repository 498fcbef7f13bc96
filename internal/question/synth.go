package question

import (
	"fmt"

	"trylint/internal/diag"
	"trylint/internal/ir"
	"trylint/internal/source"
	"trylint/internal/types"
)

// Suggestion is the transient result of a successful match: the span to
// replace, the replacement text, and how confident the rewrite is. It is
// consumed immediately by the diagnostic layer.
type Suggestion struct {
	Span          source.Span
	Replacement   string
	Applicability diag.FixApplicability
}

// renderer builds replacement text from source snippets, downgrading the
// suggestion's applicability whenever a snippet cannot be reproduced exactly.
type renderer struct {
	files *source.FileSet
	app   diag.FixApplicability
}

func newRenderer(files *source.FileSet) *renderer {
	return &renderer{files: files, app: diag.FixApplicabilityAlwaysSafe}
}

func (r *renderer) snippet(span source.Span) string {
	return r.files.SnippetOr(span, "..", func() {
		r.app = r.app.Degrade()
	})
}

func (r *renderer) force(app diag.FixApplicability) {
	if app > r.app {
		r.app = app
	}
}

// refQualifier picks the borrow adapter a rewrite needs so the guarded value
// stays usable afterwards: none when the value is trivially copyable or was
// produced by a call anyway, as_ref/as_mut when a place is destructured by
// reference.
func refQualifier(mode ir.RefMode) string {
	switch mode {
	case ir.ByRef:
		return ".as_ref()"
	case ir.ByRefMut:
		return ".as_mut()"
	}
	return ""
}

func successCtor(family types.Family) string {
	if family == types.FamilyResult {
		return "Ok"
	}
	return "Some"
}

// synthGuardStmt renders `recv?;`, optionally reference-qualified.
func synthGuardStmt(r *renderer, span source.Span, recv source.Span, qualifier string) Suggestion {
	return Suggestion{
		Span:          span,
		Replacement:   fmt.Sprintf("%s%s?;", r.snippet(recv), qualifier),
		Applicability: r.app,
	}
}

// synthWrapExpr renders `Some(recv?)` / `Ok(recv?)`.
func synthWrapExpr(r *renderer, span source.Span, recv source.Span, family types.Family) Suggestion {
	return Suggestion{
		Span:          span,
		Replacement:   fmt.Sprintf("%s(%s?)", successCtor(family), r.snippet(recv)),
		Applicability: r.app,
	}
}

// synthScrutinee renders `scrutinee?`, qualified and optionally terminated.
func synthScrutinee(r *renderer, span source.Span, scrutinee source.Span, qualifier string, stmtPos bool) Suggestion {
	semi := ""
	if stmtPos {
		semi = ";"
	}
	return Suggestion{
		Span:          span,
		Replacement:   fmt.Sprintf("%s%s?%s", r.snippet(scrutinee), qualifier, semi),
		Applicability: r.app,
	}
}

// synthLet renders `let <binding> = <init>?;`.
func synthLet(r *renderer, span source.Span, binding source.Span, init source.Span) Suggestion {
	r.force(diag.FixApplicabilityManualReview)
	return Suggestion{
		Span:          span,
		Replacement:   fmt.Sprintf("let %s = %s?;", r.snippet(binding), r.snippet(init)),
		Applicability: r.app,
	}
}
