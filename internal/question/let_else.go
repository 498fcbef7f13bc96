package question

import (
	"trylint/internal/ir"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

// matchDivergentLet recognises `let Some(x) = init else { return None };`.
//
// This is the weakest-evidence shape: the rewrite relies on the initializer's
// inferred type, so the suggestion always lands at manual-review confidence.
func (p *Pass) matchDivergentLet(s *ir.Stmt) (Suggestion, bool) {
	if s.Kind != ir.StmtLet || s.Init == nil || s.ElseBlock == nil {
		return Suggestion{}, false
	}
	// An explicit annotation names the unwrapped-away type; the rewrite
	// would leave it wrong.
	if s.Annotated {
		return Suggestion{}, false
	}

	info := p.Types.Get(s.Init.Ty)
	// The adjusted type itself must support propagation. A borrowed
	// optional still reports the option family, but the capability lives
	// on the owned type, not the reference.
	if !info.Try || info.Family != types.FamilyOption {
		return Suggestion{}, false
	}

	if s.Pat == nil || s.Pat.Kind != ir.PatCtor || s.Pat.Ctor != ir.CtorSome ||
		len(s.Pat.Args) != 1 {
		return Suggestion{}, false
	}
	// Any irrefutable inner pattern survives the rewrite verbatim: the `?`
	// unwraps Some and the let destructures the rest.
	inner := s.Pat.Args[0]
	if !inner.Irrefutable() {
		return Suggestion{}, false
	}

	sole := s.ElseBlock.SoleContent()
	if sole == nil || sole.Kind != ir.ExprReturn {
		return Suggestion{}, false
	}
	if p.resolver.Resolve(sole, nil, info.Family, symbols.NoSymbolID) != VerdictFailureMarker {
		return Suggestion{}, false
	}

	// A comment in the fallback would be silently discarded by the
	// rewrite; losing it is a correctness problem, not a style one.
	if p.Files.ContainsComment(s.ElseBlock.Span) {
		return Suggestion{}, false
	}

	r := newRenderer(p.Files)
	return synthLet(r, s.Span, inner.Span, s.Init.Span), true
}
