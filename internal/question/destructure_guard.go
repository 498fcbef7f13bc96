package question

import (
	"trylint/internal/ir"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

// matchDestructureGuard recognises single-binding constructor destructures:
//
//	if let Some(x) = opt { x } else { return None }
//	if let Ok(x) = res { x } else { return res }
//	if let Err(e) = res { return Err(e) }
//
// The pattern must be exactly one bare binding; anything nested or partial
// carries intent the rewrite would erase.
func (p *Pass) matchDestructureGuard(e *ir.Expr, stmtPos bool) (Suggestion, bool) {
	bind := e.Pat.SingleBinding()
	if bind == nil {
		return Suggestion{}, false
	}
	scrut := e.Scrutinee
	if scrut == nil {
		return Suggestion{}, false
	}
	info := p.Types.Get(scrut.Ty)

	// An else arm that just yields the scrutinee back is not an early
	// return; rewriting it would change control flow.
	if e.Else != nil {
		if elseVal := peelBlocks(e.Else); elseVal != nil && p.eq()(elseVal, scrut) {
			return Suggestion{}, false
		}
	}

	ctor := e.Pat.Ctor
	switch {
	case info.Family == types.FamilyOption && ctor == ir.CtorSome:
		if e.Else == nil || !boundNameRef(e.Then.SoleContent(), bind) {
			return Suggestion{}, false
		}
		if p.resolver.Resolve(e.Else, scrut, info.Family, symbols.NoSymbolID) != VerdictFailureMarker {
			return Suggestion{}, false
		}
	case info.Family == types.FamilyResult && ctor == ir.CtorOk:
		if e.Else == nil || !boundNameRef(e.Then.SoleContent(), bind) {
			return Suggestion{}, false
		}
		if p.resolver.Resolve(e.Else, scrut, info.Family, symbols.NoSymbolID) != VerdictSameOrigin {
			return Suggestion{}, false
		}
	case info.Family == types.FamilyResult && ctor == ir.CtorErr:
		if e.Else != nil {
			return Suggestion{}, false
		}
		if p.resolver.ResolveBlock(e.Then, scrut, info.Family, bind.Sym) != VerdictFailureMarker {
			return Suggestion{}, false
		}
	default:
		return Suggestion{}, false
	}

	r := newRenderer(p.Files)
	return synthScrutinee(r, e.Span, scrut.Span, refQualifier(bind.Ref), stmtPos), true
}

// boundNameRef reports whether the expression is exactly a reference to the
// binding the pattern introduced. Guards against destructuring one value but
// yielding an unrelated one.
func boundNameRef(e *ir.Expr, bind *ir.Pat) bool {
	return e != nil && e.Kind == ir.ExprPath &&
		e.Res.Kind == ir.ResLocal && bind.Sym.IsValid() && e.Res.Local == bind.Sym
}
