package question

import (
	"trylint/internal/diag"
	"trylint/internal/ir"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

// Canonical predicate names the frontend guarantees for the two families.
const (
	predIsNone = "is_none"
	predIsErr  = "is_err"
)

// matchMethodGuard recognises `if recv.is_none() { return None }` and
// `if recv.is_err() { return recv }`, plus the else-carrying variant
// `if recv.is_none() { return None } else { recv-equal }` which rewrites to a
// success-wrapped propagation.
func (p *Pass) matchMethodGuard(e *ir.Expr) (Suggestion, bool) {
	cond := e.Cond
	if cond == nil || cond.Kind != ir.ExprMethodCall || len(cond.Args) != 0 {
		return Suggestion{}, false
	}
	recv := cond.Recv
	if recv == nil {
		return Suggestion{}, false
	}
	info := p.Types.Get(recv.Ty)

	switch info.Family {
	case types.FamilyOption:
		if cond.Method != predIsNone {
			return Suggestion{}, false
		}
		if p.resolver.ResolveBlock(e.Then, recv, info.Family, symbols.NoSymbolID) != VerdictFailureMarker {
			return Suggestion{}, false
		}
	case types.FamilyResult:
		if cond.Method != predIsErr {
			return Suggestion{}, false
		}
		if p.resolver.ResolveBlock(e.Then, recv, info.Family, symbols.NoSymbolID) != VerdictSameOrigin {
			return Suggestion{}, false
		}
	default:
		return Suggestion{}, false
	}

	r := newRenderer(p.Files)

	if e.Else != nil {
		// Only a value provably equal to the receiver allows the
		// wrap-in-success rewrite; anything else is ambiguous intent.
		elseVal := peelBlocks(e.Else)
		if elseVal == nil || !p.eq()(elseVal, recv) {
			return Suggestion{}, false
		}
		return synthWrapExpr(r, e.Span, recv.Span, info.Family), true
	}

	qualifier := ""
	if !info.Copyable && recv.IsPlace() {
		// The rewrite now borrows a value the guard consumed by value.
		qualifier = ".as_ref()"
		r.force(diag.FixApplicabilityManualReview)
	}
	return synthGuardStmt(r, e.Span, recv.Span, qualifier), true
}
