package question

import (
	"trylint/internal/ir"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

// Verdict classifies what a guard branch ultimately produces.
type Verdict uint8

const (
	// VerdictNone: neither of the interesting outcomes.
	VerdictNone Verdict = iota
	// VerdictFailureMarker: the canonical empty/failure value of the
	// guarded family.
	VerdictFailureMarker
	// VerdictSameOrigin: a reference back to the very value the guard
	// inspected.
	VerdictSameOrigin
)

func (v Verdict) String() string {
	switch v {
	case VerdictFailureMarker:
		return "failure-marker"
	case VerdictSameOrigin:
		return "same-origin"
	}
	return "none"
}

// Guard branches nest blocks and returns only as deep as the source nests
// braces; anything past this depth is not a guard worth rewriting.
const maxPeelDepth = 64

// Resolver follows return statements and block tails down to the terminal
// expression of a branch and classifies it against the guarded value.
type Resolver struct {
	Eq ExprEq
}

// Resolve peels candidate down to its terminal expression, then classifies
// it. origin is the value the guard inspected. For the result family the
// failure marker must carry the guard's bound payload, identified by
// payload; pass symbols.NoSymbolID when the guard binds none.
func (r *Resolver) Resolve(candidate, origin *ir.Expr, family types.Family, payload symbols.SymbolID) Verdict {
	candidate = peel(candidate)
	if candidate == nil {
		return VerdictNone
	}

	if isFailureMarker(candidate, family, payload) {
		return VerdictFailureMarker
	}
	if family == types.FamilyResult && r.sameOrigin(candidate, origin) {
		return VerdictSameOrigin
	}
	return VerdictNone
}

// ResolvesToOrigin reports whether candidate peels down to the origin value,
// regardless of family. Used for else-branch equality checks.
func (r *Resolver) ResolvesToOrigin(candidate, origin *ir.Expr) bool {
	return r.sameOrigin(peel(candidate), origin)
}

// ResolveBlock resolves a branch given as a block: the block must reduce to a
// single interesting expression, which is then classified like Resolve does.
func (r *Resolver) ResolveBlock(b *ir.Block, origin *ir.Expr, family types.Family, payload symbols.SymbolID) Verdict {
	if b == nil {
		return VerdictNone
	}
	return r.Resolve(b.SoleContent(), origin, family, payload)
}

// peelBlocks strips wrapping block expressions without unwrapping returns.
// Used where a branch's own value matters, not what it returns.
func peelBlocks(e *ir.Expr) *ir.Expr {
	for depth := 0; e != nil && depth < maxPeelDepth; depth++ {
		if e.Kind != ir.ExprBlock || e.Const {
			return e
		}
		sole := e.Body.SoleContent()
		if sole == nil {
			return nil
		}
		e = sole
	}
	return nil
}

// peel unwraps `return expr` layers and single-content blocks one step at a
// time until a terminal expression remains.
func peel(e *ir.Expr) *ir.Expr {
	for depth := 0; e != nil && depth < maxPeelDepth; depth++ {
		switch {
		case e.Kind == ir.ExprReturn:
			e = e.Recv
		case e.Kind == ir.ExprBlock && !e.Const:
			sole := e.Body.SoleContent()
			if sole == nil {
				return nil
			}
			e = sole
		default:
			return e
		}
	}
	return nil
}

func isFailureMarker(e *ir.Expr, family types.Family, payload symbols.SymbolID) bool {
	switch family {
	case types.FamilyOption:
		return e.Kind == ir.ExprPath && e.Res.Kind == ir.ResCtor && e.Res.Ctor == ir.CtorNone
	case types.FamilyResult:
		// The marker alone is not enough: the failure payload must be the
		// one the guard bound, not a look-alike.
		if !payload.IsValid() {
			return false
		}
		if e.Kind != ir.ExprCall || len(e.Args) != 1 {
			return false
		}
		callee := e.Callee
		if callee == nil || callee.Kind != ir.ExprPath ||
			callee.Res.Kind != ir.ResCtor || callee.Res.Ctor != ir.CtorErr {
			return false
		}
		arg := e.Args[0]
		return arg != nil && arg.Kind == ir.ExprPath &&
			arg.Res.Kind == ir.ResLocal && arg.Res.Local == payload
	}
	return false
}

// sameOrigin proves candidate is the value origin denotes. Two locals match
// only when they resolve to the same binding; richer place expressions fall
// back to the pluggable equality, and only when re-evaluating them is safe.
func (r *Resolver) sameOrigin(candidate, origin *ir.Expr) bool {
	if candidate == nil || origin == nil {
		return false
	}
	if candidate.Kind == ir.ExprPath && origin.Kind == ir.ExprPath {
		return candidate.Res.SameLocal(origin.Res)
	}
	if !candidate.IsPlace() || !origin.IsPlace() {
		return false
	}
	eq := r.Eq
	if eq == nil {
		eq = StructuralEq
	}
	return eq(candidate, origin)
}
