package question

import (
	"testing"

	"trylint/internal/ir"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

func local(sym symbols.SymbolID, name string) *ir.Expr {
	return &ir.Expr{Kind: ir.ExprPath, Name: name, Res: ir.Res{Kind: ir.ResLocal, Local: sym}}
}

func nonePath() *ir.Expr {
	return &ir.Expr{Kind: ir.ExprPath, Name: "None", Res: ir.Res{Kind: ir.ResCtor, Ctor: ir.CtorNone}}
}

func errCall(arg *ir.Expr) *ir.Expr {
	return &ir.Expr{
		Kind:   ir.ExprCall,
		Callee: &ir.Expr{Kind: ir.ExprPath, Name: "Err", Res: ir.Res{Kind: ir.ResCtor, Ctor: ir.CtorErr}},
		Args:   []*ir.Expr{arg},
	}
}

func ret(value *ir.Expr) *ir.Expr {
	return &ir.Expr{Kind: ir.ExprReturn, Recv: value}
}

func blockOf(tail *ir.Expr) *ir.Expr {
	return &ir.Expr{Kind: ir.ExprBlock, Body: &ir.Block{Tail: tail}}
}

func TestResolveUnwrapsReturnsAndBlocks(t *testing.T) {
	r := &Resolver{}

	// { return { return None } } resolves to the failure marker.
	candidate := blockOf(ret(blockOf(ret(nonePath()))))
	if got := r.Resolve(candidate, nil, types.FamilyOption, symbols.NoSymbolID); got != VerdictFailureMarker {
		t.Fatalf("expected failure marker, got %v", got)
	}
}

func TestResolveSameOriginIsIdentityNotSpelling(t *testing.T) {
	r := &Resolver{}
	v := symbols.SymbolID(1)
	w := symbols.SymbolID(2)

	if got := r.Resolve(ret(local(v, "v")), local(v, "v"), types.FamilyResult, symbols.NoSymbolID); got != VerdictSameOrigin {
		t.Fatalf("same binding must be same origin, got %v", got)
	}
	// Same spelling, different binding: shadowed names must not match.
	if got := r.Resolve(ret(local(w, "v")), local(v, "v"), types.FamilyResult, symbols.NoSymbolID); got != VerdictNone {
		t.Fatalf("distinct bindings must not be same origin, got %v", got)
	}
}

func TestResolveResultMarkerNeedsPayloadIdentity(t *testing.T) {
	r := &Resolver{}
	e := symbols.SymbolID(3)
	other := symbols.SymbolID(4)

	if got := r.Resolve(ret(errCall(local(e, "e"))), nil, types.FamilyResult, e); got != VerdictFailureMarker {
		t.Fatalf("matching payload must be the failure marker, got %v", got)
	}
	if got := r.Resolve(ret(errCall(local(other, "other"))), nil, types.FamilyResult, e); got != VerdictNone {
		t.Fatalf("wrong payload must not be the failure marker, got %v", got)
	}
	// Without a bound payload the result marker is never accepted.
	if got := r.Resolve(ret(errCall(local(e, "e"))), nil, types.FamilyResult, symbols.NoSymbolID); got != VerdictNone {
		t.Fatalf("payload-free result marker must be rejected, got %v", got)
	}
}

func TestResolveDepthGuard(t *testing.T) {
	r := &Resolver{}
	deep := nonePath()
	for i := 0; i < maxPeelDepth+1; i++ {
		deep = ret(deep)
	}
	if got := r.Resolve(deep, nil, types.FamilyOption, symbols.NoSymbolID); got != VerdictNone {
		t.Fatalf("over-deep nesting must resolve to none, got %v", got)
	}
}

func TestResolveFallsBackToStructuralEqForPlaces(t *testing.T) {
	r := &Resolver{}
	self := local(symbols.SymbolID(5), "self")
	fieldA := &ir.Expr{Kind: ir.ExprField, Name: "val", Recv: self}
	fieldB := &ir.Expr{Kind: ir.ExprField, Name: "val", Recv: self}
	fieldC := &ir.Expr{Kind: ir.ExprField, Name: "other", Recv: self}

	if got := r.Resolve(ret(fieldA), fieldB, types.FamilyResult, symbols.NoSymbolID); got != VerdictSameOrigin {
		t.Fatalf("equal field chains must be same origin, got %v", got)
	}
	if got := r.Resolve(ret(fieldA), fieldC, types.FamilyResult, symbols.NoSymbolID); got != VerdictNone {
		t.Fatalf("different fields must not be same origin, got %v", got)
	}
}
