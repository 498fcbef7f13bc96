package question

import "trylint/internal/ir"

// ExprEq decides whether two expressions denote the same value. The default
// is structural equality over the resolved tree; hosts with richer semantic
// models may plug in their own.
type ExprEq func(a, b *ir.Expr) bool

// StructuralEq compares expressions node by node. Resolved references compare
// by resolution, not by spelling, so aliased names still match.
func StructuralEq(a, b *ir.Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ir.ExprLit:
		return a.Lit == b.Lit
	case ir.ExprPath:
		return a.Res == b.Res && (a.Res.Kind != ir.ResOther || a.Name == b.Name)
	case ir.ExprCall:
		return StructuralEq(a.Callee, b.Callee) && eqExprs(a.Args, b.Args)
	case ir.ExprMethodCall:
		return a.Method == b.Method && StructuralEq(a.Recv, b.Recv) && eqExprs(a.Args, b.Args)
	case ir.ExprField:
		return a.Name == b.Name && StructuralEq(a.Recv, b.Recv)
	case ir.ExprRef:
		return a.Mutable == b.Mutable && StructuralEq(a.Recv, b.Recv)
	case ir.ExprDeref, ir.ExprTry:
		return StructuralEq(a.Recv, b.Recv)
	}
	// Control flow and opaque expressions never compare equal: missing
	// structure means equality cannot be proven.
	return false
}

func eqExprs(a, b []*ir.Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !StructuralEq(a[i], b[i]) {
			return false
		}
	}
	return true
}
