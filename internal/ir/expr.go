package ir

import (
	"trylint/internal/source"
	"trylint/internal/types"
)

// ExprKind enumerates the expression shapes preserved by the artifact.
type ExprKind uint8

const (
	// ExprLit represents literals; Lit carries the source text.
	ExprLit ExprKind = iota
	// ExprPath represents a resolved name reference.
	ExprPath
	// ExprCall represents a call with a callee expression.
	ExprCall
	// ExprMethodCall represents a method call on a receiver.
	ExprMethodCall
	// ExprField represents field access (recv.name).
	ExprField
	// ExprRef represents a borrow (&x or &mut x).
	ExprRef
	// ExprDeref represents a pointer/reference dereference (*x).
	ExprDeref
	// ExprIf represents a conditional with block arms.
	ExprIf
	// ExprIfLet represents a conditional destructuring binding.
	ExprIfLet
	// ExprBlock represents a block expression, possibly const.
	ExprBlock
	// ExprReturn represents an early return with optional value.
	ExprReturn
	// ExprTry represents the short-circuit propagation operator.
	ExprTry
	// ExprOpaque represents anything else. Children holds nested
	// expressions so traversal still reaches guards inside loops,
	// match arms and closures.
	ExprOpaque
)

func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "Lit"
	case ExprPath:
		return "Path"
	case ExprCall:
		return "Call"
	case ExprMethodCall:
		return "MethodCall"
	case ExprField:
		return "Field"
	case ExprRef:
		return "Ref"
	case ExprDeref:
		return "Deref"
	case ExprIf:
		return "If"
	case ExprIfLet:
		return "IfLet"
	case ExprBlock:
		return "Block"
	case ExprReturn:
		return "Return"
	case ExprTry:
		return "Try"
	case ExprOpaque:
		return "Opaque"
	}
	return "unknown"
}

// Expr is a resolved expression node. Only the fields documented for the
// node's Kind are meaningful; everything else stays zero.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Ty   types.TypeID

	// ExprLit
	Lit string

	// ExprPath
	Res  Res
	Name string

	// ExprCall: Callee + Args.
	// ExprMethodCall: Recv + Method + Args.
	// ExprField: Recv + Name.
	// ExprRef: Recv (+ Mutable), ExprDeref: Recv.
	// ExprReturn: Recv (optional value, may be nil).
	// ExprTry: Recv (operand).
	Callee  *Expr
	Recv    *Expr
	Method  string
	Mutable bool
	Args    []*Expr

	// ExprIf: Cond + Then + Else.
	// ExprIfLet: Pat + Scrutinee + Then + Else.
	// Else is nil, an ExprBlock, or a chained ExprIf/ExprIfLet.
	Cond      *Expr
	Pat       *Pat
	Scrutinee *Expr
	Then      *Block
	Else      *Expr

	// ExprBlock: Body (+ Const for const blocks).
	Body  *Block
	Const bool

	// ExprOpaque
	Children []*Expr
}

// IsPlace reports whether the expression is a plain variable or field-access
// chain, i.e. re-evaluating it is cheap and side-effect free. Call results
// are not places.
func (e *Expr) IsPlace() bool {
	for e != nil {
		switch e.Kind {
		case ExprPath:
			return true
		case ExprField, ExprDeref:
			e = e.Recv
		default:
			return false
		}
	}
	return false
}

// TryBlockTail reports whether the expression is the residual-wrapping call a
// desugared try block ends with: a single-argument call whose callee resolves
// to the from-output language item.
func (e *Expr) TryBlockTail() bool {
	if e == nil || e.Kind != ExprCall || len(e.Args) != 1 {
		return false
	}
	callee := e.Callee
	return callee != nil && callee.Kind == ExprPath &&
		callee.Res.Kind == ResLang && callee.Res.Lang == LangTryFromOutput
}
