package ir

import "trylint/internal/source"

// StmtKind enumerates statement forms.
type StmtKind uint8

const (
	// StmtLet is a let binding, possibly with a divergent else block.
	StmtLet StmtKind = iota
	// StmtExpr is an expression statement; Semi records whether the
	// source carried a trailing semicolon.
	StmtExpr
	// StmtOpaque is any other statement (nested items and the like).
	StmtOpaque
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "Expr"
	case StmtOpaque:
		return "Opaque"
	}
	return "unknown"
}

// Stmt is a resolved statement node.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	// StmtLet
	Pat       *Pat
	Init      *Expr  // nil for uninitialised bindings
	ElseBlock *Block // divergent fallback, nil unless let-else
	Annotated bool   // source carried an explicit type annotation

	// StmtExpr
	X    *Expr
	Semi bool
}

// Block is a brace-delimited statement list with an optional tail expression.
type Block struct {
	Span  source.Span
	Stmts []*Stmt
	Tail  *Expr
}

// SoleContent reduces the block to its single interesting node: the tail
// expression when there are no statements, or the lone expression statement
// when there is exactly one and no tail. Wrapping block expressions are
// stripped. Returns nil when the block holds more than one thing.
func (b *Block) SoleContent() *Expr {
	for b != nil {
		switch {
		case len(b.Stmts) == 0 && b.Tail != nil:
			if b.Tail.Kind == ExprBlock && !b.Tail.Const {
				b = b.Tail.Body
				continue
			}
			return b.Tail
		case len(b.Stmts) == 1 && b.Tail == nil:
			s := b.Stmts[0]
			if s.Kind != StmtExpr {
				return nil
			}
			if s.X != nil && s.X.Kind == ExprBlock && !s.X.Const {
				b = s.X.Body
				continue
			}
			return s.X
		default:
			return nil
		}
	}
	return nil
}
