package ir

// Walker traverses a function body once, depth first, in source order.
// Callbacks are optional. OnExpr may return false to stop descending into an
// expression's children; the expression itself has already been reported.
type Walker struct {
	EnterBlock func(*Block)
	LeaveBlock func(*Block)
	OnStmt     func(*Stmt)
	OnExpr     func(*Expr) bool
}

func (w *Walker) WalkFunc(fn *Func) {
	if fn == nil || fn.Body == nil {
		return
	}
	w.walkBlock(fn.Body)
}

func (w *Walker) walkBlock(b *Block) {
	if b == nil {
		return
	}
	if w.EnterBlock != nil {
		w.EnterBlock(b)
	}
	for _, s := range b.Stmts {
		w.walkStmt(s)
	}
	w.walkExpr(b.Tail)
	if w.LeaveBlock != nil {
		w.LeaveBlock(b)
	}
}

func (w *Walker) walkStmt(s *Stmt) {
	if s == nil {
		return
	}
	if w.OnStmt != nil {
		w.OnStmt(s)
	}
	switch s.Kind {
	case StmtLet:
		w.walkExpr(s.Init)
		w.walkBlock(s.ElseBlock)
	case StmtExpr:
		w.walkExpr(s.X)
	}
}

func (w *Walker) walkExpr(e *Expr) {
	if e == nil {
		return
	}
	if w.OnExpr != nil && !w.OnExpr(e) {
		return
	}
	switch e.Kind {
	case ExprCall:
		w.walkExpr(e.Callee)
		for _, a := range e.Args {
			w.walkExpr(a)
		}
	case ExprMethodCall:
		w.walkExpr(e.Recv)
		for _, a := range e.Args {
			w.walkExpr(a)
		}
	case ExprField, ExprRef, ExprDeref, ExprReturn, ExprTry:
		w.walkExpr(e.Recv)
	case ExprIf:
		w.walkExpr(e.Cond)
		w.walkBlock(e.Then)
		w.walkExpr(e.Else)
	case ExprIfLet:
		w.walkExpr(e.Scrutinee)
		w.walkBlock(e.Then)
		w.walkExpr(e.Else)
	case ExprBlock:
		w.walkBlock(e.Body)
	case ExprOpaque:
		for _, c := range e.Children {
			w.walkExpr(c)
		}
	}
}
