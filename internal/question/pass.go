package question

import (
	"trylint/internal/diag"
	"trylint/internal/ir"
	"trylint/internal/source"
	"trylint/internal/types"
)

// Pass runs the question-mark lint over function bodies: every guard idiom
// that is exactly equivalent to a `?` propagation gets a diagnostic with a
// structured rewrite attached.
type Pass struct {
	Files *source.FileSet
	Types *types.Table
	// Eq overrides the equality predicate used to prove two expressions
	// denote the same value. Defaults to StructuralEq.
	Eq ExprEq
	// UsedLintEnabled turns on the companion lint that flags `?` usage.
	// While it is active, propagation suggestions are withheld wherever
	// the companion lint is not locally allowed: suggesting an operator
	// another lint forbids would just trade one warning for another.
	UsedLintEnabled bool

	resolver Resolver
}

func NewPass(files *source.FileSet, tbl *types.Table) *Pass {
	return &Pass{Files: files, Types: tbl}
}

func (p *Pass) eq() ExprEq {
	if p.Eq != nil {
		return p.Eq
	}
	return StructuralEq
}

// CheckModule lints every function of the module.
func (p *Pass) CheckModule(m *ir.Module, rep diag.Reporter) error {
	if m == nil {
		return nil
	}
	for _, fn := range m.Funcs {
		if err := p.CheckFunc(fn, rep); err != nil {
			return err
		}
	}
	return nil
}

// CheckFunc lints a single function body. Const bodies are skipped outright:
// the propagation operator is categorically disallowed there.
func (p *Pass) CheckFunc(fn *ir.Func, rep diag.Reporter) error {
	if fn == nil || fn.Body == nil || fn.Const {
		return nil
	}
	p.resolver = Resolver{Eq: p.eq()}

	var tracker Tracker
	tracker.EnterBody()
	defer tracker.ExitBody()

	// Blocks that opened a suppression region, so LeaveBlock closes
	// exactly what EnterBlock opened.
	suppressing := make(map[*ir.Block]bool)
	// Conditionals chained into an else position; matching them again
	// would produce nested duplicate suggestions.
	elsePos := make(map[*ir.Expr]bool)
	stmtPos := make(map[*ir.Expr]bool)

	var firstErr error
	report := func(d diag.Diagnostic) {
		if firstErr == nil {
			firstErr = rep.Report(d)
		}
	}

	w := &ir.Walker{
		EnterBlock: func(b *ir.Block) {
			if b.Tail != nil && b.Tail.TryBlockTail() {
				suppressing[b] = true
				tracker.EnterRegion()
			}
		},
		LeaveBlock: func(b *ir.Block) {
			if suppressing[b] {
				tracker.ExitRegion()
			}
		},
		OnStmt: func(s *ir.Stmt) {
			if s.Kind == ir.StmtExpr && s.X != nil {
				switch s.X.Kind {
				case ir.ExprIf, ir.ExprIfLet:
					stmtPos[s.X] = true
				}
			}
			if s.Kind != ir.StmtLet || s.ElseBlock == nil {
				return
			}
			if tracker.Suppressed() || !p.lintEnabled(s.Span) {
				return
			}
			if sg, ok := p.matchDivergentLet(s); ok {
				report(p.diagnostic(sg))
			}
		},
		OnExpr: func(e *ir.Expr) bool {
			switch e.Kind {
			case ir.ExprBlock:
				if e.Const {
					return false
				}
			case ir.ExprTry:
				if p.UsedLintEnabled && !p.Files.LintAllowed(diag.QuestionMarkUsedLintName, e.Span) {
					report(diag.New(diag.SevWarning, diag.LintQuestionMarkUsed, e.Span,
						"the `?` operator is forbidden here"))
				}
			case ir.ExprIf, ir.ExprIfLet:
				if chained := e.Else; chained != nil &&
					(chained.Kind == ir.ExprIf || chained.Kind == ir.ExprIfLet) {
					elsePos[chained] = true
				}
				if elsePos[e] || tracker.Suppressed() || !p.lintEnabled(e.Span) {
					return true
				}
				if e.Kind == ir.ExprIf {
					if sg, ok := p.matchMethodGuard(e); ok {
						report(p.diagnostic(sg))
					}
				} else {
					if sg, ok := p.matchDestructureGuard(e, stmtPos[e]); ok {
						report(p.diagnostic(sg))
					}
				}
			}
			return true
		},
	}
	w.WalkFunc(fn)
	return firstErr
}

func (p *Pass) lintEnabled(span source.Span) bool {
	if p.Files.LintAllowed(diag.QuestionMarkLintName, span) {
		return false
	}
	if p.UsedLintEnabled && !p.Files.LintAllowed(diag.QuestionMarkUsedLintName, span) {
		return false
	}
	return true
}

func (p *Pass) diagnostic(sg Suggestion) diag.Diagnostic {
	guard, _ := p.Files.Snippet(sg.Span)
	f := diag.Fix{
		Title:         "replace it with the `?` operator",
		Kind:          diag.FixKindRefactorRewrite,
		Applicability: sg.Applicability,
		IsPreferred:   true,
		Edits: []diag.TextEdit{{
			Span:    sg.Span,
			NewText: sg.Replacement,
			OldText: guard,
		}},
	}
	return diag.New(diag.SevWarning, diag.LintQuestionMark, sg.Span,
		"this block may be rewritten with the `?` operator").WithFixSuggestion(f)
}
