package artifact

import (
	"trylint/internal/diag"
	"trylint/internal/ir"
)

// A decoded payload is a graph of table indices; a well-formed artifact is a
// forest. Cycles would send the lint walker into unbounded recursion, so they
// are rejected here with the usual tri-color marking. Shared subtrees are
// tolerated: revisiting a finished node is harmless.
type color uint8

const (
	white color = iota
	gray
	black
)

type cycleChecker struct {
	blocks map[*ir.Block]color
	stmts  map[*ir.Stmt]color
	exprs  map[*ir.Expr]color
	pats   map[*ir.Pat]color
}

func (d *decoder) checkCycles(m *ir.Module) error {
	c := &cycleChecker{
		blocks: make(map[*ir.Block]color),
		stmts:  make(map[*ir.Stmt]color),
		exprs:  make(map[*ir.Expr]color),
		pats:   make(map[*ir.Pat]color),
	}
	for _, fn := range m.Funcs {
		if err := c.block(fn.Body); err != nil {
			return err
		}
	}
	return nil
}

func cycleErr() error {
	return errf(diag.ArtCorruptPayload, "node graph contains a cycle")
}

func (c *cycleChecker) block(b *ir.Block) error {
	if b == nil {
		return nil
	}
	switch c.blocks[b] {
	case gray:
		return cycleErr()
	case black:
		return nil
	}
	c.blocks[b] = gray
	for _, s := range b.Stmts {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	if err := c.expr(b.Tail); err != nil {
		return err
	}
	c.blocks[b] = black
	return nil
}

func (c *cycleChecker) stmt(s *ir.Stmt) error {
	if s == nil {
		return nil
	}
	switch c.stmts[s] {
	case gray:
		return cycleErr()
	case black:
		return nil
	}
	c.stmts[s] = gray
	if err := c.pat(s.Pat); err != nil {
		return err
	}
	if err := c.expr(s.Init); err != nil {
		return err
	}
	if err := c.block(s.ElseBlock); err != nil {
		return err
	}
	if err := c.expr(s.X); err != nil {
		return err
	}
	c.stmts[s] = black
	return nil
}

func (c *cycleChecker) expr(e *ir.Expr) error {
	if e == nil {
		return nil
	}
	switch c.exprs[e] {
	case gray:
		return cycleErr()
	case black:
		return nil
	}
	c.exprs[e] = gray
	for _, child := range []*ir.Expr{e.Callee, e.Recv, e.Cond, e.Scrutinee, e.Else} {
		if err := c.expr(child); err != nil {
			return err
		}
	}
	for _, a := range e.Args {
		if err := c.expr(a); err != nil {
			return err
		}
	}
	for _, child := range e.Children {
		if err := c.expr(child); err != nil {
			return err
		}
	}
	if err := c.pat(e.Pat); err != nil {
		return err
	}
	if err := c.block(e.Then); err != nil {
		return err
	}
	if err := c.block(e.Body); err != nil {
		return err
	}
	c.exprs[e] = black
	return nil
}

func (c *cycleChecker) pat(p *ir.Pat) error {
	if p == nil {
		return nil
	}
	switch c.pats[p] {
	case gray:
		return cycleErr()
	case black:
		return nil
	}
	c.pats[p] = gray
	for _, a := range p.Args {
		if err := c.pat(a); err != nil {
			return err
		}
	}
	c.pats[p] = black
	return nil
}
