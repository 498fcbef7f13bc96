package artifact

import (
	"fmt"

	"trylint/internal/diag"
	"trylint/internal/ir"
	"trylint/internal/source"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

// Error is a coded artifact validation failure.
type Error struct {
	Code diag.Code
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func errf(code diag.Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Decoded bundles everything a lint run needs out of one artifact.
type Decoded struct {
	Files  *source.FileSet
	Types  *types.Table
	Module *ir.Module
}

// Decode validates the payload and rebuilds the pointer tree. Every cross
// reference is bounds-checked and the node graph is checked for cycles before
// anything is handed to a lint pass.
func Decode(p *Payload) (*Decoded, error) {
	if p == nil {
		return nil, errf(diag.ArtCorruptPayload, "empty payload")
	}
	if p.Schema != SchemaVersion {
		return nil, errf(diag.ArtSchemaMismatch, "artifact schema %d, linter expects %d", p.Schema, SchemaVersion)
	}

	d := &decoder{payload: p, strings: source.FromTable(p.Strings)}

	if err := d.files(); err != nil {
		return nil, err
	}
	if err := d.types(); err != nil {
		return nil, err
	}
	if err := d.nodes(); err != nil {
		return nil, err
	}
	module, err := d.module()
	if err != nil {
		return nil, err
	}
	if err := d.checkCycles(module); err != nil {
		return nil, err
	}
	return &Decoded{Files: d.fs, Types: d.tbl, Module: module}, nil
}

type decoder struct {
	payload *Payload
	strings *source.Interner

	fs  *source.FileSet
	tbl *types.Table

	blocks []ir.Block
	stmts  []ir.Stmt
	exprs  []ir.Expr
	pats   []ir.Pat
}

func (d *decoder) str(ref StrRef) (string, error) {
	s, ok := d.strings.Lookup(source.StringID(ref))
	if !ok {
		return "", errf(diag.ArtCorruptPayload, "string ref %d out of table (%d entries)", ref, len(d.payload.Strings))
	}
	return s, nil
}

func (d *decoder) span(sp SpanPayload) (source.Span, error) {
	if int(sp.File) >= len(d.payload.Files) {
		return source.Span{}, errf(diag.ArtMissingFile, "span references file %d of %d", sp.File, len(d.payload.Files))
	}
	content := d.payload.Files[sp.File].Content
	if sp.Start > sp.End || int(sp.End) > len(content) {
		return source.Span{}, errf(diag.ArtSpanOutOfRange, "span %d..%d exceeds file %d (%d bytes)", sp.Start, sp.End, sp.File, len(content))
	}
	return source.Span{File: source.FileID(sp.File), Start: sp.Start, End: sp.End}, nil
}

func (d *decoder) files() error {
	d.fs = source.NewFileSet()
	for i, fp := range d.payload.Files {
		path, err := d.str(fp.Path)
		if err != nil {
			return err
		}
		var flags source.FileFlags
		if fp.Virtual {
			flags |= source.FileVirtual
		}
		id := d.fs.Add(path, fp.Content, flags)
		if uint32(id) != uint32(i) {
			return errf(diag.ArtCorruptPayload, "file id drift at %d", i)
		}

		comments := make([]source.Span, 0, len(fp.Comments))
		for _, c := range fp.Comments {
			sp, err := d.span(c)
			if err != nil {
				return err
			}
			comments = append(comments, sp)
		}
		d.fs.SetComments(id, comments)

		allows := make([]source.AllowRange, 0, len(fp.Allows))
		for _, a := range fp.Allows {
			lint, err := d.str(a.Lint)
			if err != nil {
				return err
			}
			sp, err := d.span(a.Span)
			if err != nil {
				return err
			}
			allows = append(allows, source.AllowRange{Lint: lint, Span: sp})
		}
		d.fs.SetAllows(id, allows)
	}
	return nil
}

func (d *decoder) types() error {
	infos := make([]types.Info, 0, len(d.payload.Types))
	for i, tp := range d.payload.Types {
		if tp.Family > uint8(types.FamilyResult) {
			return errf(diag.ArtTypeOutOfRange, "type %d has unknown family %d", i, tp.Family)
		}
		name, err := d.str(tp.Name)
		if err != nil {
			return err
		}
		infos = append(infos, types.Info{
			Name:     name,
			Family:   types.Family(tp.Family),
			Copyable: tp.Copyable,
			Try:      tp.Try,
		})
	}
	d.tbl = types.FromSlice(infos)
	return nil
}

func ref[T any](table []T, r Ref, what string) (*T, error) {
	if r == 0 {
		return nil, nil
	}
	if int(r) > len(table) {
		return nil, errf(diag.ArtDanglingRef, "%s ref %d of %d", what, r, len(table))
	}
	return &table[r-1], nil
}

func refs[T any](table []T, rs []Ref, what string) ([]*T, error) {
	if len(rs) == 0 {
		return nil, nil
	}
	out := make([]*T, 0, len(rs))
	for _, r := range rs {
		if r == 0 {
			return nil, errf(diag.ArtDanglingRef, "%s list contains the null ref", what)
		}
		p, err := ref(table, r, what)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (d *decoder) nodes() error {
	d.blocks = make([]ir.Block, len(d.payload.Blocks))
	d.stmts = make([]ir.Stmt, len(d.payload.Stmts))
	d.exprs = make([]ir.Expr, len(d.payload.Exprs))
	d.pats = make([]ir.Pat, len(d.payload.Pats))

	for i, pp := range d.payload.Pats {
		if err := d.decodePat(i, pp); err != nil {
			return err
		}
	}
	for i, ep := range d.payload.Exprs {
		if err := d.decodeExpr(i, ep); err != nil {
			return err
		}
	}
	for i, sp := range d.payload.Stmts {
		if err := d.decodeStmt(i, sp); err != nil {
			return err
		}
	}
	for i, bp := range d.payload.Blocks {
		if err := d.decodeBlock(i, bp); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodePat(i int, pp PatPayload) error {
	if pp.Kind > uint8(ir.PatOpaque) {
		return errf(diag.ArtCorruptPayload, "pat %d has unknown kind %d", i, pp.Kind)
	}
	if pp.Ctor > uint8(ir.CtorErr) {
		return errf(diag.ArtCorruptPayload, "pat %d has unknown ctor %d", i, pp.Ctor)
	}
	sp, err := d.span(pp.Span)
	if err != nil {
		return err
	}
	name, err := d.str(pp.Name)
	if err != nil {
		return err
	}
	args, err := refs(d.pats, pp.Args, "pat")
	if err != nil {
		return err
	}
	d.pats[i] = ir.Pat{
		Kind: ir.PatKind(pp.Kind),
		Span: sp,
		Name: name,
		Sym:  symbols.SymbolID(pp.Sym),
		Ref:  ir.RefMode(pp.Ref),
		Ctor: ir.CtorKind(pp.Ctor),
		Args: args,
	}
	return nil
}

func (d *decoder) decodeExpr(i int, ep ExprPayload) error {
	if ep.Kind > uint8(ir.ExprOpaque) {
		return errf(diag.ArtCorruptPayload, "expr %d has unknown kind %d", i, ep.Kind)
	}
	sp, err := d.span(ep.Span)
	if err != nil {
		return err
	}
	if d.tbl != nil && ep.Ty != 0 && int(ep.Ty) > d.tbl.Len() {
		return errf(diag.ArtTypeOutOfRange, "expr %d references type %d of %d", i, ep.Ty, d.tbl.Len())
	}
	lit, err := d.str(ep.Lit)
	if err != nil {
		return err
	}
	name, err := d.str(ep.Name)
	if err != nil {
		return err
	}
	method, err := d.str(ep.Method)
	if err != nil {
		return err
	}
	if ep.ResKind > uint8(ir.ResOther) || ep.ResCtor > uint8(ir.CtorErr) || ep.ResLang > uint8(ir.LangTryBranch) {
		return errf(diag.ArtCorruptPayload, "expr %d carries an invalid resolution", i)
	}

	callee, err := ref(d.exprs, ep.Callee, "expr")
	if err != nil {
		return err
	}
	recv, err := ref(d.exprs, ep.Recv, "expr")
	if err != nil {
		return err
	}
	cond, err := ref(d.exprs, ep.Cond, "expr")
	if err != nil {
		return err
	}
	pat, err := ref(d.pats, ep.Pat, "pat")
	if err != nil {
		return err
	}
	scrutinee, err := ref(d.exprs, ep.Scrutinee, "expr")
	if err != nil {
		return err
	}
	then, err := ref(d.blocks, ep.Then, "block")
	if err != nil {
		return err
	}
	elseE, err := ref(d.exprs, ep.Else, "expr")
	if err != nil {
		return err
	}
	body, err := ref(d.blocks, ep.Body, "block")
	if err != nil {
		return err
	}
	args, err := refs(d.exprs, ep.Args, "expr")
	if err != nil {
		return err
	}
	children, err := refs(d.exprs, ep.Children, "expr")
	if err != nil {
		return err
	}

	d.exprs[i] = ir.Expr{
		Kind: ir.ExprKind(ep.Kind),
		Span: sp,
		Ty:   types.TypeID(ep.Ty),
		Lit:  lit,
		Name: name,
		Res: ir.Res{
			Kind:  ir.ResKind(ep.ResKind),
			Local: symbols.SymbolID(ep.ResLocal),
			Ctor:  ir.CtorKind(ep.ResCtor),
			Lang:  ir.LangItem(ep.ResLang),
		},
		Callee:    callee,
		Recv:      recv,
		Method:    method,
		Mutable:   ep.Mutable,
		Args:      args,
		Cond:      cond,
		Pat:       pat,
		Scrutinee: scrutinee,
		Then:      then,
		Else:      elseE,
		Body:      body,
		Const:     ep.Const,
		Children:  children,
	}
	return nil
}

func (d *decoder) decodeStmt(i int, sp StmtPayload) error {
	if sp.Kind > uint8(ir.StmtOpaque) {
		return errf(diag.ArtCorruptPayload, "stmt %d has unknown kind %d", i, sp.Kind)
	}
	span, err := d.span(sp.Span)
	if err != nil {
		return err
	}
	pat, err := ref(d.pats, sp.Pat, "pat")
	if err != nil {
		return err
	}
	init, err := ref(d.exprs, sp.Init, "expr")
	if err != nil {
		return err
	}
	elseBlock, err := ref(d.blocks, sp.ElseBlock, "block")
	if err != nil {
		return err
	}
	x, err := ref(d.exprs, sp.X, "expr")
	if err != nil {
		return err
	}
	d.stmts[i] = ir.Stmt{
		Kind:      ir.StmtKind(sp.Kind),
		Span:      span,
		Pat:       pat,
		Init:      init,
		ElseBlock: elseBlock,
		Annotated: sp.Annotated,
		X:         x,
		Semi:      sp.Semi,
	}
	return nil
}

func (d *decoder) decodeBlock(i int, bp BlockPayload) error {
	sp, err := d.span(bp.Span)
	if err != nil {
		return err
	}
	stmts, err := refs(d.stmts, bp.Stmts, "stmt")
	if err != nil {
		return err
	}
	tail, err := ref(d.exprs, bp.Tail, "expr")
	if err != nil {
		return err
	}
	d.blocks[i] = ir.Block{Span: sp, Stmts: stmts, Tail: tail}
	return nil
}

func (d *decoder) module() (*ir.Module, error) {
	name, err := d.str(d.payload.Module)
	if err != nil {
		return nil, err
	}
	m := &ir.Module{Name: name}
	for _, fp := range d.payload.Funcs {
		fnName, err := d.str(fp.Name)
		if err != nil {
			return nil, err
		}
		sp, err := d.span(fp.Span)
		if err != nil {
			return nil, err
		}
		body, err := ref(d.blocks, fp.Body, "block")
		if err != nil {
			return nil, err
		}
		m.Funcs = append(m.Funcs, &ir.Func{Name: fnName, Span: sp, Const: fp.Const, Body: body})
	}
	return m, nil
}
