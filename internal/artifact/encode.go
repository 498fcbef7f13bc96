package artifact

import (
	"fortio.org/safecast"

	"trylint/internal/ir"
	"trylint/internal/source"
	"trylint/internal/types"
)

// Encode flattens a file set, type table and resolved module into a payload.
// Used by the frontend side of the contract and by round-trip tests.
func Encode(fs *source.FileSet, tbl *types.Table, module *ir.Module) (*Payload, error) {
	e := &encoder{
		payload: &Payload{Schema: SchemaVersion},
		strings: source.NewInterner(),
		fileIdx: make(map[source.FileID]uint32),
		exprs:   make(map[*ir.Expr]Ref),
		pats:    make(map[*ir.Pat]Ref),
		blocks:  make(map[*ir.Block]Ref),
	}

	if err := e.files(fs); err != nil {
		return nil, err
	}
	e.types(tbl)

	if module != nil {
		e.payload.Module = e.str(module.Name)
		for _, fn := range module.Funcs {
			e.payload.Funcs = append(e.payload.Funcs, FuncPayload{
				Name:  e.str(fn.Name),
				Span:  e.span(fn.Span),
				Const: fn.Const,
				Body:  e.block(fn.Body),
			})
		}
	}

	e.payload.Strings = e.strings.Table()
	return e.payload, nil
}

type encoder struct {
	payload *Payload
	strings *source.Interner
	fileIdx map[source.FileID]uint32
	exprs   map[*ir.Expr]Ref
	pats    map[*ir.Pat]Ref
	blocks  map[*ir.Block]Ref
}

func (e *encoder) str(s string) StrRef {
	return StrRef(e.strings.Intern(s))
}

func (e *encoder) span(sp source.Span) SpanPayload {
	return SpanPayload{File: e.fileIdx[sp.File], Start: sp.Start, End: sp.End}
}

func (e *encoder) files(fs *source.FileSet) error {
	if fs == nil {
		return nil
	}
	n, err := safecast.Conv[uint32](fs.Len())
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		f := fs.Get(source.FileID(i))
		e.fileIdx[f.ID] = i
		fp := FilePayload{
			Path:    e.str(f.Path),
			Content: f.Content,
			Virtual: f.Flags&source.FileVirtual != 0,
		}
		for _, c := range f.Comments {
			fp.Comments = append(fp.Comments, SpanPayload{File: i, Start: c.Start, End: c.End})
		}
		for _, a := range f.Allows {
			fp.Allows = append(fp.Allows, AllowPayload{
				Lint: e.str(a.Lint),
				Span: SpanPayload{File: i, Start: a.Span.Start, End: a.Span.End},
			})
		}
		e.payload.Files = append(e.payload.Files, fp)
	}
	return nil
}

func (e *encoder) types(tbl *types.Table) {
	if tbl == nil {
		return
	}
	for _, info := range tbl.All() {
		e.payload.Types = append(e.payload.Types, TypePayload{
			Name:     e.str(info.Name),
			Family:   uint8(info.Family),
			Copyable: info.Copyable,
			Try:      info.Try,
		})
	}
}

func (e *encoder) block(b *ir.Block) Ref {
	if b == nil {
		return 0
	}
	if ref, ok := e.blocks[b]; ok {
		return ref
	}
	// Reserve the slot first: child nodes never reference their parent
	// block, but keeping the pattern uniform costs nothing.
	e.payload.Blocks = append(e.payload.Blocks, BlockPayload{})
	ref := Ref(len(e.payload.Blocks))
	e.blocks[b] = ref

	bp := BlockPayload{Span: e.span(b.Span), Tail: e.expr(b.Tail)}
	for _, s := range b.Stmts {
		bp.Stmts = append(bp.Stmts, e.stmt(s))
	}
	e.payload.Blocks[ref-1] = bp
	return ref
}

func (e *encoder) stmt(s *ir.Stmt) Ref {
	if s == nil {
		return 0
	}
	e.payload.Stmts = append(e.payload.Stmts, StmtPayload{
		Kind:      uint8(s.Kind),
		Span:      e.span(s.Span),
		Pat:       e.pat(s.Pat),
		Init:      e.expr(s.Init),
		ElseBlock: e.block(s.ElseBlock),
		Annotated: s.Annotated,
		X:         e.expr(s.X),
		Semi:      s.Semi,
	})
	return Ref(len(e.payload.Stmts))
}

func (e *encoder) pat(p *ir.Pat) Ref {
	if p == nil {
		return 0
	}
	if ref, ok := e.pats[p]; ok {
		return ref
	}
	pp := PatPayload{
		Kind: uint8(p.Kind),
		Span: e.span(p.Span),
		Name: e.str(p.Name),
		Sym:  uint32(p.Sym),
		Ref:  uint8(p.Ref),
		Ctor: uint8(p.Ctor),
	}
	for _, a := range p.Args {
		pp.Args = append(pp.Args, e.pat(a))
	}
	e.payload.Pats = append(e.payload.Pats, pp)
	ref := Ref(len(e.payload.Pats))
	e.pats[p] = ref
	return ref
}

func (e *encoder) expr(x *ir.Expr) Ref {
	if x == nil {
		return 0
	}
	if ref, ok := e.exprs[x]; ok {
		return ref
	}
	ep := ExprPayload{
		Kind:      uint8(x.Kind),
		Span:      e.span(x.Span),
		Ty:        uint32(x.Ty),
		Lit:       e.str(x.Lit),
		Name:      e.str(x.Name),
		ResKind:   uint8(x.Res.Kind),
		ResLocal:  uint32(x.Res.Local),
		ResCtor:   uint8(x.Res.Ctor),
		ResLang:   uint8(x.Res.Lang),
		Callee:    e.expr(x.Callee),
		Recv:      e.expr(x.Recv),
		Method:    e.str(x.Method),
		Mutable:   x.Mutable,
		Cond:      e.expr(x.Cond),
		Pat:       e.pat(x.Pat),
		Scrutinee: e.expr(x.Scrutinee),
		Then:      e.block(x.Then),
		Else:      e.expr(x.Else),
		Body:      e.block(x.Body),
		Const:     x.Const,
	}
	for _, a := range x.Args {
		ep.Args = append(ep.Args, e.expr(a))
	}
	for _, c := range x.Children {
		ep.Children = append(ep.Children, e.expr(c))
	}
	e.payload.Exprs = append(e.payload.Exprs, ep)
	ref := Ref(len(e.payload.Exprs))
	e.exprs[x] = ref
	return ref
}
