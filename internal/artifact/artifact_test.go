package artifact

import (
	"bytes"
	"testing"

	"trylint/internal/diag"
	"trylint/internal/ir"
	"trylint/internal/source"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

func sampleModule(t *testing.T) (*source.FileSet, *types.Table, *ir.Module) {
	t.Helper()
	text := "if v.is_none() { return None } // guard"
	fs := source.NewFileSet()
	file := fs.AddVirtual("lib.txt", []byte(text))
	fs.SetComments(file, []source.Span{{File: file, Start: 31, End: 39}})
	fs.SetAllows(file, []source.AllowRange{{Lint: diag.QuestionMarkLintName, Span: source.Span{File: file, Start: 0, End: 5}}})

	tbl := types.NewTable()
	optInt := tbl.Register(types.Info{Name: "Option<int>", Family: types.FamilyOption, Copyable: true, Try: true})

	recv := &ir.Expr{
		Kind: ir.ExprPath,
		Span: source.Span{File: file, Start: 3, End: 4},
		Ty:   optInt,
		Name: "v",
		Res:  ir.Res{Kind: ir.ResLocal, Local: symbols.SymbolID(1)},
	}
	guard := &ir.Expr{
		Kind: ir.ExprIf,
		Span: source.Span{File: file, Start: 0, End: 30},
		Cond: &ir.Expr{Kind: ir.ExprMethodCall, Span: source.Span{File: file, Start: 3, End: 14}, Recv: recv, Method: "is_none"},
		Then: &ir.Block{
			Span: source.Span{File: file, Start: 15, End: 30},
			Tail: &ir.Expr{Kind: ir.ExprReturn, Recv: &ir.Expr{
				Kind: ir.ExprPath, Name: "None",
				Res: ir.Res{Kind: ir.ResCtor, Ctor: ir.CtorNone},
			}},
		},
	}
	body := &ir.Block{
		Span: source.Span{File: file, Start: 0, End: 30},
		Stmts: []*ir.Stmt{{
			Kind: ir.StmtExpr,
			Span: source.Span{File: file, Start: 0, End: 30},
			X:    guard,
		}},
	}
	m := &ir.Module{Name: "demo", Funcs: []*ir.Func{{
		Name: "f",
		Span: source.Span{File: file, Start: 0, End: 30},
		Body: body,
	}}}
	return fs, tbl, m
}

func TestRoundTrip(t *testing.T) {
	fs, tbl, m := sampleModule(t)

	payload, err := Encode(fs, tbl, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	decoded, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if decoded.Module.Name != "demo" || len(decoded.Module.Funcs) != 1 {
		t.Fatalf("module mismatch: %+v", decoded.Module)
	}
	fn := decoded.Module.Funcs[0]
	if fn.Name != "f" || fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("func mismatch: %+v", fn)
	}
	guard := fn.Body.Stmts[0].X
	if guard == nil || guard.Kind != ir.ExprIf {
		t.Fatalf("guard lost in transit: %+v", guard)
	}
	if guard.Cond.Method != "is_none" || guard.Cond.Recv.Name != "v" {
		t.Fatalf("condition mismatch: %+v", guard.Cond)
	}
	if got := decoded.Types.Get(guard.Cond.Recv.Ty); got.Family != types.FamilyOption || !got.Copyable || !got.Try {
		t.Fatalf("type info mismatch: %+v", got)
	}

	file := decoded.Files.Get(guard.Span.File)
	if file == nil || string(file.Content) != "if v.is_none() { return None } // guard" {
		t.Fatal("file content mismatch")
	}
	if !decoded.Files.ContainsComment(source.Span{File: file.ID, Start: 30, End: 39}) {
		t.Fatal("comment span lost")
	}
	if !decoded.Files.LintAllowed(diag.QuestionMarkLintName, source.Span{File: file.ID, Start: 1, End: 4}) {
		t.Fatal("allow range lost")
	}
	if snip, ok := decoded.Files.Snippet(guard.Cond.Recv.Span); !ok || snip != "v" {
		t.Fatalf("snippet mismatch: %q %v", snip, ok)
	}
}

func TestDecodeRejectsSchemaMismatch(t *testing.T) {
	fs, tbl, m := sampleModule(t)
	payload, err := Encode(fs, tbl, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	payload.Schema = SchemaVersion + 1

	_, err = Decode(payload)
	ae, ok := IsValidationError(err)
	if !ok || ae.Code != diag.ArtSchemaMismatch {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestDecodeRejectsDanglingRef(t *testing.T) {
	fs, tbl, m := sampleModule(t)
	payload, err := Encode(fs, tbl, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	payload.Funcs[0].Body = Ref(len(payload.Blocks) + 10)

	_, err = Decode(payload)
	ae, ok := IsValidationError(err)
	if !ok || ae.Code != diag.ArtDanglingRef {
		t.Fatalf("expected dangling ref, got %v", err)
	}
}

func TestDecodeRejectsSpanOutOfRange(t *testing.T) {
	fs, tbl, m := sampleModule(t)
	payload, err := Encode(fs, tbl, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	payload.Exprs[0].Span = SpanPayload{File: 0, Start: 5, End: 100000}

	_, err = Decode(payload)
	ae, ok := IsValidationError(err)
	if !ok || ae.Code != diag.ArtSpanOutOfRange {
		t.Fatalf("expected span out of range, got %v", err)
	}
}

func TestDecodeRejectsBadType(t *testing.T) {
	fs, tbl, m := sampleModule(t)
	payload, err := Encode(fs, tbl, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	payload.Types[1].Family = 99

	_, err = Decode(payload)
	ae, ok := IsValidationError(err)
	if !ok || ae.Code != diag.ArtTypeOutOfRange {
		t.Fatalf("expected type out of range, got %v", err)
	}
}

func TestDecodeRejectsCycle(t *testing.T) {
	fs, tbl, m := sampleModule(t)
	payload, err := Encode(fs, tbl, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Point the if-expression's else at itself.
	for i := range payload.Exprs {
		if payload.Exprs[i].Kind == uint8(ir.ExprIf) {
			payload.Exprs[i].Else = Ref(i + 1)
		}
	}

	_, err = Decode(payload)
	ae, ok := IsValidationError(err)
	if !ok || ae.Code != diag.ArtCorruptPayload {
		t.Fatalf("expected corrupt payload, got %v", err)
	}
}
