package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trylint/internal/artifact"
	"trylint/internal/diag"
	"trylint/internal/ir"
	"trylint/internal/source"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

const guardText = "if v.is_none() { return None }"

func guardFunc(fs *source.FileSet, optTy types.TypeID, name string) *ir.Func {
	file := fs.AddVirtual(name+".txt", []byte(guardText))
	recv := &ir.Expr{
		Kind: ir.ExprPath,
		Span: source.Span{File: file, Start: 3, End: 4},
		Ty:   optTy,
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
	return &ir.Func{
		Name: name,
		Span: source.Span{File: file, Start: 0, End: 30},
		Body: &ir.Block{
			Span: source.Span{File: file, Start: 0, End: 30},
			Stmts: []*ir.Stmt{{
				Kind: ir.StmtExpr,
				Span: source.Span{File: file, Start: 0, End: 30},
				X:    guard,
			}},
		},
	}
}

func testInputs(funcs int) *artifact.Decoded {
	fs := source.NewFileSet()
	tbl := types.NewTable()
	optTy := tbl.Register(types.Info{Name: "Option<int>", Family: types.FamilyOption, Copyable: true, Try: true})

	m := &ir.Module{Name: "demo"}
	for i := 0; i < funcs; i++ {
		m.Funcs = append(m.Funcs, guardFunc(fs, optTy, "f"+string(rune('a'+i))))
	}
	return &artifact.Decoded{Files: fs, Types: tbl, Module: m}
}

func TestLintModuleParallel(t *testing.T) {
	decoded := testInputs(5)

	bag, err := LintModule(context.Background(), decoded, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if bag.Len() != 5 {
		t.Fatalf("got %d diagnostics, want 5", bag.Len())
	}
	for i, d := range bag.Items() {
		if d.Code != diag.LintQuestionMark {
			t.Fatalf("diag %d: code %v", i, d.Code)
		}
		if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
			t.Fatalf("diag %d: missing fix", i)
		}
		if got := d.Fixes[0].Edits[0].NewText; got != "v?;" {
			t.Fatalf("diag %d: replacement %q", i, got)
		}
	}

	// Merged in declaration order and sorted: file ids ascend.
	items := bag.Items()
	for i := 1; i < len(items); i++ {
		if items[i-1].Primary.File > items[i].Primary.File {
			t.Fatal("diagnostics not sorted by file")
		}
	}
}

func TestLintModuleMaxDiagnostics(t *testing.T) {
	decoded := testInputs(4)

	bag, err := LintModule(context.Background(), decoded, Options{Jobs: 1, MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if bag.Len() != 2 {
		t.Fatalf("got %d diagnostics, want capped 2", bag.Len())
	}
	if bag.Dropped() == 0 {
		t.Fatal("expected dropped count")
	}
}

func TestLintModuleCancelled(t *testing.T) {
	decoded := testInputs(3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LintModule(ctx, decoded, Options{Jobs: 1})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestLintFileRoundTrip(t *testing.T) {
	decoded := testInputs(1)
	payload, err := artifact.Encode(decoded.Files, decoded.Types, decoded.Module)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "demo.bin")
	if err := artifact.WriteFile(path, payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := LintFile(context.Background(), path, Options{Timings: true})
	if err != nil {
		t.Fatalf("lint file: %v", err)
	}
	if res.Module == nil || res.Module.Name != "demo" {
		t.Fatalf("module lost: %+v", res.Module)
	}

	var lints, timings int
	for _, d := range res.Bag.Items() {
		switch d.Code {
		case diag.LintQuestionMark:
			lints++
		case diag.ObsTimings:
			timings++
			if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "total_ms") {
				t.Fatalf("timing note malformed: %+v", d.Notes)
			}
		}
	}
	if lints != 1 || timings != 1 {
		t.Fatalf("got %d lints, %d timing entries", lints, timings)
	}
	if len(res.Timing.Phases) != 2 {
		t.Fatalf("expected read+lint phases, got %+v", res.Timing.Phases)
	}
}

func TestLintFileCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.bin")
	if err := os.WriteFile(path, []byte("not msgpack at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := LintFile(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("validation failures should land in the bag: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected an artifact error diagnostic")
	}
	if got := res.Bag.Items()[0].Code; got != diag.ArtCorruptPayload {
		t.Fatalf("code %v, want ArtCorruptPayload", got)
	}
}
