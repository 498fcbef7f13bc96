// Package testkit provides helpers for building resolved trees anchored to
// literal source text, so lint tests exercise real spans, snippets, comments
// and allow-ranges instead of zeroed ones.
package testkit

import (
	"strings"
	"testing"

	"fortio.org/safecast"

	"trylint/internal/source"
	"trylint/internal/symbols"
	"trylint/internal/types"
)

// Source wraps a virtual file and locates spans by substring, the way lint
// tests want to talk about positions.
type Source struct {
	t     *testing.T
	Files *source.FileSet
	File  source.FileID
	text  string
}

// NewSource registers text as a virtual file in a fresh file set.
func NewSource(t *testing.T, text string) *Source {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.txt", []byte(text))
	return &Source{t: t, Files: fs, File: id, text: text}
}

// Span returns the span of the first occurrence of substr. Fails the test if
// the text does not contain it.
func (s *Source) Span(substr string) source.Span {
	s.t.Helper()
	return s.SpanN(substr, 0)
}

// SpanN returns the span of the n-th (zero-based) occurrence of substr.
func (s *Source) SpanN(substr string, n int) source.Span {
	s.t.Helper()
	off := 0
	for {
		idx := strings.Index(s.text[off:], substr)
		if idx < 0 {
			s.t.Fatalf("source does not contain occurrence %d of %q", n, substr)
		}
		off += idx
		if n == 0 {
			break
		}
		n--
		off += len(substr)
	}
	start, err := safecast.Conv[uint32](off)
	if err != nil {
		s.t.Fatalf("span offset overflow: %v", err)
	}
	end, err := safecast.Conv[uint32](off + len(substr))
	if err != nil {
		s.t.Fatalf("span end overflow: %v", err)
	}
	return source.Span{File: s.File, Start: start, End: end}
}

// MarkComments registers every given substring as a comment span.
func (s *Source) MarkComments(substrs ...string) {
	s.t.Helper()
	spans := make([]source.Span, 0, len(substrs))
	for _, sub := range substrs {
		spans = append(spans, s.Span(sub))
	}
	s.Files.SetComments(s.File, spans)
}

// Allow switches a lint off over the span of substr.
func (s *Source) Allow(lint, substr string) {
	s.t.Helper()
	file := s.Files.Get(s.File)
	allows := append(file.Allows, source.AllowRange{Lint: lint, Span: s.Span(substr)})
	s.Files.SetAllows(s.File, allows)
}

// TypeWorld is a small prebuilt type table covering the shapes lint tests
// need: copyable and non-copyable optionals and results, plus a borrowed
// optional that lacks the propagation capability.
type TypeWorld struct {
	Table *types.Table

	Int          types.TypeID // plain copyable scalar
	OptionInt    types.TypeID // option, copyable, propagation-capable
	OptionString types.TypeID // option, non-copyable, propagation-capable
	OptionRef    types.TypeID // borrowed option, no propagation capability
	ResultInt    types.TypeID // result, copyable, propagation-capable
	ResultString types.TypeID // result, non-copyable, propagation-capable
}

func NewTypeWorld() *TypeWorld {
	tbl := types.NewTable()
	return &TypeWorld{
		Table:        tbl,
		Int:          tbl.Register(types.Info{Name: "int", Family: types.FamilyOther, Copyable: true}),
		OptionInt:    tbl.Register(types.Info{Name: "Option<int>", Family: types.FamilyOption, Copyable: true, Try: true}),
		OptionString: tbl.Register(types.Info{Name: "Option<String>", Family: types.FamilyOption, Try: true}),
		OptionRef:    tbl.Register(types.Info{Name: "&Option<String>", Family: types.FamilyOption}),
		ResultInt:    tbl.Register(types.Info{Name: "Result<int, Error>", Family: types.FamilyResult, Copyable: true, Try: true}),
		ResultString: tbl.Register(types.Info{Name: "Result<String, Error>", Family: types.FamilyResult, Try: true}),
	}
}

// Symbols hands out distinct symbol ids by name, so tests spell identity
// instead of juggling numbers.
type Symbols struct {
	next  uint32
	byKey map[string]symbols.SymbolID
}

func NewSymbols() *Symbols {
	return &Symbols{next: 1, byKey: make(map[string]symbols.SymbolID)}
}

func (s *Symbols) Get(name string) symbols.SymbolID {
	if id, ok := s.byKey[name]; ok {
		return id
	}
	id := symbols.SymbolID(s.next)
	s.next++
	s.byKey[name] = id
	return id
}
