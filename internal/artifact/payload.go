// Package artifact reads and writes the resolved-module artifact the
// frontend hands to the linter: source files with comment and allow ranges,
// the type table, and the resolved tree, serialised as one msgpack payload.
//
// The payload is flat: nodes live in per-kind tables and reference each other
// by index, with 0 reserved for "absent". Strings are interned into a single
// table. Decoding validates every cross reference before building pointers,
// so a corrupt or adversarial artifact surfaces as a coded error instead of
// a panic deep inside a lint pass.
package artifact

// SchemaVersion is bumped whenever the payload layout changes.
const SchemaVersion uint16 = 1

// Ref is a 1-based index into one of the payload tables; 0 means absent.
type Ref uint32

// StrRef is a 1-based index into the string table; 0 is the empty string.
type StrRef uint32

// SpanPayload is a byte range in the file the owning node belongs to.
type SpanPayload struct {
	File  uint32
	Start uint32
	End   uint32
}

type AllowPayload struct {
	Lint StrRef
	Span SpanPayload
}

type FilePayload struct {
	Path     StrRef
	Content  []byte
	Virtual  bool
	Comments []SpanPayload
	Allows   []AllowPayload
}

type TypePayload struct {
	Name     StrRef
	Family   uint8
	Copyable bool
	Try      bool
}

type ExprPayload struct {
	Kind uint8
	Span SpanPayload
	Ty   uint32

	Lit  StrRef
	Name StrRef

	ResKind  uint8
	ResLocal uint32
	ResCtor  uint8
	ResLang  uint8

	Callee  Ref
	Recv    Ref
	Method  StrRef
	Mutable bool
	Args    []Ref

	Cond      Ref
	Pat       Ref
	Scrutinee Ref
	Then      Ref // block ref
	Else      Ref

	Body  Ref // block ref
	Const bool

	Children []Ref
}

type PatPayload struct {
	Kind uint8
	Span SpanPayload

	Name StrRef
	Sym  uint32
	Ref  uint8

	Ctor uint8
	Args []Ref
}

type StmtPayload struct {
	Kind uint8
	Span SpanPayload

	Pat       Ref
	Init      Ref
	ElseBlock Ref // block ref
	Annotated bool

	X    Ref
	Semi bool
}

type BlockPayload struct {
	Span  SpanPayload
	Stmts []Ref
	Tail  Ref
}

type FuncPayload struct {
	Name  StrRef
	Span  SpanPayload
	Const bool
	Body  Ref // block ref
}

// Payload is the complete artifact as it sits on disk.
type Payload struct {
	Schema  uint16
	Module  StrRef
	Strings []string

	Files []FilePayload
	Types []TypePayload

	Exprs  []ExprPayload
	Pats   []PatPayload
	Stmts  []StmtPayload
	Blocks []BlockPayload
	Funcs  []FuncPayload
}
