package ir

import "trylint/internal/symbols"

// ResKind enumerates what a resolved path refers to.
type ResKind uint8

const (
	// ResLocal is a local binding; Local carries its symbol.
	ResLocal ResKind = iota
	// ResCtor is a variant constructor of a sum type; Ctor names which.
	ResCtor
	// ResLang is a language item the frontend marked specially.
	ResLang
	// ResOther is any other definition (free function, static, ...).
	ResOther
)

// CtorKind identifies the canonical sum-type constructors the lints reason
// about. The frontend resolves re-exports and aliases before encoding, so a
// renamed import of the success constructor still decodes as CtorSome/CtorOk.
type CtorKind uint8

const (
	CtorInvalid CtorKind = iota
	CtorSome
	CtorNone
	CtorOk
	CtorErr
)

func (k CtorKind) String() string {
	switch k {
	case CtorSome:
		return "Some"
	case CtorNone:
		return "None"
	case CtorOk:
		return "Ok"
	case CtorErr:
		return "Err"
	}
	return "invalid"
}

// IsFailure reports whether the constructor builds the failure variant.
func (k CtorKind) IsFailure() bool {
	return k == CtorNone || k == CtorErr
}

// IsSuccess reports whether the constructor wraps the success payload.
func (k CtorKind) IsSuccess() bool {
	return k == CtorSome || k == CtorOk
}

// LangItem enumerates frontend-marked language items.
type LangItem uint8

const (
	LangNone LangItem = iota
	// LangTryFromOutput marks the residual-wrapping call a desugared try
	// block ends with. A block whose tail calls it is a try block body.
	LangTryFromOutput
	// LangTryBranch marks the branch call of a desugared try operator.
	LangTryBranch
)

// Res is the resolution recorded on a path expression.
type Res struct {
	Kind  ResKind
	Local symbols.SymbolID // valid when Kind == ResLocal
	Ctor  CtorKind         // valid when Kind == ResCtor
	Lang  LangItem         // valid when Kind == ResLang
}

// SameLocal reports whether both resolutions name the same local binding.
func (r Res) SameLocal(other Res) bool {
	return r.Kind == ResLocal && other.Kind == ResLocal &&
		r.Local.IsValid() && r.Local == other.Local
}
