package ir

import (
	"trylint/internal/source"
	"trylint/internal/symbols"
)

// PatKind enumerates the pattern shapes preserved by the artifact.
type PatKind uint8

const (
	// PatBind binds a name, optionally by reference.
	PatBind PatKind = iota
	// PatCtor destructures a variant constructor.
	PatCtor
	// PatTuple destructures a tuple.
	PatTuple
	// PatWild is the wildcard pattern.
	PatWild
	// PatOpaque is any pattern the lints never inspect.
	PatOpaque
)

func (k PatKind) String() string {
	switch k {
	case PatBind:
		return "Bind"
	case PatCtor:
		return "Ctor"
	case PatTuple:
		return "Tuple"
	case PatWild:
		return "Wild"
	case PatOpaque:
		return "Opaque"
	}
	return "unknown"
}

// RefMode records how a binding takes its value.
type RefMode uint8

const (
	ByValue RefMode = iota
	ByRef
	ByRefMut
)

// Pat is a resolved pattern node.
type Pat struct {
	Kind PatKind
	Span source.Span

	// PatBind
	Name string
	Sym  symbols.SymbolID
	Ref  RefMode

	// PatCtor (Ctor + Args), PatTuple (Args)
	Ctor CtorKind
	Args []*Pat
}

// Irrefutable reports whether the pattern matches every value of its type:
// a binding, a wildcard, or a tuple of irrefutable sub-patterns. Constructor
// and opaque patterns can fail to match.
func (p *Pat) Irrefutable() bool {
	if p == nil {
		return false
	}
	switch p.Kind {
	case PatBind, PatWild:
		return true
	case PatTuple:
		for _, arg := range p.Args {
			if !arg.Irrefutable() {
				return false
			}
		}
		return true
	}
	return false
}

// SingleBinding returns the bare name binding when the pattern is a
// constructor destructure of exactly one field with no nesting, e.g.
// Some(x) or Err(e). Returns nil otherwise.
func (p *Pat) SingleBinding() *Pat {
	if p == nil || p.Kind != PatCtor || len(p.Args) != 1 {
		return nil
	}
	inner := p.Args[0]
	if inner == nil || inner.Kind != PatBind {
		return nil
	}
	return inner
}
