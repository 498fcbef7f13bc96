package types

// TypeID indexes a type inside a Table. The frontend annotates every
// expression of the resolved tree with the TypeID of its adjusted type.
type TypeID uint32

// NoTypeID is the sentinel for "type unknown / not applicable".
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to a registered type.
func (id TypeID) IsValid() bool {
	return id != NoTypeID
}

// Family classifies a type for the guard matchers.
type Family uint8

const (
	// FamilyOther is any type the lint has no interest in.
	FamilyOther Family = iota
	// FamilyOption is "a value or its absence": nullary absent marker,
	// single-argument present constructor.
	FamilyOption
	// FamilyResult is "a value or a failure": single-argument success and
	// failure constructors, the failure one carrying a payload.
	FamilyResult
)

func (f Family) String() string {
	switch f {
	case FamilyOption:
		return "Option"
	case FamilyResult:
		return "Result"
	default:
		return "Other"
	}
}

// Info is everything the engine needs to know about one type.
//
// Try is the propagation capability: whether `?` applied to a value of this
// type is syntactically legal. A borrowed option (`&Option<T>`) keeps
// FamilyOption for matching purposes but has Try == false, which is exactly
// what the divergent-let matcher checks.
type Info struct {
	Name     string // display name for diagnostics
	Family   Family
	Copyable bool // trivially copyable; drives the .as_ref() qualifier
	Try      bool // supports the propagation operator
}
