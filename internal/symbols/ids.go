package symbols

// SymbolID identifies a resolved local binding. The frontend assigns IDs
// during name resolution; two expressions refer to the same binding iff
// their resolutions carry the same SymbolID. Identity comparison (never
// structural) is what backs the engine's "same origin value" verdict.
type SymbolID uint32

// NoSymbolID is the sentinel for "not resolved to a local binding".
const NoSymbolID SymbolID = 0

// IsValid reports whether the ID refers to an actual binding.
func (id SymbolID) IsValid() bool {
	return id != NoSymbolID
}
