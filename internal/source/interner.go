package source

// StringID indexes a string inside an Interner. The zero value is the empty
// string so payloads can leave name fields unset.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates strings. The module artifact stores every name
// (bindings, methods, type displays) once and references it by StringID.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern вставляет строку и возвращает её ID; повторная вставка дешёвая.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Собственная копия строки, чтобы не держать исходный буфер.
	cpy := string([]byte(s))
	id := StringID(len(i.byID)) //nolint:gosec // table size bounded by uint32 ids
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup возвращает строку по ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// Table returns the backing slice, index-addressable by StringID.
func (i *Interner) Table() []string {
	return i.byID
}

// FromTable rebuilds an Interner from a decoded string table.
func FromTable(table []string) *Interner {
	in := &Interner{
		byID:  table,
		index: make(map[string]StringID, len(table)),
	}
	if len(in.byID) == 0 {
		in.byID = []string{""}
	}
	for idx, s := range in.byID {
		in.index[s] = StringID(idx) //nolint:gosec // table size bounded by uint32 ids
	}
	return in
}
