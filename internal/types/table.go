package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Table is an append-only registry of type Info addressed by TypeID.
// Index 0 is reserved for NoTypeID.
type Table struct {
	data []Info
}

// NewTable creates a table with the NoTypeID sentinel pre-allocated.
func NewTable() *Table {
	return &Table{data: make([]Info, 1, 16)}
}

// Register adds a type and returns its ID.
func (t *Table) Register(info Info) TypeID {
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("types table overflow: %w", err))
	}
	t.data = append(t.data, info)
	return TypeID(value)
}

// Get returns the Info for id. Unknown ids (including NoTypeID) resolve to
// the zero Info: FamilyOther, no capabilities.
func (t *Table) Get(id TypeID) Info {
	if !id.IsValid() || int(id) >= len(t.data) {
		return Info{}
	}
	return t.data[id]
}

// Len reports the number of registered types excluding the sentinel.
func (t *Table) Len() int {
	return len(t.data) - 1
}

// All returns the backing slice including the sentinel at index 0.
// The artifact codec serialises it verbatim.
func (t *Table) All() []Info {
	return t.data
}

// FromSlice rebuilds a Table from a decoded slice. A missing sentinel slot
// is re-inserted so ids stay stable.
func FromSlice(data []Info) *Table {
	if len(data) == 0 {
		return NewTable()
	}
	return &Table{data: data}
}
