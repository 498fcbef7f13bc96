package diag

import "sort"

// Bag collects diagnostics with an optional cap. limit <= 0 means unbounded.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

func (b *Bag) Add(d Diagnostic) {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return
	}
	b.items = append(b.items, d)
}

func (b *Bag) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		b.Add(d)
	}
}

// Merge moves everything from other into b, respecting b's cap.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.AddAll(other.items)
	b.dropped += other.dropped
}

func (b *Bag) Items() []Diagnostic { return b.items }
func (b *Bag) Len() int            { return len(b.items) }
func (b *Bag) Dropped() int        { return b.dropped }

func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by file, then start offset, then code. Stable so
// same-span diagnostics keep report order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Primary.File != c.Primary.File {
			return a.Primary.File < c.Primary.File
		}
		if a.Primary.Start != c.Primary.Start {
			return a.Primary.Start < c.Primary.Start
		}
		return a.Code < c.Code
	})
}

// Dedup removes exact duplicates (same code, span and message). Call after
// Sort.
func (b *Bag) Dedup() {
	if len(b.items) < 2 {
		return
	}
	out := b.items[:1]
	for _, d := range b.items[1:] {
		last := out[len(out)-1]
		if d.Code == last.Code && d.Primary == last.Primary && d.Message == last.Message {
			continue
		}
		out = append(out, d)
	}
	b.items = out
}
