package question

import "fmt"

// Tracker counts, per function body, how many propagation-suppressing
// regions (try blocks) enclose the current traversal position. Bodies cannot
// overlap, so the per-body counters form a stack. All queries are O(1).
//
// The traversal contract is strict: every EnterBody must be paired with an
// ExitBody and every EnterRegion with an ExitRegion, in LIFO order. A broken
// pairing means the host walked the tree wrong, so Tracker panics rather than
// carrying a silently wrong depth into lint decisions.
type Tracker struct {
	depths []uint32
}

// EnterBody pushes a fresh counter for a function body.
func (t *Tracker) EnterBody() {
	t.depths = append(t.depths, 0)
}

// ExitBody pops the current body's counter.
func (t *Tracker) ExitBody() {
	n := len(t.depths)
	if n == 0 {
		panic("question: ExitBody without matching EnterBody")
	}
	if d := t.depths[n-1]; d != 0 {
		panic(fmt.Sprintf("question: ExitBody with %d unclosed suppression regions", d))
	}
	t.depths = t.depths[:n-1]
}

// EnterRegion records entry into a suppression region of the current body.
func (t *Tracker) EnterRegion() {
	n := len(t.depths)
	if n == 0 {
		panic("question: EnterRegion outside any body")
	}
	t.depths[n-1]++
}

// ExitRegion records leaving the innermost suppression region.
func (t *Tracker) ExitRegion() {
	n := len(t.depths)
	if n == 0 {
		panic("question: ExitRegion outside any body")
	}
	if t.depths[n-1] == 0 {
		panic("question: ExitRegion without matching EnterRegion")
	}
	t.depths[n-1]--
}

// Suppressed reports whether the current position sits inside at least one
// suppression region of the current body.
func (t *Tracker) Suppressed() bool {
	n := len(t.depths)
	return n > 0 && t.depths[n-1] > 0
}
