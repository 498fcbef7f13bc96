// Package question detects guard idioms that are exactly equivalent to the
// `?` propagation operator and suggests the rewrite.
//
// Three independent shapes are recognised, all sharing one return-chain
// resolver:
//
//   - method guard: `if v.is_none() { return None }` and the result-family
//     twin `if v.is_err() { return v }`, optionally with an else arm equal to
//     the receiver (rewritten to `Some(v?)` / `Ok(v?)`);
//   - destructure guard: `if let Some(x) = v { x } else { return None }` and
//     its Ok/Err counterparts;
//   - divergent let: `let Some(x) = v else { return None };`.
//
// Equivalence is proven, not approximated: the resolver follows return
// statements and block tails to the branch's terminal expression and demands
// either the family's canonical failure marker (with matching failure payload
// for results) or the very binding the guard inspected. Try blocks establish
// their own propagation scope, so a per-body depth counter (Tracker) silences
// all matchers inside them; const bodies and const blocks are skipped because
// the operator is not legal there at all.
//
// Matches surface as diag.Diagnostics carrying a single-edit rewrite whose
// applicability reflects the evidence: exact rewrites are always safe,
// snippet degradation lowers them one tier, and ownership-shifting or
// type-inference-dependent rewrites are flagged for manual review.
package question
