// Package ir defines the resolved mid-level tree the lint passes walk.
//
// The tree is produced by decoding a frontend artifact (internal/artifact):
// names are already resolved (see Res), every expression carries the TypeID
// the frontend inferred for it, and sugar relevant to lints is preserved
// (if-let, let-else, the try operator, const blocks). The tree is
// deliberately lossy everywhere else: expressions the lints never inspect
// decode as ExprOpaque with nothing but a span and a type.
//
// All nodes are immutable after decoding. Spans are byte ranges into the
// files registered in the accompanying source.FileSet.
package ir
