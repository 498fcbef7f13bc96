package ir

import "trylint/internal/source"

// Func is a function body as delivered by the frontend.
type Func struct {
	Name string
	Span source.Span
	// Const marks bodies evaluated at compile time, where the propagation
	// operator is categorically disallowed.
	Const bool
	Body  *Block
}

// Module is the root of a decoded artifact's code section.
type Module struct {
	Name  string
	Funcs []*Func
}
