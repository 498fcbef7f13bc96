package source

// Snippet returns the literal source text covered by span.
// The boolean result is false when the text cannot be reproduced exactly
// (unknown file or span out of range).
func (fileSet *FileSet) Snippet(span Span) (string, bool) {
	f := fileSet.Get(span.File)
	if f == nil {
		return "", false
	}
	if span.Start > span.End || int(span.End) > len(f.Content) {
		return "", false
	}
	return string(f.Content[span.Start:span.End]), true
}

// SnippetOr returns the literal source text for span, or fallback when the
// text cannot be reproduced exactly. In the fallback case degrade is invoked
// once so the caller can lower the confidence of whatever it is building
// from the snippet.
func (fileSet *FileSet) SnippetOr(span Span, fallback string, degrade func()) string {
	if s, ok := fileSet.Snippet(span); ok {
		return s
	}
	if degrade != nil {
		degrade()
	}
	return fallback
}
