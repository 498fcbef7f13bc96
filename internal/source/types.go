package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, artifact).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// AllowRange marks a region of a file where a named lint is switched off.
// Ranges are resolved by the frontend and arrive through the module artifact;
// this package only answers containment queries.
type AllowRange struct {
	Lint string
	Span Span
}

// File captures metadata and content for a single source file.
//
// Comments holds the spans of every source-level comment in the file, in
// ascending start order. The lint engine consults them to refuse rewrites
// that would silently drop a comment.
type File struct {
	ID       FileID
	Path     string
	Content  []byte
	LineIdx  []uint32
	Hash     [32]byte
	Flags    FileFlags
	Comments []Span
	Allows   []AllowRange
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
