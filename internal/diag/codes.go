package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier with a stable string form.
type Code uint16

const (
	// UnknownCode — на первое время
	UnknownCode Code = 0

	// Artifact loading (1000-1999)
	ArtInfo            Code = 1000
	ArtSchemaMismatch  Code = 1001
	ArtCorruptPayload  Code = 1002
	ArtMissingFile     Code = 1003
	ArtDanglingRef     Code = 1004
	ArtTypeOutOfRange  Code = 1005
	ArtSpanOutOfRange  Code = 1006

	// Lints (2000-2999)
	LintInfo             Code = 2000
	LintQuestionMark     Code = 2001
	LintQuestionMarkUsed Code = 2002

	// Observability (9000-9999)
	ObsTimings Code = 9000
)

// QuestionMarkLintName is the name used by allow-directives to switch the
// question-mark lint off at a location.
const QuestionMarkLintName = "question-mark"

// QuestionMarkUsedLintName marks regions where the frontend forbids the `?`
// operator outright; suggesting it there would only create a conflict.
const QuestionMarkUsedLintName = "question-mark-used"

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	ArtInfo:           "artifact info",
	ArtSchemaMismatch: "artifact schema version mismatch",
	ArtCorruptPayload: "artifact payload is corrupt",
	ArtMissingFile:    "artifact references a missing file",
	ArtDanglingRef:    "artifact contains a dangling node reference",
	ArtTypeOutOfRange: "artifact type id out of range",
	ArtSpanOutOfRange: "artifact span out of range",

	LintInfo:             "lint info",
	LintQuestionMark:     "guard block may be rewritten with the `?` operator",
	LintQuestionMarkUsed: "the `?` operator is forbidden here",

	ObsTimings: "pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ART%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
