package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"trylint/internal/diag"
	"trylint/internal/source"
)

// Pretty formats diagnostics for a terminal. Iterates bag.Items() (the bag
// is expected to be sorted); for each diagnostic prints
//
//	<path>:<line>:<col>: <sev>[CODE]: <message>
//
// followed by the source line with a caret underline, optional context
// lines, notes and fix suggestions.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... and %d more diagnostics (limit reached)\n", n)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func (p *prettyPrinter) path(span source.Span) (string, source.LineCol, bool) {
	f := p.fs.Get(span.File)
	if f == nil {
		return "", source.LineCol{}, false
	}
	start, _ := p.fs.Resolve(span)
	return f.FormatPath(p.opts.PathMode.formatMode(), p.fs.BaseDir()), start, true
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	head := strings.ToLower(d.Severity.String())
	if path, pos, ok := p.path(d.Primary); ok && !d.Primary.Empty() {
		fmt.Fprintf(p.w, "%s:%d:%d: %s[%s]: %s\n",
			path, pos.Line, pos.Col,
			p.paint(severityColor(d.Severity), head),
			p.paint(color.New(color.Bold), d.Code.ID()),
			d.Message)
		p.sourceBlock(d.Primary, d.Severity)
	} else {
		fmt.Fprintf(p.w, "%s[%s]: %s\n",
			p.paint(severityColor(d.Severity), head),
			p.paint(color.New(color.Bold), d.Code.ID()),
			d.Message)
	}

	if p.opts.ShowNotes {
		for _, note := range d.Notes {
			if path, pos, ok := p.path(note.Span); ok && !note.Span.Empty() {
				fmt.Fprintf(p.w, "  note: %s (%s:%d:%d)\n", note.Msg, path, pos.Line, pos.Col)
			} else {
				fmt.Fprintf(p.w, "  note: %s\n", note.Msg)
			}
		}
	}

	if p.opts.ShowFixes {
		ctx := diag.FixBuildContext{FileSet: p.fs}
		for _, fix := range sortFixes(d.Fixes) {
			resolved, err := resolveFix(ctx, fix)
			if err != nil {
				fmt.Fprintf(p.w, "  fix: %s (unavailable: %v)\n", fix.Title, err)
				continue
			}
			fmt.Fprintf(p.w, "  fix (%s): %s\n",
				p.paint(color.New(color.FgGreen), resolved.Applicability.String()),
				resolved.Title)
			if p.opts.ShowPreview {
				for _, edit := range resolved.Edits {
					preview, err := buildFixEditPreview(p.fs, edit)
					if err != nil {
						continue
					}
					for _, line := range preview.before {
						fmt.Fprintf(p.w, "    - %s\n", p.paint(color.New(color.FgRed), trimIndent(line)))
					}
					for _, line := range preview.after {
						fmt.Fprintf(p.w, "    + %s\n", p.paint(color.New(color.FgGreen), trimIndent(line)))
					}
				}
			}
		}
	}
}

// sourceBlock prints the primary line with surrounding context and a caret
// underline. Multi-line spans are underlined to the end of the first line.
func (p *prettyPrinter) sourceBlock(span source.Span, sev diag.Severity) {
	f := p.fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := p.fs.Resolve(span)

	first := start.Line
	if ctx := uint32(max(p.opts.Context, 0)); ctx < first-1 {
		first = start.Line - ctx
	} else {
		first = 1
	}
	last := start.Line + uint32(max(p.opts.Context, 0))

	gutter := len(fmt.Sprintf("%d", last))
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if text == "" && ln > start.Line {
			break
		}
		fmt.Fprintf(p.w, " %*d | %s\n", gutter, ln, text)
		if ln == start.Line {
			p.caretLine(gutter, text, start, end, sev)
		}
	}
}

func (p *prettyPrinter) caretLine(gutter int, line string, start, end source.LineCol, sev diag.Severity) {
	// Col is a 1-based byte offset within the line.
	startIdx := min(int(start.Col)-1, len(line))
	endIdx := len(line)
	if end.Line == start.Line {
		endIdx = min(int(end.Col)-1, len(line))
	}
	if endIdx < startIdx {
		endIdx = startIdx
	}

	// Display-width aware: wide runes occupy two caret columns, multi-byte
	// runes only as many as they render.
	pad := runewidth.StringWidth(line[:startIdx])
	width := runewidth.StringWidth(line[startIdx:endIdx])
	if width == 0 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(p.w, " %*s | %s%s\n", gutter, "", strings.Repeat(" ", pad),
		p.paint(severityColor(sev), marker))
}

// trimIndent collapses the leading indentation of a preview line so the
// -/+ lines align under the fix title instead of echoing source nesting.
func trimIndent(line string) string {
	return strings.TrimLeft(line, " \t")
}
