package diag

import "trylint/internal/source"

// Reporter is the sink every phase reports through.
type Reporter interface {
	Report(d Diagnostic) error
}

// ReportBuilder accumulates optional parts of a diagnostic before emitting it.
type ReportBuilder struct {
	r Reporter
	d Diagnostic
}

func ReportWith(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(sev, code, primary, msg)}
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	b.d = b.d.WithNote(sp, msg)
	return b
}

func (b *ReportBuilder) WithFix(fix Fix) *ReportBuilder {
	b.d = b.d.WithFixSuggestion(fix)
	return b
}

func (b *ReportBuilder) Emit() error {
	return b.r.Report(b.d)
}

// BagReporter appends into a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(d Diagnostic) error {
	r.Bag.Add(d)
	return nil
}
