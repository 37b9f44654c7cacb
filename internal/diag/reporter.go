package diag

// Reporter accumulates diagnostics during a compilation pass.
//
// The reporter is write-only from the perspective of the passes that feed it:
// emitting a diagnostic never changes control flow, and passes must not branch
// on its contents. Callers inspect the accumulated diagnostics after a pass
// completes.
type Reporter struct {
	diagnostics []Diagnostic
	errorCount  int
	warnCount   int
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report appends a diagnostic.
func (r *Reporter) Report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
	switch d.Severity {
	case SeverityError:
		r.errorCount++
	case SeverityWarning:
		r.warnCount++
	}
}

// Diagnostics returns the accumulated diagnostics in emission order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// HasErrors returns true if any error-severity diagnostic was reported.
func (r *Reporter) HasErrors() bool {
	return r.errorCount > 0
}

// ErrorCount returns the number of error-severity diagnostics.
func (r *Reporter) ErrorCount() int {
	return r.errorCount
}

// WarningCount returns the number of warning-severity diagnostics.
func (r *Reporter) WarningCount() int {
	return r.warnCount
}

// Len returns the total number of diagnostics reported so far.
func (r *Reporter) Len() int {
	return len(r.diagnostics)
}
