package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
	StageSema   Stage = "sema"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Parser errors
	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseExpectedExpr    Code = "PARSE_EXPECTED_EXPR"

	// Semantic analysis errors
	CodeUndefinedIdent    Code = "SEMA_UNDEFINED_IDENT"
	CodeUnknownType       Code = "SEMA_UNKNOWN_TYPE"
	CodeTypeMismatch      Code = "SEMA_TYPE_MISMATCH"
	CodeAssignNotLValue   Code = "SEMA_ASSIGN_NOT_LVALUE"
	CodeReturnOutsideFunc Code = "SEMA_RETURN_OUTSIDE_FUNC"
	CodeUnusedLValue      Code = "SEMA_UNUSED_LVALUE"
	CodeUnusedFuncValue   Code = "SEMA_UNUSED_FUNC_VALUE"
	CodeNotCallable       Code = "SEMA_NOT_CALLABLE"
	CodeArityMismatch     Code = "SEMA_ARITY_MISMATCH"
	CodeMalformedSequence Code = "SEMA_MALFORMED_SEQUENCE"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Notes    []string // additional notes to display
	Help     string   // optional help text for fixing the problem
}

// WithNote returns a copy of the diagnostic with a note appended.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp returns a copy of the diagnostic with help text attached.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
