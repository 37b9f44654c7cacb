package diag

import (
	"strings"
	"testing"
)

func sampleDiagnostic() Diagnostic {
	return Diagnostic{
		Stage:    StageSema,
		Severity: SeverityError,
		Code:     CodeUndefinedIdent,
		Message:  "use of undefined identifier 'y'",
		Span: Span{
			Filename: "main.sb",
			Line:     1,
			Column:   1,
			Start:    0,
			End:      1,
		},
	}
}

func TestFormatter_Format(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf)
	f.AddSource("main.sb", "y = 1\n")

	f.Format(sampleDiagnostic())
	out := buf.String()

	for _, want := range []string{
		"error[SEMA_UNDEFINED_IDENT]: use of undefined identifier 'y'",
		"--> main.sb:1:1",
		"1 | y = 1",
		"^",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatter_NotesAndHelp(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf)
	f.AddSource("main.sb", "y = 1\n")

	d := sampleDiagnostic().
		WithNote("identifiers must be declared with 'var'").
		WithHelp("declare it first: var y = 0")
	f.Format(d)
	out := buf.String()

	if !strings.Contains(out, "note: identifiers must be declared with 'var'") {
		t.Errorf("output missing note:\n%s", out)
	}
	if !strings.Contains(out, "help: declare it first: var y = 0") {
		t.Errorf("output missing help:\n%s", out)
	}
}

func TestFormatter_Summary(t *testing.T) {
	var buf strings.Builder
	f := NewFormatter(&buf)

	r := NewReporter()
	d := sampleDiagnostic()
	d.Span = Span{}
	r.Report(d)
	warn := d
	warn.Severity = SeverityWarning
	warn.Code = CodeUnusedLValue
	r.Report(warn)

	f.FormatAll(r)
	if !strings.Contains(buf.String(), "1 error(s), 1 warning(s)") {
		t.Errorf("missing summary:\n%s", buf.String())
	}
}

func TestReporter_Counts(t *testing.T) {
	r := NewReporter()
	if r.HasErrors() || r.Len() != 0 {
		t.Fatal("fresh reporter must be empty")
	}

	d := sampleDiagnostic()
	r.Report(d)
	d.Severity = SeverityWarning
	r.Report(d)

	if !r.HasErrors() {
		t.Error("expected HasErrors after an error report")
	}
	if r.ErrorCount() != 1 || r.WarningCount() != 1 || r.Len() != 2 {
		t.Errorf("counts = %d errors, %d warnings, %d total",
			r.ErrorCount(), r.WarningCount(), r.Len())
	}
}
