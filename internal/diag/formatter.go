package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter renders diagnostics with source code snippets.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string // cache of source files by filename
}

// NewFormatter creates a formatter writing to out. A nil out defaults to stderr.
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = os.Stderr
	}
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers in-memory source content for a filename, bypassing the
// filesystem. Used by the REPL and by tests.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// loadSource loads source code for a file (cached).
func (f *Formatter) loadSource(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("no filename")
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if d.Span.IsValid() {
		if src, err := f.loadSource(d.Span.Filename); err == nil {
			f.printSnippet(src, d.Span)
		} else if d.Span.Filename != "" {
			fmt.Fprintf(f.out, "  --> %s\n", d.Span)
		}
	}

	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "  help: %s\n", d.Help)
	}
}

// FormatAll renders every diagnostic in the reporter followed by a summary line.
func (f *Formatter) FormatAll(r *Reporter) {
	for _, d := range r.Diagnostics() {
		f.Format(d)
	}
	if r.ErrorCount() > 0 {
		fmt.Fprintf(f.out, "\n%d error(s)", r.ErrorCount())
		if r.WarningCount() > 0 {
			fmt.Fprintf(f.out, ", %d warning(s)", r.WarningCount())
		}
		fmt.Fprintln(f.out)
	} else if r.WarningCount() > 0 {
		fmt.Fprintf(f.out, "\n%d warning(s)\n", r.WarningCount())
	}
}

// printHeader prints the error header (severity[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}
	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

// printSnippet prints the offending source line with a caret underline.
func (f *Formatter) printSnippet(src string, span Span) {
	lines := strings.Split(src, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		return
	}
	lineContent := lines[span.Line-1]
	lineNum := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(lineNum))

	fmt.Fprintf(f.out, "  --> %s\n", span)
	fmt.Fprintf(f.out, " %s |\n", pad)
	fmt.Fprintf(f.out, " %s | %s\n", lineNum, lineContent)

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	col := span.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(lineContent) {
		col = len(lineContent)
	}
	if col+width > len(lineContent) {
		width = len(lineContent) - col
		if width < 1 {
			width = 1
		}
	}
	fmt.Fprintf(f.out, " %s | %s%s\n", pad, strings.Repeat(" ", col), strings.Repeat("^", width))
	fmt.Fprintf(f.out, " %s |\n", pad)
}
