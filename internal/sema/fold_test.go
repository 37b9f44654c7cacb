package sema

import (
	"testing"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser"
)

// foldSource parses src as a single expression element, folds it, and
// returns the folded tree.
func foldSource(t *testing.T, src string) (ast.Expr, *diag.Reporter) {
	t.Helper()
	reporter := diag.NewReporter()
	unit := parser.New("fold.sb", src, reporter).ParseUnit()
	if reporter.Len() != 0 {
		t.Fatalf("expected a clean parse, got %d diagnostics", reporter.Len())
	}
	expr := unit.Body.Elements[0].Expr
	seq, ok := expr.(*ast.SequenceExpr)
	if !ok {
		t.Fatalf("expected a sequence expression, got %T", expr)
	}
	tc := NewChecker(unit, reporter)
	return tc.FoldSequence(seq), reporter
}

// render prints a folded tree in fully parenthesized form for shape
// comparison.
func render(e ast.Expr) string {
	switch ex := e.(type) {
	case *ast.InfixExpr:
		return "(" + render(ex.Left) + " " + string(ex.Op) + " " + render(ex.Right) + ")"
	case *ast.IntegerLit:
		return ex.Text
	case *ast.Ident:
		return ex.Name
	default:
		return "?"
	}
}

func TestFoldSequence_Shapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "(1 + 2)"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"1 + 2 * 3 - 4", "((1 + (2 * 3)) - 4)"},
		{"1 < 2 && 3 < 4", "((1 < 2) && (3 < 4))"},
		{"1 < 2 && 3 < 4 || 5 < 6", "(((1 < 2) && (3 < 4)) || (5 < 6))"},
		{"1 + 2 < 3 * 4", "((1 + 2) < (3 * 4))"},
		{"1 % 2 / 3", "((1 % 2) / 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			folded, reporter := foldSource(t, tt.input)
			if reporter.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %d", reporter.Len())
			}
			if got := render(folded); got != tt.want {
				t.Errorf("fold(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldSequence_SingleOperand(t *testing.T) {
	reporter := diag.NewReporter()
	tc := NewChecker(&ast.Unit{}, reporter)

	lit := &ast.IntegerLit{Text: "7", Value: 7}
	folded := tc.FoldSequence(&ast.SequenceExpr{Elements: []ast.Expr{lit}})

	if folded != ast.Expr(lit) {
		t.Errorf("expected the lone operand back, got %T", folded)
	}
	if reporter.Len() != 0 {
		t.Errorf("expected no diagnostics, got %d", reporter.Len())
	}
}

func TestFoldSequence_MalformedNeverFails(t *testing.T) {
	lit := func(text string) *ast.IntegerLit { return &ast.IntegerLit{Text: text} }
	op := func(tok lexer.TokenType) *ast.OperatorRef { return &ast.OperatorRef{Op: tok} }

	tests := []struct {
		name  string
		elems []ast.Expr
	}{
		{"trailing operator", []ast.Expr{lit("1"), op(lexer.PLUS)}},
		{"adjacent operators", []ast.Expr{lit("1"), op(lexer.PLUS), op(lexer.PLUS), lit("2"), lit("3")}},
		{"operator first", []ast.Expr{op(lexer.PLUS), lit("1"), lit("2")}},
		{"operators only", []ast.Expr{op(lexer.PLUS), op(lexer.MINUS), op(lexer.ASTERISK)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := diag.NewReporter()
			tc := NewChecker(&ast.Unit{}, reporter)

			folded := tc.FoldSequence(&ast.SequenceExpr{Elements: tt.elems})
			if folded == nil {
				t.Fatal("fold must always produce an expression")
			}
			if _, isSeq := folded.(*ast.SequenceExpr); isSeq {
				t.Error("fold must not leave a sequence behind")
			}
			if reporter.ErrorCount() == 0 {
				t.Error("expected a malformed-sequence diagnostic")
			}
		})
	}
}
