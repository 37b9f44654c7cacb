package sema

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/parser"
	"github.com/sable-lang/sable/internal/types"
)

// checkSource parses and checks src, requiring the parse itself to be clean.
func checkSource(t *testing.T, src string) (*ast.Unit, *diag.Reporter) {
	t.Helper()
	reporter := diag.NewReporter()
	unit := parser.New("test.sb", src, reporter).ParseUnit()
	if reporter.Len() != 0 {
		for _, d := range reporter.Diagnostics() {
			t.Logf("parse: %s: %s", d.Code, d.Message)
		}
		t.Fatalf("expected a clean parse, got %d diagnostics", reporter.Len())
	}
	err := Check(unit, reporter)
	be.Err(t, err, nil)
	return unit, reporter
}

func semaCodes(r *diag.Reporter, severity diag.Severity) []diag.Code {
	var codes []diag.Code
	for _, d := range r.Diagnostics() {
		if d.Severity == severity {
			codes = append(codes, d.Code)
		}
	}
	return codes
}

func TestCheckStmt_ErrorAndSemiAreIdentity(t *testing.T) {
	reporter := diag.NewReporter()
	sc := &stmtChecker{tc: NewChecker(&ast.Unit{}, reporter)}

	errStmt := &ast.ErrorStmt{}
	got, ok := sc.checkStmt(errStmt)
	be.True(t, ok)
	be.Equal(t, got, ast.Stmt(errStmt))

	semi := &ast.SemiStmt{}
	got, ok = sc.checkStmt(semi)
	be.True(t, ok)
	be.Equal(t, got, ast.Stmt(semi))

	be.Equal(t, reporter.Len(), 0)
}

func TestAssign_Simple(t *testing.T) {
	_, reporter := checkSource(t, `
var x = 1
x = 2
`)
	be.Equal(t, reporter.Len(), 0)
}

func TestAssign_NotLValueStillChecksSource(t *testing.T) {
	// The destination diagnostic must not suppress errors in the source
	// operand.
	_, reporter := checkSource(t, `1 = y`)

	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 2)
	be.Equal(t, codes[0], diag.CodeAssignNotLValue)
	be.Equal(t, codes[1], diag.CodeUndefinedIdent)
}

func TestAssign_NotLValueIsNonFatal(t *testing.T) {
	// A bad destination is diagnosed, but the statement itself still
	// checks: only a failing sub-expression fails the node.
	reporter := diag.NewReporter()
	unit := parser.New("test.sb", "1 = 2", reporter).ParseUnit()
	be.Equal(t, reporter.Len(), 0)

	sc := &stmtChecker{tc: NewChecker(unit, reporter)}
	st := unit.Body.Elements[0].Stmt.(*ast.AssignStmt)
	got, ok := sc.checkStmt(st)
	be.True(t, ok)
	be.Equal(t, got, ast.Stmt(st))

	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeAssignNotLValue)
	be.True(t, st.Src.Type() != nil)
}

func TestAssign_NotLValueSourceCheckedAgainstDestType(t *testing.T) {
	// Even without an l-value destination, the source is checked against
	// the destination's type, so a mismatch there still surfaces.
	_, reporter := checkSource(t, `
var b: Bool = 0
1 = b
`)
	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 2)
	be.Equal(t, codes[0], diag.CodeAssignNotLValue)
	be.Equal(t, codes[1], diag.CodeTypeMismatch)
}

func TestAssign_SourceConvertedToDestType(t *testing.T) {
	_, reporter := checkSource(t, `
var b: Bool = 0
var x = 5
b = x
`)
	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeTypeMismatch)
}

func TestReturn_OutsideFunction(t *testing.T) {
	unit, reporter := checkSource(t, `return 1`)

	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeReturnOutsideFunc)

	// The failure is immediate: the result expression stays unchecked.
	ret := unit.Body.Elements[0].Stmt.(*ast.ReturnStmt)
	be.Equal(t, ret.Result.Type(), nil)
}

func TestReturn_MissingValue(t *testing.T) {
	_, reporter := checkSource(t, `var f = func() -> Int { return }`)

	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeTypeMismatch)
}

func TestReturn_ResultChecked(t *testing.T) {
	_, reporter := checkSource(t, `var f = func() -> Int { return 1 }`)
	be.Equal(t, reporter.Len(), 0)
}

func TestIf_CondFailureSkipsBranches(t *testing.T) {
	// y and z are both undefined, but only the condition is reported: a
	// failed condition short-circuits the whole statement.
	unit, reporter := checkSource(t, `
if y {
	z = 1
}
`)
	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeUndefinedIdent)

	ifStmt := unit.Body.Elements[0].Stmt.(*ast.IfStmt)
	inner := ifStmt.Then.(*ast.BraceStmt).Elements[0].Stmt.(*ast.AssignStmt)
	be.Equal(t, inner.Src.Type(), nil)
}

func TestIf_NonBoolCond(t *testing.T) {
	unit, reporter := checkSource(t, `
var x = 1
if x {
	x = 2
}
`)
	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeTypeMismatch)

	ifStmt := unit.Body.Elements[1].Stmt.(*ast.IfStmt)
	inner := ifStmt.Then.(*ast.BraceStmt).Elements[0].Stmt.(*ast.AssignStmt)
	be.Equal(t, inner.Src.Type(), nil)
}

func TestWhile_LiteralCondition(t *testing.T) {
	// The condition is checked against the boolean type, so a one-bit
	// literal retypes and the loop is accepted.
	unit, reporter := checkSource(t, `
var x = 0
while 1 {
	x = 2
}
`)
	be.Equal(t, reporter.Len(), 0)

	loop := unit.Body.Elements[1].Stmt.(*ast.WhileStmt)
	be.True(t, types.Identical(loop.Cond.Type(), types.Bool))
}

func TestIf_Else(t *testing.T) {
	_, reporter := checkSource(t, `
var x = 1
if x < 2 {
	x = 3
} else {
	x = 4
}
`)
	be.Equal(t, reporter.Len(), 0)
}

func TestWhile_CondConvertedToBool(t *testing.T) {
	unit, reporter := checkSource(t, `
var x = 0
while x < 10 {
	x = x + 1
}
`)
	be.Equal(t, reporter.Len(), 0)

	loop := unit.Body.Elements[1].Stmt.(*ast.WhileStmt)
	be.True(t, types.Identical(loop.Cond.Type(), types.Bool))
}

func TestBrace_RecoveryPreservesElements(t *testing.T) {
	// The failing middle element is left as it was; checking continues with
	// the next element and the element count never changes.
	unit, reporter := checkSource(t, `
var x = 1
z = 2
x = 3
`)
	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeUndefinedIdent)

	be.Equal(t, len(unit.Body.Elements), 3)

	last := unit.Body.Elements[2].Stmt.(*ast.AssignStmt)
	be.True(t, last.Dest.Type() != nil)
	be.True(t, last.Src.Type() != nil)
}

func TestIgnored_UnusedLValue(t *testing.T) {
	_, reporter := checkSource(t, `
var x = 1
x
`)
	be.Equal(t, reporter.ErrorCount(), 0)
	warnings := semaCodes(reporter, diag.SeverityWarning)
	be.Equal(t, len(warnings), 1)
	be.Equal(t, warnings[0], diag.CodeUnusedLValue)
}

func TestIgnored_UnusedFuncValue(t *testing.T) {
	_, reporter := checkSource(t, `func() {}`)

	be.Equal(t, reporter.ErrorCount(), 0)
	warnings := semaCodes(reporter, diag.SeverityWarning)
	be.Equal(t, len(warnings), 1)
	be.Equal(t, warnings[0], diag.CodeUnusedFuncValue)
}

func TestIgnored_CallResultPasses(t *testing.T) {
	_, reporter := checkSource(t, `
var f = func() -> Int { return 1 }
f()
`)
	be.Equal(t, reporter.Len(), 0)
}

func TestCall_Arity(t *testing.T) {
	_, reporter := checkSource(t, `
var f = func(a: Int) -> Int { return a }
f(1, 2)
`)
	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeArityMismatch)
}

func TestCall_NotCallable(t *testing.T) {
	_, reporter := checkSource(t, `
var x = 1
x()
`)
	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeNotCallable)
}

func TestVarDecl_UnknownType(t *testing.T) {
	_, reporter := checkSource(t, `var x: Quux`)

	codes := semaCodes(reporter, diag.SeverityError)
	be.Equal(t, len(codes), 1)
	be.Equal(t, codes[0], diag.CodeUnknownType)
}

func TestCheck_Idempotent(t *testing.T) {
	src := `
var x = 1
var f = func(a: Int) -> Int { return a + 1 }
x = f(2)
if x < 3 {
	x = 0
} else {
	x = 1
}
while x < 2 {
	x = x + 1
}
`
	unit, reporter := checkSource(t, src)
	be.Equal(t, reporter.Len(), 0)

	// Re-checking a fully checked unit emits nothing new and succeeds.
	again := diag.NewReporter()
	err := Check(unit, again)
	be.Err(t, err, nil)
	be.Equal(t, again.Len(), 0)
}

func TestCheck_IdempotentAfterWarnings(t *testing.T) {
	// The discarded-value lint fires on the first check of an element
	// only; re-checking the tree must not repeat the warnings.
	unit, reporter := checkSource(t, `
var x = 1
x
`)
	be.Equal(t, reporter.WarningCount(), 1)

	again := diag.NewReporter()
	err := Check(unit, again)
	be.Err(t, err, nil)
	be.Equal(t, again.Len(), 0)
}
