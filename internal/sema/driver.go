package sema

import (
	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
)

// Check type-checks a parsed compilation unit in place and advances it to
// the checked stage.
//
// Checking runs in two passes. The pre-pass walks the whole tree once,
// collecting every function literal in encounter order and folding every
// flat operator sequence, including those buried inside unchecked function
// bodies. The main pass then checks top-level code with no function
// context, followed by each collected function: signature first, then body.
// Nested functions were collected by the same walk, so their bodies are
// checked after their enclosing function's.
//
// All semantic failures are expressed as diagnostics on the reporter. The
// returned error reports structural inconsistency in the checked tree, not
// user-facing problems.
func Check(unit *ast.Unit, reporter *diag.Reporter) error {
	tc := NewChecker(unit, reporter)

	var funcs []*ast.FuncExpr
	ast.RewriteExprs(unit,
		func(e ast.Expr) bool {
			if fe, ok := e.(*ast.FuncExpr); ok {
				funcs = append(funcs, fe)
			}
			return true
		},
		func(e ast.Expr) ast.Expr {
			if seq, ok := e.(*ast.SequenceExpr); ok {
				return tc.FoldSequence(seq)
			}
			return e
		},
	)

	top := &stmtChecker{tc: tc}
	top.checkBrace(unit.Body)

	for _, fe := range funcs {
		tc.CheckFuncSignature(fe)
		body := &stmtChecker{tc: tc, fn: fe}
		fe.Body = body.checkBrace(fe.Body)
	}

	unit.Stage = ast.StageChecked
	return Verify(unit)
}
