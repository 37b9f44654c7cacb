package sema

import (
	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/types"
)

// CheckIgnoredExpr flags statement-position expressions whose value is
// silently discarded and whose discard is almost certainly a bug: a bare
// l-value reference, and a function value that is never called. Other
// discarded values (arithmetic results, call results) pass without comment.
// Diagnostics only; the expression itself already checked successfully.
func (c *Checker) CheckIgnoredExpr(e ast.Expr) {
	t := e.Type()
	if t == nil {
		return
	}

	if types.IsLValue(t) {
		c.Diagnose(e.Span(), diag.SeverityWarning, diag.CodeUnusedLValue,
			"expression resolves to an unused l-value")
		return
	}
	if _, isFunc := t.(*types.Func); isFunc {
		c.Diagnose(e.Span(), diag.SeverityWarning, diag.CodeUnusedFuncValue,
			"function value is unused; did you mean to call it?")
	}
}
