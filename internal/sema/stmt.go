package sema

import (
	"fmt"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/types"
)

// stmtChecker type-checks statements within one function context. fn is nil
// when checking top-level code.
type stmtChecker struct {
	tc ExprChecker
	fn *ast.FuncExpr
}

// checkStmt dispatches on the statement kind. On success the returned
// statement supersedes s in the owning slot. Failure means diagnostics have
// been emitted; the caller decides how to recover.
func (sc *stmtChecker) checkStmt(s ast.Stmt) (ast.Stmt, bool) {
	switch st := s.(type) {
	case *ast.ErrorStmt:
		return st, true

	case *ast.SemiStmt:
		return st, true

	case *ast.BraceStmt:
		return sc.checkBrace(st), true

	case *ast.AssignStmt:
		return sc.checkAssign(st)

	case *ast.ReturnStmt:
		return sc.checkReturn(st)

	case *ast.IfStmt:
		return sc.checkIf(st)

	case *ast.WhileStmt:
		return sc.checkWhile(st)

	default:
		panic(fmt.Sprintf("sema: unhandled statement kind %T", s))
	}
}

// checkAssign checks the destination first. A non-l-value destination is
// diagnosed but is not itself fatal: the source is still checked against the
// destination's type, and the statement fails only if a sub-expression does.
func (sc *stmtChecker) checkAssign(st *ast.AssignStmt) (ast.Stmt, bool) {
	dest, ok := sc.tc.CheckExpr(st.Dest, nil)
	if !ok {
		return nil, false
	}
	st.Dest = dest

	srcExpected := dest.Type()
	if lv, isLV := srcExpected.(*types.LValue); isLV {
		srcExpected = lv.Object
	} else {
		sc.tc.Diagnose(dest.Span(), diag.SeverityError, diag.CodeAssignNotLValue,
			"cannot assign to immutable expression of type '"+srcExpected.String()+"'")
	}

	src, ok := sc.tc.CheckExpr(st.Src, srcExpected)
	if !ok {
		return nil, false
	}
	st.Src = src
	return st, true
}

// checkBrace checks each element of a block in place. The block is the
// recovery boundary: a failed element is left as it was and checking moves
// on to the next one. The element count never changes.
func (sc *stmtChecker) checkBrace(bs *ast.BraceStmt) *ast.BraceStmt {
	for i := range bs.Elements {
		el := &bs.Elements[i]
		switch {
		case el.Expr != nil:
			// A root that already carries a type was checked on an
			// earlier pass; the lint fired then.
			firstCheck := el.Expr.Type() == nil
			checked, ok := sc.tc.CheckExpr(el.Expr, nil)
			if !ok {
				continue
			}
			if firstCheck {
				sc.tc.CheckIgnoredExpr(checked)
			}
			el.Expr = checked

		case el.Stmt != nil:
			checked, ok := sc.checkStmt(el.Stmt)
			if !ok {
				continue
			}
			el.Stmt = checked

		case el.Decl != nil:
			sc.tc.CheckVarDecl(el.Decl)
		}
	}
	return bs
}

func (sc *stmtChecker) checkReturn(st *ast.ReturnStmt) (ast.Stmt, bool) {
	if sc.fn == nil {
		sc.tc.Diagnose(st.Span(), diag.SeverityError, diag.CodeReturnOutsideFunc,
			"'return' outside of a function")
		return nil, false
	}

	result := sc.fn.ResultType()
	if st.Result == nil {
		if !types.Identical(result, types.Void) {
			sc.tc.Diagnose(st.Span(), diag.SeverityError, diag.CodeTypeMismatch,
				"missing return value in function returning '"+result.String()+"'")
			return nil, false
		}
		return st, true
	}

	checked, ok := sc.tc.CheckExpr(st.Result, result)
	if !ok {
		return nil, false
	}
	st.Result = checked
	return st, true
}

// checkCondition type-checks a control-flow condition against the boolean
// type, so l-value loads and literal retyping apply. The branch bodies are
// only reached once the condition checks.
func (sc *stmtChecker) checkCondition(e ast.Expr) (ast.Expr, bool) {
	return sc.tc.CheckExpr(e, types.Bool)
}

func (sc *stmtChecker) checkIf(st *ast.IfStmt) (ast.Stmt, bool) {
	cond, ok := sc.checkCondition(st.Cond)
	if !ok {
		return nil, false
	}
	st.Cond = cond

	then, ok := sc.checkStmt(st.Then)
	if !ok {
		return nil, false
	}
	st.Then = then

	if st.Else != nil {
		els, ok := sc.checkStmt(st.Else)
		if !ok {
			return nil, false
		}
		st.Else = els
	}
	return st, true
}

func (sc *stmtChecker) checkWhile(st *ast.WhileStmt) (ast.Stmt, bool) {
	cond, ok := sc.checkCondition(st.Cond)
	if !ok {
		return nil, false
	}
	st.Cond = cond

	body, ok := sc.checkStmt(st.Body)
	if !ok {
		return nil, false
	}
	st.Body = body
	return st, true
}
