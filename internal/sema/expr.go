package sema

import (
	"strconv"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/types"
)

// CheckExpr resolves the type of e. When expected is non-nil the result is
// additionally converted to it. The returned expression supersedes e in the
// caller's slot on success. Checking an already-checked expression is a
// no-op that re-derives the same result.
func (c *Checker) CheckExpr(e ast.Expr, expected types.Type) (ast.Expr, bool) {
	checked, ok := c.typeOf(e)
	if !ok {
		return nil, false
	}
	if expected == nil {
		return checked, true
	}
	return c.ConvertToType(checked, expected)
}

func (c *Checker) typeOf(e ast.Expr) (ast.Expr, bool) {
	switch ex := e.(type) {
	case *ast.IntegerLit:
		if ex.Type() == nil {
			ex.SetType(types.Int64)
		}
		return ex, true

	case *ast.Ident:
		if ex.Type() != nil {
			return ex, true
		}
		if ex.Decl == nil {
			c.errorf(ex.Span(), diag.CodeUndefinedIdent, "use of undefined identifier '"+ex.Name+"'")
			return nil, false
		}
		ex.SetType(&types.LValue{Object: c.declType(ex.Decl)})
		return ex, true

	case *ast.ConvertExpr:
		return ex, true

	case *ast.InfixExpr:
		return c.checkInfix(ex)

	case *ast.CallExpr:
		return c.checkCall(ex)

	case *ast.FuncExpr:
		c.CheckFuncSignature(ex)
		return ex, true

	case *ast.SequenceExpr:
		folded := c.FoldSequence(ex)
		return c.typeOf(folded)

	case *ast.OperatorRef:
		c.errorf(ex.Span(), diag.CodeMalformedSequence, "operator '"+string(ex.Op)+"' used as a value")
		return nil, false

	default:
		c.errorf(e.Span(), diag.CodeTypeMismatch, "expression cannot be type checked")
		return nil, false
	}
}

// checkInfix assigns operand and result types for a folded binary operator.
// Arithmetic and comparison operands are Int, logical operands are Bool.
func (c *Checker) checkInfix(ex *ast.InfixExpr) (ast.Expr, bool) {
	if ex.Type() != nil {
		return ex, true
	}

	operand := types.Type(types.Int64)
	result := types.Type(types.Int64)
	switch ex.Op {
	case lexer.AND, lexer.OR:
		operand = types.Bool
		result = types.Bool
	case lexer.EQ, lexer.NOT_EQ, lexer.LT, lexer.GT, lexer.LE, lexer.GE:
		result = types.Bool
	}

	left, ok := c.CheckExpr(ex.Left, operand)
	if !ok {
		return nil, false
	}
	right, ok := c.CheckExpr(ex.Right, operand)
	if !ok {
		return nil, false
	}
	ex.Left = left
	ex.Right = right
	ex.SetType(result)
	return ex, true
}

// checkCall checks the callee, requires a function type, and checks each
// argument against the corresponding parameter type.
func (c *Checker) checkCall(ex *ast.CallExpr) (ast.Expr, bool) {
	if ex.Type() != nil {
		return ex, true
	}

	callee, ok := c.CheckExpr(ex.Callee, nil)
	if !ok {
		return nil, false
	}
	if types.IsLValue(callee.Type()) {
		callee, ok = c.ConvertToType(callee, types.Deref(callee.Type()))
		if !ok {
			return nil, false
		}
	}
	ex.Callee = callee

	fn, ok := callee.Type().(*types.Func)
	if !ok {
		c.errorf(ex.Callee.Span(), diag.CodeNotCallable,
			"cannot call a value of type '"+callee.Type().String()+"'")
		return nil, false
	}
	if len(ex.Args) != len(fn.Params) {
		c.errorf(ex.Span(), diag.CodeArityMismatch,
			"call expects "+strconv.Itoa(len(fn.Params))+" argument(s), found "+strconv.Itoa(len(ex.Args)))
		return nil, false
	}
	for i, arg := range ex.Args {
		checked, ok := c.CheckExpr(arg, fn.Params[i])
		if !ok {
			return nil, false
		}
		ex.Args[i] = checked
	}
	ex.SetType(fn.Result)
	return ex, true
}

// ConvertToType applies an implicit conversion of a checked expression to
// target. Supported conversions are identity, l-value load, and integer
// literal retyping. Anything else is a mismatch.
func (c *Checker) ConvertToType(e ast.Expr, target types.Type) (ast.Expr, bool) {
	have := e.Type()
	if types.Identical(have, target) {
		return e, true
	}

	if lv, ok := have.(*types.LValue); ok {
		if types.Identical(lv.Object, target) {
			return ast.NewConvertExpr(e, target), true
		}
		have = lv.Object
	}

	if lit, ok := e.(*ast.IntegerLit); ok {
		if bt, ok := target.(*types.Builtin); ok && fitsWidth(lit.Value, bt.Width) {
			lit.SetType(bt)
			return lit, true
		}
	}

	c.errorf(e.Span(), diag.CodeTypeMismatch,
		"cannot convert value of type '"+have.String()+"' to '"+target.String()+"'")
	return nil, false
}

func fitsWidth(v int64, width int) bool {
	if width >= 64 {
		return true
	}
	limit := int64(1) << (width - 1)
	if width == 1 {
		return v == 0 || v == 1
	}
	return v >= -limit && v < limit
}
