// Package sema implements semantic analysis for Sable: expression type
// checking, sequence folding, and the statement checker and translation
// driver that type-check a whole compilation unit in place.
package sema

import (
	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/types"
)

// ExprChecker is the expression type-check service the statement checker and
// the translation driver consume. *Checker is the production implementation;
// the interface is the seam tests use to substitute failures.
type ExprChecker interface {
	// CheckExpr resolves the type of e, converting toward expected when it
	// is non-nil. On success the returned expression supersedes e in the
	// caller's slot. Failure means e could not be checked; a diagnostic has
	// already been emitted.
	CheckExpr(e ast.Expr, expected types.Type) (ast.Expr, bool)

	// ConvertToType applies an implicit conversion of a checked expression
	// to the target type.
	ConvertToType(e ast.Expr, target types.Type) (ast.Expr, bool)

	// FoldSequence resolves operator precedence in a flat sequence
	// expression. It never fails: malformed sequences degrade to a
	// best-effort shape plus diagnostics.
	FoldSequence(seq *ast.SequenceExpr) ast.Expr

	// CheckFuncSignature finalizes a function's parameter and result types.
	CheckFuncSignature(fe *ast.FuncExpr)

	// CheckVarDecl checks a declaration found inside a block. The
	// declaration mutates itself; there is no result to write back.
	CheckVarDecl(d *ast.VarDecl)

	// CheckIgnoredExpr flags a statement-position expression whose value is
	// silently discarded. Diagnostics only; never affects control flow.
	CheckIgnoredExpr(e ast.Expr)

	// Diagnose emits a structured diagnostic.
	Diagnose(span lexer.Span, severity diag.Severity, code diag.Code, msg string)
}

// Checker implements the expression type-check service.
type Checker struct {
	unit     *ast.Unit
	reporter *diag.Reporter
}

// NewChecker creates a checker for the given unit reporting to reporter.
func NewChecker(unit *ast.Unit, reporter *diag.Reporter) *Checker {
	return &Checker{unit: unit, reporter: reporter}
}

// Diagnose emits a semantic diagnostic at the given location.
func (c *Checker) Diagnose(span lexer.Span, severity diag.Severity, code diag.Code, msg string) {
	c.reporter.Report(diag.Diagnostic{
		Stage:    diag.StageSema,
		Severity: severity,
		Code:     code,
		Message:  msg,
		Span: diag.Span{
			Filename: span.Filename,
			Line:     span.Line,
			Column:   span.Column,
			Start:    span.Start,
			End:      span.End,
		},
	})
}

func (c *Checker) errorf(span lexer.Span, code diag.Code, msg string) {
	c.Diagnose(span, diag.SeverityError, code, msg)
}

var builtinTypes = map[string]types.Type{
	"Int":   types.Int64,
	"Int8":  types.Int8,
	"Int16": types.Int16,
	"Int32": types.Int32,
	"Int64": types.Int64,
	"Bool":  types.Bool,
	"Void":  types.Void,
}

// resolveTypeRef maps a syntactic type annotation to a semantic type.
// Unknown names are diagnosed and degrade to Void.
func (c *Checker) resolveTypeRef(ref ast.TypeRef) types.Type {
	switch r := ref.(type) {
	case *ast.NamedTypeRef:
		if t, ok := builtinTypes[r.Name]; ok {
			return t
		}
		c.errorf(r.Span(), diag.CodeUnknownType, "unknown type '"+r.Name+"'")
		return types.Void

	case *ast.FuncTypeRef:
		fn := &types.Func{Result: types.Void}
		for _, p := range r.Params {
			fn.Params = append(fn.Params, c.resolveTypeRef(p))
		}
		if r.Result != nil {
			fn.Result = c.resolveTypeRef(r.Result)
		}
		return fn

	default:
		return types.Void
	}
}

// declType returns the declared type of a variable, resolving it on first
// use. A declaration with neither annotation nor checked initializer
// defaults to Int.
func (c *Checker) declType(d *ast.VarDecl) types.Type {
	if d.Resolved != nil {
		return d.Resolved
	}
	switch {
	case d.TypeRef != nil:
		d.Resolved = c.resolveTypeRef(d.TypeRef)
	case d.Init != nil && d.Init.Type() != nil:
		d.Resolved = types.Deref(d.Init.Type())
	default:
		d.Resolved = types.Int64
	}
	return d.Resolved
}

// CheckVarDecl checks a variable declaration: the annotation is resolved and
// the initializer, when present, is checked against it (driving implicit
// conversion). The declaration self-mutates.
func (c *Checker) CheckVarDecl(d *ast.VarDecl) {
	var declared types.Type
	if d.Resolved != nil {
		declared = d.Resolved
	} else if d.TypeRef != nil {
		declared = c.resolveTypeRef(d.TypeRef)
	}

	if d.Init != nil {
		init, ok := c.CheckExpr(d.Init, declared)
		if ok {
			d.Init = init
			if declared == nil {
				declared = types.Deref(init.Type())
			}
		}
	}

	if declared == nil {
		declared = types.Int64
	}
	d.Resolved = declared
}

// CheckFuncSignature finalizes a function literal's signature from its
// parameter annotations and result annotation. Idempotent.
func (c *Checker) CheckFuncSignature(fe *ast.FuncExpr) {
	if fe.Sig != nil {
		return
	}
	sig := &types.Func{Result: types.Void}
	for _, param := range fe.Params {
		var pt types.Type
		if param.TypeRef != nil {
			pt = c.resolveTypeRef(param.TypeRef)
		} else {
			pt = types.Int64
		}
		param.Resolved = pt
		sig.Params = append(sig.Params, pt)
	}
	if fe.ResultRef != nil {
		sig.Result = c.resolveTypeRef(fe.ResultRef)
	}
	fe.Sig = sig
	fe.SetType(sig)
}
