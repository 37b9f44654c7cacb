package sema

import (
	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
)

// Binding strength per operator. Every operator is left-associative.
var opPrecedence = map[lexer.TokenType]int{
	lexer.OR:       1,
	lexer.AND:      2,
	lexer.EQ:       3,
	lexer.NOT_EQ:   3,
	lexer.LT:       4,
	lexer.GT:       4,
	lexer.LE:       4,
	lexer.GE:       4,
	lexer.PLUS:     5,
	lexer.MINUS:    5,
	lexer.ASTERISK: 6,
	lexer.SLASH:    6,
	lexer.PERCENT:  6,
}

// FoldSequence resolves operator precedence in a flat sequence expression,
// producing a properly nested tree of InfixExpr nodes. It never fails: a
// malformed sequence is diagnosed and degrades to the first usable operand.
func (c *Checker) FoldSequence(seq *ast.SequenceExpr) ast.Expr {
	elems := seq.Elements
	if len(elems) == 1 {
		return elems[0]
	}
	if !wellFormedSequence(elems) {
		c.errorf(seq.Span(), diag.CodeMalformedSequence, "malformed operator sequence")
		for _, el := range elems {
			if _, isOp := el.(*ast.OperatorRef); !isOp {
				return el
			}
		}
		lit := &ast.IntegerLit{Text: "0"}
		lit.SetSpan(seq.Span())
		return lit
	}

	f := &sequenceFolder{elems: elems, pos: 1}
	return f.fold(elems[0], 0)
}

// wellFormedSequence reports whether elems alternates operand, operator,
// operand, ... ending on an operand, with every operator known.
func wellFormedSequence(elems []ast.Expr) bool {
	if len(elems) < 3 || len(elems)%2 == 0 {
		return false
	}
	for i, el := range elems {
		op, isOp := el.(*ast.OperatorRef)
		if i%2 == 1 {
			if !isOp {
				return false
			}
			if _, known := opPrecedence[op.Op]; !known {
				return false
			}
		} else if isOp {
			return false
		}
	}
	return true
}

type sequenceFolder struct {
	elems []ast.Expr
	pos   int
}

// fold is precedence climbing over the flat slice. pos always points at an
// operator slot on entry.
func (f *sequenceFolder) fold(lhs ast.Expr, minPrec int) ast.Expr {
	for f.pos < len(f.elems) {
		op := f.elems[f.pos].(*ast.OperatorRef)
		prec := opPrecedence[op.Op]
		if prec < minPrec {
			break
		}
		f.pos++
		rhs := f.elems[f.pos]
		f.pos++

		for f.pos < len(f.elems) {
			next := f.elems[f.pos].(*ast.OperatorRef)
			if opPrecedence[next.Op] <= prec {
				break
			}
			rhs = f.fold(rhs, opPrecedence[next.Op])
		}

		in := &ast.InfixExpr{Op: op.Op, Left: lhs, Right: rhs}
		in.SetSpan(lhs.Span().Merge(rhs.Span()))
		lhs = in
	}
	return lhs
}
