package ast

import (
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/types"
)

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node. An expression carries a resolved
// semantic type once checked; before checking its type is nil.
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeRef represents a syntactic type annotation.
type TypeRef interface {
	Node
	typeRefNode()
}

// Stage is the monotonic processing-stage marker of a compilation unit.
type Stage int

const (
	StageParsed Stage = iota
	StageChecked
)

func (s Stage) String() string {
	switch s {
	case StageParsed:
		return "Parsed"
	case StageChecked:
		return "Checked"
	default:
		return "Unknown"
	}
}

// Unit represents a parsed compilation unit: the top-level block plus the
// stage marker downstream passes observe.
type Unit struct {
	Filename string
	Body     *BraceStmt
	Stage    Stage
}

// Span returns the span covering the entire unit.
func (u *Unit) Span() lexer.Span {
	if u.Body != nil {
		return u.Body.Span()
	}
	return lexer.Span{Filename: u.Filename}
}

// exprType holds the resolved semantic type of an expression. It is embedded
// by every expression node.
type exprType struct {
	typ types.Type
}

// Type returns the resolved type, or nil before checking.
func (e *exprType) Type() types.Type { return e.typ }

// SetType records the resolved type.
func (e *exprType) SetType(t types.Type) { e.typ = t }

// VarDecl represents a variable declaration. Function parameters are also
// VarDecls so that identifier binding is uniform.
type VarDecl struct {
	Name     string
	TypeRef  TypeRef // optional annotation
	Init     Expr    // optional initializer
	Resolved types.Type
	span     lexer.Span
}

// Span returns the declaration span.
func (d *VarDecl) Span() lexer.Span { return d.span }

// SetSpan updates the declaration span.
func (d *VarDecl) SetSpan(span lexer.Span) { d.span = span }

// Element is one entry of a brace statement: exactly one of Expr, Stmt, or
// Decl is set. Order among elements is execution order.
type Element struct {
	Expr Expr
	Stmt Stmt
	Decl *VarDecl
}

// ExprElement wraps an expression as a block element.
func ExprElement(e Expr) Element { return Element{Expr: e} }

// StmtElement wraps a statement as a block element.
func StmtElement(s Stmt) Element { return Element{Stmt: s} }

// DeclElement wraps a declaration as a block element.
func DeclElement(d *VarDecl) Element { return Element{Decl: d} }

// Span returns the span of whichever arm is set.
func (el Element) Span() lexer.Span {
	switch {
	case el.Expr != nil:
		return el.Expr.Span()
	case el.Stmt != nil:
		return el.Stmt.Span()
	case el.Decl != nil:
		return el.Decl.Span()
	}
	return lexer.Span{}
}

// BraceStmt represents a block of elements in execution order.
type BraceStmt struct {
	Elements []Element
	span     lexer.Span
}

func (s *BraceStmt) Span() lexer.Span        { return s.span }
func (s *BraceStmt) SetSpan(span lexer.Span) { s.span = span }
func (*BraceStmt) stmtNode()                 {}

// ErrorStmt is a placeholder produced by parser error recovery. Checking it
// is the identity.
type ErrorStmt struct {
	span lexer.Span
}

func (s *ErrorStmt) Span() lexer.Span        { return s.span }
func (s *ErrorStmt) SetSpan(span lexer.Span) { s.span = span }
func (*ErrorStmt) stmtNode()                 {}

// SemiStmt is an empty statement (a stray semicolon).
type SemiStmt struct {
	span lexer.Span
}

func (s *SemiStmt) Span() lexer.Span        { return s.span }
func (s *SemiStmt) SetSpan(span lexer.Span) { s.span = span }
func (*SemiStmt) stmtNode()                 {}

// AssignStmt represents `dest = src;`.
type AssignStmt struct {
	Dest Expr
	Src  Expr
	span lexer.Span
}

func (s *AssignStmt) Span() lexer.Span        { return s.span }
func (s *AssignStmt) SetSpan(span lexer.Span) { s.span = span }
func (*AssignStmt) stmtNode()                 {}

// ReturnStmt represents `return;` or `return expr;`.
type ReturnStmt struct {
	Result Expr // nil for a bare return
	span   lexer.Span
}

func (s *ReturnStmt) Span() lexer.Span        { return s.span }
func (s *ReturnStmt) SetSpan(span lexer.Span) { s.span = span }
func (*ReturnStmt) stmtNode()                 {}

// IfStmt represents a conditional with an optional else branch.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
	span lexer.Span
}

func (s *IfStmt) Span() lexer.Span        { return s.span }
func (s *IfStmt) SetSpan(span lexer.Span) { s.span = span }
func (*IfStmt) stmtNode()                 {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	span lexer.Span
}

func (s *WhileStmt) Span() lexer.Span        { return s.span }
func (s *WhileStmt) SetSpan(span lexer.Span) { s.span = span }
func (*WhileStmt) stmtNode()                 {}

// Ident represents an identifier bound to its declaration by the parser.
type Ident struct {
	Name string
	Decl *VarDecl // nil when the name did not resolve
	exprType
	span lexer.Span
}

func (e *Ident) Span() lexer.Span        { return e.span }
func (e *Ident) SetSpan(span lexer.Span) { e.span = span }
func (*Ident) exprNode()                 {}

// NewIdent constructs an identifier node.
func NewIdent(name string, decl *VarDecl, span lexer.Span) *Ident {
	return &Ident{Name: name, Decl: decl, span: span}
}

// IntegerLit represents an integer literal.
type IntegerLit struct {
	Text  string
	Value int64
	exprType
	span lexer.Span
}

func (e *IntegerLit) Span() lexer.Span        { return e.span }
func (e *IntegerLit) SetSpan(span lexer.Span) { e.span = span }
func (*IntegerLit) exprNode()                 {}

// OperatorRef is an operator occurrence inside a flat sequence expression.
// Sequence folding replaces it and its operands with an InfixExpr.
type OperatorRef struct {
	Op lexer.TokenType
	exprType
	span lexer.Span
}

func (e *OperatorRef) Span() lexer.Span        { return e.span }
func (e *OperatorRef) SetSpan(span lexer.Span) { e.span = span }
func (*OperatorRef) exprNode()                 {}

// SequenceExpr is a flat, precedence-ambiguous chain of operands and
// operator references, in source order: operand, operator, operand, ...
// The parser emits sequences flat; the semantic pre-pass folds them.
type SequenceExpr struct {
	Elements []Expr
	exprType
	span lexer.Span
}

func (e *SequenceExpr) Span() lexer.Span        { return e.span }
func (e *SequenceExpr) SetSpan(span lexer.Span) { e.span = span }
func (*SequenceExpr) exprNode()                 {}

// InfixExpr is a properly nested binary operator application, produced by
// sequence folding.
type InfixExpr struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	exprType
	span lexer.Span
}

func (e *InfixExpr) Span() lexer.Span        { return e.span }
func (e *InfixExpr) SetSpan(span lexer.Span) { e.span = span }
func (*InfixExpr) exprNode()                 {}

// CallExpr represents a function call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	exprType
	span lexer.Span
}

func (e *CallExpr) Span() lexer.Span        { return e.span }
func (e *CallExpr) SetSpan(span lexer.Span) { e.span = span }
func (*CallExpr) exprNode()                 {}

// FuncExpr is a function literal. Its body is not checked where the literal
// appears; the translation driver collects every FuncExpr during the
// pre-pass and checks each body with the function as enclosing context.
type FuncExpr struct {
	Params    []*VarDecl
	ResultRef TypeRef // nil means Void
	Body      *BraceStmt
	Sig       *types.Func // finalized by signature analysis
	exprType
	span lexer.Span
}

func (e *FuncExpr) Span() lexer.Span        { return e.span }
func (e *FuncExpr) SetSpan(span lexer.Span) { e.span = span }
func (*FuncExpr) exprNode()                 {}

// ResultType returns the finalized result type, or Void before signature
// analysis has run.
func (e *FuncExpr) ResultType() types.Type {
	if e.Sig != nil {
		return e.Sig.Result
	}
	return types.Void
}

// ConvertExpr is an implicit conversion or l-value load inserted during type
// checking. Its type is the conversion target.
type ConvertExpr struct {
	Sub Expr
	exprType
	span lexer.Span
}

func (e *ConvertExpr) Span() lexer.Span        { return e.span }
func (e *ConvertExpr) SetSpan(span lexer.Span) { e.span = span }
func (*ConvertExpr) exprNode()                 {}

// NewConvertExpr wraps sub in a conversion to the given type.
func NewConvertExpr(sub Expr, to types.Type) *ConvertExpr {
	c := &ConvertExpr{Sub: sub, span: sub.Span()}
	c.SetType(to)
	return c
}

// NamedTypeRef is a type annotation referring to a builtin type by name.
type NamedTypeRef struct {
	Name string
	span lexer.Span
}

func (t *NamedTypeRef) Span() lexer.Span        { return t.span }
func (t *NamedTypeRef) SetSpan(span lexer.Span) { t.span = span }
func (*NamedTypeRef) typeRefNode()              {}

// FuncTypeRef is a function type annotation.
type FuncTypeRef struct {
	Params []TypeRef
	Result TypeRef // nil means Void
	span   lexer.Span
}

func (t *FuncTypeRef) Span() lexer.Span        { return t.span }
func (t *FuncTypeRef) SetSpan(span lexer.Span) { t.span = span }
func (*FuncTypeRef) typeRefNode()              {}
