package parser

import (
	"strconv"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
)

// Parser implements recursive descent parsing for Sable.
//
// Invariants:
//   - Lookahead: curTok always reflects the token currently under
//     examination; peekTok mirrors the next token pulled from the lexer. The
//     pair forms the parser's sole lookahead window and is only mutated via
//     next.
//   - Operator chains are emitted FLAT as ast.SequenceExpr; precedence and
//     associativity are resolved later by semantic analysis, never here.
//   - Name binding: identifiers are bound to their VarDecl while parsing,
//     using a lexical scope stack. An unresolved name produces an Ident with
//     a nil Decl; semantic analysis reports it.
type Parser struct {
	lx       *lexer.Lexer
	curTok   lexer.Token
	peekTok  lexer.Token
	reporter *diag.Reporter
	scopes   []map[string]*ast.VarDecl
}

// New returns a parser for the given source, reporting errors to reporter.
func New(filename, input string, reporter *diag.Reporter) *Parser {
	p := &Parser{
		lx:       lexer.NewFile(filename, input),
		reporter: reporter,
		scopes:   []map[string]*ast.VarDecl{{}},
	}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.Next()
}

func (p *Parser) errorf(span lexer.Span, code diag.Code, msg string) {
	p.reporter.Report(diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
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

// expect consumes the current token if it matches, otherwise reports an
// error and leaves the token in place.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curTok.Type == t {
		p.next()
		return true
	}
	p.errorf(p.curTok.Span, diag.CodeParseUnexpectedToken,
		"expected "+string(t)+", found "+string(p.curTok.Type))
	return false
}

func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, map[string]*ast.VarDecl{})
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) define(name string, decl *ast.VarDecl) {
	p.scopes[len(p.scopes)-1][name] = decl
}

func (p *Parser) lookup(name string) *ast.VarDecl {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if decl, ok := p.scopes[i][name]; ok {
			return decl
		}
	}
	return nil
}

// ParseUnit parses an entire compilation unit.
func (p *Parser) ParseUnit() *ast.Unit {
	body := &ast.BraceStmt{}
	start := p.curTok.Span
	for p.curTok.Type != lexer.EOF {
		before := p.curTok
		body.Elements = append(body.Elements, p.parseElement())
		if p.curTok == before {
			// No progress; skip the offending token to guarantee
			// termination.
			p.errorf(p.curTok.Span, diag.CodeParseUnexpectedToken,
				"unexpected "+string(p.curTok.Type))
			p.next()
		}
	}
	body.SetSpan(start.Merge(p.curTok.Span))
	return &ast.Unit{
		Filename: start.Filename,
		Body:     body,
		Stage:    ast.StageParsed,
	}
}

// parseElement parses one block element: a declaration, a statement, or an
// expression.
func (p *Parser) parseElement() ast.Element {
	switch p.curTok.Type {
	case lexer.VAR:
		return ast.DeclElement(p.parseVarDecl())
	case lexer.LBRACE, lexer.IF, lexer.WHILE, lexer.RETURN, lexer.SEMICOLON:
		return ast.StmtElement(p.parseStmt())
	default:
		expr := p.parseExpr()
		if p.curTok.Type == lexer.ASSIGN {
			assignSpan := p.curTok.Span
			p.next()
			src := p.parseExpr()
			if p.curTok.Type == lexer.SEMICOLON {
				p.next()
			}
			stmt := &ast.AssignStmt{Dest: expr, Src: src}
			stmt.SetSpan(expr.Span().Merge(assignSpan).Merge(src.Span()))
			return ast.StmtElement(stmt)
		}
		if p.curTok.Type == lexer.SEMICOLON {
			p.next()
		}
		return ast.ExprElement(expr)
	}
}

// parseStmt parses a statement. Statement-position errors recover to an
// ErrorStmt so the enclosing block can continue.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Type {
	case lexer.LBRACE:
		return p.parseBrace()

	case lexer.SEMICOLON:
		stmt := &ast.SemiStmt{}
		stmt.SetSpan(p.curTok.Span)
		p.next()
		return stmt

	case lexer.IF:
		start := p.curTok.Span
		p.next()
		cond := p.parseExpr()
		then := p.parseStmt()
		stmt := &ast.IfStmt{Cond: cond, Then: then}
		if p.curTok.Type == lexer.ELSE {
			p.next()
			stmt.Else = p.parseStmt()
		}
		stmt.SetSpan(start.Merge(then.Span()))
		return stmt

	case lexer.WHILE:
		start := p.curTok.Span
		p.next()
		cond := p.parseExpr()
		body := p.parseStmt()
		stmt := &ast.WhileStmt{Cond: cond, Body: body}
		stmt.SetSpan(start.Merge(body.Span()))
		return stmt

	case lexer.RETURN:
		start := p.curTok.Span
		p.next()
		stmt := &ast.ReturnStmt{}
		if p.curTok.Type != lexer.SEMICOLON && p.curTok.Type != lexer.RBRACE &&
			p.curTok.Type != lexer.EOF {
			stmt.Result = p.parseExpr()
		}
		if p.curTok.Type == lexer.SEMICOLON {
			p.next()
		}
		stmt.SetSpan(start)
		return stmt

	default:
		span := p.curTok.Span
		p.errorf(span, diag.CodeParseUnexpectedToken,
			"expected statement, found "+string(p.curTok.Type))
		p.next()
		stmt := &ast.ErrorStmt{}
		stmt.SetSpan(span)
		return stmt
	}
}

func (p *Parser) parseBrace() *ast.BraceStmt {
	start := p.curTok.Span
	p.expect(lexer.LBRACE)
	p.pushScope()
	defer p.popScope()

	block := &ast.BraceStmt{}
	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		before := p.curTok
		block.Elements = append(block.Elements, p.parseElement())
		if p.curTok == before {
			p.errorf(p.curTok.Span, diag.CodeParseUnexpectedToken,
				"unexpected "+string(p.curTok.Type))
			p.next()
		}
	}
	end := p.curTok.Span
	p.expect(lexer.RBRACE)
	block.SetSpan(start.Merge(end))
	return block
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	start := p.curTok.Span
	p.expect(lexer.VAR)

	decl := &ast.VarDecl{}
	if p.curTok.Type == lexer.IDENT {
		decl.Name = p.curTok.Raw
		p.next()
	} else {
		p.errorf(p.curTok.Span, diag.CodeParseUnexpectedToken,
			"expected identifier after var, found "+string(p.curTok.Type))
	}

	if p.curTok.Type == lexer.COLON {
		p.next()
		decl.TypeRef = p.parseTypeRef()
	}
	if p.curTok.Type == lexer.ASSIGN {
		p.next()
		decl.Init = p.parseExpr()
	}
	if p.curTok.Type == lexer.SEMICOLON {
		p.next()
	}

	decl.SetSpan(start)
	if decl.Name != "" {
		p.define(decl.Name, decl)
	}
	return decl
}

func (p *Parser) parseTypeRef() ast.TypeRef {
	switch p.curTok.Type {
	case lexer.IDENT:
		ref := &ast.NamedTypeRef{Name: p.curTok.Raw}
		ref.SetSpan(p.curTok.Span)
		p.next()
		return ref

	case lexer.FUNC:
		start := p.curTok.Span
		p.next()
		ref := &ast.FuncTypeRef{}
		p.expect(lexer.LPAREN)
		for p.curTok.Type != lexer.RPAREN && p.curTok.Type != lexer.EOF {
			ref.Params = append(ref.Params, p.parseTypeRef())
			if p.curTok.Type == lexer.COMMA {
				p.next()
			}
		}
		p.expect(lexer.RPAREN)
		if p.curTok.Type == lexer.ARROW {
			p.next()
			ref.Result = p.parseTypeRef()
		}
		ref.SetSpan(start)
		return ref

	default:
		p.errorf(p.curTok.Span, diag.CodeParseUnexpectedToken,
			"expected type, found "+string(p.curTok.Type))
		ref := &ast.NamedTypeRef{Name: "Void"}
		ref.SetSpan(p.curTok.Span)
		return ref
	}
}

// binaryOps are the tokens that may join operands inside a sequence
// expression. Assignment is excluded: it is a statement, not an operator.
var binaryOps = map[lexer.TokenType]bool{
	lexer.PLUS:     true,
	lexer.MINUS:    true,
	lexer.ASTERISK: true,
	lexer.SLASH:    true,
	lexer.PERCENT:  true,
	lexer.EQ:       true,
	lexer.NOT_EQ:   true,
	lexer.LT:       true,
	lexer.GT:       true,
	lexer.LE:       true,
	lexer.GE:       true,
	lexer.AND:      true,
	lexer.OR:       true,
}

// parseExpr parses an expression. Chains of binary operators come out flat:
// [operand, op, operand, op, operand, ...].
func (p *Parser) parseExpr() ast.Expr {
	first := p.parseOperand()
	if !binaryOps[p.curTok.Type] {
		return first
	}

	seq := &ast.SequenceExpr{Elements: []ast.Expr{first}}
	for binaryOps[p.curTok.Type] {
		opRef := &ast.OperatorRef{Op: p.curTok.Type}
		opRef.SetSpan(p.curTok.Span)
		p.next()
		seq.Elements = append(seq.Elements, opRef, p.parseOperand())
	}
	seq.SetSpan(first.Span().Merge(seq.Elements[len(seq.Elements)-1].Span()))
	return seq
}

// parseOperand parses a primary expression with any postfix call suffixes.
func (p *Parser) parseOperand() ast.Expr {
	expr := p.parsePrimary()
	for p.curTok.Type == lexer.LPAREN {
		p.next()
		call := &ast.CallExpr{Callee: expr}
		for p.curTok.Type != lexer.RPAREN && p.curTok.Type != lexer.EOF {
			call.Args = append(call.Args, p.parseExpr())
			if p.curTok.Type == lexer.COMMA {
				p.next()
			} else {
				break
			}
		}
		end := p.curTok.Span
		p.expect(lexer.RPAREN)
		call.SetSpan(expr.Span().Merge(end))
		expr = call
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.curTok.Type {
	case lexer.INT:
		value, err := strconv.ParseInt(p.curTok.Raw, 10, 64)
		if err != nil {
			p.errorf(p.curTok.Span, diag.CodeParseExpectedExpr,
				"integer literal out of range: "+p.curTok.Raw)
		}
		lit := &ast.IntegerLit{Text: p.curTok.Raw, Value: value}
		lit.SetSpan(p.curTok.Span)
		p.next()
		return lit

	case lexer.IDENT:
		ident := ast.NewIdent(p.curTok.Raw, p.lookup(p.curTok.Raw), p.curTok.Span)
		p.next()
		return ident

	case lexer.LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(lexer.RPAREN)
		return expr

	case lexer.FUNC:
		return p.parseFuncExpr()

	default:
		span := p.curTok.Span
		p.errorf(span, diag.CodeParseExpectedExpr,
			"expected expression, found "+string(p.curTok.Type))
		// Recover with a placeholder literal so the surrounding
		// construct can keep parsing.
		lit := &ast.IntegerLit{Text: "0"}
		lit.SetSpan(span)
		return lit
	}
}

func (p *Parser) parseFuncExpr() ast.Expr {
	start := p.curTok.Span
	p.expect(lexer.FUNC)

	fe := &ast.FuncExpr{}
	p.pushScope()
	defer p.popScope()

	p.expect(lexer.LPAREN)
	for p.curTok.Type != lexer.RPAREN && p.curTok.Type != lexer.EOF {
		param := &ast.VarDecl{}
		if p.curTok.Type == lexer.IDENT {
			param.Name = p.curTok.Raw
			param.SetSpan(p.curTok.Span)
			p.next()
		} else {
			p.errorf(p.curTok.Span, diag.CodeParseUnexpectedToken,
				"expected parameter name, found "+string(p.curTok.Type))
			break
		}
		if p.curTok.Type == lexer.COLON {
			p.next()
			param.TypeRef = p.parseTypeRef()
		}
		p.define(param.Name, param)
		fe.Params = append(fe.Params, param)
		if p.curTok.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)

	if p.curTok.Type == lexer.ARROW {
		p.next()
		fe.ResultRef = p.parseTypeRef()
	}

	if p.curTok.Type == lexer.LBRACE {
		fe.Body = p.parseBrace()
	} else {
		p.errorf(p.curTok.Span, diag.CodeParseUnexpectedToken,
			"expected function body, found "+string(p.curTok.Type))
		fe.Body = &ast.BraceStmt{}
	}

	fe.SetSpan(start.Merge(fe.Body.Span()))
	return fe
}
