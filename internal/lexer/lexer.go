package lexer

import "unicode"

// Lexer scans Sable source text into tokens.
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string
}

// New creates a lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		line:   1,
		column: 0, // will be 1 after first read()
	}
	l.read()
	return l
}

// NewFile creates a lexer whose spans are attributed to filename.
func NewFile(filename, input string) *Lexer {
	l := New(input)
	l.filename = filename
	return l
}

// read advances the lexer to the next rune, tracking line and column.
func (l *Lexer) read() {
	if l.pos >= 0 && l.pos < len(l.input) && l.input[l.pos] == '\n' {
		l.line++
		l.column = 0
	}
	l.pos++
	l.column++
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

// peek returns the rune after the current one without advancing.
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) spanFrom(start, startLine, startCol int) Span {
	return Span{
		Filename: l.filename,
		Line:     startLine,
		Column:   startCol,
		Start:    start,
		End:      l.pos,
	}
}

// Tokens scans the remaining input and returns all tokens, ending with EOF.
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()

	start, startLine, startCol := l.pos, l.line, l.column

	newToken := func(t TokenType, raw string) Token {
		return Token{Type: t, Raw: raw, Span: l.spanFrom(start, startLine, startCol)}
	}

	switch l.ch {
	case 0:
		return Token{Type: EOF, Span: l.spanFrom(start, startLine, startCol)}
	case '=':
		l.read()
		if l.ch == '=' {
			l.read()
			return newToken(EQ, "==")
		}
		return newToken(ASSIGN, "=")
	case '!':
		l.read()
		if l.ch == '=' {
			l.read()
			return newToken(NOT_EQ, "!=")
		}
		return newToken(BANG, "!")
	case '<':
		l.read()
		if l.ch == '=' {
			l.read()
			return newToken(LE, "<=")
		}
		return newToken(LT, "<")
	case '>':
		l.read()
		if l.ch == '=' {
			l.read()
			return newToken(GE, ">=")
		}
		return newToken(GT, ">")
	case '&':
		l.read()
		if l.ch == '&' {
			l.read()
			return newToken(AND, "&&")
		}
		return newToken(ILLEGAL, "&")
	case '|':
		l.read()
		if l.ch == '|' {
			l.read()
			return newToken(OR, "||")
		}
		return newToken(ILLEGAL, "|")
	case '-':
		l.read()
		if l.ch == '>' {
			l.read()
			return newToken(ARROW, "->")
		}
		return newToken(MINUS, "-")
	case '+':
		l.read()
		return newToken(PLUS, "+")
	case '*':
		l.read()
		return newToken(ASTERISK, "*")
	case '/':
		l.read()
		return newToken(SLASH, "/")
	case '%':
		l.read()
		return newToken(PERCENT, "%")
	case ',':
		l.read()
		return newToken(COMMA, ",")
	case ';':
		l.read()
		return newToken(SEMICOLON, ";")
	case ':':
		l.read()
		return newToken(COLON, ":")
	case '(':
		l.read()
		return newToken(LPAREN, "(")
	case ')':
		l.read()
		return newToken(RPAREN, ")")
	case '{':
		l.read()
		return newToken(LBRACE, "{")
	case '}':
		l.read()
		return newToken(RBRACE, "}")
	}

	if isIdentStart(l.ch) {
		for isIdentPart(l.ch) {
			l.read()
		}
		raw := string(l.input[start:l.pos])
		return newToken(LookupIdent(raw), raw)
	}

	if unicode.IsDigit(l.ch) {
		for unicode.IsDigit(l.ch) {
			l.read()
		}
		raw := string(l.input[start:l.pos])
		return newToken(INT, raw)
	}

	raw := string(l.ch)
	l.read()
	return newToken(ILLEGAL, raw)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.read()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.read()
			}
		default:
			return
		}
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
