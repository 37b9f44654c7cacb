package lexer

import "fmt"

// Span identifies a region of source text for diagnostics.
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the original input
	End      int    // exclusive end index
}

func (s Span) String() string {
	file := s.Filename
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", file, s.Line, s.Column)
}

// Merge returns a span covering both s and other.
func (s Span) Merge(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
		out.Line = other.Line
		out.Column = other.Column
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Token represents a lexical token.
type Token struct {
	Type TokenType
	Raw  string // exact runes from source
	Span Span   // source location information
}

// TokenType identifies the lexical class of a token.
type TokenType string

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT TokenType = "IDENT"
	INT   TokenType = "INT"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	LT       TokenType = "<"
	GT       TokenType = ">"
	LE       TokenType = "<="
	GE       TokenType = ">="
	AND      TokenType = "&&"
	OR       TokenType = "||"
	BANG     TokenType = "!"
	ARROW    TokenType = "->"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"

	// Keywords
	FUNC   TokenType = "FUNC"
	VAR    TokenType = "VAR"
	RETURN TokenType = "RETURN"
	IF     TokenType = "IF"
	ELSE   TokenType = "ELSE"
	WHILE  TokenType = "WHILE"
)

var keywords = map[string]TokenType{
	"func":   FUNC,
	"var":    VAR,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
}

// LookupIdent returns the keyword token type for an identifier, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
