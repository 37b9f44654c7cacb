package lexer

import "testing"

func TestLexer_Next(t *testing.T) {
	input := `var total = 0
// running sum
while total <= 10 {
	total = total + 1
}
func(a: Int) -> Bool { return a != 0 }
x && y || !z
1 * 2 / 3 % 4
`

	tests := []struct {
		wantType TokenType
		wantRaw  string
	}{
		{VAR, "var"},
		{IDENT, "total"},
		{ASSIGN, "="},
		{INT, "0"},
		{WHILE, "while"},
		{IDENT, "total"},
		{LE, "<="},
		{INT, "10"},
		{LBRACE, "{"},
		{IDENT, "total"},
		{ASSIGN, "="},
		{IDENT, "total"},
		{PLUS, "+"},
		{INT, "1"},
		{RBRACE, "}"},
		{FUNC, "func"},
		{LPAREN, "("},
		{IDENT, "a"},
		{COLON, ":"},
		{IDENT, "Int"},
		{RPAREN, ")"},
		{ARROW, "->"},
		{IDENT, "Bool"},
		{LBRACE, "{"},
		{RETURN, "return"},
		{IDENT, "a"},
		{NOT_EQ, "!="},
		{INT, "0"},
		{RBRACE, "}"},
		{IDENT, "x"},
		{AND, "&&"},
		{IDENT, "y"},
		{OR, "||"},
		{BANG, "!"},
		{IDENT, "z"},
		{INT, "1"},
		{ASTERISK, "*"},
		{INT, "2"},
		{SLASH, "/"},
		{INT, "3"},
		{PERCENT, "%"},
		{INT, "4"},
		{EOF, ""},
	}

	lx := New(input)
	for i, tt := range tests {
		tok := lx.Next()
		if tok.Type != tt.wantType {
			t.Fatalf("token %d: type = %q, want %q", i, tok.Type, tt.wantType)
		}
		if tok.Raw != tt.wantRaw {
			t.Fatalf("token %d: raw = %q, want %q", i, tok.Raw, tt.wantRaw)
		}
	}
}

func TestLexer_Spans(t *testing.T) {
	lx := NewFile("main.sb", "var x\n  = 1")

	tok := lx.Next() // var
	if tok.Span.Line != 1 || tok.Span.Column != 1 {
		t.Errorf("var at %d:%d, want 1:1", tok.Span.Line, tok.Span.Column)
	}
	if tok.Span.Filename != "main.sb" {
		t.Errorf("filename = %q", tok.Span.Filename)
	}

	lx.Next()        // x
	tok = lx.Next()  // =
	if tok.Span.Line != 2 || tok.Span.Column != 3 {
		t.Errorf("= at %d:%d, want 2:3", tok.Span.Line, tok.Span.Column)
	}
}

func TestLexer_CommentsSkipped(t *testing.T) {
	lx := New("// nothing here\n7 // trailing\n")

	tok := lx.Next()
	if tok.Type != INT || tok.Raw != "7" {
		t.Fatalf("got %q %q, want INT 7", tok.Type, tok.Raw)
	}
	if tok := lx.Next(); tok.Type != EOF {
		t.Fatalf("got %q, want EOF", tok.Type)
	}
}

func TestLexer_Illegal(t *testing.T) {
	lx := New("@")
	if tok := lx.Next(); tok.Type != ILLEGAL {
		t.Fatalf("got %q, want ILLEGAL", tok.Type)
	}
}
