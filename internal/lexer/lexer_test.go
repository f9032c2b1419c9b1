package lexer

import "testing"

func collectTypes(l *Lexer) []TokenType {
	var types []TokenType
	for {
		tok := l.Advance()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			return types
		}
	}
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	input := `( ) { } [ ] , ; = + - * / % < <= > >= == != && || !`
	want := []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACK, RBRACK, COMMA, SEMI,
		ASSIGN, PLUS, MINUS, STAR, SLASH, PERCENT,
		LT, LE, GT, GE, EQ, NE, AND, OR, NOT, EOF,
	}
	got := collectTypes(New(input))
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token %d = %s, want %s", i, got[i], w)
		}
	}
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	input := `int float bool void if else while return extern true false foo bar_2`
	want := []TokenType{
		INT_KW, FLOAT_KW, BOOL_KW, VOID_KW, IF, ELSE, WHILE, RETURN, EXTERN,
		BOOLLIT, BOOLLIT, IDENT, IDENT, EOF,
	}
	got := collectTypes(New(input))
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token %d = %s, want %s", i, got[i], w)
		}
	}
}

func TestLexerIntegerAndFloatLiterals(t *testing.T) {
	l := New(`42 3.14 0 0.5`)

	tok := l.Advance()
	if tok.Type != INT || tok.IntValue != 42 {
		t.Fatalf("got %v, want INT(42)", tok)
	}
	tok = l.Advance()
	if tok.Type != FLOAT || tok.FloatValue != 3.14 {
		t.Fatalf("got %v, want FLOAT(3.14)", tok)
	}
	tok = l.Advance()
	if tok.Type != INT || tok.IntValue != 0 {
		t.Fatalf("got %v, want INT(0)", tok)
	}
	tok = l.Advance()
	if tok.Type != FLOAT || tok.FloatValue != 0.5 {
		t.Fatalf("got %v, want FLOAT(0.5)", tok)
	}
}

func TestLexerMalformedFloatIsLexicalError(t *testing.T) {
	l := New(`1.`)
	tok := l.Advance()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", tok)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("Errors() = %v, want 1 error", l.Errors())
	}
}

func TestLexerUnrecognizedByteIsLexicalError(t *testing.T) {
	l := New(`@`)
	tok := l.Advance()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", tok)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("Errors() = %v, want 1 error", l.Errors())
	}
}

func TestLexerLineCommentRunsToEOF(t *testing.T) {
	l := New("int x; // trailing comment with no newline")
	types := collectTypes(l)
	want := []TokenType{INT_KW, IDENT, SEMI, EOF}
	if len(types) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(types), len(want), types)
	}
}

func TestLexerPositionsTrackLineAndColumn(t *testing.T) {
	l := New("int x;\nfloat y;")
	_ = l.Advance() // int
	xTok := l.Advance()
	if xTok.Pos.Line != 1 {
		t.Fatalf("x.Pos.Line = %d, want 1", xTok.Pos.Line)
	}
	_ = l.Advance() // ;
	floatTok := l.Advance()
	if floatTok.Pos.Line != 2 {
		t.Fatalf("float.Pos.Line = %d, want 2", floatTok.Pos.Line)
	}
	if floatTok.Pos.Column != 1 {
		t.Fatalf("float.Pos.Column = %d, want 1", floatTok.Pos.Column)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New(`int x`)
	peeked := l.Peek()
	if peeked.Type != INT_KW {
		t.Fatalf("Peek() = %v, want int", peeked)
	}
	advanced := l.Advance()
	if advanced.Type != INT_KW {
		t.Fatalf("Advance() after Peek() = %v, want int", advanced)
	}
	next := l.Advance()
	if next.Type != IDENT {
		t.Fatalf("Advance() = %v, want IDENT", next)
	}
}

func TestLexerPushBackOrdering(t *testing.T) {
	l := New(`a b c`)
	t1 := l.Advance() // a
	t2 := l.Advance() // b

	// Pushing back t1 then t2 must replay t2 first, then t1 — the parser
	// rewinds the most recently consumed token first.
	l.PushBack(t1)
	l.PushBack(t2)

	if got := l.Advance(); got.Lexeme != t2.Lexeme {
		t.Fatalf("Advance() = %q, want %q", got.Lexeme, t2.Lexeme)
	}
	if got := l.Advance(); got.Lexeme != t1.Lexeme {
		t.Fatalf("Advance() = %q, want %q", got.Lexeme, t1.Lexeme)
	}
	if got := l.Advance(); got.Lexeme != "c" {
		t.Fatalf("Advance() = %q, want c", got.Lexeme)
	}
}
