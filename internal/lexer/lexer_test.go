package lexer

import (
	"errors"
	"testing"

	"github.com/flare-lang/flare/internal/diag"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	lx := New(input)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next() error on %q: %v", input, err)
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func checkTypes(t *testing.T, input string, want []TokenType) {
	t.Helper()
	toks := lexAll(t, input)
	if len(toks) != len(want) {
		t.Fatalf("token count for %q: got=%d want=%d (%v)", input, len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Fatalf("token %d of %q: got=%v want=%v", i, input, tok.Type, want[i])
		}
	}
}

func TestPunctuationAndOperators(t *testing.T) {
	checkTypes(t, "( ) [ ] { } , ; : . !",
		[]TokenType{LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE, COMMA, SEMICOLON, COLON, DOT, BANG, EOF})
	checkTypes(t, "+ * / % ^ = == < > <= >= != || && | &",
		[]TokenType{PLUS, STAR, SLASH, PERCENT, CARET, ASSIGN, EQ, LT, GT, LTE, GTE, NEQ, OROR, ANDAND, PIPE, AMP, EOF})
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := lexAll(t, "def extern if else true false foo _bar x1")
	want := []TokenType{DEF, EXTERN, IF, ELSE, BOOL, BOOL, IDENT, IDENT, IDENT, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got=%v want=%v", i, toks[i].Type, w)
		}
	}
	if !toks[4].BoolVal {
		t.Errorf("true: BoolVal got=false")
	}
	if toks[5].BoolVal {
		t.Errorf("false: BoolVal got=true")
	}
	if toks[6].Literal != "foo" || toks[7].Literal != "_bar" || toks[8].Literal != "x1" {
		t.Errorf("identifier literals wrong: %v %v %v", toks[6].Literal, toks[7].Literal, toks[8].Literal)
	}
}

func TestNumbers(t *testing.T) {
	toks := lexAll(t, "1 42 3.14 -7 -2.5")
	if toks[0].Type != INT || toks[0].IntVal != 1 {
		t.Fatalf("got=%v", toks[0])
	}
	if toks[1].Type != INT || toks[1].IntVal != 42 {
		t.Fatalf("got=%v", toks[1])
	}
	if toks[2].Type != FLOAT || toks[2].FloatVal != 3.14 {
		t.Fatalf("got=%v", toks[2])
	}
	if toks[3].Type != INT || toks[3].IntVal != -7 {
		t.Fatalf("got=%v", toks[3])
	}
	if toks[4].Type != FLOAT || toks[4].FloatVal != -2.5 {
		t.Fatalf("got=%v", toks[4])
	}
}

func TestSecondDotEndsFloat(t *testing.T) {
	toks := lexAll(t, "1.2.3")
	want := []TokenType{FLOAT, DOT, INT, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got=%v want=%v", i, toks[i].Type, w)
		}
	}
	if toks[0].FloatVal != 1.2 || toks[2].IntVal != 3 {
		t.Fatalf("values wrong: %v %v", toks[0].FloatVal, toks[2].IntVal)
	}
}

// Minus is a binary operator after a value-producing token and a sign
// otherwise.
func TestMinusDisambiguation(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"a - b", []TokenType{IDENT, MINUS, IDENT, EOF}},
		{"a-b", []TokenType{IDENT, MINUS, IDENT, EOF}},
		{"-3", []TokenType{INT, EOF}},
		{"a - -3", []TokenType{IDENT, MINUS, INT, EOF}},
		{"4- 3", []TokenType{INT, MINUS, INT, EOF}},
		{"4 - 3", []TokenType{INT, MINUS, INT, EOF}},
		{"x = -1", []TokenType{IDENT, ASSIGN, INT, EOF}},
		{"[-1, -2]", []TokenType{LBRACKET, INT, COMMA, INT, RBRACKET, EOF}},
	}
	for _, tt := range tests {
		checkTypes(t, tt.input, tt.want)
	}
}

func TestComments(t *testing.T) {
	toks := lexAll(t, "1 # rest of line\n2")
	want := []TokenType{INT, COMMENT, INT, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got=%v want=%v", i, toks[i].Type, w)
		}
	}
	if toks[1].Literal != "# rest of line" {
		t.Errorf("comment text got=%q", toks[1].Literal)
	}
}

func TestSpanTracksLines(t *testing.T) {
	lx := New("1\n  2")
	if _, err := lx.Next(); err != nil {
		t.Fatal(err)
	}
	if sp := lx.Span(); sp.LineNumber != 1 || sp.Col() != 0 {
		t.Fatalf("first token span: got=%+v", sp)
	}
	if _, err := lx.Next(); err != nil {
		t.Fatal(err)
	}
	if sp := lx.Span(); sp.LineNumber != 2 || sp.Col() != 2 {
		t.Fatalf("second token span: got=%+v", sp)
	}
}

func TestInvalidIntegerLiteral(t *testing.T) {
	lx := New("99999999999999999999")
	_, err := lx.Next()
	var pe *diag.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error: got=%v want *diag.ParseError", err)
	}
	if pe.Msg != "Invalid integer literal" {
		t.Fatalf("message: got=%q", pe.Msg)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	lx := New("@")
	_, err := lx.Next()
	var pe *diag.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error: got=%v want *diag.ParseError", err)
	}
	if pe.Msg != "Unexpected character" {
		t.Fatalf("message: got=%q", pe.Msg)
	}
}
