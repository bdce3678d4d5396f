package surface

import "testing"

func TestNextToken(t *testing.T) {
	input := `assume (0 a : U) (1 x : a)
-- a comment
{- a block
   comment -} let 1 id = (\x -> \y -> y : (0 x : U) -> (1 y : x) -> x) a x
fst (a, b)
<1, 2>
() <> ω`

	tests := []struct {
		typ     TokenType
		literal string
	}{
		{ASSUME, "assume"}, {LPAREN, "("}, {INT, "0"}, {IDENT, "a"}, {COLON, ":"}, {UNIVERSE, "U"}, {RPAREN, ")"},
		{LPAREN, "("}, {INT, "1"}, {IDENT, "x"}, {COLON, ":"}, {IDENT, "a"}, {RPAREN, ")"},
		{LET, "let"}, {INT, "1"}, {IDENT, "id"}, {EQUALS, "="},
		{LPAREN, "("}, {BACKSLASH, "\\"}, {IDENT, "x"}, {ARROW, "->"},
		{BACKSLASH, "\\"}, {IDENT, "y"}, {ARROW, "->"}, {IDENT, "y"},
		{COLON, ":"}, {LPAREN, "("}, {INT, "0"}, {IDENT, "x"}, {COLON, ":"}, {UNIVERSE, "U"}, {RPAREN, ")"},
		{ARROW, "->"}, {LPAREN, "("}, {INT, "1"}, {IDENT, "y"}, {COLON, ":"}, {IDENT, "x"}, {RPAREN, ")"},
		{ARROW, "->"}, {IDENT, "x"}, {RPAREN, ")"}, {IDENT, "a"}, {IDENT, "x"},
		{FST, "fst"}, {LPAREN, "("}, {IDENT, "a"}, {COMMA, ","}, {IDENT, "b"}, {RPAREN, ")"},
		{LANGLE, "<"}, {INT, "1"}, {COMMA, ","}, {INT, "2"}, {RANGLE, ">"},
		{UNIT, "()"}, {ADDUNIT, "<>"}, {OMEGA, "ω"},
		{EOF, ""},
	}

	l := NewLexer(string(Normalize([]byte(input))), "test.janus")
	for i, want := range tests {
		got := l.NextToken()
		if got.Type != want.typ || got.Literal != want.literal {
			t.Fatalf("token %d: want {%s %q}, got {%s %q}", i, want.typ, want.literal, got.Type, got.Literal)
		}
	}
}

func TestNormalizeStripsBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let")...)
	out := Normalize(in)
	if string(out) != "let" {
		t.Errorf("expected BOM stripped, got %q", out)
	}
}
