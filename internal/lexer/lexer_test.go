package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `x = 5
x = x + 10
`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"x", IDENT},
		{"=", ASSIGN},
		{"5", INT},
		{"x", IDENT},
		{"=", ASSIGN},
		{"x", IDENT},
		{"+", PLUS},
		{"10", INT},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `def end class module abstract lib fun struct union enum include
if unless else elsif then case when while until do break next return yield
begin rescue ensure raise true false nil self and or not is_a? out pointerof macro of`

	expected := []TokenType{
		DEF, END, CLASS, MODULE, ABSTRACT, LIB, FUN, STRUCT, UNION, ENUM, INCLUDE,
		IF, UNLESS, ELSE, ELSIF, THEN, CASE, WHEN, WHILE, UNTIL, DO, BREAK, NEXT, RETURN, YIELD,
		BEGIN, RESCUE, ENSURE, RAISE, TRUE, FALSE, NIL, SELF, AND, OR, NOT, IS_A, OUT, POINTEROF, MACRO, OF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("keyword[%d]: expected %s, got %s (literal=%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestIdentVsConst(t *testing.T) {
	l := New("foo Bar")
	tok := l.NextToken()
	if tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != CONST {
		t.Fatalf("expected CONST, got %s", tok.Type)
	}
}

func TestInstanceAndClassVars(t *testing.T) {
	l := New("@x @@y")
	tok := l.NextToken()
	if tok.Type != IVAR || tok.Literal != "@x" {
		t.Fatalf("expected IVAR @x, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != CVAR || tok.Literal != "@@y" {
		t.Fatalf("expected CVAR @@y, got %s %q", tok.Type, tok.Literal)
	}
}

func TestNumericSuffixes(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		lit   string
	}{
		{"42_i8", INT, "42_i8"},
		{"1_i64", INT, "1_i64"},
		{"1.5_f32", FLOAT, "1.5_f32"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.lit {
			t.Fatalf("input %q: expected %s %q, got %s %q", tt.input, tt.typ, tt.lit, tok.Type, tok.Literal)
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	input := "== != <= >= && :: -> =>"
	expected := []TokenType{EQ, NOTEQ, LTEQ, GTEQ, ANDAND, COLONCOLON, ARROW, FATARROW, EOF}
	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("op[%d]: expected %s, got %s (literal=%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if DEF.String() != "DEF" {
		t.Fatalf("expected DEF, got %q", DEF.String())
	}
	if TokenType(9999).String() != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN for out-of-range type")
	}
}
