package lexer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/vertex-lang/vertex/internal/ast"
	"github.com/vertex-lang/vertex/internal/diagnostics"
	"github.com/vertex-lang/vertex/internal/lexer/token"
)

func newTestLexer(src string) (*Lexer, *diagnostics.Collector) {
	collector := diagnostics.New()
	loc := &ast.Loc{Name: "test.vx"}
	return New(loc, []byte(src), collector), collector
}

type tokenKindTest struct {
	lexeme string
	kind   token.Kind
}

func TestTokenKinds(t *testing.T) {
	tests := []*tokenKindTest{
		{"\n", token.NEWLINE},
		{"mod", token.MOD},
		{"struct", token.STRUCT},
		{"function", token.FUNCTION},
		{"export", token.EXPORT},
		{"serial", token.SERIAL},
		{"extern", token.EXTERN},
		{"params", token.PARAMS},
		{"return", token.RETURN},
		{"true", token.TRUE_BOOL_LITERAL},
		{"false", token.FALSE_BOOL_LITERAL},

		{"(", token.OPEN_PAREN},
		{")", token.CLOSE_PAREN},
		{"{", token.OPEN_CURLY},
		{"}", token.CLOSE_CURLY},
		{"[", token.OPEN_BRACKET},
		{"]", token.CLOSE_BRACKET},
		{",", token.COMMA},
		{":", token.COLON},
		{".", token.DOT},
		{"=", token.EQUAL},
		{"?", token.QUESTION},
		{"!", token.BANG},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestTokenKind(%q)", test.lexeme), func(t *testing.T) {
			lex, _ := newTestLexer(test.lexeme)

			tokenResult, err := lex.Tokenize()
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}

			if len(tokenResult) != 2 {
				t.Fatalf("expected len(tokenResult) == 2, but got %d", len(tokenResult))
			}
			if tokenResult[0].Kind != test.kind {
				t.Errorf("expected token to be %q, but got %q", test.kind, tokenResult[0].Kind)
			}
			if tokenResult[1].Kind != token.EOF {
				t.Errorf("expected last token to be EOF, but got %q", tokenResult[1].Kind)
			}
		})
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"x", token.ID},
		{"abc", token.ID},
		{"a1_b2", token.ID},
		{"Main", token.ID},
		// keywords do not swallow longer identifiers
		{"truely", token.ID},
		{"falsehood", token.ID},
		{"module", token.ID},
		{"externs", token.ID},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestIdentifier(%q)", test.input), func(t *testing.T) {
			lex, _ := newTestLexer(test.input)

			tokens, err := lex.Tokenize()
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if tokens[0].Kind != test.kind {
				t.Errorf("expected %q, got %q", test.kind, tokens[0].Kind)
			}
			if string(tokens[0].Lexeme) != test.input {
				t.Errorf("expected lexeme %q, got %q", test.input, tokens[0].Lexeme)
			}
		})
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input  string
		kind   token.Kind
		lexeme string
	}{
		{"0", token.UNTYPED_INT, "0"},
		{"123", token.UNTYPED_INT, "123"},
		{"+7", token.UNTYPED_INT, "+7"},
		{"-42", token.UNTYPED_INT, "-42"},
		{"1.5", token.UNTYPED_FLOAT, "1.5"},
		{"-1.5", token.UNTYPED_FLOAT, "-1.5"},
		{".5", token.UNTYPED_FLOAT, ".5"},
		{"1.", token.UNTYPED_FLOAT, "1."},
		{"1e5", token.UNTYPED_FLOAT, "1e5"},
		{"1E5", token.UNTYPED_FLOAT, "1E5"},
		{"1.2e-3", token.UNTYPED_FLOAT, "1.2e-3"},
		{"12e+4", token.UNTYPED_FLOAT, "12e+4"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestNumberLiteral(%q)", test.input), func(t *testing.T) {
			lex, _ := newTestLexer(test.input)

			tokens, err := lex.Tokenize()
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if tokens[0].Kind != test.kind {
				t.Errorf("expected %q, got %q", test.kind, tokens[0].Kind)
			}
			if string(tokens[0].Lexeme) != test.lexeme {
				t.Errorf("expected lexeme %q, got %q", test.lexeme, tokens[0].Lexeme)
			}
		})
	}
}

func TestNumberWithoutExponentStopsAtE(t *testing.T) {
	// "1e" is an integer followed by an identifier, the exponent rule
	// only fires when digits follow
	lex, _ := newTestLexer("1e")

	tokens, err := lex.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error '%v'", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Kind != token.UNTYPED_INT {
		t.Errorf("expected integer literal, got %q", tokens[0].Kind)
	}
	if tokens[1].Kind != token.ID || string(tokens[1].Lexeme) != "e" {
		t.Errorf("expected identifier 'e', got %q %q", tokens[1].Kind, tokens[1].Lexeme)
	}
}

func TestMalformedNumber(t *testing.T) {
	tests := []string{"1.2.3", "1..2"}

	for _, input := range tests {
		t.Run(fmt.Sprintf("TestMalformedNumber(%q)", input), func(t *testing.T) {
			lex, collector := newTestLexer(input)

			_, err := lex.Tokenize()
			if err == nil {
				t.Fatal("expected a lexical error")
			}
			if !collector.HasErrors() {
				t.Fatal("expected a diagnostic to be collected")
			}
			if collector.Diags[0].Kind != diagnostics.LEXICAL_ERROR {
				t.Errorf("expected LEXICAL_ERROR, got %v", collector.Diags[0].Kind)
			}
		})
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input string
		value string
		delim byte
	}{
		{`"hello"`, "hello", '"'},
		{`'hello'`, "hello", '\''},
		{"`hello`", "hello", '`'},
		{`""`, "", '"'},
		{`"a\nb"`, "a\nb", '"'},
		{"`a\\nb`", "a\nb", '`'},
		{`"tab\there"`, "tab\there", '"'},
		{`"q\"q"`, `q"q`, '"'},
		{`'q\'q'`, "q'q", '\''},
		{`"back\\slash"`, `back\slash`, '"'},
		{`"slash\/slash"`, "slash/slash", '"'},
		{`"\b\f\r"`, "\b\f\r", '"'},
		{`"A"`, "A", '"'},
		{`"é"`, "é", '"'},
		{`"snow☃man"`, "snow☃man", '"'},
		// a double quote inside single quotes needs no escape
		{`'say "hi"'`, `say "hi"`, '\''},
		// strings may span lines
		{"\"a\nb\"", "a\nb", '"'},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestStringLiteral(%q)", test.input), func(t *testing.T) {
			lex, _ := newTestLexer(test.input)

			tokens, err := lex.Tokenize()
			if err != nil {
				t.Fatalf("unexpected error '%v'", err)
			}
			if tokens[0].Kind != token.UNTYPED_STRING {
				t.Fatalf("expected string literal, got %q", tokens[0].Kind)
			}
			if !bytes.Equal(tokens[0].Lexeme, []byte(test.value)) {
				t.Errorf("expected value %q, got %q", test.value, tokens[0].Lexeme)
			}
			if tokens[0].Delim != test.delim {
				t.Errorf("expected delimiter %q, got %q", test.delim, tokens[0].Delim)
			}
		})
	}
}

func TestStringLiteralErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  diagnostics.ErrorKind
	}{
		{`"unterminated`, diagnostics.DELIMITER_MISMATCH_ERROR},
		{"`unterminated", diagnostics.DELIMITER_MISMATCH_ERROR},
		{`"bad \z escape"`, diagnostics.LEXICAL_ERROR},
		{`"\u12"`, diagnostics.LEXICAL_ERROR},
		{`"\u12zz"`, diagnostics.LEXICAL_ERROR},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("TestStringLiteralError(%q)", test.input), func(t *testing.T) {
			lex, collector := newTestLexer(test.input)

			_, err := lex.Tokenize()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !collector.HasErrors() {
				t.Fatal("expected a diagnostic to be collected")
			}
			if collector.Diags[0].Kind != test.kind {
				t.Errorf("expected %v, got %v", test.kind, collector.Diags[0].Kind)
			}
		})
	}
}

func TestMismatchedDelimiterTerminatesEarly(t *testing.T) {
	// A raw double quote terminates the string; the rest of the line
	// lexes as separate tokens
	lex, _ := newTestLexer(`"a"b"`)

	tokens, err := lex.Tokenize()
	if err != nil {
		// the trailing quote is unterminated
		return
	}
	if tokens[0].Kind != token.UNTYPED_STRING || string(tokens[0].Lexeme) != "a" {
		t.Errorf("expected string 'a', got %q %q", tokens[0].Kind, tokens[0].Lexeme)
	}
}

func TestComments(t *testing.T) {
	lex, _ := newTestLexer("x # a comment\ny")

	tokens, err := lex.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error '%v'", err)
	}

	kinds := []token.Kind{token.ID, token.NEWLINE, token.ID, token.EOF}
	if len(tokens) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d", len(kinds), len(tokens))
	}
	for i, kind := range kinds {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: expected %q, got %q", i, kind, tokens[i].Kind)
		}
	}
}

func TestPositions(t *testing.T) {
	lex, _ := newTestLexer("a = mod\nbb")

	tokens, err := lex.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error '%v'", err)
	}

	expected := []struct {
		line, column int
	}{
		{1, 1}, // a
		{1, 3}, // =
		{1, 5}, // mod
		{1, 8}, // newline
		{2, 1}, // bb
		{2, 3}, // eof
	}

	for i, pos := range expected {
		if tokens[i].Pos.Line != pos.line || tokens[i].Pos.Column != pos.column {
			t.Errorf(
				"token %d: expected %d:%d, got %d:%d",
				i,
				pos.line,
				pos.column,
				tokens[i].Pos.Line,
				tokens[i].Pos.Column,
			)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lex, _ := newTestLexer("a b")

	first := lex.Peek()
	second := lex.Peek()
	if first.Kind != second.Kind || string(first.Lexeme) != string(second.Lexeme) {
		t.Errorf("Peek consumed input: %v vs %v", first, second)
	}

	if lex.Peek1().Kind != token.ID {
		t.Errorf("expected Peek1 to see the second identifier")
	}

	next := lex.Next()
	if string(next.Lexeme) != "a" {
		t.Errorf("expected 'a', got %q", next.Lexeme)
	}
}
