package ebnflex

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

func mustGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	grammar, err := ebnf.Parse("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return grammar
}

const calcGrammar = `
Number = digit { digit } .
Ident  = letter { letter | digit } .
Plus   = "+" .
digit  = "0" … "9" .
letter = "a" … "z" | "A" … "Z" | "_" .
`

func TestLexerTokenize(t *testing.T) {
	grammar := mustGrammar(t, calcGrammar)
	lexer := NewLexer(grammar, []byte("abc+123"), "calc.txt")

	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}

	want := []struct {
		kind    string
		literal string
		offset  int
		column  int
	}{
		{"Ident", "abc", 0, 1},
		{"Plus", "+", 3, 4},
		{"Number", "123", 4, 5},
		{"EOF", "", 7, 8},
	}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize() returned %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Kind != w.kind || tok.Literal != w.literal {
			t.Errorf("token %d = %s %q, want %s %q", i, tok.Kind, tok.Literal, w.kind, w.literal)
		}
		if tok.Position.Offset != w.offset || tok.Position.Line != 1 || tok.Position.Column != w.column {
			t.Errorf("token %d position = %v, want offset %d, 1:%d", i, tok.Position, w.offset, w.column)
		}
		if tok.Position.Filename != "calc.txt" {
			t.Errorf("token %d filename = %q, want %q", i, tok.Position.Filename, "calc.txt")
		}
	}
}

func TestLexerLongestMatch(t *testing.T) {
	grammar := mustGrammar(t, `
A  = "a" .
AB = "ab" .
`)

	tokens, err := NewLexer(grammar, []byte("ab"), "").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Kind != "AB" || tokens[0].Literal != "ab" {
		t.Errorf("tokens = %v, want single AB token", tokens)
	}

	tokens, err = NewLexer(grammar, []byte("ac"), "").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(tokens) != 3 || tokens[0].Kind != "A" || tokens[1].Kind != "ERROR" || tokens[1].Literal != "c" {
		t.Errorf("tokens = %v, want A then ERROR", tokens)
	}
}

func TestLexerTieGoesToFirstName(t *testing.T) {
	grammar := mustGrammar(t, `
Foo = "x" .
Bar = "x" .
`)
	lexer := NewLexer(grammar, []byte("x"), "")

	tok, err := lexer.NextToken()
	if err != nil {
		t.Fatalf("NextToken() error: %v", err)
	}
	if tok.Kind != "Bar" {
		t.Errorf("Kind = %q, want %q", tok.Kind, "Bar")
	}
}

func TestLexerErrorTokens(t *testing.T) {
	grammar := mustGrammar(t, `One = "1" .`)
	lexer := NewLexer(grammar, []byte("@1@"), "")

	tok, err := lexer.NextToken()
	if err != nil || tok.Kind != "ERROR" || tok.Literal != "@" {
		t.Errorf("NextToken() = %v, %v, want ERROR %q", tok, err, "@")
	}
	tok, err = lexer.NextToken()
	if err != nil || tok.Kind != "One" {
		t.Errorf("NextToken() = %v, %v, want One", tok, err)
	}
	tok, err = lexer.NextToken()
	if err != nil || tok.Kind != "ERROR" {
		t.Errorf("NextToken() = %v, %v, want ERROR", tok, err)
	}
	tok, err = lexer.NextToken()
	if err != io.EOF || tok.Kind != "EOF" {
		t.Errorf("NextToken() = %v, %v, want EOF token with io.EOF", tok, err)
	}
}

func TestLexerPositionsAcrossLines(t *testing.T) {
	grammar := mustGrammar(t, `
Ident  = letter { letter } .
letter = "a" … "z" .
`)
	lexer := NewLexer(grammar, []byte("ab\ncd"), "two.txt")

	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	// ab, the unmatched newline, cd, EOF
	if len(tokens) != 4 {
		t.Fatalf("Tokenize() returned %d tokens, want 4", len(tokens))
	}
	cd := tokens[2]
	if cd.Kind != "Ident" || cd.Literal != "cd" {
		t.Errorf("token 2 = %s %q, want Ident %q", cd.Kind, cd.Literal, "cd")
	}
	if cd.Position.Line != 2 || cd.Position.Column != 1 || cd.Position.Offset != 3 {
		t.Errorf("token 2 position = %v, want two.txt:2:1 at offset 3", cd.Position)
	}
	if got := cd.Position.String(); got != "two.txt:2:1" {
		t.Errorf("Position.String() = %q, want %q", got, "two.txt:2:1")
	}
}

func TestLexerUnicodeRange(t *testing.T) {
	grammar := mustGrammar(t, `
Word  = greek { greek } .
greek = "α" … "ω" .
`)
	lexer := NewLexer(grammar, []byte("αβγ"), "")

	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Kind != "Word" || tokens[0].Literal != "αβγ" {
		t.Fatalf("tokens = %v, want single Word token", tokens)
	}
	if eof := tokens[1]; eof.Position.Offset != 6 || eof.Position.Column != 7 {
		t.Errorf("EOF position = %v, want offset 6, column 7", eof.Position)
	}
}

func TestLexerBreaksLeftRecursion(t *testing.T) {
	grammar := mustGrammar(t, `R = R "x" | "y" .`)
	lexer := NewLexer(grammar, []byte("yx"), "")

	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	kinds := make([]string, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	if len(kinds) != 3 || kinds[0] != "R" || kinds[1] != "ERROR" || kinds[2] != "EOF" {
		t.Errorf("kinds = %v, want [R ERROR EOF]", kinds)
	}
	if tokens[0].Literal != "y" {
		t.Errorf("Literal = %q, want %q", tokens[0].Literal, "y")
	}
}

func TestLoadGrammar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.ebnf")
	if err := os.WriteFile(path, []byte("A = \"a\" .\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	grammar, err := LoadGrammar(path)
	if err != nil {
		t.Fatalf("LoadGrammar() error: %v", err)
	}
	if _, ok := grammar["A"]; !ok {
		t.Errorf("grammar missing production A")
	}

	if _, err := LoadGrammar(filepath.Join(dir, "missing.ebnf")); err == nil {
		t.Error("LoadGrammar() on missing file succeeded, want error")
	}
}
