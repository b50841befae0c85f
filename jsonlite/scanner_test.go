package jsonlite

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/peck/input"
)

func TestScanTokens(t *testing.T) {
	tokens := ScanTokens(`{"a": [1, true]}`)

	want := []struct {
		kind    TokenKind
		literal string
		start   int
		end     int
	}{
		{TokenLeftBrace, "{", 0, 1},
		{TokenString, `"a"`, 1, 4},
		{TokenColon, ":", 4, 5},
		{TokenLeftBracket, "[", 6, 7},
		{TokenNumber, "1", 7, 8},
		{TokenComma, ",", 8, 9},
		{TokenTrue, "true", 10, 14},
		{TokenRightBracket, "]", 14, 15},
		{TokenRightBrace, "}", 15, 16},
		{TokenEOF, "", 16, 16},
	}
	if len(tokens) != len(want) {
		t.Fatalf("ScanTokens() returned %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Kind != w.kind || tok.Literal != w.literal {
			t.Errorf("token %d = %s %q, want %s %q", i, tok.Kind, tok.Literal, w.kind, w.literal)
		}
		if int(tok.Span.Start) != w.start || int(tok.Span.End) != w.end {
			t.Errorf("token %d span = %s, want %d..%d", i, tok.Span, w.start, w.end)
		}
	}
}

func TestScanTokensErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		literal string
	}{
		{"unterminated string", `"ab`, `"ab`},
		{"stray character", "@", "@"},
		{"unknown keyword", "nul", "nul"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := ScanTokens(tt.src)
			if len(tokens) != 2 {
				t.Fatalf("ScanTokens(%q) returned %d tokens, want 2", tt.src, len(tokens))
			}
			if tokens[0].Kind != TokenError || tokens[0].Literal != tt.literal {
				t.Errorf("token = %s %q, want Error %q", tokens[0].Kind, tokens[0].Literal, tt.literal)
			}
			if tokens[1].Kind != TokenEOF {
				t.Errorf("last token = %s, want EOF", tokens[1].Kind)
			}
		})
	}
}

func TestScanNumberShapes(t *testing.T) {
	for _, src := range []string{"-1.5e+10", "0.25", "1e", "-0"} {
		tokens := ScanTokens(src)
		if len(tokens) != 2 || tokens[0].Kind != TokenNumber || tokens[0].Literal != src {
			t.Errorf("ScanTokens(%q) = %v, want single Number token", src, tokens)
		}
	}
}

func TestScanStringKeepsRawText(t *testing.T) {
	tokens := ScanTokens(`"q\"\n"`)
	if len(tokens) != 2 || tokens[0].Kind != TokenString {
		t.Fatalf("tokens = %v, want single String token", tokens)
	}
	if tokens[0].Literal != `"q\"\n"` {
		t.Errorf("Literal = %q, want raw text with escapes", tokens[0].Literal)
	}
}

func TestScanTokensWithSource(t *testing.T) {
	tokens := ScanTokens("[]", WithSource("data.json"))
	if got := tokens[0].Span.String(); got != "data.json:0..1" {
		t.Errorf("Span = %q, want %q", got, "data.json:0..1")
	}
}

func TestScanOverStream(t *testing.T) {
	src := `[1, {"a": "b\"c"}, null]`
	fromText := Scan(input.Text(src))
	fromStream := Scan(input.NewStream(input.Runes(strings.NewReader(src))))

	if !reflect.DeepEqual(fromStream, fromText) {
		t.Errorf("stream scan = %v, want %v", fromStream, fromText)
	}
}
