package jsonlite

import (
	"strings"

	"github.com/dhamidi/peck/input"
	"github.com/dhamidi/peck/parse"
)

// TokenKind classifies a scanned token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenColon
	TokenComma
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
)

var tokenKindNames = [...]string{
	TokenEOF:          "EOF",
	TokenError:        "Error",
	TokenLeftBrace:    "LeftBrace",
	TokenRightBrace:   "RightBrace",
	TokenLeftBracket:  "LeftBracket",
	TokenRightBracket: "RightBracket",
	TokenColon:        "Colon",
	TokenComma:        "Comma",
	TokenString:       "String",
	TokenNumber:       "Number",
	TokenTrue:         "True",
	TokenFalse:        "False",
	TokenNull:         "Null",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// Token is one lexical element of a document. Literal holds the raw
// text, uninterpreted; string tokens keep their quotes and escapes.
type Token struct {
	Kind    TokenKind
	Literal string
	Span    input.Span
}

// ScanTokens tokenizes src. Unlike Parse it never fails: text that fits
// no token comes back as Error tokens, and the stream always ends with
// an EOF token. Whitespace is dropped.
func ScanTokens(src string, opts ...Option) []Token {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	var cur input.Cursor[rune] = input.Text(src)
	if cfg.source != "" {
		cur = input.NewWithContext(cfg.source, cur)
	}
	return Scan(cur, opts...)
}

// Scan tokenizes the input behind cur. Literals are collected rune by
// rune rather than sliced out of the input, so any cursor works here,
// including a buffered stream.
func Scan(cur input.Cursor[rune], opts ...Option) []Token {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	var sopts []parse.Option
	if cfg.trace != nil {
		sopts = append(sopts, parse.WithTrace(cfg.trace))
	}
	s := parse.NewSession[rune, string, Stats, int](cur, nil, sopts...)

	var tokens []Token
	for {
		tok := scanToken(s)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func scanToken(s *session) Token {
	skipSpace(s)
	start := s.Offset()
	r, ok := s.Peek()
	if !ok {
		return Token{Kind: TokenEOF, Span: s.SpanSince(start)}
	}
	switch {
	case r == '{':
		return scanPunct(s, TokenLeftBrace, start)
	case r == '}':
		return scanPunct(s, TokenRightBrace, start)
	case r == '[':
		return scanPunct(s, TokenLeftBracket, start)
	case r == ']':
		return scanPunct(s, TokenRightBracket, start)
	case r == ':':
		return scanPunct(s, TokenColon, start)
	case r == ',':
		return scanPunct(s, TokenComma, start)
	case r == '"':
		return scanStringToken(s, start)
	case r == '-' || isDigit(r):
		return scanNumberToken(s, start)
	case isAlpha(r):
		return scanKeywordToken(s, start)
	default:
		s.Skip()
		return Token{Kind: TokenError, Literal: string(r), Span: s.SpanSince(start)}
	}
}

func scanPunct(s *session, kind TokenKind, start input.Offset) Token {
	_, r, _ := s.Next()
	return Token{Kind: kind, Literal: string(r), Span: s.SpanSince(start)}
}

// scanStringToken consumes a string literal. An unterminated string
// ends at the newline or end of input and scans as an Error token.
func scanStringToken(s *session, start input.Offset) Token {
	var sb strings.Builder
	_, quote, _ := s.Next()
	sb.WriteRune(quote)
	for {
		r, ok := s.Peek()
		if !ok || r == '\n' {
			return Token{Kind: TokenError, Literal: sb.String(), Span: s.SpanSince(start)}
		}
		s.Skip()
		sb.WriteRune(r)
		switch r {
		case '"':
			return Token{Kind: TokenString, Literal: sb.String(), Span: s.SpanSince(start)}
		case '\\':
			if esc, ok := s.Peek(); ok && esc != '\n' {
				s.Skip()
				sb.WriteRune(esc)
			}
		}
	}
}

// scanNumberToken consumes a number shape without validating it; the
// parser is where malformed numbers get diagnosed.
func scanNumberToken(s *session, start input.Offset) Token {
	var sb strings.Builder
	if r, ok := s.Peek(); ok && r == '-' {
		s.Skip()
		sb.WriteRune('-')
	}
	scanDigits(s, &sb)
	if r, ok := s.Peek(); ok && r == '.' {
		s.Skip()
		sb.WriteRune('.')
		scanDigits(s, &sb)
	}
	if r, ok := s.Peek(); ok && (r == 'e' || r == 'E') {
		s.Skip()
		sb.WriteRune(r)
		if sign, ok := s.Peek(); ok && (sign == '+' || sign == '-') {
			s.Skip()
			sb.WriteRune(sign)
		}
		scanDigits(s, &sb)
	}
	return Token{Kind: TokenNumber, Literal: sb.String(), Span: s.SpanSince(start)}
}

func scanDigits(s *session, sb *strings.Builder) {
	for {
		r, ok := s.Peek()
		if !ok || !isDigit(r) {
			return
		}
		s.Skip()
		sb.WriteRune(r)
	}
}

func scanKeywordToken(s *session, start input.Offset) Token {
	var sb strings.Builder
	for {
		r, ok := s.Peek()
		if !ok || !isAlpha(r) {
			break
		}
		s.Skip()
		sb.WriteRune(r)
	}
	kind := TokenError
	switch sb.String() {
	case "true":
		kind = TokenTrue
	case "false":
		kind = TokenFalse
	case "null":
		kind = TokenNull
	}
	return Token{Kind: kind, Literal: sb.String(), Span: s.SpanSince(start)}
}
