// Package ebnflex provides lexical scanning based on EBNF grammars.
//
// A Lexer interprets an [ebnf.Grammar] directly instead of compiling it:
// at each position it tries every token production (productions whose
// name starts with an uppercase letter) and emits the longest match.
// Matching runs on a backtracking [parse.Session], so alternatives and
// repetitions rewind cheaply and failed productions are memoized per
// offset for the lifetime of the lexer.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/peck/input"
	"github.com/dhamidi/peck/parse"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

// Position represents a location in source code. Line and Column are
// 1-based; Column counts bytes, not runes.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

type session = parse.Session[rune, string, parse.None, parse.None]

// visitKey identifies a production being matched at an offset, for
// breaking left-recursive cycles.
type visitKey struct {
	name string
	off  input.Offset
}

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	s        *session
	filename string
	tokens   []string // token production names, sorted for deterministic ties
	ids      map[string]parse.ParserID
	visiting map[visitKey]bool
	lines    []int // byte offset of each line start
}

// Option configures a Lexer.
type Option func(*options)

type options struct {
	trace commonlog.Logger
}

// WithTrace logs every backtrack of the underlying session to the given
// logger at debug level.
func WithTrace(log commonlog.Logger) Option {
	return func(o *options) { o.trace = log }
}

// NewLexer creates a lexer for the given grammar and input. The
// filename is only used for positions in tokens.
func NewLexer(grammar ebnf.Grammar, src []byte, filename string, opts ...Option) *Lexer {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	sopts := []parse.Option{parse.WithMemoization()}
	if cfg.trace != nil {
		sopts = append(sopts, parse.WithTrace(cfg.trace))
	}

	text := string(src)
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}

	var tokens []string
	for name, prod := range grammar {
		if prod.Expr == nil {
			continue
		}
		r, _ := utf8.DecodeRuneInString(name)
		if unicode.IsUpper(r) {
			tokens = append(tokens, name)
		}
	}
	sort.Strings(tokens)

	return &Lexer{
		grammar:  grammar,
		s:        parse.New[rune, string](input.Text(text), sopts...),
		filename: filename,
		tokens:   tokens,
		ids:      make(map[string]parse.ParserID),
		visiting: make(map[visitKey]bool),
		lines:    lines,
	}
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return l.positionAt(l.s.Offset())
}

func (l *Lexer) positionAt(off input.Offset) Position {
	o := int(off)
	line := sort.Search(len(l.lines), func(i int) bool { return l.lines[i] > o }) - 1
	return Position{
		Filename: l.filename,
		Offset:   o,
		Line:     line + 1,
		Column:   o - l.lines[line] + 1,
	}
}

// NextToken returns the next token from the input. It tries each token
// production in the grammar and returns the longest match; ties go to
// the production whose name sorts first. Input that no production
// matches is returned one rune at a time as ERROR tokens. At the end of
// input NextToken returns an EOF token together with io.EOF.
func (l *Lexer) NextToken() (Token, error) {
	start := l.s.Offset()
	if _, ok := l.s.Peek(); !ok {
		return Token{Kind: "EOF", Position: l.positionAt(start)}, io.EOF
	}

	entry := l.s.Save()
	best := entry
	var bestKind string
	for _, name := range l.tokens {
		l.s.Rewind(entry)
		if !l.matchName(name) {
			continue
		}
		if l.s.Offset() > best.Offset() {
			best = l.s.Save()
			bestKind = name
		}
	}

	if bestKind == "" {
		l.s.Rewind(entry)
		_, r, _ := l.s.Next()
		return Token{
			Kind:     "ERROR",
			Literal:  string(r),
			Position: l.positionAt(start),
		}, nil
	}

	l.s.Rewind(best)
	return Token{
		Kind:     bestKind,
		Literal:  l.s.Slice(start, best.Offset()),
		Position: l.positionAt(start),
	}, nil
}

// Tokenize reads all tokens from input, ending with the EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// match attempts to match an expression at the current session offset.
// On success the session is left after the match; on failure it is
// rewound to where it started.
func (l *Lexer) match(expr ebnf.Expression) bool {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.matchLiteral(e.String)

	case *ebnf.Range:
		return l.matchRange(e.Begin.String, e.End.String)

	case ebnf.Sequence:
		m := l.s.Save()
		for _, item := range e {
			if !l.match(item) {
				l.s.Rewind(m)
				return false
			}
		}
		return true

	case ebnf.Alternative:
		entry := l.s.Save()
		best := entry
		matched := false
		for _, alt := range e {
			l.s.Rewind(entry)
			if !l.match(alt) {
				continue
			}
			if !matched || l.s.Offset() > best.Offset() {
				best = l.s.Save()
				matched = true
			}
		}
		l.s.Rewind(best)
		return matched

	case *ebnf.Repetition:
		for {
			m := l.s.Save()
			if !l.match(e.Body) || l.s.Offset() == m.Offset() {
				l.s.Rewind(m)
				return true
			}
		}

	case *ebnf.Option:
		l.match(e.Body)
		return true

	case *ebnf.Group:
		return l.match(e.Body)

	case *ebnf.Name:
		return l.matchName(e.String)

	default:
		// *ebnf.Bad and anything else never matches.
		return false
	}
}

// matchName matches a named production. Failures are memoized per
// offset in the session; a production already being matched at the same
// offset fails immediately, which breaks left-recursive cycles.
func (l *Lexer) matchName(name string) bool {
	off := l.s.Offset()
	id := l.parserID(name)
	if _, hit := l.s.MemoGet(off, id); hit {
		return false
	}

	key := visitKey{name: name, off: off}
	if l.visiting[key] {
		return false
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.s.MemoPut(off, id, parse.Located{Offset: off})
		return false
	}

	l.visiting[key] = true
	matched := l.match(prod.Expr)
	delete(l.visiting, key)

	if !matched {
		l.s.MemoPut(off, id, parse.Located{Offset: off})
	}
	return matched
}

func (l *Lexer) parserID(name string) parse.ParserID {
	id, ok := l.ids[name]
	if !ok {
		id = parse.ParserID(len(l.ids))
		l.ids[name] = id
	}
	return id
}

// matchLiteral matches a literal string rune by rune.
func (l *Lexer) matchLiteral(lit string) bool {
	m := l.s.Save()
	for _, want := range lit {
		_, r, ok := l.s.Next()
		if !ok || r != want {
			l.s.Rewind(m)
			return false
		}
	}
	return true
}

// matchRange matches a single rune between begin and end inclusive.
// Ranges whose bounds are not single runes never match.
func (l *Lexer) matchRange(begin, end string) bool {
	lo, ok := singleRune(begin)
	if !ok {
		return false
	}
	hi, ok := singleRune(end)
	if !ok {
		return false
	}

	m := l.s.Save()
	_, r, ok := l.s.Next()
	if !ok || r < lo || r > hi {
		l.s.Rewind(m)
		return false
	}
	return true
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	return r, size > 0 && size == len(s)
}
