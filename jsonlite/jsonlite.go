// Package jsonlite parses a JSON dialect with full error tolerance. It is
// the worked consumer of the input and parse packages: all input handling
// goes through a parsing session, so the package doubles as a reference
// for driving one. Malformed input never aborts a parse; it produces
// positioned diagnostics alongside whatever values could still be read.
package jsonlite

import (
	"fmt"

	"github.com/dhamidi/peck/input"
	"github.com/dhamidi/peck/parse"
	"github.com/tliron/commonlog"
)

// DefaultMaxDepth bounds nesting when WithMaxDepth is not given.
const DefaultMaxDepth = 128

// Error is a positioned diagnostic. Warning marks findings such as
// duplicate keys that do not prevent a parse.
type Error struct {
	Span    input.Span
	Message string
	Warning bool
}

func (e *Error) Error() string {
	if e.Warning {
		return fmt.Sprintf("%s: warning: %s", e.Span, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// Stats counts what a parse touched. Pass one via WithStats to accumulate
// across parses; otherwise the session keeps its own and discards it.
type Stats struct {
	Values   int
	Objects  int
	Arrays   int
	MaxDepth int
}

type config struct {
	source   string
	maxDepth int
	emitter  *parse.Emitter
	stats    *Stats
	trace    commonlog.Logger
}

// Option configures a parse.
type Option func(*config)

// WithSource tags every span with name, typically the file the input came
// from.
func WithSource(name string) Option {
	return func(c *config) { c.source = name }
}

// WithMaxDepth bounds how deeply values may nest. Subtrees beyond the
// bound are skipped and reported.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithEmitter routes lint findings to em instead of the parse errors, so
// they can be told apart from syntax errors.
func WithEmitter(em *parse.Emitter) Option {
	return func(c *config) { c.emitter = em }
}

// WithStats accumulates parse counters into st.
func WithStats(st *Stats) Option {
	return func(c *config) { c.stats = st }
}

// WithTrace logs session control flow to log at debug level.
func WithTrace(log commonlog.Logger) Option {
	return func(c *config) { c.trace = log }
}

// Parse reads src as a single JSON value. It always returns a value, a
// null one if nothing could be read, together with every diagnostic in
// source order. Lint findings ride along unless WithEmitter diverts them.
func Parse(src string, opts ...Option) (*Value, []error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	var cur input.Cursor[rune] = input.Text(src)
	if cfg.source != "" {
		cur = input.NewWithContext(cfg.source, cur)
	}
	var sopts []parse.Option
	if cfg.trace != nil {
		sopts = append(sopts, parse.WithTrace(cfg.trace))
	}
	s := parse.NewSession[rune, string, Stats, int](cur, cfg.stats, sopts...)

	p := &parser{cfg: cfg}
	v := p.parseValue(s)
	skipSpace(s)
	if _, ok := s.Peek(); ok {
		start := s.Offset()
		s.SkipWhile(func(rune) bool { return true })
		p.errorf(s, s.SpanSince(start), "unexpected trailing input")
	}
	return v, s.Finish()
}

// Validate parses src and returns only diagnostics: syntax errors first,
// then lint findings.
func Validate(src string, opts ...Option) []error {
	em := parse.NewEmitter()
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithEmitter(em))
	_, errs := Parse(src, all...)
	return append(errs, em.Errors()...)
}
