package format

import (
	"errors"

	"github.com/dhamidi/peck/ebnflex"
	"github.com/dhamidi/peck/jsonlite"
)

// Report is the renderable outcome of one run over one input: a token
// dump, a list of diagnostics, or both, plus optional statistics.
type Report struct {
	Source      string
	Tokens      []Token
	Diagnostics []Diagnostic
	Stats       *Stats
}

// Token is one row of a token dump. Start and End are byte offsets;
// Line and Column are 1-based and only set by lexers that track them.
type Token struct {
	Kind    string
	Literal string
	Start   int
	End     int
	Line    int
	Column  int
}

// Diagnostic is one finding with its source range.
type Diagnostic struct {
	Severity string
	Message  string
	Start    int
	End      int
	Source   string
}

// Stats summarizes a parse.
type Stats struct {
	Values   int
	Objects  int
	Arrays   int
	MaxDepth int
}

// TokensReport builds a report from scanned tokens.
func TokensReport(source string, tokens []jsonlite.Token) *Report {
	r := &Report{Source: source, Tokens: make([]Token, len(tokens))}
	for i, t := range tokens {
		r.Tokens[i] = Token{
			Kind:    t.Kind.String(),
			Literal: t.Literal,
			Start:   int(t.Span.Start),
			End:     int(t.Span.End),
		}
	}
	return r
}

// GrammarTokensReport builds a report from grammar-driven tokens.
func GrammarTokensReport(source string, tokens []ebnflex.Token) *Report {
	r := &Report{Source: source, Tokens: make([]Token, len(tokens))}
	for i, t := range tokens {
		r.Tokens[i] = Token{
			Kind:    t.Kind,
			Literal: t.Literal,
			Start:   t.Position.Offset,
			End:     t.Position.Offset + len(t.Literal),
			Line:    t.Position.Line,
			Column:  t.Position.Column,
		}
	}
	return r
}

// DiagnosticsReport builds a report from parse and lint findings.
func DiagnosticsReport(source string, errs []error) *Report {
	r := &Report{Source: source}
	for _, err := range errs {
		r.Diagnostics = append(r.Diagnostics, toDiagnostic(source, err))
	}
	return r
}

func toDiagnostic(source string, err error) Diagnostic {
	var perr *jsonlite.Error
	if !errors.As(err, &perr) {
		return Diagnostic{Severity: "error", Message: err.Error(), Source: source}
	}
	d := Diagnostic{
		Severity: "error",
		Message:  perr.Message,
		Start:    int(perr.Span.Start),
		End:      int(perr.Span.End),
		Source:   source,
	}
	if perr.Warning {
		d.Severity = "warning"
	}
	if src, ok := perr.Span.Context.(string); ok {
		d.Source = src
	}
	return d
}

// AddStats attaches parse statistics to the report.
func (r *Report) AddStats(stats jsonlite.Stats) {
	r.Stats = &Stats{
		Values:   stats.Values,
		Objects:  stats.Objects,
		Arrays:   stats.Arrays,
		MaxDepth: stats.MaxDepth,
	}
}
