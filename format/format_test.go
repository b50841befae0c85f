package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/dhamidi/peck/ebnflex"
	"github.com/dhamidi/peck/input"
	"github.com/dhamidi/peck/jsonlite"
)

var (
	_ Encoder = (*JSONEncoder)(nil)
	_ Encoder = (*LineEncoder)(nil)
)

func TestJSONEncoderTokens(t *testing.T) {
	report := TokensReport("data.json", jsonlite.ScanTokens("[1]"))

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(report); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var got jsonReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if got.Source != "data.json" {
		t.Errorf("source = %q, want %q", got.Source, "data.json")
	}
	if len(got.Tokens) != 4 {
		t.Fatalf("got %d tokens, want 4", len(got.Tokens))
	}
	num := got.Tokens[1]
	if num.Kind != "Number" || num.Literal != "1" || num.Start != 1 || num.End != 2 {
		t.Errorf("token 1 = %+v, want Number %q at 1..2", num, "1")
	}
}

func TestJSONEncoderDiagnosticsAndStats(t *testing.T) {
	var stats jsonlite.Stats
	errs := jsonlite.Validate(`{"a":1,"a":2}`, jsonlite.WithStats(&stats))

	report := DiagnosticsReport("dup.json", errs)
	report.AddStats(stats)

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(report); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var got jsonReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(got.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(got.Diagnostics))
	}
	if got.Diagnostics[0].Severity != "warning" || got.Diagnostics[0].Source != "dup.json" {
		t.Errorf("diagnostic = %+v, want warning from dup.json", got.Diagnostics[0])
	}
	if got.Stats == nil || got.Stats.Values != 3 || got.Stats.Objects != 1 || got.Stats.MaxDepth != 1 {
		t.Errorf("stats = %+v, want 3 values, 1 object, depth 1", got.Stats)
	}
}

func TestLineEncoderOutput(t *testing.T) {
	report := &Report{
		Tokens: []Token{
			{Kind: "Number", Literal: "42", Start: 0, End: 2},
			{Kind: "Ident", Literal: "x", Start: 3, End: 4, Line: 1, Column: 4},
			{Kind: "EOF", Start: 4, End: 4},
		},
		Diagnostics: []Diagnostic{
			{Severity: "error", Message: "unexpected character '@'", Start: 5, End: 6, Source: "in.json"},
		},
		Stats: &Stats{Values: 2, Objects: 1, Arrays: 0, MaxDepth: 2},
	}

	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(report); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := "token\tNumber\t0..2\t42\n" +
		"token\tIdent\t1:4\tx\n" +
		"token\tEOF\t4..4\t-\n" +
		"error\tin.json:5..6\tunexpected character '@'\n" +
		"stats\tvalues=2\tobjects=1\tarrays=0\tdepth=2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestGrammarTokensReport(t *testing.T) {
	tokens := []ebnflex.Token{
		{Kind: "Ident", Literal: "ab", Position: ebnflex.Position{Filename: "f.txt", Offset: 3, Line: 2, Column: 1}},
	}
	report := GrammarTokensReport("f.txt", tokens)

	got := report.Tokens[0]
	if got.Start != 3 || got.End != 5 || got.Line != 2 || got.Column != 1 {
		t.Errorf("token = %+v, want offsets 3..5 at 2:1", got)
	}
}

func TestDiagnosticsReportSeverities(t *testing.T) {
	errs := []error{
		&jsonlite.Error{Span: input.Span{Start: 1, End: 2}, Message: "boom"},
		&jsonlite.Error{Span: input.Span{Start: 3, End: 4, Context: "tagged.json"}, Message: "dup", Warning: true},
		errors.New("plain failure"),
	}

	report := DiagnosticsReport("fallback.json", errs)

	want := []Diagnostic{
		{Severity: "error", Message: "boom", Start: 1, End: 2, Source: "fallback.json"},
		{Severity: "warning", Message: "dup", Start: 3, End: 4, Source: "tagged.json"},
		{Severity: "error", Message: "plain failure", Source: "fallback.json"},
	}
	if !reflect.DeepEqual(report.Diagnostics, want) {
		t.Errorf("Diagnostics = %+v, want %+v", report.Diagnostics, want)
	}
}
