package format

import (
	"encoding/json"
	"io"
)

type JSONEncoder struct {
	w      io.Writer
	report *Report
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(report *Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildReportData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonReport struct {
	Source      string           `json:"source,omitempty"`
	Tokens      []jsonToken      `json:"tokens,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
	Stats       *jsonStats       `json:"stats,omitempty"`
}

type jsonToken struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Source   string `json:"source,omitempty"`
}

type jsonStats struct {
	Values   int `json:"values"`
	Objects  int `json:"objects"`
	Arrays   int `json:"arrays"`
	MaxDepth int `json:"maxDepth"`
}

func (e *JSONEncoder) buildReportData() jsonReport {
	r := e.report
	data := jsonReport{
		Source:      r.Source,
		Tokens:      buildTokens(r.Tokens),
		Diagnostics: buildDiagnostics(r.Diagnostics),
	}
	if r.Stats != nil {
		data.Stats = &jsonStats{
			Values:   r.Stats.Values,
			Objects:  r.Stats.Objects,
			Arrays:   r.Stats.Arrays,
			MaxDepth: r.Stats.MaxDepth,
		}
	}
	return data
}

func buildTokens(tokens []Token) []jsonToken {
	result := make([]jsonToken, len(tokens))
	for i, t := range tokens {
		result[i] = jsonToken{
			Kind:    t.Kind,
			Literal: t.Literal,
			Start:   t.Start,
			End:     t.End,
			Line:    t.Line,
			Column:  t.Column,
		}
	}
	return result
}

func buildDiagnostics(diags []Diagnostic) []jsonDiagnostic {
	result := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		result[i] = jsonDiagnostic{
			Severity: d.Severity,
			Message:  d.Message,
			Start:    d.Start,
			End:      d.End,
			Source:   d.Source,
		}
	}
	return result
}
