package format

import (
	"fmt"
	"io"
	"strings"
)

type LineEncoder struct {
	w      io.Writer
	report *Report
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(report *Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.report

	for _, t := range r.Tokens {
		fmt.Fprintf(&sb, "token\t%s\t%s\t%s\n", t.Kind, tokenPos(t), literalOrDash(t.Literal))
	}

	for _, d := range r.Diagnostics {
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", d.Severity, diagnosticPos(d), d.Message)
	}

	if r.Stats != nil {
		fmt.Fprintf(&sb, "stats\tvalues=%d\tobjects=%d\tarrays=%d\tdepth=%d\n",
			r.Stats.Values, r.Stats.Objects, r.Stats.Arrays, r.Stats.MaxDepth)
	}

	return []byte(sb.String()), nil
}

func tokenPos(t Token) string {
	if t.Line > 0 {
		return fmt.Sprintf("%d:%d", t.Line, t.Column)
	}
	return fmt.Sprintf("%d..%d", t.Start, t.End)
}

func diagnosticPos(d Diagnostic) string {
	span := fmt.Sprintf("%d..%d", d.Start, d.End)
	if d.Source != "" {
		return d.Source + ":" + span
	}
	return span
}

func literalOrDash(literal string) string {
	if literal == "" {
		return "-"
	}
	return literal
}
