package jsonlite

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/peck/input"
	"github.com/dhamidi/peck/parse"
)

// session carries rune tokens, string slices, shared Stats, and the
// current nesting depth as context.
type session = parse.Session[rune, string, Stats, int]

type parser struct {
	cfg config
}

func (p *parser) parseValue(s *session) *Value {
	skipSpace(s)
	start := s.Offset()

	r, ok := s.Peek()
	if !ok {
		p.errorf(s, s.SpanSince(start), "unexpected end of input, expected a value")
		return &Value{Kind: KindNull, Span: s.SpanSince(start)}
	}
	if s.Context() > p.cfg.maxDepth {
		p.skipBalanced(s)
		p.errorf(s, s.SpanSince(start), "nesting deeper than %d levels", p.cfg.maxDepth)
		return &Value{Kind: KindNull, Span: s.SpanSince(start)}
	}

	switch {
	case r == '{':
		return p.parseObject(s)
	case r == '[':
		return p.parseArray(s)
	case r == '"':
		str, sp, _ := p.parseString(s)
		s.State().Values++
		return &Value{Kind: KindString, Str: str, Span: sp}
	case r == '-' || isDigit(r):
		return p.parseNumber(s)
	case isAlpha(r):
		return p.parseKeyword(s)
	default:
		s.Skip()
		p.errorf(s, s.SpanSince(start), "unexpected character %q", r)
		return &Value{Kind: KindNull, Span: s.SpanSince(start)}
	}
}

func (p *parser) parseObject(s *session) *Value {
	start := s.Offset()
	s.Skip()
	s.State().Values++
	s.State().Objects++
	v := &Value{Kind: KindObject}
	var seen map[string]input.Span

	return p.descend(s, func(s *session) *Value {
		for {
			skipSpace(s)
			r, ok := s.Peek()
			if !ok {
				p.errorf(s, s.SpanSince(start), "unterminated object")
				break
			}
			if r == '}' {
				s.Skip()
				break
			}
			if len(v.Fields) > 0 {
				if r == ',' {
					s.Skip()
					skipSpace(s)
				} else {
					p.errorf(s, s.SpanSince(s.Offset()), "expected ',' or '}' in object")
				}
				if r, ok = s.Peek(); !ok {
					p.errorf(s, s.SpanSince(start), "unterminated object")
					break
				}
				if r == '}' {
					p.errorf(s, s.SpanSince(s.Offset()), "trailing comma in object")
					s.Skip()
					break
				}
			}
			if r != '"' {
				at := s.Offset()
				s.SkipWhile(func(r rune) bool { return r != ',' && r != '}' })
				if s.Offset() == at {
					s.Skip()
				}
				p.errorf(s, s.SpanSince(at), "expected a string key in object")
				continue
			}

			name, nameSpan, _ := p.parseString(s)
			if prev, dup := seen[name]; dup {
				p.lint(s, nameSpan, "duplicate key %q, previously at %s", name, prev)
			} else {
				if seen == nil {
					seen = make(map[string]input.Span)
				}
				seen[name] = nameSpan
			}

			skipSpace(s)
			if r, _ := s.Peek(); r == ':' {
				s.Skip()
			} else {
				p.errorf(s, s.SpanSince(s.Offset()), "expected ':' after object key %q", name)
			}

			v.Fields = append(v.Fields, Field{Name: name, NameSpan: nameSpan, Value: p.parseValue(s)})
		}
		v.Span = s.SpanSince(start)
		return v
	})
}

func (p *parser) parseArray(s *session) *Value {
	start := s.Offset()
	s.Skip()
	s.State().Values++
	s.State().Arrays++
	v := &Value{Kind: KindArray}

	return p.descend(s, func(s *session) *Value {
		for {
			skipSpace(s)
			r, ok := s.Peek()
			if !ok {
				p.errorf(s, s.SpanSince(start), "unterminated array")
				break
			}
			if r == ']' {
				s.Skip()
				break
			}
			if len(v.Items) > 0 {
				if r == ',' {
					s.Skip()
					skipSpace(s)
				} else {
					p.errorf(s, s.SpanSince(s.Offset()), "expected ',' or ']' in array")
				}
				if r, ok = s.Peek(); !ok {
					p.errorf(s, s.SpanSince(start), "unterminated array")
					break
				}
				if r == ']' {
					p.errorf(s, s.SpanSince(s.Offset()), "trailing comma in array")
					s.Skip()
					break
				}
			}
			v.Items = append(v.Items, p.parseValue(s))
		}
		v.Span = s.SpanSince(start)
		return v
	})
}

// parseString consumes a string literal. Literals without escapes come
// back as a slice of the input; only escaped ones are decoded into fresh
// storage.
func (p *parser) parseString(s *session) (string, input.Span, bool) {
	start := s.Offset()
	s.Skip()
	contentStart := s.Offset()
	escaped := false

	for {
		end := s.Offset()
		r, ok := s.Peek()
		if !ok || r == '\n' {
			p.errorf(s, s.SpanSince(start), "unterminated string")
			return finishString(s.Slice(contentStart, end), escaped), s.SpanSince(start), false
		}
		switch {
		case r == '"':
			raw := s.Slice(contentStart, end)
			s.Skip()
			if !escaped {
				return raw, s.SpanSince(start), true
			}
			str, badEsc := unescape(raw)
			if badEsc != "" {
				p.errorf(s, s.SpanSince(start), "invalid escape %q in string", badEsc)
			}
			return str, s.SpanSince(start), true
		case r == '\\':
			escaped = true
			s.Skip()
			if _, ok := s.Peek(); ok {
				s.Skip()
			}
		case r < 0x20:
			s.Skip()
			p.errorf(s, s.SpanSince(end), "control character in string literal")
		default:
			s.Skip()
		}
	}
}

func (p *parser) parseNumber(s *session) *Value {
	start := s.Offset()
	if r, _ := s.Peek(); r == '-' {
		s.Skip()
	}
	s.SkipWhile(isDigit)
	if r, _ := s.Peek(); r == '.' {
		s.Skip()
		s.SkipWhile(isDigit)
	}
	if r, _ := s.Peek(); r == 'e' || r == 'E' {
		s.Skip()
		if r, _ := s.Peek(); r == '+' || r == '-' {
			s.Skip()
		}
		s.SkipWhile(isDigit)
	}

	text := s.Slice(start, s.Offset())
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.errorf(s, s.SpanSince(start), "malformed number %q", text)
		n = 0
	}
	s.State().Values++
	return &Value{Kind: KindNumber, Number: n, Span: s.SpanSince(start)}
}

func (p *parser) parseKeyword(s *session) *Value {
	start := s.Offset()
	switch {
	case p.match(s, "true"):
		s.State().Values++
		return &Value{Kind: KindBool, Bool: true, Span: s.SpanSince(start)}
	case p.match(s, "false"):
		s.State().Values++
		return &Value{Kind: KindBool, Bool: false, Span: s.SpanSince(start)}
	case p.match(s, "null"):
		s.State().Values++
		return &Value{Kind: KindNull, Span: s.SpanSince(start)}
	}
	s.SkipWhile(isAlpha)
	p.errorf(s, s.SpanSince(start), "unknown keyword %q", s.Slice(start, s.Offset()))
	return &Value{Kind: KindNull, Span: s.SpanSince(start)}
}

// match consumes lit when it appears next and is not part of a longer
// word; otherwise the session is rewound and match reports false.
func (p *parser) match(s *session, lit string) bool {
	m := s.Save()
	for _, want := range lit {
		_, r, ok := s.Next()
		if !ok || r != want {
			s.Rewind(m)
			return false
		}
	}
	if r, ok := s.Peek(); ok && isAlpha(r) {
		s.Rewind(m)
		return false
	}
	return true
}

// descend runs body one nesting level deeper.
func (p *parser) descend(s *session, body func(*session) *Value) *Value {
	depth := s.Context() + 1
	if st := s.State(); depth > st.MaxDepth {
		st.MaxDepth = depth
	}
	return parse.WithContext(s, depth, body)
}

// skipBalanced consumes one value-shaped region without parsing it,
// matching brackets and honoring strings. Recovery for subtrees that are
// not worth descending into.
func (p *parser) skipBalanced(s *session) {
	r, ok := s.Peek()
	if !ok {
		return
	}
	switch r {
	case '{', '[':
		depth := 0
		for {
			r, ok := s.Peek()
			if !ok {
				return
			}
			switch r {
			case '{', '[':
				depth++
				s.Skip()
			case '}', ']':
				depth--
				s.Skip()
				if depth <= 0 {
					return
				}
			case '"':
				p.skipString(s)
			default:
				s.Skip()
			}
		}
	case '"':
		p.skipString(s)
	default:
		s.SkipWhile(func(r rune) bool {
			return r != ',' && r != ']' && r != '}' && !isSpace(r)
		})
	}
}

// skipString consumes a string literal without building its value.
func (p *parser) skipString(s *session) {
	s.Skip()
	for {
		_, r, ok := s.Next()
		if !ok {
			return
		}
		switch r {
		case '\\':
			s.Skip()
		case '"':
			return
		}
	}
}

func skipSpace(s *session) {
	s.SkipWhile(isSpace)
}

func (p *parser) errorf(s *session, sp input.Span, format string, args ...any) {
	s.Emit(&Error{Span: sp, Message: fmt.Sprintf(format, args...)})
}

// lint reports a non-fatal finding. With an emitter configured it survives
// independently of the parse errors.
func (p *parser) lint(s *session, sp input.Span, format string, args ...any) {
	err := &Error{Span: sp, Message: fmt.Sprintf(format, args...), Warning: true}
	if p.cfg.emitter != nil {
		p.cfg.emitter.Emit(err)
		return
	}
	s.Emit(err)
}

func finishString(raw string, escaped bool) string {
	if !escaped {
		return raw
	}
	str, _ := unescape(raw)
	return str
}

// unescape decodes the escape sequences in raw. The second result names
// the first invalid escape, or is empty.
func unescape(raw string) (string, string) {
	var b strings.Builder
	b.Grow(len(raw))
	bad := ""
loop:
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(raw) {
			if bad == "" {
				bad = `\`
			}
			break
		}
		esc := raw[i+1]
		i += 2
		switch esc {
		case '"', '\\', '/':
			b.WriteByte(esc)
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 > len(raw) {
				if bad == "" {
					bad = `\u`
				}
				break loop
			}
			n, err := strconv.ParseUint(raw[i:i+4], 16, 32)
			if err != nil {
				if bad == "" {
					bad = `\u` + raw[i:i+4]
				}
				i += 4
				continue
			}
			r := rune(n)
			i += 4
			if utf16.IsSurrogate(r) {
				if i+6 <= len(raw) && raw[i] == '\\' && raw[i+1] == 'u' {
					if n2, err2 := strconv.ParseUint(raw[i+2:i+6], 16, 32); err2 == nil {
						if dec := utf16.DecodeRune(r, rune(n2)); dec != utf8.RuneError {
							b.WriteRune(dec)
							i += 6
							continue
						}
					}
				}
				b.WriteRune(utf8.RuneError)
				continue
			}
			b.WriteRune(r)
		default:
			if bad == "" {
				bad = `\` + string(esc)
			}
		}
	}
	return b.String(), bad
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
