package input

import "unicode/utf8"

// Text is a cursor over a string. Tokens are runes and offsets are byte
// positions, so every offset a Text cursor hands out lies on a rune
// boundary. Slices are substrings sharing the original backing array;
// nothing is copied.
//
// Invalid UTF-8 decodes the way the utf8 package decodes it: one
// utf8.RuneError per bad byte.
type Text string

func (t Text) Start() Offset { return 0 }

func (t Text) Advance(off Offset) (Offset, rune, bool) {
	if int(off) >= len(t) {
		return off, 0, false
	}
	r, size := utf8.DecodeRuneInString(string(t[off:]))
	return off + Offset(size), r, true
}

func (t Text) Span(start, end Offset) Span {
	return Span{Start: start, End: end}
}

func (t Text) Reborrow() Cursor[rune] { return t }

func (t Text) Slice(start, end Offset) string {
	return string(t[start:end])
}

func (t Text) SliceFrom(start Offset) string {
	return string(t[start:])
}
