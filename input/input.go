package input

import "fmt"

// Offset is a position within one cursor's input. Offsets are totally
// ordered and never decrease along a forward traversal. An Offset is only
// meaningful for the cursor that produced it: callers must pass offsets
// obtained from Start or from a previous Advance on the same cursor (or an
// alias made with Reborrow). Violating that is a programming error, not a
// recoverable condition.
//
// The concrete interpretation is per cursor: Text counts bytes, Slice and
// Stream count tokens.
type Offset int

// Span is a half-open range [Start, End) over one cursor's input. Context
// is nil unless the span was produced through a context-carrying cursor
// such as WithContext.
type Span struct {
	Start, End Offset
	Context    any
}

// Len returns the number of offset units covered by the span.
func (s Span) Len() int { return int(s.End - s.Start) }

func (s Span) String() string {
	if s.Context != nil {
		return fmt.Sprintf("%v:%d..%d", s.Context, s.Start, s.End)
	}
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Cursor is the minimal capability every input source provides: a start
// position, single-token advancement, and span construction. Cursors are
// cheap handles; they carry no traversal state of their own, so any number
// of consumers may walk the same cursor with their own offsets.
type Cursor[T any] interface {
	// Start returns the offset of the first token.
	Start() Offset

	// Advance reads the token at off. It returns the offset of the
	// following token, the token, and true; or, at or past the end of
	// input, off unchanged, the zero token, and false. Calling Advance
	// again at the end of input gives the same answer every time.
	Advance(off Offset) (Offset, T, bool)

	// Span builds the span covering [start, end).
	Span(start, end Offset) Span

	// Reborrow returns an independent alias of this cursor positioned over
	// the same input. Cursors backed by shared mutable storage must return
	// a handle to the same storage so no token is materialized twice.
	Reborrow() Cursor[T]
}

// SliceCursor is implemented by cursors whose backing store is contiguous,
// so that any sub-range is available as a slice S without copying.
type SliceCursor[T, S any] interface {
	Cursor[T]

	// Slice returns the tokens in [start, end) as a slice of the backing
	// store.
	Slice(start, end Offset) S

	// SliceFrom returns the tokens from start to the end of input.
	SliceFrom(start Offset) S
}

// BorrowCursor is implemented by cursors that can hand out pointers into
// their backing store. AdvanceRef must agree with Advance about positions:
// at every offset both either produce a token or both report end of input,
// and the returned offsets are equal.
type BorrowCursor[T any] interface {
	Cursor[T]

	// AdvanceRef reads the token at off like Advance, but returns a
	// pointer into the backing store instead of a copy. A nil pointer
	// reports end of input.
	AdvanceRef(off Offset) (Offset, *T)
}

// TextCursor is the character-input refinement: rune tokens whose
// sub-ranges slice out as strings.
type TextCursor interface {
	SliceCursor[rune, string]
}
