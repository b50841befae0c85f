package input

// Slice is a cursor over a token slice. Offsets are element indices.
// Offsets beyond the end of the slice are legal inputs to Advance and
// simply report end of input; they are not clamped.
//
// Slice implements SliceCursor (sub-ranges alias the backing array) and
// BorrowCursor (AdvanceRef points into the backing array).
type Slice[T any] []T

func (s Slice[T]) Start() Offset { return 0 }

func (s Slice[T]) Advance(off Offset) (Offset, T, bool) {
	if int(off) >= len(s) {
		var zero T
		return off, zero, false
	}
	return off + 1, s[off], true
}

func (s Slice[T]) AdvanceRef(off Offset) (Offset, *T) {
	if int(off) >= len(s) {
		return off, nil
	}
	return off + 1, &s[off]
}

func (s Slice[T]) Span(start, end Offset) Span {
	return Span{Start: start, End: end}
}

func (s Slice[T]) Reborrow() Cursor[T] { return s }

func (s Slice[T]) Slice(start, end Offset) []T {
	return s[start:end]
}

func (s Slice[T]) SliceFrom(start Offset) []T {
	return s[start:]
}
