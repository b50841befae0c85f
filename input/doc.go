// Package input defines the cursor capability model: how a parsing engine
// reads tokens from a source without caring what the source is.
//
// # Overview
//
// A cursor is a cheap, stateless handle over some input. It does not track
// a position of its own; consumers hold an Offset and push it forward
// through Advance. That split is what makes backtracking trivial: saving a
// position is copying an integer, restoring it is copying it back.
//
// Capabilities are layered as embedded interfaces:
//
//	Cursor[T]              start, advance, span, reborrow
//	SliceCursor[T, S]      + contiguous sub-ranges as S
//	BorrowCursor[T]        + pointers into the backing store
//	TextCursor             SliceCursor[rune, string]
//
// An engine asks for the weakest capability it needs. Generic machinery
// takes Cursor; a combinator that captures matched text takes a slicing
// cursor or unwraps decorators until it finds one.
//
// # Provided Cursors
//
//	┌──────────────┬───────────┬──────────────┬─────────────────────────┐
//	│ cursor       │ token     │ offset unit  │ capabilities            │
//	├──────────────┼───────────┼──────────────┼─────────────────────────┤
//	│ Text         │ rune      │ byte         │ slicing (string)        │
//	│ Slice[T]     │ T         │ element      │ slicing ([]T), borrow   │
//	│ WithContext  │ delegated │ delegated    │ pass-through via Unwrap │
//	│ Stream[T]    │ T         │ element      │ base only               │
//	└──────────────┴───────────┴──────────────┴─────────────────────────┘
//
// Text and Slice never copy their input: slices alias the original
// backing store. WithContext stamps a context value onto every span,
// which is how an engine reports positions in terms of the file or
// expansion site the input came from. Stream buffers a one-shot source
// (an iter.Seq, a pull function, a reader via Runes) in bounded batches
// so that rewinding works even when the source cannot be replayed.
//
// # Offsets and Spans
//
// Offsets are opaque by convention: order and compare them, but only feed
// a cursor offsets that came from that cursor. Spans are half-open
// [Start, End) pairs built by the cursor itself, so their meaning always
// matches the cursor's offset unit.
//
// # Thread Safety
//
// Cursors over immutable data (Text, Slice) are safe for concurrent
// readers. Stream is not: it mutates a shared buffer. A parsing session
// owns its cursor for the duration of a parse either way.
package input
