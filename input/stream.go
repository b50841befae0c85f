package input

import (
	"bufio"
	"io"
	"iter"
)

// DefaultStreamBatch is how many tokens a Stream pulls from its source per
// refill.
const DefaultStreamBatch = 500

// Stream adapts a one-shot pull source into a cursor by buffering every
// token it reads. Tokens are pulled lazily, one bounded batch at a time,
// the first time an offset reaches past what is buffered; afterwards they
// are served from the buffer, which is what lets a backtracking consumer
// rewind over streamed input.
//
// Reborrow returns the same *Stream, so every alias shares one buffer and
// the source is consumed at most once. A Stream must not be shared across
// goroutines.
type Stream[T any] struct {
	buf   []T
	next  func() (T, bool)
	stop  func()
	batch int
	done  bool
}

// NewStream buffers the tokens of seq with the default batch size.
func NewStream[T any](seq iter.Seq[T]) *Stream[T] {
	return NewStreamSize(seq, DefaultStreamBatch)
}

// NewStreamSize is like NewStream with an explicit batch size. Sizes below
// one fall back to the default.
func NewStreamSize[T any](seq iter.Seq[T], batch int) *Stream[T] {
	next, stop := iter.Pull(seq)
	s := NewStreamFunc(next)
	s.stop = stop
	if batch >= 1 {
		s.batch = batch
	}
	return s
}

// NewStreamFunc buffers the tokens of a bare pull function, which is
// called until it reports false. Any token source can be fed to a Stream
// this way without a dedicated adapter type.
func NewStreamFunc[T any](next func() (T, bool)) *Stream[T] {
	return &Stream[T]{next: next, batch: DefaultStreamBatch}
}

func (s *Stream[T]) Start() Offset { return 0 }

func (s *Stream[T]) Advance(off Offset) (Offset, T, bool) {
	s.fill(off)
	if int(off) >= len(s.buf) {
		var zero T
		return off, zero, false
	}
	return off + 1, s.buf[off], true
}

// fill pulls one batch when fewer than off+1 tokens are buffered and the
// source is not exhausted. One batch is always enough for offsets obtained
// from this cursor, which never run more than one token ahead of the
// buffer.
func (s *Stream[T]) fill(off Offset) {
	if s.done || int(off) < len(s.buf) {
		return
	}
	for i := 0; i < s.batch; i++ {
		tok, ok := s.next()
		if !ok {
			s.done = true
			if s.stop != nil {
				s.stop()
			}
			return
		}
		s.buf = append(s.buf, tok)
	}
}

func (s *Stream[T]) Span(start, end Offset) Span {
	return Span{Start: start, End: end}
}

func (s *Stream[T]) Reborrow() Cursor[T] { return s }

// Buffered reports how many tokens have been pulled from the source so
// far.
func (s *Stream[T]) Buffered() int { return len(s.buf) }

// Runes adapts a reader into a pull source of runes, suitable for feeding
// a Stream when the input arrives over a pipe or socket instead of as a
// string in memory. Read errors, including io.EOF, end the sequence.
func Runes(r io.Reader) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		br := bufio.NewReader(r)
		for {
			ch, _, err := br.ReadRune()
			if err != nil {
				return
			}
			if !yield(ch) {
				return
			}
		}
	}
}
