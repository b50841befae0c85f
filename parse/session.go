package parse

import (
	"github.com/dhamidi/peck/input"
	"github.com/tliron/commonlog"
)

// None is the placeholder for an unused state or context type parameter.
type None = struct{}

// Marker records a point in a parse that a session can rewind to: the
// offset and how many errors had been emitted. Markers are small values;
// copy them freely. A marker is only meaningful for the session that
// produced it, or for a sub-session sharing its offset domain.
type Marker struct {
	offset input.Offset
	errs   int
}

// Offset returns the input position the marker was taken at.
func (m Marker) Offset() input.Offset { return m.offset }

// Option configures a session at construction time.
type Option func(*options)

type options struct {
	memoize bool
	trace   commonlog.Logger
}

// WithMemoization enables the failure cache consulted through MemoGet and
// MemoPut. Sessions without it treat every lookup as a miss.
func WithMemoization() Option {
	return func(o *options) { o.memoize = true }
}

// WithTrace logs control-flow events (saves, rewinds, sub-parses, emitted
// errors) to log at debug level. Token reads are never logged.
func WithTrace(log commonlog.Logger) Option {
	return func(o *options) { o.trace = log }
}

// Session drives one parse over a cursor. It owns the traversal state an
// engine needs: the current offset, a buffer of non-fatal errors, a user
// state object shared with every sub-session, a context value, and an
// optional memoization table. The cursor itself stays private; engines for
// combinators, grammars, or hand-written parsers interact with the input
// only through the session's operations.
//
// Type parameters: T is the token type, S the slice type produced by the
// slicing operations (use None when the cursor cannot slice), U the shared
// user state, and C the context value.
//
// A session is single-threaded: one call chain at a time.
type Session[T, S, U, C any] struct {
	in     input.Cursor[T]
	offset input.Offset
	errors []error
	state  *U
	ctx    C
	memo   map[memoKey]Located
	opts   options
}

// NewSession starts a session reading from in. state may be nil, in which
// case the session owns a fresh zero value; passing a pointer shares the
// state object between the caller and the parse. The context starts as the
// zero value of C.
func NewSession[T, S, U, C any](in input.Cursor[T], state *U, opts ...Option) *Session[T, S, U, C] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if state == nil {
		state = new(U)
	}
	s := &Session[T, S, U, C]{
		in:     in,
		offset: in.Start(),
		state:  state,
		opts:   o,
	}
	if o.memoize {
		s.memo = make(map[memoKey]Located)
	}
	return s
}

// New starts a session with no user state and no context.
func New[T, S any](in input.Cursor[T], opts ...Option) *Session[T, S, None, None] {
	return NewSession[T, S, None, None](in, nil, opts...)
}

// Offset returns the current position without side effects.
func (s *Session[T, S, U, C]) Offset() input.Offset { return s.offset }

// Save captures the current offset and error count.
func (s *Session[T, S, U, C]) Save() Marker {
	return Marker{offset: s.offset, errs: len(s.errors)}
}

// Rewind restores the offset recorded in m and truncates the error buffer
// to the count it recorded, leaving earlier errors untouched. Truncation
// never extends the buffer: restoring a marker taken before an intervening
// rewind cannot bring the errors that rewind dropped back. Any marker this
// session produced is valid here, no matter what ran in between.
func (s *Session[T, S, U, C]) Rewind(m Marker) {
	if s.opts.trace != nil {
		s.opts.trace.Debug("rewind", "from", int(s.offset), "to", int(m.offset), "dropped", max(len(s.errors)-m.errs, 0))
	}
	if m.errs < len(s.errors) {
		s.errors = s.errors[:m.errs]
	}
	s.offset = m.offset
}

// Next reads the token at the current position and advances past it. At
// the end of input it reports false and the offset stays put.
func (s *Session[T, S, U, C]) Next() (input.Offset, T, bool) {
	off, tok, ok := s.in.Advance(s.offset)
	s.offset = off
	return off, tok, ok
}

// NextRef is Next through the borrowing refinement: the returned pointer
// aliases the cursor's backing store and nil reports end of input. Panics
// when no cursor in the chain can borrow.
func (s *Session[T, S, U, C]) NextRef() (input.Offset, *T) {
	off, ref := borrowCursor[T](s.in).AdvanceRef(s.offset)
	s.offset = off
	return off, ref
}

// Peek returns the token at the current position without consuming it.
// Until the session advances, repeated calls return the same answer.
func (s *Session[T, S, U, C]) Peek() (T, bool) {
	_, tok, ok := s.in.Advance(s.offset)
	return tok, ok
}

// Skip consumes one token and discards it.
func (s *Session[T, S, U, C]) Skip() {
	off, _, _ := s.in.Advance(s.offset)
	s.offset = off
}

// SkipWhile consumes tokens as long as pred holds. The offset ends up just
// before the first token that fails the predicate, or at the end of input;
// it does not move if the first token already fails.
func (s *Session[T, S, U, C]) SkipWhile(pred func(T) bool) {
	for {
		off, tok, ok := s.in.Advance(s.offset)
		if !ok || !pred(tok) {
			return
		}
		s.offset = off
	}
}

// Slice returns the input between two previously visited offsets. Panics
// when no cursor in the chain can slice.
func (s *Session[T, S, U, C]) Slice(start, end input.Offset) S {
	return sliceCursor[T, S](s.in).Slice(start, end)
}

// SliceFrom returns the input from start to the end.
func (s *Session[T, S, U, C]) SliceFrom(start input.Offset) S {
	return sliceCursor[T, S](s.in).SliceFrom(start)
}

// SliceTrailing returns the unconsumed remainder of the input.
func (s *Session[T, S, U, C]) SliceTrailing() S {
	return sliceCursor[T, S](s.in).SliceFrom(s.offset)
}

// SpanSince builds the span from start to the current position. The span
// comes from the outermost cursor, so context decoration survives.
func (s *Session[T, S, U, C]) SpanSince(start input.Offset) input.Span {
	return s.in.Span(start, s.offset)
}

// Emit records a non-fatal error and continues. Errors are kept in
// emission order and are subject to Rewind.
func (s *Session[T, S, U, C]) Emit(err error) {
	if s.opts.trace != nil {
		s.opts.trace.Debug("emit", "offset", int(s.offset), "err", err)
	}
	s.errors = append(s.errors, err)
}

// Finish ends the parse and hands back every buffered error in emission
// order. The session must not be used afterwards.
func (s *Session[T, S, U, C]) Finish() []error {
	errs := s.errors
	s.errors = nil
	return errs
}

// State returns the shared user state object.
func (s *Session[T, S, U, C]) State() *U { return s.state }

// Context returns the session's context value.
func (s *Session[T, S, U, C]) Context() C { return s.ctx }

// WithContext runs body in a sub-session carrying ctx and returns body's
// result. The sub-session picks up at the parent's offset with an empty
// error buffer and a fresh memoization table, and shares the parent's
// state object. When body returns, the parent adopts the sub-session's
// offset and appends its errors, so every inner error surfaces exactly
// once; the sub-context is discarded. Calls nest to any depth.
//
// This is a function rather than a method so the context can change type
// between parent and child.
func WithContext[T, S, U, C, C2, R any](s *Session[T, S, U, C], ctx C2, body func(*Session[T, S, U, C2]) R) R {
	if s.opts.trace != nil {
		s.opts.trace.Debug("sub-parse", "offset", int(s.offset), "context", ctx)
	}
	sub := &Session[T, S, U, C2]{
		in:     s.in.Reborrow(),
		offset: s.offset,
		state:  s.state,
		ctx:    ctx,
		opts:   s.opts,
	}
	if s.opts.memoize {
		sub.memo = make(map[memoKey]Located)
	}
	out := body(sub)
	s.offset = sub.offset
	s.errors = append(s.errors, sub.errors...)
	return out
}

// borrowCursor finds the borrowing capability, unwrapping decorators.
func borrowCursor[T any](c input.Cursor[T]) input.BorrowCursor[T] {
	for {
		if bc, ok := c.(input.BorrowCursor[T]); ok {
			return bc
		}
		w, ok := c.(interface{ Unwrap() input.Cursor[T] })
		if !ok {
			panic("parse: cursor does not support borrowing")
		}
		c = w.Unwrap()
	}
}

// sliceCursor finds the slicing capability, unwrapping decorators.
func sliceCursor[T, S any](c input.Cursor[T]) input.SliceCursor[T, S] {
	for {
		if sc, ok := c.(input.SliceCursor[T, S]); ok {
			return sc
		}
		w, ok := c.(interface{ Unwrap() input.Cursor[T] })
		if !ok {
			panic("parse: cursor does not support slicing")
		}
		c = w.Unwrap()
	}
}
