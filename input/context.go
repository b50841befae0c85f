package input

// WithContext decorates a cursor so that every span it produces carries a
// fixed context value, typically a file name or the site that pulled the
// input in. Token reading and offsets are delegated to the inner cursor
// unchanged.
//
// When wrappers nest, the outermost context wins; callers who need layers
// should compose them into one context value.
type WithContext[C, T any] struct {
	Context C
	Inner   Cursor[T]
}

// NewWithContext wraps inner so its spans carry ctx.
func NewWithContext[C, T any](ctx C, inner Cursor[T]) *WithContext[C, T] {
	return &WithContext[C, T]{Context: ctx, Inner: inner}
}

func (w *WithContext[C, T]) Start() Offset { return w.Inner.Start() }

func (w *WithContext[C, T]) Advance(off Offset) (Offset, T, bool) {
	return w.Inner.Advance(off)
}

func (w *WithContext[C, T]) Span(start, end Offset) Span {
	sp := w.Inner.Span(start, end)
	sp.Context = w.Context
	return sp
}

func (w *WithContext[C, T]) Reborrow() Cursor[T] {
	return &WithContext[C, T]{Context: w.Context, Inner: w.Inner.Reborrow()}
}

// Unwrap returns the decorated cursor. Consumers that need slicing or
// borrowing assert for the capability and unwrap until they find it, so a
// context wrapper hides nothing but the spans it rewrites.
func (w *WithContext[C, T]) Unwrap() Cursor[T] { return w.Inner }
