package parse

// Emitter collects diagnostics that must survive backtracking. A session
// Rewind truncates the session's own error buffer but never touches an
// Emitter, so validation-style checks report through one of these when
// their findings should stand even if the surrounding attempt is undone.
type Emitter struct {
	emitted []error
}

func NewEmitter() *Emitter { return &Emitter{} }

// Emit records err.
func (e *Emitter) Emit(err error) {
	e.emitted = append(e.emitted, err)
}

// Errors consumes the emitter, returning everything emitted so far in
// emission order.
func (e *Emitter) Errors() []error {
	errs := e.emitted
	e.emitted = nil
	return errs
}
