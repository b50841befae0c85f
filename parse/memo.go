package parse

import "github.com/dhamidi/peck/input"

// ParserID names one parser for memoization purposes. The session does not
// interpret it; engines assign their own scheme, such as a production
// index or a node number, and must keep it stable for the whole parse.
type ParserID int

// Located pairs a failure with the offset it occurred at.
type Located struct {
	Offset input.Offset
	Err    error
}

type memoKey struct {
	off input.Offset
	id  ParserID
}

// MemoGet looks up a failure cached for parser id at offset at. On a
// session without memoization it always misses.
//
// A hit means parser id already failed there: the engine must reproduce
// the failure from the returned value instead of re-running the parser.
// Because engines only cache attempts they have rewound, replaying from
// the cache is indistinguishable from running the parser again.
func (s *Session[T, S, U, C]) MemoGet(at input.Offset, id ParserID) (Located, bool) {
	fail, ok := s.memo[memoKey{off: at, id: id}]
	return fail, ok
}

// MemoPut caches a failure for parser id at offset at. The engine must
// have rewound the failed attempt first, so the cached outcome is the
// whole observable effect. On a session without memoization this does
// nothing.
func (s *Session[T, S, U, C]) MemoPut(at input.Offset, id ParserID, fail Located) {
	if s.memo == nil {
		return
	}
	if s.opts.trace != nil {
		s.opts.trace.Debug("memoize failure", "offset", int(at), "parser", int(id))
	}
	s.memo[memoKey{off: at, id: id}] = fail
}
