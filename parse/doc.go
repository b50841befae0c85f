// Package parse provides the parsing session: the mutable harness a
// parser engine drives over a cursor from package input.
//
// # Overview
//
// Cursors are stateless, so something has to hold the position, collect
// errors, and carry whatever the grammar threads through a parse. That is
// the Session. An engine, whether a combinator runtime or a hand-written
// recursive descent parser, calls session operations and never touches
// the cursor directly.
//
//	┌────────────┐  Next/Peek/Slice   ┌─────────────┐  Advance  ┌─────────┐
//	│   engine   │───────────────────▶│   Session   │──────────▶│ Cursor  │
//	│ (grammar)  │  Save/Rewind/Emit  │ offset,errs │           │ (input) │
//	└────────────┘                    │ state, ctx  │           └─────────┘
//	                                  └─────────────┘
//
// # Backtracking
//
// Save captures the offset and the error count as a Marker; Rewind
// restores both. Tokens are never destroyed by parsing, so rewinding is
// exact no matter how far ahead the failed attempt read:
//
//	m := s.Save()
//	if !tryBranch(s) {
//	    s.Rewind(m) // offset and error buffer as if nothing happened
//	}
//
// Diagnostics that must survive rewinds go through an Emitter instead of
// Session.Emit.
//
// # Sub-parses and Context
//
// WithContext runs a body in a sub-session with a new context value,
// possibly of a different type. The sub-session shares the parent's user
// state, starts with an empty error buffer, and hands its offset and
// errors back to the parent when the body returns. This is how
// context-sensitive grammars thread values like indentation levels or
// nesting depth without smuggling them through user state.
//
// # Memoization
//
// WithMemoization turns on a failure cache keyed by (offset, ParserID).
// Engines that re-try the same alternative at the same position, as
// packrat-style grammars do, consult it with MemoGet and record rewound
// failures with MemoPut. Without the option both are no-ops, so engine
// code is written once and works either way.
//
// # Thread Safety
//
// A session is single-threaded. Run concurrent parses with one session
// each; a shared state object is the caller's to synchronize.
package parse
