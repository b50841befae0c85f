package jsonlite

import (
	"fmt"

	"github.com/dhamidi/peck/input"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"null", "bool", "number", "string", "array", "object"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[int(k)]
}

// Value is one parsed JSON value. Only the fields for its Kind are
// meaningful. Span covers the value in the original input, including the
// delimiters of strings, arrays, and objects.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Items  []*Value
	Fields []Field
	Span   input.Span
}

// Field is one object member. Members keep their source order, and
// duplicated names are preserved rather than collapsed; duplicates are
// reported as diagnostics instead.
type Field struct {
	Name     string
	NameSpan input.Span
	Value    *Value
}
