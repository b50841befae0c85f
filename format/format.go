package format

import "encoding"

type Encoder interface {
	encoding.TextMarshaler
	Encode(report *Report) error
}
