// Package value implements the typed RFC 5545 value parsers: the
// dispatch table that §4.C of the spec describes, mapping a VALUE=
// parameter (or a property's default value kind) onto a concrete parser.
// Every parser returns a span alongside its error so diagnostics can
// underline the offending substring.
package value

import "github.com/aimcal/aim/ical/span"

// Kind enumerates the closed set of RFC 5545 value kinds.
type Kind string

const (
	KindBinary      Kind = "BINARY"
	KindBoolean     Kind = "BOOLEAN"
	KindCalAddress  Kind = "CAL-ADDRESS"
	KindDate        Kind = "DATE"
	KindDateTime    Kind = "DATE-TIME"
	KindDuration    Kind = "DURATION"
	KindFloat       Kind = "FLOAT"
	KindInteger     Kind = "INTEGER"
	KindPeriod      Kind = "PERIOD"
	KindRecur       Kind = "RECUR"
	KindText        Kind = "TEXT"
	KindTime        Kind = "TIME"
	KindURI         Kind = "URI"
	KindUTCOffset   Kind = "UTC-OFFSET"
)

// Error is a value-parse failure with the span of the offending text.
type Error struct {
	Kind    Kind
	Message string
	Span    span.Span
}

func (e *Error) Error() string { return e.Message }

func errAt(kind Kind, msg string, s span.Span) error {
	return &Error{Kind: kind, Message: msg, Span: s}
}
