package ical

import (
	"errors"

	"github.com/aimcal/aim/ical/span"
)

// ErrorKind distinguishes semantic-layer diagnostics: everything lower
// layers produce is wrapped and re-surfaced as one of these at the top
// level, plus the component-invariant violations only this layer knows
// about.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrProperty
	ErrMissingRequired
	ErrMutuallyExclusive
	ErrDuplicateSingleton
	ErrTimezoneNotFound
	ErrRangeViolation
)

// Error is a semantic-layer diagnostic with a span, wrapping a cause
// when one exists (a syntax.Error, prop.Error, or similar).
type Error struct {
	Kind    ErrorKind
	Message string
	Span    span.Span
	Cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Cause }

func wrap(kind ErrorKind, cause error, at span.Span) *Error {
	return &Error{Kind: kind, Message: cause.Error(), Span: at, Cause: cause}
}

// TimezoneNotFound reports a TZID reference that resolves neither to an
// in-document VTIMEZONE nor to the host timezone database.
type TimezoneNotFound struct {
	TZID string
	Span span.Span
}

func (e *TimezoneNotFound) Error() string {
	return "timezone not found: " + e.TZID
}

var errNoCalendar = errors.New("no VCALENDAR component parsed successfully")
