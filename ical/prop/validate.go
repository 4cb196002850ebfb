package prop

import (
	"strconv"
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// PercentComplete wraps VTODO's PERCENT-COMPLETE: 0-100 inclusive.
type PercentComplete int32

// ValidatePercentComplete enforces the 0-100 range.
func ValidatePercentComplete(n int32, at span.Span) (PercentComplete, error) {
	if n < 0 || n > 100 {
		return 0, &Error{Kind: ErrRangeViolation, Message: "PERCENT-COMPLETE must be between 0 and 100", Span: at}
	}
	return PercentComplete(n), nil
}

// Priority wraps VEVENT/VTODO's PRIORITY: 0-9 inclusive, 0 meaning
// unspecified.
type Priority int32

// ValidatePriority enforces the 0-9 range.
func ValidatePriority(n int32, at span.Span) (Priority, error) {
	if n < 0 || n > 9 {
		return 0, &Error{Kind: ErrRangeViolation, Message: "PRIORITY must be between 0 and 9", Span: at}
	}
	return Priority(n), nil
}

// Repeat wraps VALARM's REPEAT count: non-negative.
type Repeat int32

// ValidateRepeat rejects negative repeat counts.
func ValidateRepeat(n int32, at span.Span) (Repeat, error) {
	if n < 0 {
		return 0, &Error{Kind: ErrRangeViolation, Message: "REPEAT must not be negative", Span: at}
	}
	return Repeat(n), nil
}

// Sequence wraps VEVENT/VTODO's SEQUENCE: non-negative.
type Sequence int32

// ValidateSequence rejects negative sequence numbers.
func ValidateSequence(n int32, at span.Span) (Sequence, error) {
	if n < 0 {
		return 0, &Error{Kind: ErrRangeViolation, Message: "SEQUENCE must not be negative", Span: at}
	}
	return Sequence(n), nil
}

// Geo is GEO's `lat;lon` pair, semicolon-separated rather than the
// general comma-list convention.
type Geo struct {
	Lat, Lon float64
}

// ParseGeo parses `lat;lon`.
func ParseGeo(raw string, at span.Span) (Geo, error) {
	parts := strings.Split(raw, ";")
	if len(parts) != 2 {
		return Geo{}, &Error{Kind: ErrValueSyntax, Message: "GEO must be `lat;lon`: " + strconv.Quote(raw), Span: at}
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Geo{}, &Error{Kind: ErrValueSyntax, Message: "GEO latitude is not a valid float: " + parts[0], Span: at}
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Geo{}, &Error{Kind: ErrValueSyntax, Message: "GEO longitude is not a valid float: " + parts[1], Span: at}
	}
	return Geo{Lat: lat, Lon: lon}, nil
}
