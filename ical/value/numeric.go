package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// ParseFloat parses an RFC 5545 §3.3.7 float: `(+/-)digits[.digits]`.
// Scientific notation is rejected, and overflow to ±Inf or NaN is an
// error even though Go's parser would otherwise produce one.
func ParseFloat(s string, at span.Span) (float64, error) {
	if s == "" {
		return 0, errAt(KindFloat, "empty float", at)
	}
	body := s
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return 0, errAt(KindFloat, "float has no digits: "+quote(s), at)
	}
	seenDigit, seenDot := false, false
	for _, c := range body {
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot:
			seenDot = true
		default:
			return 0, errAt(KindFloat, "invalid character in float (scientific notation is rejected): "+quote(s), at)
		}
	}
	if !seenDigit {
		return 0, errAt(KindFloat, "float has no digits: "+quote(s), at)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errAt(KindFloat, "malformed float: "+quote(s), at)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errAt(KindFloat, "float overflows to infinity or NaN: "+quote(s), at)
	}
	return f, nil
}

// ParseInteger parses an RFC 5545 §3.3.8 integer: a signed decimal that
// must fit a 32-bit signed range.
func ParseInteger(s string, at span.Span) (int32, error) {
	if s == "" {
		return 0, errAt(KindInteger, "empty integer", at)
	}
	body := s
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" || !allDigits(body) {
		return 0, errAt(KindInteger, "invalid integer: "+quote(s), at)
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errAt(KindInteger, "integer does not fit in 32 bits: "+quote(s), at)
	}
	return int32(n), nil
}

// ParseBoolean parses an RFC 5545 §3.3.2 boolean: case-insensitive
// TRUE/FALSE.
func ParseBoolean(s string, at span.Span) (bool, error) {
	switch strings.ToUpper(s) {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	default:
		return false, errAt(KindBoolean, "boolean must be TRUE or FALSE: "+quote(s), at)
	}
}
