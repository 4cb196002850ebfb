package value

import (
	"strconv"
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// Time is a time-of-day value, RFC 5545 §3.3.12 (`HHMMSS` with optional
// trailing `Z`).
type Time struct {
	Hour, Minute, Second int
	UTC                  bool
}

// ParseTime parses a `HHMMSS[Z]` time.
func ParseTime(s string, at span.Span) (Time, error) {
	utc := strings.HasSuffix(s, "Z")
	body := s
	if utc {
		body = s[:len(s)-1]
	}
	if len(body) != 6 || !allDigits(body) {
		return Time{}, errAt(KindTime, "time must be 6 digits (HHMMSS) optionally followed by Z, got "+quote(s), at)
	}
	h, _ := strconv.Atoi(body[0:2])
	m, _ := strconv.Atoi(body[2:4])
	sec, _ := strconv.Atoi(body[4:6])
	if h > 23 || m > 59 || sec > 60 { // 60 permits a leap second
		return Time{}, errAt(KindTime, "time field out of range: "+body, at)
	}
	return Time{Hour: h, Minute: m, Second: sec, UTC: utc}, nil
}

// String renders the time back to `HHMMSS[Z]`.
func (t Time) String() string {
	s := pad2(t.Hour) + pad2(t.Minute) + pad2(t.Second)
	if t.UTC {
		s += "Z"
	}
	return s
}
