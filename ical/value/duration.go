package value

import (
	"strconv"
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// Duration is an RFC 5545 §3.3.6 duration:
// `(["+"]/"-") "P" (dur-date / dur-time / dur-week)`.
// The week form (`nW`) is mutually exclusive with every other field.
type Duration struct {
	Negative bool
	Weeks    int
	Days     int
	Hours    int
	Minutes  int
	Seconds  int
}

// Zero reports whether the duration is exactly zero (`P0D`/`PT0S` parse to
// this).
func (d Duration) Zero() bool {
	return d.Weeks == 0 && d.Days == 0 && d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0
}

// ParseDuration parses an RFC 5545 duration string.
func ParseDuration(s string, at span.Span) (Duration, error) {
	orig := s
	var d Duration
	if s == "" {
		return Duration{}, errAt(KindDuration, "empty duration", at)
	}
	if s[0] == '+' || s[0] == '-' {
		d.Negative = s[0] == '-'
		s = s[1:]
	}
	if len(s) == 0 || s[0] != 'P' {
		return Duration{}, errAt(KindDuration, "duration must start with 'P': "+quote(orig), at)
	}
	s = s[1:]
	if s == "" {
		return Duration{}, errAt(KindDuration, "duration has no date/time/week component: "+quote(orig), at)
	}

	if strings.ContainsRune(s, 'W') {
		n, rest, err := readUint(s, at, orig)
		if err != nil {
			return Duration{}, err
		}
		if rest != "W" {
			return Duration{}, errAt(KindDuration, "week form must be exactly 'nW' with no other component: "+quote(orig), at)
		}
		d.Weeks = n
		return d, nil
	}

	inTime := false
	for len(s) > 0 {
		if s[0] == 'T' {
			inTime = true
			s = s[1:]
			continue
		}
		n, rest, err := readUint(s, at, orig)
		if err != nil {
			return Duration{}, err
		}
		if rest == "" {
			return Duration{}, errAt(KindDuration, "missing unit after number in "+quote(orig), at)
		}
		unit := rest[0]
		s = rest[1:]
		switch {
		case unit == 'D' && !inTime:
			d.Days = n
		case unit == 'H' && inTime:
			d.Hours = n
		case unit == 'M' && inTime:
			d.Minutes = n
		case unit == 'S' && inTime:
			d.Seconds = n
		case unit == 'M' && !inTime:
			return Duration{}, errAt(KindDuration, "'M' (minutes) requires a preceding 'T': "+quote(orig), at)
		default:
			return Duration{}, errAt(KindDuration, "unexpected unit '"+string(unit)+"' in "+quote(orig), at)
		}
	}
	return d, nil
}

// readUint reads a run of decimal digits from the start of s, returning
// the parsed value, the remaining suffix (the unit letter onward), and an
// error on overflow or on no digits present.
func readUint(s string, at span.Span, orig string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", errAt(KindDuration, "expected a number in "+quote(orig), at)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", errAt(KindDuration, "integer overflow in duration: "+quote(orig), at)
	}
	return n, s[i:], nil
}

// String renders the duration back to RFC 5545 text; ParseDuration(d.String())
// round-trips for any successfully parsed Duration.
func (d Duration) String() string {
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	if d.Weeks != 0 {
		b.WriteString(strconv.Itoa(d.Weeks))
		b.WriteByte('W')
		return b.String()
	}
	if d.Days != 0 {
		b.WriteString(strconv.Itoa(d.Days))
		b.WriteByte('D')
	}
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 {
		b.WriteByte('T')
		if d.Hours != 0 {
			b.WriteString(strconv.Itoa(d.Hours))
			b.WriteByte('H')
		}
		if d.Minutes != 0 {
			b.WriteString(strconv.Itoa(d.Minutes))
			b.WriteByte('M')
		}
		if d.Seconds != 0 {
			b.WriteString(strconv.Itoa(d.Seconds))
			b.WriteByte('S')
		}
	}
	if d.Days == 0 && d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0 {
		b.WriteString("T0S")
	}
	return b.String()
}
