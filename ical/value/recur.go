package value

import (
	"strconv"
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// Recur is a typed RFC 5545 §3.3.10 recurrence rule. Expansion into
// concrete instances is out of scope (a future extension); this type
// only captures the rule's structure for storage/formatting round-trips.
type Recur struct {
	Freq string

	// Until and UntilIsDate are set when an UNTIL= clause is present.
	// UntilIsDate preserves whether UNTIL carried a bare DATE (as opposed
	// to a DATE-TIME) value, since the base DTSTART's value kind decides
	// how UNTIL must later be interpreted (see SPEC_FULL.md §9.2.3).
	Until       *DateTime
	UntilIsDate bool

	// Count is set when a COUNT= clause is present; mutually exclusive
	// with Until.
	Count *int

	Interval int // defaults to 1 when absent

	// By holds every BYxxx list (BYSECOND, BYMINUTE, BYHOUR, BYDAY,
	// BYMONTHDAY, BYYEARDAY, BYWEEKNO, BYMONTH, BYSETPOS), keyed by the
	// bare part name without the BY prefix, values preserved as written.
	By map[string][]string

	// WkSt is the week-start day, defaulting to "MO" (Monday) when absent.
	WkSt string
}

var recurByParts = map[string]bool{
	"BYSECOND": true, "BYMINUTE": true, "BYHOUR": true, "BYDAY": true,
	"BYMONTHDAY": true, "BYYEARDAY": true, "BYWEEKNO": true, "BYMONTH": true,
	"BYSETPOS": true,
}

// ParseRecur parses a `FREQ=...;...` recurrence rule.
func ParseRecur(s string, tzid string, at span.Span) (Recur, error) {
	r := Recur{Interval: 1, WkSt: "MO", By: map[string][]string{}}
	parts := strings.Split(s, ";")
	sawUntil, sawCount := false, false

	for _, part := range parts {
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return Recur{}, errAt(KindRecur, "malformed recur part (expected NAME=VALUE): "+quote(part), at)
		}
		name := strings.ToUpper(kv[0])
		val := kv[1]

		switch {
		case name == "FREQ":
			r.Freq = strings.ToUpper(val)
		case name == "UNTIL":
			sawUntil = true
			if len(val) == 8 {
				d, err := ParseDate(val, at)
				if err != nil {
					return Recur{}, err
				}
				dt := DateTime{Date: d}
				r.Until = &dt
				r.UntilIsDate = true
			} else {
				dt, err := ParseDateTime(val, tzid, at)
				if err != nil {
					return Recur{}, err
				}
				r.Until = &dt
			}
		case name == "COUNT":
			sawCount = true
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return Recur{}, errAt(KindRecur, "COUNT must be a non-negative integer: "+quote(val), at)
			}
			r.Count = &n
		case name == "INTERVAL":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return Recur{}, errAt(KindRecur, "INTERVAL must be a positive integer: "+quote(val), at)
			}
			r.Interval = n
		case name == "WKST":
			r.WkSt = strings.ToUpper(val)
		case recurByParts[name]:
			r.By[strings.TrimPrefix(name, "BY")] = strings.Split(val, ",")
		default:
			return Recur{}, errAt(KindRecur, "unknown recur part: "+quote(name), at)
		}
	}

	if r.Freq == "" {
		return Recur{}, errAt(KindRecur, "recur is missing required FREQ", at)
	}
	if sawUntil && sawCount {
		return Recur{}, errAt(KindRecur, "UNTIL and COUNT are mutually exclusive", at)
	}
	return r, nil
}

// String renders the recur back to RFC 5545 text.
func (r Recur) String() string {
	var b strings.Builder
	b.WriteString("FREQ=")
	b.WriteString(r.Freq)
	if r.Until != nil {
		b.WriteString(";UNTIL=")
		if r.UntilIsDate {
			b.WriteString(r.Until.Date.String())
		} else {
			b.WriteString(r.Until.String())
		}
	}
	if r.Count != nil {
		b.WriteString(";COUNT=")
		b.WriteString(strconv.Itoa(*r.Count))
	}
	if r.Interval != 1 {
		b.WriteString(";INTERVAL=")
		b.WriteString(strconv.Itoa(r.Interval))
	}
	for _, name := range []string{"SECOND", "MINUTE", "HOUR", "DAY", "MONTHDAY", "YEARDAY", "WEEKNO", "MONTH", "SETPOS"} {
		if vals, ok := r.By[name]; ok {
			b.WriteString(";BY")
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(strings.Join(vals, ","))
		}
	}
	if r.WkSt != "MO" && r.WkSt != "" {
		b.WriteString(";WKST=")
		b.WriteString(r.WkSt)
	}
	return b.String()
}
