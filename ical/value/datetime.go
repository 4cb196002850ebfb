package value

import (
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// Zone classifies how a date-time value's wall-clock is anchored.
type Zone int

const (
	// ZoneFloating has no zone information; interpretation depends on the
	// consumer.
	ZoneFloating Zone = iota
	// ZoneUTC is anchored to UTC (a trailing `Z`).
	ZoneUTC
	// ZoneTZID is anchored to the timezone named in TZID.
	ZoneTZID
)

// DateTime is a date + time value, RFC 5545 §3.3.5. Zonedness is derived
// from the `Z` suffix or a TZID parameter supplied by the caller (the
// property/parameter layer), never guessed by this parser.
type DateTime struct {
	Date Date
	Time Time
	Zone Zone
	TZID string // set only when Zone == ZoneTZID
}

// ParseDateTime parses `date "T" time`. tzid is the TZID parameter value
// attached to this property occurrence, if any ("" if none); it is not
// itself validated here (that is §4.G's job).
func ParseDateTime(s string, tzid string, at span.Span) (DateTime, error) {
	idx := strings.IndexByte(s, 'T')
	if idx < 0 {
		return DateTime{}, errAt(KindDateTime, "date-time must contain 'T' separating date and time, got "+quote(s), at)
	}
	d, err := ParseDate(s[:idx], at)
	if err != nil {
		return DateTime{}, err
	}
	t, err := ParseTime(s[idx+1:], at)
	if err != nil {
		return DateTime{}, err
	}

	dt := DateTime{Date: d, Time: t}
	switch {
	case t.UTC:
		dt.Zone = ZoneUTC
	case tzid != "":
		dt.Zone = ZoneTZID
		dt.TZID = tzid
	default:
		dt.Zone = ZoneFloating
	}
	return dt, nil
}

// String renders the date-time back to RFC 5545 text (the TZID parameter
// itself is rendered separately by the formatter, not embedded here).
func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}

// SameZoneClass reports whether two date-times are "both UTC or both
// floating" as required when comparing the two ends of a PERIOD. TZID
// zoned values are compared by TZID equality.
func SameZoneClass(a, b DateTime) bool {
	if a.Zone != b.Zone {
		return false
	}
	if a.Zone == ZoneTZID {
		return a.TZID == b.TZID
	}
	return true
}
