package value

import (
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// Period is an RFC 5545 §3.3.9 period of time: either two date-times or a
// date-time and a duration.
type Period struct {
	Start    DateTime
	End      DateTime // valid only when HasEnd
	Duration Duration // valid only when !HasEnd
	HasEnd   bool
}

// ParsePeriod parses `date-time "/" date-time` or `date-time "/" duration`.
// tzid applies to both date-times in the range form; per RFC 5545 both
// ends of a date-time range must share zonedness (both UTC or both
// floating) — a mismatch is an error.
func ParsePeriod(s string, tzid string, at span.Span) (Period, error) {
	idx := strings.IndexByte(s, '/')
	if idx < 0 {
		return Period{}, errAt(KindPeriod, "period must contain '/': "+quote(s), at)
	}
	start, err := ParseDateTime(s[:idx], tzid, at)
	if err != nil {
		return Period{}, err
	}
	rest := s[idx+1:]
	if rest == "" {
		return Period{}, errAt(KindPeriod, "period has no end after '/': "+quote(s), at)
	}
	if rest[0] == 'P' || ((rest[0] == '+' || rest[0] == '-') && len(rest) > 1 && rest[1] == 'P') {
		dur, err := ParseDuration(rest, at)
		if err != nil {
			return Period{}, err
		}
		return Period{Start: start, Duration: dur}, nil
	}
	end, err := ParseDateTime(rest, tzid, at)
	if err != nil {
		return Period{}, err
	}
	if !SameZoneClass(start, end) {
		return Period{}, errAt(KindPeriod, "period start and end must share zonedness (both UTC or both floating): "+quote(s), at)
	}
	return Period{Start: start, End: end, HasEnd: true}, nil
}

// String renders the period back to RFC 5545 text.
func (p Period) String() string {
	if p.HasEnd {
		return p.Start.String() + "/" + p.End.String()
	}
	return p.Start.String() + "/" + p.Duration.String()
}
