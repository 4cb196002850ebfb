// Package tzcheck validates TZID references against the set of
// VTIMEZONE components declared in a calendar and, failing that,
// against the host IANA timezone database (§4.G).
package tzcheck

import (
	"time"

	"github.com/aimcal/aim/ical/span"
)

// Error reports a TZID that resolves neither to an in-document
// VTIMEZONE nor to the host timezone database.
type Error struct {
	TZID string
	Span span.Span
}

func (e *Error) Error() string { return "timezone not found: " + e.TZID }

// Reference is one TZID-bearing value site to validate: a DTSTART,
// DTEND, DUE, RECURRENCE-ID, RDATE, or EXDATE carrying a TZID
// parameter.
type Reference struct {
	TZID string
	Span span.Span
}

// Check validates every reference's TZID against declared (the set of
// VTIMEZONE TZIDs present in the same VCALENDAR) and, failing that,
// against the host IANA database via time.LoadLocation. It returns one
// *Error per unresolved reference.
func Check(declared map[string]bool, refs []Reference) []error {
	var errs []error
	resolved := map[string]bool{}
	for _, ref := range refs {
		if ref.TZID == "" {
			continue
		}
		if declared[ref.TZID] {
			continue
		}
		if resolved[ref.TZID] {
			continue
		}
		if _, err := time.LoadLocation(ref.TZID); err == nil {
			resolved[ref.TZID] = true
			continue
		}
		errs = append(errs, &Error{TZID: ref.TZID, Span: ref.Span})
	}
	return errs
}
