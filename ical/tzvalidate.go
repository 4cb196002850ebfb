package ical

import (
	"github.com/aimcal/aim/ical/span"
	"github.com/aimcal/aim/ical/tzcheck"
	"github.com/aimcal/aim/ical/value"
)

// validateTimezones runs the TZID validator over every DTSTART, DTEND,
// DUE, RDATE, and EXDATE value carrying a TZID parameter, against this
// calendar's declared VTIMEZONEs and the host timezone database.
func validateTimezones(cal *ICalendar) []error {
	declared := map[string]bool{}
	for _, tz := range cal.TimeZones {
		declared[tz.TZID] = true
	}

	var refs []tzcheck.Reference
	ref := func(dt *value.DateTime) {
		if dt == nil || dt.Zone != value.ZoneTZID || dt.TZID == "" {
			return
		}
		refs = append(refs, tzcheck.Reference{TZID: dt.TZID})
	}
	refAny := func(v any) {
		if dt, ok := v.(value.DateTime); ok {
			ref(&dt)
		}
	}

	for _, ev := range cal.Events {
		ref(ev.DTStart)
		ref(ev.DTEnd)
		for _, v := range ev.RDates {
			refAny(v)
		}
		for _, v := range ev.EXDates {
			refAny(v)
		}
	}
	for _, td := range cal.Todos {
		ref(td.DTStart)
		ref(td.Due)
		for _, v := range td.RDates {
			refAny(v)
		}
		for _, v := range td.EXDates {
			refAny(v)
		}
	}

	var errs []error
	for _, e := range tzcheck.Check(declared, refs) {
		var at span.Span
		if te, ok := e.(*tzcheck.Error); ok {
			at = te.Span
		}
		errs = append(errs, wrap(ErrTimezoneNotFound, e, at))
	}
	return errs
}
