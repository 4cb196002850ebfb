package ical

import (
	"strings"

	"github.com/aimcal/aim/ical/syntax"
	"github.com/aimcal/aim/ical/value"
)

var timezoneKnown = map[string]bool{"TZID": true}

var observanceKnown = map[string]bool{
	"DTSTART": true, "TZOFFSETFROM": true, "TZOFFSETTO": true, "TZNAME": true, "RRULE": true,
}

func buildVTimeZone(root *syntax.RawComponent) (*VTimeZone, []error) {
	c, errs := collect(root.Properties)

	tz := &VTimeZone{Span: spanOf(root)}
	tz.TZID = c.text("TZID")
	if tz.TZID == "" {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VTIMEZONE is missing required TZID", Span: tz.Span})
	}

	for _, child := range root.Children {
		daylight := strings.EqualFold(child.Name, "DAYLIGHT")
		if !daylight && !strings.EqualFold(child.Name, "STANDARD") {
			continue
		}
		oc, oerrs := collect(child.Properties)
		errs = append(errs, oerrs...)

		obs := Observance{Daylight: daylight, Span: spanOf(child)}
		dt, derrs := oc.dateTime("DTSTART")
		errs = append(errs, derrs...)
		if dt != nil {
			obs.DTStart = *dt
		} else {
			errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "timezone observance is missing required DTSTART", Span: obs.Span})
		}
		if p, _ := oc.one("TZOFFSETFROM"); p != nil && len(p.Values) > 0 {
			if off, ok := p.Values[0].(value.UTCOffset); ok {
				obs.TZOffsetFrom = off
			}
		} else {
			errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "timezone observance is missing required TZOFFSETFROM", Span: obs.Span})
		}
		if p, _ := oc.one("TZOFFSETTO"); p != nil && len(p.Values) > 0 {
			if off, ok := p.Values[0].(value.UTCOffset); ok {
				obs.TZOffsetTo = off
			}
		} else {
			errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "timezone observance is missing required TZOFFSETTO", Span: obs.Span})
		}
		obs.TZName = oc.text("TZNAME")
		if p, _ := oc.one("RRULE"); p != nil && len(p.Values) > 0 {
			if r, ok := p.Values[0].(value.Recur); ok {
				obs.RRule = &r
			}
		}
		obs.Extras = oc.extras(observanceKnown)
		tz.Observances = append(tz.Observances, obs)
	}

	if len(tz.Observances) == 0 {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VTIMEZONE requires at least one STANDARD or DAYLIGHT observance", Span: tz.Span})
	}

	tz.Extras = c.extras(timezoneKnown)
	return tz, errs
}
