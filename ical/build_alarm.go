package ical

import (
	"strings"

	"github.com/aimcal/aim/ical/syntax"
	"github.com/aimcal/aim/ical/value"
)

var alarmKnown = map[string]bool{
	"ACTION": true, "TRIGGER": true, "DESCRIPTION": true, "SUMMARY": true,
	"ATTENDEE": true, "DURATION": true, "REPEAT": true,
}

func buildVAlarm(root *syntax.RawComponent) (*VAlarm, []error) {
	c, errs := collect(root.Properties)

	al := &VAlarm{Span: spanOf(root)}
	al.Action = strings.ToUpper(c.text("ACTION"))
	if al.Action == "" {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VALARM is missing required ACTION", Span: al.Span})
	}

	trigger, _ := c.one("TRIGGER")
	al.Trigger = dateTimeOrDuration(trigger)
	if al.Trigger == nil {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VALARM is missing required TRIGGER", Span: al.Span})
	}

	al.Description = c.text("DESCRIPTION")
	al.Summary = c.text("SUMMARY")
	for _, p := range c.props["ATTENDEE"] {
		al.Attendees = append(al.Attendees, buildAttendee(p))
	}

	durP, _ := c.one("DURATION")
	repP, _ := c.one("REPEAT")
	if durP != nil && len(durP.Values) > 0 {
		if d, ok := durP.Values[0].(value.Duration); ok {
			al.Duration = &d
		}
	}
	if repP != nil && len(repP.Values) > 0 {
		if n, ok := repP.Values[0].(int32); ok {
			r, err := validateRepeat(n, repP.Span)
			if err != nil {
				errs = append(errs, err)
			} else {
				al.Repeat = &r
			}
		}
	}
	if (al.Duration == nil) != (al.Repeat == nil) {
		errs = append(errs, &Error{Kind: ErrMutuallyExclusive, Message: "VALARM DURATION and REPEAT must appear together or not at all", Span: al.Span})
	}

	switch al.Action {
	case "DISPLAY":
		if al.Description == "" {
			errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VALARM with ACTION=DISPLAY requires DESCRIPTION", Span: al.Span})
		}
	case "EMAIL":
		if al.Description == "" {
			errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VALARM with ACTION=EMAIL requires DESCRIPTION", Span: al.Span})
		}
		if al.Summary == "" {
			errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VALARM with ACTION=EMAIL requires SUMMARY", Span: al.Span})
		}
		if len(al.Attendees) == 0 {
			errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VALARM with ACTION=EMAIL requires at least one ATTENDEE", Span: al.Span})
		}
	}

	al.Extras = c.extras(alarmKnown)
	return al, errs
}
