package ical

import (
	"strings"

	"github.com/aimcal/aim/ical/prop"
	"github.com/aimcal/aim/ical/syntax"
	"github.com/aimcal/aim/ical/value"
)

var eventKnown = map[string]bool{
	"UID": true, "DTSTAMP": true, "DTSTART": true, "DTEND": true, "DURATION": true,
	"SUMMARY": true, "DESCRIPTION": true, "LOCATION": true, "STATUS": true,
	"TRANSP": true, "CLASS": true, "GEO": true, "ORGANIZER": true, "ATTENDEE": true,
	"SEQUENCE": true, "RRULE": true, "RDATE": true, "EXDATE": true, "ATTACH": true,
	"CATEGORIES": true,
}

func buildVEvent(root *syntax.RawComponent) (*VEvent, []error) {
	c, errs := collect(root.Properties)

	ev := &VEvent{Span: spanOf(root)}
	ev.UID = c.text("UID")
	if ev.UID == "" {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VEVENT is missing required UID", Span: ev.Span})
	}
	dtstamp, derrs := c.dateTime("DTSTAMP")
	errs = append(errs, derrs...)
	if dtstamp != nil {
		ev.DTStamp = *dtstamp
	} else {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VEVENT is missing required DTSTAMP", Span: ev.Span})
	}

	ev.DTStart, ev.DTStartIsDate, _ = c.dateTime("DTSTART")
	ev.DTEnd, ev.DTEndIsDate, _ = c.dateTime("DTEND")
	if p, _ := c.one("DURATION"); p != nil && len(p.Values) > 0 {
		if d, ok := p.Values[0].(value.Duration); ok {
			ev.Duration = &d
		}
	}
	if ev.DTEnd != nil && ev.Duration != nil {
		errs = append(errs, &Error{Kind: ErrMutuallyExclusive, Message: "VEVENT must not carry both DTEND and DURATION", Span: ev.Span})
	}

	ev.Summary = c.text("SUMMARY")
	ev.Description = c.text("DESCRIPTION")
	ev.Location = c.text("LOCATION")
	ev.Status = strings.ToUpper(c.text("STATUS"))
	ev.Transp = strings.ToUpper(c.text("TRANSP"))
	ev.Class = strings.ToUpper(c.text("CLASS"))

	if p, _ := c.one("GEO"); p != nil && len(p.Values) > 0 {
		if g, ok := p.Values[0].(prop.Geo); ok {
			ev.Geo = &g
		}
	}

	if p, _ := c.one("ORGANIZER"); p != nil {
		a := buildAttendee(*p)
		ev.Organizer = &a
	}
	for _, p := range c.props["ATTENDEE"] {
		ev.Attendees = append(ev.Attendees, buildAttendee(p))
	}

	if p, _ := c.one("SEQUENCE"); p != nil && len(p.Values) > 0 {
		if n, ok := p.Values[0].(int32); ok {
			ev.Sequence = n
		}
	}

	if p, _ := c.one("RRULE"); p != nil && len(p.Values) > 0 {
		if r, ok := p.Values[0].(value.Recur); ok {
			ev.RRule = &r
		}
	}
	for _, p := range c.props["RDATE"] {
		ev.RDates = append(ev.RDates, p.Values...)
	}
	for _, p := range c.props["EXDATE"] {
		ev.EXDates = append(ev.EXDates, p.Values...)
	}

	for _, p := range c.props["ATTACH"] {
		ev.Attachments = append(ev.Attachments, buildAttachment(p))
	}
	for _, p := range c.props["CATEGORIES"] {
		for _, v := range p.Values {
			if s, ok := v.(string); ok {
				ev.Categories = append(ev.Categories, s)
			}
		}
	}

	for _, child := range root.Children {
		if strings.EqualFold(child.Name, "VALARM") {
			al, aerrs := buildVAlarm(child)
			ev.Alarms = append(ev.Alarms, al)
			errs = append(errs, aerrs...)
		}
	}

	ev.Extras = c.extras(eventKnown)
	return ev, errs
}
