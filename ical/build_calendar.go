package ical

import (
	"strings"

	"github.com/aimcal/aim/ical/syntax"
)

var calendarKnown = map[string]bool{
	"PRODID": true, "VERSION": true, "CALSCALE": true, "METHOD": true,
}

func buildICalendar(root *syntax.RawComponent) (*ICalendar, []error) {
	c, errs := collect(root.Properties)

	cal := &ICalendar{Span: spanOf(root)}
	cal.ProdID = c.text("PRODID")
	cal.Version = c.text("VERSION")
	cal.CalScale = c.text("CALSCALE")
	cal.Method = c.text("METHOD")

	if cal.ProdID == "" {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VCALENDAR is missing required PRODID", Span: cal.Span})
	}
	if cal.Version == "" {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VCALENDAR is missing required VERSION", Span: cal.Span})
	}

	for _, child := range root.Children {
		switch {
		case strings.EqualFold(child.Name, "VEVENT"):
			v, cerrs := buildVEvent(child)
			cal.Events = append(cal.Events, v)
			errs = append(errs, cerrs...)
		case strings.EqualFold(child.Name, "VTODO"):
			v, cerrs := buildVTodo(child)
			cal.Todos = append(cal.Todos, v)
			errs = append(errs, cerrs...)
		case strings.EqualFold(child.Name, "VTIMEZONE"):
			v, cerrs := buildVTimeZone(child)
			cal.TimeZones = append(cal.TimeZones, v)
			errs = append(errs, cerrs...)
		case strings.EqualFold(child.Name, "VFREEBUSY"):
			v, cerrs := buildVFreeBusy(child)
			cal.FreeBusy = append(cal.FreeBusy, v)
			errs = append(errs, cerrs...)
		case strings.EqualFold(child.Name, "VJOURNAL"):
			v, cerrs := buildVJournal(child)
			cal.Journals = append(cal.Journals, v)
			errs = append(errs, cerrs...)
		case strings.HasPrefix(strings.ToUpper(child.Name), "X-"):
			cal.XComponents = append(cal.XComponents, buildXComponent(child))
		default:
			cal.UnrecognizedComponents = append(cal.UnrecognizedComponents, buildUnrecognizedComponent(child))
		}
	}

	cal.Extras = c.extras(calendarKnown)
	return cal, errs
}
