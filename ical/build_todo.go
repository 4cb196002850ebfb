package ical

import (
	"strings"

	"github.com/aimcal/aim/ical/syntax"
	"github.com/aimcal/aim/ical/value"
)

var todoKnown = map[string]bool{
	"UID": true, "DTSTAMP": true, "DTSTART": true, "DUE": true, "DURATION": true,
	"COMPLETED": true, "PERCENT-COMPLETE": true, "PRIORITY": true, "STATUS": true,
	"SUMMARY": true, "DESCRIPTION": true, "RRULE": true, "RDATE": true, "EXDATE": true,
}

func buildVTodo(root *syntax.RawComponent) (*VTodo, []error) {
	c, errs := collect(root.Properties)

	td := &VTodo{Span: spanOf(root)}
	td.UID = c.text("UID")
	if td.UID == "" {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VTODO is missing required UID", Span: td.Span})
	}
	dtstamp, derrs := c.dateTime("DTSTAMP")
	errs = append(errs, derrs...)
	if dtstamp != nil {
		td.DTStamp = *dtstamp
	} else {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VTODO is missing required DTSTAMP", Span: td.Span})
	}

	td.DTStart, _, _ = c.dateTime("DTSTART")
	td.Due, _, _ = c.dateTime("DUE")
	if p, _ := c.one("DURATION"); p != nil && len(p.Values) > 0 {
		if d, ok := p.Values[0].(value.Duration); ok {
			td.Duration = &d
		}
	}
	if td.Due != nil && td.Duration != nil {
		errs = append(errs, &Error{Kind: ErrMutuallyExclusive, Message: "VTODO must not carry both DUE and DURATION", Span: td.Span})
	}

	td.Completed, _, _ = c.dateTime("COMPLETED")

	if p, _ := c.one("PERCENT-COMPLETE"); p != nil && len(p.Values) > 0 {
		if n, ok := p.Values[0].(int32); ok {
			pc, err := validatePercentComplete(n, p.Span)
			if err != nil {
				errs = append(errs, err)
			} else {
				td.PercentComplete = &pc
			}
		}
	}
	if p, _ := c.one("PRIORITY"); p != nil && len(p.Values) > 0 {
		if n, ok := p.Values[0].(int32); ok {
			pr, err := validatePriority(n, p.Span)
			if err != nil {
				errs = append(errs, err)
			} else {
				td.Priority = &pr
			}
		}
	}

	td.Status = strings.ToUpper(c.text("STATUS"))
	td.Summary = c.text("SUMMARY")
	td.Description = c.text("DESCRIPTION")

	if p, _ := c.one("RRULE"); p != nil && len(p.Values) > 0 {
		if r, ok := p.Values[0].(value.Recur); ok {
			td.RRule = &r
		}
	}
	for _, p := range c.props["RDATE"] {
		td.RDates = append(td.RDates, p.Values...)
	}
	for _, p := range c.props["EXDATE"] {
		td.EXDates = append(td.EXDates, p.Values...)
	}

	for _, child := range root.Children {
		if strings.EqualFold(child.Name, "VALARM") {
			al, aerrs := buildVAlarm(child)
			td.Alarms = append(td.Alarms, al)
			errs = append(errs, aerrs...)
		}
	}

	td.Extras = c.extras(todoKnown)
	return td, errs
}
