package ical

import (
	"github.com/aimcal/aim/ical/syntax"
	"github.com/aimcal/aim/ical/value"
)

var freeBusyKnown = map[string]bool{
	"UID": true, "DTSTAMP": true, "DTSTART": true, "DTEND": true, "FREEBUSY": true,
}

func buildVFreeBusy(root *syntax.RawComponent) (*VFreeBusy, []error) {
	c, errs := collect(root.Properties)

	fb := &VFreeBusy{Span: spanOf(root)}
	fb.UID = c.text("UID")
	if fb.UID == "" {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VFREEBUSY is missing required UID", Span: fb.Span})
	}
	dtstamp, derrs := c.dateTime("DTSTAMP")
	errs = append(errs, derrs...)
	if dtstamp != nil {
		fb.DTStamp = *dtstamp
	} else {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VFREEBUSY is missing required DTSTAMP", Span: fb.Span})
	}

	fb.DTStart, _, _ = c.dateTime("DTSTART")
	fb.DTEnd, _, _ = c.dateTime("DTEND")

	for _, p := range c.props["FREEBUSY"] {
		for _, v := range p.Values {
			if period, ok := v.(value.Period); ok {
				fb.FreeBusy = append(fb.FreeBusy, period)
			}
		}
	}

	fb.Extras = c.extras(freeBusyKnown)
	return fb, errs
}
