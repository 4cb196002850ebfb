package ical

import (
	"strings"

	"github.com/aimcal/aim/ical/syntax"
)

var journalKnown = map[string]bool{
	"UID": true, "DTSTAMP": true, "DTSTART": true, "SUMMARY": true,
	"DESCRIPTION": true, "STATUS": true,
}

func buildVJournal(root *syntax.RawComponent) (*VJournal, []error) {
	c, errs := collect(root.Properties)

	j := &VJournal{Span: spanOf(root)}
	j.UID = c.text("UID")
	if j.UID == "" {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VJOURNAL is missing required UID", Span: j.Span})
	}
	dtstamp, derrs := c.dateTime("DTSTAMP")
	errs = append(errs, derrs...)
	if dtstamp != nil {
		j.DTStamp = *dtstamp
	} else {
		errs = append(errs, &Error{Kind: ErrMissingRequired, Message: "VJOURNAL is missing required DTSTAMP", Span: j.Span})
	}

	j.DTStart, _, _ = c.dateTime("DTSTART")
	j.Summary = c.text("SUMMARY")
	j.Description = c.text("DESCRIPTION")
	j.Status = strings.ToUpper(c.text("STATUS"))

	j.Extras = c.extras(journalKnown)
	return j, errs
}
