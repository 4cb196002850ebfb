package ical

import (
	"github.com/aimcal/aim/ical/param"
	"github.com/aimcal/aim/ical/prop"
	"github.com/aimcal/aim/ical/span"
	"github.com/aimcal/aim/ical/value"
)

func validatePercentComplete(n int32, at span.Span) (prop.PercentComplete, *Error) {
	v, err := prop.ValidatePercentComplete(n, at)
	if err != nil {
		return 0, wrap(ErrRangeViolation, err, at)
	}
	return v, nil
}

func validatePriority(n int32, at span.Span) (prop.Priority, *Error) {
	v, err := prop.ValidatePriority(n, at)
	if err != nil {
		return 0, wrap(ErrRangeViolation, err, at)
	}
	return v, nil
}

func validateRepeat(n int32, at span.Span) (prop.Repeat, *Error) {
	v, err := prop.ValidateRepeat(n, at)
	if err != nil {
		return 0, wrap(ErrRangeViolation, err, at)
	}
	return v, nil
}

func buildAttendee(p prop.Property) Attendee {
	a := Attendee{Span: p.Span}
	if len(p.Values) > 0 {
		if s, ok := p.Values[0].(string); ok {
			a.Address = s
		}
	}
	if cn, ok := param.Find(p.Params, param.CN); ok && len(cn.Values) == 1 {
		a.CN = cn.Values[0]
	}
	if role, ok := param.Find(p.Params, param.Role); ok && role.Enum != nil {
		a.Role = *role.Enum
	}
	if ps, ok := param.Find(p.Params, param.PartStat); ok && ps.Enum != nil {
		a.PartStat = *ps.Enum
	}
	if cu, ok := param.Find(p.Params, param.CUType); ok && cu.Enum != nil {
		a.CUType = *cu.Enum
	}
	if rsvp, ok := param.Find(p.Params, param.RSVP); ok {
		a.RSVP = rsvp.RSVPValue
	}
	return a
}

func buildAttachment(p prop.Property) Attachment {
	at := Attachment{Kind: p.Kind, Span: p.Span}
	if len(p.Values) == 0 {
		return at
	}
	switch v := p.Values[0].(type) {
	case string:
		at.URI = v
	case []byte:
		at.Data = v
	}
	return at
}

// dateTimeOrDuration resolves a property that may carry either a
// date-time/date value or a duration value (e.g. TRIGGER), returning
// whichever is present.
func dateTimeOrDuration(p *prop.Property) any {
	if p == nil || len(p.Values) == 0 {
		return nil
	}
	switch v := p.Values[0].(type) {
	case value.DateTime:
		return v
	case value.Date:
		return value.DateTime{Date: v}
	case value.Duration:
		return v
	}
	return nil
}
