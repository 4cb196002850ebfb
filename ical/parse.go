package ical

import (
	"strings"

	"github.com/aimcal/aim/ical/prop"
	"github.com/aimcal/aim/ical/span"
	"github.com/aimcal/aim/ical/syntax"
	"github.com/aimcal/aim/ical/value"
)

// Parse runs the full four-phase pipeline (lex, syntax tree, typed
// properties, semantic assembly) over src. If no VCALENDAR component
// assembles successfully the parse fails outright; otherwise every
// calendar that did assemble is returned alongside the full error
// vector describing every partial failure encountered along the way.
func Parse(src []byte) (*Document, []error, error) {
	lines := syntax.ScanLines(src)
	roots, serrs := syntax.BuildTree(lines)

	doc := &Document{}
	var errs []error
	for _, e := range serrs {
		errs = append(errs, wrap(ErrSyntax, e, e.Span))
	}

	for _, root := range roots {
		if !strings.EqualFold(root.Name, "VCALENDAR") {
			continue
		}
		cal, cerrs := buildICalendar(root)
		errs = append(errs, cerrs...)
		errs = append(errs, validateTimezones(cal)...)
		doc.Calendars = append(doc.Calendars, cal)
	}

	doc.Errors = errs
	if len(doc.Calendars) == 0 {
		return doc, errs, errNoCalendar
	}
	return doc, errs, nil
}

// collector groups a component's direct properties by canonical name,
// converting each to its typed prop.Property form.
type collector struct {
	props map[string][]prop.Property
	order []prop.Property // every property, in source order, for Extras bagging
}

func collect(lines []syntax.ContentLine) (*collector, []error) {
	c := &collector{props: map[string][]prop.Property{}}
	var errs []error
	for i := range lines {
		p, perrs := prop.Convert(&lines[i])
		for _, e := range perrs {
			errs = append(errs, wrap(ErrProperty, e, p.Span))
		}
		c.props[p.Name] = append(c.props[p.Name], p)
		c.order = append(c.order, p)
	}
	return c, errs
}

// one returns the single occurrence of name, reporting a duplicate
// error if it appeared more than once.
func (c *collector) one(name string) (*prop.Property, []error) {
	ps := c.props[name]
	if len(ps) == 0 {
		return nil, nil
	}
	var errs []error
	if len(ps) > 1 {
		errs = append(errs, &Error{Kind: ErrDuplicateSingleton, Message: name + " must not repeat", Span: ps[1].Span})
	}
	return &ps[0], errs
}

func (c *collector) text(name string) string {
	p, _ := c.one(name)
	if p == nil || len(p.Values) == 0 {
		return ""
	}
	s, _ := p.Values[0].(string)
	return s
}

func (c *collector) dateTime(name string) (*value.DateTime, bool, []error) {
	p, errs := c.one(name)
	if p == nil {
		return nil, false, errs
	}
	if len(p.Values) == 0 {
		return nil, false, errs
	}
	switch v := p.Values[0].(type) {
	case value.DateTime:
		return &v, false, errs
	case value.Date:
		dt := value.DateTime{Date: v}
		return &dt, true, errs
	}
	return nil, false, errs
}

func (c *collector) extras(known map[string]bool) []Extra {
	var out []Extra
	for _, p := range c.order {
		if known[p.Name] {
			continue
		}
		out = append(out, Extra{Name: p.Name, Params: p.Params, Kind: p.Kind, Values: p.Values, Span: p.Span})
	}
	return out
}

func spanOf(c *syntax.RawComponent) span.Span {
	return c.Span.Span
}
