package prop

import (
	"strings"

	"github.com/aimcal/aim/ical/param"
	"github.com/aimcal/aim/ical/span"
	"github.com/aimcal/aim/ical/syntax"
	"github.com/aimcal/aim/ical/value"
)

// ErrorKind distinguishes property-layer diagnostics.
type ErrorKind int

const (
	ErrUnknownProperty ErrorKind = iota
	ErrDisallowedKind
	ErrValueSyntax
	ErrRangeViolation
	ErrParamError
)

// Error is a property-layer diagnostic with a span.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    span.Span
}

func (e *Error) Error() string { return e.Message }

// Property is a content line converted into its typed form: a resolved
// value kind, zero or more parsed values (len > 1 only for List specs),
// and the parameter set.
type Property struct {
	Name      string
	Spec      Spec // zero value (Spec{}) when Name is unrecognized (x-prop/iana)
	Known     bool
	Kind      value.Kind
	Values    []any
	Params    []param.Parameter
	Span      span.Span
	NameSpan  span.Span
	ValueSpan span.Span
}

// Convert builds a typed Property from a scanned content line,
// accumulating rather than short-circuiting on error.
func Convert(line *syntax.ContentLine) (Property, []error) {
	var errs []error

	if line.Err != nil {
		errs = append(errs, line.Err)
	}

	params, perrs := param.ParseLine(line)
	for _, e := range perrs {
		errs = append(errs, &Error{Kind: ErrParamError, Message: e.Error(), Span: line.Span})
	}

	up := strings.ToUpper(line.Name)
	spec, known := Specs[up]

	p := Property{
		Name: up, Spec: spec, Known: known, Params: params,
		Span: line.Span, NameSpan: line.NameSpan, ValueSpan: line.ValueSpan,
	}

	if !known {
		// x-properties and unrecognized IANA properties are preserved
		// as opaque text for round-trip; the semantic layer decides
		// what bucket they land in.
		p.Kind = value.KindText
		p.Values = []any{line.Value}
		return p, errs
	}

	kind := spec.Default
	if vt, ok := param.Find(params, param.Value); ok && vt.Enum == nil && len(vt.Values) == 1 {
		if k, ok := valueKindNames[strings.ToUpper(vt.Values[0])]; ok {
			kind = k
		}
	}
	if !kindAllowed(spec.Allowed, kind) {
		errs = append(errs, &Error{Kind: ErrDisallowedKind, Message: "property " + up + " does not allow value kind " + string(kind), Span: line.ValueSpan})
		return p, errs
	}
	p.Kind = kind

	tzid, _ := param.Find(params, param.TZID)
	tzidStr := ""
	if len(tzid.Values) == 1 {
		tzidStr = tzid.Values[0]
	}

	if kind == value.KindText {
		if spec.List {
			vals, err := value.ParseTextList(line.Value, line.ValueSpan)
			if err != nil {
				errs = append(errs, &Error{Kind: ErrValueSyntax, Message: err.Error(), Span: line.ValueSpan})
				return p, errs
			}
			p.Values = make([]any, len(vals))
			for i, v := range vals {
				p.Values[i] = v
			}
		} else {
			p.Values = []any{value.UnescapeText(line.Value)}
		}
		return p, errs
	}

	if up == "GEO" {
		geo, err := ParseGeo(line.Value, line.ValueSpan)
		if err != nil {
			errs = append(errs, err)
			return p, errs
		}
		p.Values = []any{geo}
		return p, errs
	}

	if spec.List {
		parts := strings.Split(line.Value, ",")
		for _, part := range parts {
			v, err := value.Parse(kind, part, tzidStr, line.ValueSpan)
			if err != nil {
				errs = append(errs, &Error{Kind: ErrValueSyntax, Message: err.Error(), Span: line.ValueSpan})
				continue
			}
			p.Values = append(p.Values, v)
		}
		return p, errs
	}

	v, err := value.Parse(kind, line.Value, tzidStr, line.ValueSpan)
	if err != nil {
		errs = append(errs, &Error{Kind: ErrValueSyntax, Message: err.Error(), Span: line.ValueSpan})
		return p, errs
	}
	p.Values = []any{v}
	return p, errs
}

// First returns the property's first value, or nil if it has none.
func (p Property) First() any {
	if len(p.Values) == 0 {
		return nil
	}
	return p.Values[0]
}
