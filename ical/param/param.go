// Package param implements the typed RFC 5545 parameter layer (§4.D): a
// closed set of known parameter names, each either single- or
// list-valued, with enum-valued parameters matched case-insensitively
// and falling back to an Unknown token rather than erroring, per RFC
// 5545's extensibility rule.
package param

import (
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// Name is a canonical (uppercased) parameter name.
type Name string

const (
	CN            Name = "CN"
	CUType        Name = "CUTYPE"
	DelegatedFrom Name = "DELEGATED-FROM"
	DelegatedTo   Name = "DELEGATED-TO"
	Dir           Name = "DIR"
	Encoding      Name = "ENCODING"
	FBType        Name = "FBTYPE"
	Language      Name = "LANGUAGE"
	Member        Name = "MEMBER"
	PartStat      Name = "PARTSTAT"
	Range         Name = "RANGE"
	Related       Name = "RELATED"
	RelType       Name = "RELTYPE"
	Role          Name = "ROLE"
	RSVP          Name = "RSVP"
	SentBy        Name = "SENT-BY"
	TZID          Name = "TZID"
	Value         Name = "VALUE"
)

// listValued is the set of parameters that accept a comma-separated list
// of values; every other known parameter is single-valued and rejects
// multiple values.
var listValued = map[Name]bool{
	DelegatedFrom: true,
	DelegatedTo:   true,
	Member:        true,
}

// enumValues maps an enum-valued parameter to its closed set of known
// tokens (compared case-insensitively). Tokens outside this set produce
// an Unknown Token, not an error.
var enumValues = map[Name][]string{
	CUType:   {"INDIVIDUAL", "GROUP", "RESOURCE", "ROOM", "UNKNOWN"},
	Encoding: {"8BIT", "BASE64"},
	FBType:   {"FREE", "BUSY", "BUSY-UNAVAILABLE", "BUSY-TENTATIVE"},
	PartStat: {"NEEDS-ACTION", "ACCEPTED", "DECLINED", "TENTATIVE", "DELEGATED", "COMPLETED", "IN-PROCESS"},
	Range:    {"THISANDFUTURE"},
	Related:  {"START", "END"},
	RelType:  {"PARENT", "CHILD", "SIBLING"},
	Role:     {"CHAIR", "REQ-PARTICIPANT", "OPT-PARTICIPANT", "NON-PARTICIPANT"},
}

// Token is an enum parameter's matched value: Known is false when the
// token wasn't in the closed set (the RFC 5545 extensibility escape
// hatch), in which case Raw holds the original text.
type Token struct {
	Raw   string
	Known bool
}

func matchToken(raw string, known []string) Token {
	up := strings.ToUpper(raw)
	for _, k := range known {
		if up == k {
			return Token{Raw: k, Known: true}
		}
	}
	return Token{Raw: raw, Known: false}
}

// Error is a parameter-layer diagnostic with a span.
type Error struct {
	Message string
	Span    span.Span
}

func (e *Error) Error() string { return e.Message }

// Parameter is one parsed `NAME=value[,value...]` occurrence. Standard
// names are canonicalized (case-insensitively matched against the
// known set); anything else is preserved verbatim as an X-*/IANA
// parameter for round-trip.
type Parameter struct {
	// Name is the canonical name for known parameters, or the raw
	// (as-written) name for X-*/unrecognized IANA parameters.
	Name      string
	Known     bool
	Span      span.Span
	Values    []string // raw (still-escaped) values, in source order
	Enum      *Token   // set only for enum-valued known parameters
	RSVPValue *bool    // set only for RSVP
}

// Parse builds a typed Parameter from a raw name and its list of values.
func Parse(rawName string, values []string, at span.Span) (Parameter, error) {
	up := strings.ToUpper(rawName)
	name := Name(up)

	if _, known := namesKnown[name]; !known {
		return Parameter{Name: rawName, Known: false, Span: at, Values: values}, nil
	}

	if !listValued[name] && len(values) > 1 {
		return Parameter{}, &Error{Message: "parameter " + up + " does not accept multiple values", Span: at}
	}

	p := Parameter{Name: up, Known: true, Span: at, Values: values}

	if name == RSVP {
		if len(values) != 1 {
			return Parameter{}, &Error{Message: "RSVP requires exactly one value", Span: at}
		}
		switch strings.ToUpper(values[0]) {
		case "TRUE":
			b := true
			p.RSVPValue = &b
		case "FALSE":
			b := false
			p.RSVPValue = &b
		default:
			return Parameter{}, &Error{Message: "RSVP must be TRUE or FALSE, got " + values[0], Span: at}
		}
		return p, nil
	}

	if known, ok := enumValues[name]; ok {
		if len(values) == 0 {
			return Parameter{}, &Error{Message: "parameter " + up + " requires a value", Span: at}
		}
		tok := matchToken(values[0], known)
		p.Enum = &tok
	}

	return p, nil
}

var namesKnown = map[Name]bool{
	CN: true, CUType: true, DelegatedFrom: true, DelegatedTo: true, Dir: true,
	Encoding: true, FBType: true, Language: true, Member: true, PartStat: true,
	Range: true, Related: true, RelType: true, Role: true, RSVP: true,
	SentBy: true, TZID: true, Value: true,
}
