// Package prop implements the typed RFC 5545 property layer (§4.E): a
// specification table (keyword name, default value kind, allowed value
// kinds, single/multi-valued) plus conversion from a raw content line
// into a typed Property, with field-level validation for the properties
// that carry numeric range constraints.
package prop

import "github.com/aimcal/aim/ical/value"

// Spec is one property's static specification.
type Spec struct {
	Name    string
	Default value.Kind
	Allowed []value.Kind
	// List marks properties whose value is a comma-separated list of
	// same-kind values (CATEGORIES, RESOURCES, RDATE, EXDATE, FREEBUSY),
	// as opposed to a single occurrence per content line.
	List bool
}

// Specs is the closed table of standard property specifications, keyed
// by canonical (uppercase) property name.
var Specs = map[string]Spec{
	"PRODID":  {Name: "PRODID", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"VERSION": {Name: "VERSION", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"CALSCALE": {Name: "CALSCALE", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"METHOD":  {Name: "METHOD", Default: value.KindText, Allowed: []value.Kind{value.KindText}},

	"UID":     {Name: "UID", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"DTSTAMP": {Name: "DTSTAMP", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime}},

	"DTSTART": {Name: "DTSTART", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime, value.KindDate}},
	"DTEND":   {Name: "DTEND", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime, value.KindDate}},
	"DUE":     {Name: "DUE", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime, value.KindDate}},
	"DURATION": {Name: "DURATION", Default: value.KindDuration, Allowed: []value.Kind{value.KindDuration}},
	"COMPLETED": {Name: "COMPLETED", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime}},
	"CREATED":       {Name: "CREATED", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime}},
	"LAST-MODIFIED": {Name: "LAST-MODIFIED", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime}},
	"RECURRENCE-ID": {Name: "RECURRENCE-ID", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime, value.KindDate}},

	"SUMMARY":     {Name: "SUMMARY", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"DESCRIPTION": {Name: "DESCRIPTION", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"LOCATION":    {Name: "LOCATION", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"COMMENT":     {Name: "COMMENT", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"CONTACT":     {Name: "CONTACT", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"STATUS":      {Name: "STATUS", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"TRANSP":      {Name: "TRANSP", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"CLASS":       {Name: "CLASS", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"URL":         {Name: "URL", Default: value.KindURI, Allowed: []value.Kind{value.KindURI}},

	"CATEGORIES": {Name: "CATEGORIES", Default: value.KindText, Allowed: []value.Kind{value.KindText}, List: true},
	"RESOURCES":  {Name: "RESOURCES", Default: value.KindText, Allowed: []value.Kind{value.KindText}, List: true},

	"GEO": {Name: "GEO", Default: value.KindFloat, Allowed: []value.Kind{value.KindFloat}},

	"ORGANIZER": {Name: "ORGANIZER", Default: value.KindCalAddress, Allowed: []value.Kind{value.KindCalAddress}},
	"ATTENDEE":  {Name: "ATTENDEE", Default: value.KindCalAddress, Allowed: []value.Kind{value.KindCalAddress}},
	"ATTACH":    {Name: "ATTACH", Default: value.KindURI, Allowed: []value.Kind{value.KindURI, value.KindBinary}},

	"SEQUENCE":         {Name: "SEQUENCE", Default: value.KindInteger, Allowed: []value.Kind{value.KindInteger}},
	"PERCENT-COMPLETE":  {Name: "PERCENT-COMPLETE", Default: value.KindInteger, Allowed: []value.Kind{value.KindInteger}},
	"PRIORITY":          {Name: "PRIORITY", Default: value.KindInteger, Allowed: []value.Kind{value.KindInteger}},
	"REPEAT":            {Name: "REPEAT", Default: value.KindInteger, Allowed: []value.Kind{value.KindInteger}},

	"RRULE": {Name: "RRULE", Default: value.KindRecur, Allowed: []value.Kind{value.KindRecur}},
	"RDATE": {Name: "RDATE", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime, value.KindDate, value.KindPeriod}, List: true},
	"EXDATE": {Name: "EXDATE", Default: value.KindDateTime, Allowed: []value.Kind{value.KindDateTime, value.KindDate}, List: true},
	"FREEBUSY": {Name: "FREEBUSY", Default: value.KindPeriod, Allowed: []value.Kind{value.KindPeriod}, List: true},

	"ACTION":  {Name: "ACTION", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"TRIGGER": {Name: "TRIGGER", Default: value.KindDuration, Allowed: []value.Kind{value.KindDuration, value.KindDateTime}},

	"TZID":         {Name: "TZID", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
	"TZOFFSETFROM": {Name: "TZOFFSETFROM", Default: value.KindUTCOffset, Allowed: []value.Kind{value.KindUTCOffset}},
	"TZOFFSETTO":   {Name: "TZOFFSETTO", Default: value.KindUTCOffset, Allowed: []value.Kind{value.KindUTCOffset}},
	"TZNAME":       {Name: "TZNAME", Default: value.KindText, Allowed: []value.Kind{value.KindText}},
}

// valueKindNames maps a `VALUE=` parameter token to its Kind, for
// overriding a property's default kind.
var valueKindNames = map[string]value.Kind{
	"BINARY":      value.KindBinary,
	"BOOLEAN":     value.KindBoolean,
	"CAL-ADDRESS": value.KindCalAddress,
	"DATE":        value.KindDate,
	"DATE-TIME":   value.KindDateTime,
	"DURATION":    value.KindDuration,
	"FLOAT":       value.KindFloat,
	"INTEGER":     value.KindInteger,
	"PERIOD":      value.KindPeriod,
	"RECUR":       value.KindRecur,
	"TEXT":        value.KindText,
	"TIME":        value.KindTime,
	"URI":         value.KindURI,
	"UTC-OFFSET":  value.KindUTCOffset,
}

func kindAllowed(allowed []value.Kind, k value.Kind) bool {
	for _, a := range allowed {
		if a == k {
			return true
		}
	}
	return false
}
