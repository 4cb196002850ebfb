package ical

import (
	"github.com/aimcal/aim/ical/param"
	"github.com/aimcal/aim/ical/prop"
	"github.com/aimcal/aim/ical/span"
	"github.com/aimcal/aim/ical/value"
)

// Document is the result of a full parse: zero or more successfully
// assembled calendars plus every error accumulated along the way.
type Document struct {
	Calendars []*ICalendar
	Errors    []error
}

// Extra holds an x-property or unrecognized-IANA-property occurrence,
// preserved verbatim in original order for round-trip formatting.
type Extra struct {
	Name   string
	Params []param.Parameter
	Kind   value.Kind
	Values []any
	Span   span.Span
}

// ICalendar is the root VCALENDAR component.
type ICalendar struct {
	ProdID   string
	Version  string
	CalScale string
	Method   string

	Events    []*VEvent
	Todos     []*VTodo
	FreeBusy  []*VFreeBusy
	Journals  []*VJournal
	TimeZones []*VTimeZone

	XComponents           []*XComponent
	UnrecognizedComponents []*UnrecognizedComponent

	Extras []Extra
	Span   span.Span
}

// Attendee is a CAL-ADDRESS valued ATTENDEE/ORGANIZER occurrence with
// its parameters resolved into convenience fields.
type Attendee struct {
	Address  string // mailto: URI or other CAL-ADDRESS
	CN       string
	Role     param.Token
	PartStat param.Token
	CUType   param.Token
	RSVP     *bool
	Span     span.Span
}

// Attachment is an ATTACH occurrence: either a URI reference or inline
// BINARY data (mutually exclusive, selected by Kind).
type Attachment struct {
	Kind  value.Kind // KindURI or KindBinary
	URI   string
	Data  []byte
	Span  span.Span
}

// VEvent is a VEVENT component.
type VEvent struct {
	UID     string
	DTStamp value.DateTime

	DTStart    *value.DateTime
	DTEnd      *value.DateTime
	Duration   *value.Duration
	DTStartIsDate, DTEndIsDate bool

	Summary     string
	Description string
	Location    string
	Status      string // TENTATIVE, CONFIRMED, CANCELLED
	Transp      string
	Class       string
	Geo         *prop.Geo

	Organizer *Attendee
	Attendees []Attendee
	Sequence  int32

	RRule  *value.Recur
	RDates []any // value.DateTime, value.Date, or value.Period
	EXDates []any

	Attachments []Attachment
	Categories  []string

	Alarms []*VAlarm

	Extras []Extra
	Span   span.Span
}

// VTodo is a VTODO component.
type VTodo struct {
	UID     string
	DTStamp value.DateTime

	DTStart  *value.DateTime
	Due      *value.DateTime
	Duration *value.Duration

	Completed       *value.DateTime
	PercentComplete *prop.PercentComplete
	Priority        *prop.Priority
	Status          string // NEEDS-ACTION, IN-PROCESS, COMPLETED, CANCELLED

	Summary     string
	Description string

	RRule   *value.Recur
	RDates  []any
	EXDates []any

	Alarms []*VAlarm

	Extras []Extra
	Span   span.Span
}

// VAlarm is a VALARM component nested inside a VEvent or VTodo.
type VAlarm struct {
	Action      string // AUDIO, DISPLAY, EMAIL
	Trigger     any    // value.Duration or value.DateTime
	Description string
	Summary     string
	Attendees   []Attendee
	Duration    *value.Duration
	Repeat      *prop.Repeat

	Extras []Extra
	Span   span.Span
}

// Observance is one STANDARD or DAYLIGHT sub-block inside a VTIMEZONE.
type Observance struct {
	Daylight     bool
	DTStart      value.DateTime
	TZOffsetFrom value.UTCOffset
	TZOffsetTo   value.UTCOffset
	TZName       string
	RRule        *value.Recur

	Extras []Extra
	Span   span.Span
}

// VTimeZone is a VTIMEZONE component.
type VTimeZone struct {
	TZID        string
	Observances []Observance

	Extras []Extra
	Span   span.Span
}

// VFreeBusy is a VFREEBUSY component.
type VFreeBusy struct {
	UID     string
	DTStamp value.DateTime

	DTStart *value.DateTime
	DTEnd   *value.DateTime
	FreeBusy []value.Period

	Extras []Extra
	Span   span.Span
}

// VJournal is a VJOURNAL component.
type VJournal struct {
	UID     string
	DTStamp value.DateTime

	DTStart     *value.DateTime
	Summary     string
	Description string
	Status      string

	Extras []Extra
	Span   span.Span
}

// XComponent is an unrecognized `BEGIN:X-...` component, preserved with
// all its properties and any nested children.
type XComponent struct {
	Name       string
	Properties []Extra
	Children   []*XComponent
	Span       span.Span
}

// UnrecognizedComponent is an unrecognized non-x-prefixed IANA
// component name, preserved the same way as XComponent.
type UnrecognizedComponent struct {
	Name       string
	Properties []Extra
	Children   []*UnrecognizedComponent
	Span       span.Span
}
