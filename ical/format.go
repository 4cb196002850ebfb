package ical

import (
	"strconv"
	"strings"

	"github.com/aimcal/aim/ical/param"
	"github.com/aimcal/aim/ical/value"
)

// Format renders a calendar back to RFC 5545 text: CRLF line endings,
// uppercase names for the standard properties and components (X- and
// unrecognized components and extra properties keep their stored
// names), correctly quoted parameters, and
// 75-octet UTF-8-aware line folding (§4.H). The output round-trips:
// parsing it again yields a semantically equal document.
func Format(cal *ICalendar) []byte {
	var b strings.Builder
	writeLine(&b, "BEGIN", "VCALENDAR")
	writeProp(&b, "VERSION", nil, cal.Version)
	writeProp(&b, "PRODID", nil, cal.ProdID)
	if cal.CalScale != "" {
		writeProp(&b, "CALSCALE", nil, cal.CalScale)
	}
	if cal.Method != "" {
		writeProp(&b, "METHOD", nil, cal.Method)
	}
	writeExtras(&b, cal.Extras)

	for _, tz := range cal.TimeZones {
		writeTimeZone(&b, tz)
	}
	for _, ev := range cal.Events {
		writeEvent(&b, ev)
	}
	for _, td := range cal.Todos {
		writeTodo(&b, td)
	}
	for _, j := range cal.Journals {
		writeJournal(&b, j)
	}
	for _, fb := range cal.FreeBusy {
		writeFreeBusy(&b, fb)
	}
	for _, x := range cal.XComponents {
		writeXComponent(&b, x)
	}
	for _, u := range cal.UnrecognizedComponents {
		writeUnrecognized(&b, u)
	}

	writeLine(&b, "END", "VCALENDAR")
	return []byte(b.String())
}

func writeLine(b *strings.Builder, kw, name string) {
	foldAndWrite(b, kw+":"+name)
}

func writeProp(b *strings.Builder, name string, params []param.Parameter, value string) {
	var sb strings.Builder
	sb.WriteString(name)
	for _, p := range params {
		sb.WriteByte(';')
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		for i, v := range p.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quoteParamValue(v))
		}
	}
	sb.WriteByte(':')
	sb.WriteString(value)
	foldAndWrite(b, sb.String())
}

func writePropText(b *strings.Builder, name, text string) {
	if text == "" {
		return
	}
	writeProp(b, name, nil, value.EscapeText(text))
}

func quoteParamValue(v string) string {
	if strings.ContainsAny(v, ":;,") {
		return `"` + v + `"`
	}
	return v
}

func writeExtras(b *strings.Builder, extras []Extra) {
	for _, e := range extras {
		var parts []string
		for _, val := range e.Values {
			if e.Kind == value.KindText {
				if s, ok := val.(string); ok {
					parts = append(parts, value.EscapeText(s))
					continue
				}
			}
			parts = append(parts, value.Format(val))
		}
		writeProp(b, e.Name, e.Params, strings.Join(parts, ","))
	}
}

func writeAnyList(b *strings.Builder, name string, vals []any) {
	if len(vals) == 0 {
		return
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = value.Format(v)
	}
	writeProp(b, name, nil, strings.Join(parts, ","))
}

func writeAttendee(b *strings.Builder, name string, a Attendee) {
	var params []param.Parameter
	if a.CN != "" {
		params = append(params, param.Parameter{Name: "CN", Values: []string{a.CN}})
	}
	if a.Role.Raw != "" {
		params = append(params, param.Parameter{Name: "ROLE", Values: []string{a.Role.Raw}})
	}
	if a.PartStat.Raw != "" {
		params = append(params, param.Parameter{Name: "PARTSTAT", Values: []string{a.PartStat.Raw}})
	}
	if a.CUType.Raw != "" {
		params = append(params, param.Parameter{Name: "CUTYPE", Values: []string{a.CUType.Raw}})
	}
	if a.RSVP != nil {
		v := "FALSE"
		if *a.RSVP {
			v = "TRUE"
		}
		params = append(params, param.Parameter{Name: "RSVP", Values: []string{v}})
	}
	writeProp(b, name, params, a.Address)
}

func writeEvent(b *strings.Builder, ev *VEvent) {
	writeLine(b, "BEGIN", "VEVENT")
	writePropText(b, "UID", ev.UID)
	writeProp(b, "DTSTAMP", nil, value.Format(ev.DTStamp))
	if ev.DTStart != nil {
		writeProp(b, "DTSTART", nil, value.Format(*ev.DTStart))
	}
	if ev.DTEnd != nil {
		writeProp(b, "DTEND", nil, value.Format(*ev.DTEnd))
	}
	if ev.Duration != nil {
		writeProp(b, "DURATION", nil, ev.Duration.String())
	}
	writePropText(b, "SUMMARY", ev.Summary)
	writePropText(b, "DESCRIPTION", ev.Description)
	writePropText(b, "LOCATION", ev.Location)
	if ev.Status != "" {
		writePropText(b, "STATUS", ev.Status)
	}
	if ev.Transp != "" {
		writePropText(b, "TRANSP", ev.Transp)
	}
	if ev.Class != "" {
		writePropText(b, "CLASS", ev.Class)
	}
	if ev.Geo != nil {
		writeProp(b, "GEO", nil, strconv.FormatFloat(ev.Geo.Lat, 'f', -1, 64)+";"+strconv.FormatFloat(ev.Geo.Lon, 'f', -1, 64))
	}
	if ev.Organizer != nil {
		writeAttendee(b, "ORGANIZER", *ev.Organizer)
	}
	for _, a := range ev.Attendees {
		writeAttendee(b, "ATTENDEE", a)
	}
	if ev.Sequence != 0 {
		writeProp(b, "SEQUENCE", nil, strconv.FormatInt(int64(ev.Sequence), 10))
	}
	if ev.RRule != nil {
		writeProp(b, "RRULE", nil, ev.RRule.String())
	}
	writeAnyList(b, "RDATE", ev.RDates)
	writeAnyList(b, "EXDATE", ev.EXDates)
	if len(ev.Categories) > 0 {
		parts := make([]string, len(ev.Categories))
		for i, c := range ev.Categories {
			parts[i] = value.EscapeText(c)
		}
		writeProp(b, "CATEGORIES", nil, strings.Join(parts, ","))
	}
	for _, at := range ev.Attachments {
		if at.Kind == value.KindBinary {
			writeProp(b, "ATTACH", []param.Parameter{{Name: "VALUE", Values: []string{"BINARY"}}, {Name: "ENCODING", Values: []string{"BASE64"}}}, value.FormatBinary(at.Data))
		} else {
			writeProp(b, "ATTACH", nil, at.URI)
		}
	}
	writeExtras(b, ev.Extras)
	for _, al := range ev.Alarms {
		writeAlarm(b, al)
	}
	writeLine(b, "END", "VEVENT")
}

func writeTodo(b *strings.Builder, td *VTodo) {
	writeLine(b, "BEGIN", "VTODO")
	writePropText(b, "UID", td.UID)
	writeProp(b, "DTSTAMP", nil, value.Format(td.DTStamp))
	if td.DTStart != nil {
		writeProp(b, "DTSTART", nil, value.Format(*td.DTStart))
	}
	if td.Due != nil {
		writeProp(b, "DUE", nil, value.Format(*td.Due))
	}
	if td.Duration != nil {
		writeProp(b, "DURATION", nil, td.Duration.String())
	}
	if td.Completed != nil {
		writeProp(b, "COMPLETED", nil, value.Format(*td.Completed))
	}
	if td.PercentComplete != nil {
		writeProp(b, "PERCENT-COMPLETE", nil, strconv.Itoa(int(*td.PercentComplete)))
	}
	if td.Priority != nil {
		writeProp(b, "PRIORITY", nil, strconv.Itoa(int(*td.Priority)))
	}
	if td.Status != "" {
		writePropText(b, "STATUS", td.Status)
	}
	writePropText(b, "SUMMARY", td.Summary)
	writePropText(b, "DESCRIPTION", td.Description)
	if td.RRule != nil {
		writeProp(b, "RRULE", nil, td.RRule.String())
	}
	writeAnyList(b, "RDATE", td.RDates)
	writeAnyList(b, "EXDATE", td.EXDates)
	writeExtras(b, td.Extras)
	for _, al := range td.Alarms {
		writeAlarm(b, al)
	}
	writeLine(b, "END", "VTODO")
}

func writeAlarm(b *strings.Builder, al *VAlarm) {
	writeLine(b, "BEGIN", "VALARM")
	writePropText(b, "ACTION", al.Action)
	if al.Trigger != nil {
		writeProp(b, "TRIGGER", nil, value.Format(al.Trigger))
	}
	writePropText(b, "DESCRIPTION", al.Description)
	writePropText(b, "SUMMARY", al.Summary)
	for _, a := range al.Attendees {
		writeAttendee(b, "ATTENDEE", a)
	}
	if al.Duration != nil {
		writeProp(b, "DURATION", nil, al.Duration.String())
	}
	if al.Repeat != nil {
		writeProp(b, "REPEAT", nil, strconv.Itoa(int(*al.Repeat)))
	}
	writeExtras(b, al.Extras)
	writeLine(b, "END", "VALARM")
}

func writeTimeZone(b *strings.Builder, tz *VTimeZone) {
	writeLine(b, "BEGIN", "VTIMEZONE")
	writePropText(b, "TZID", tz.TZID)
	writeExtras(b, tz.Extras)
	for _, obs := range tz.Observances {
		name := "STANDARD"
		if obs.Daylight {
			name = "DAYLIGHT"
		}
		writeLine(b, "BEGIN", name)
		writeProp(b, "DTSTART", nil, value.Format(obs.DTStart))
		writeProp(b, "TZOFFSETFROM", nil, obs.TZOffsetFrom.String())
		writeProp(b, "TZOFFSETTO", nil, obs.TZOffsetTo.String())
		if obs.TZName != "" {
			writePropText(b, "TZNAME", obs.TZName)
		}
		if obs.RRule != nil {
			writeProp(b, "RRULE", nil, obs.RRule.String())
		}
		writeExtras(b, obs.Extras)
		writeLine(b, "END", name)
	}
	writeLine(b, "END", "VTIMEZONE")
}

func writeFreeBusy(b *strings.Builder, fb *VFreeBusy) {
	writeLine(b, "BEGIN", "VFREEBUSY")
	writePropText(b, "UID", fb.UID)
	writeProp(b, "DTSTAMP", nil, value.Format(fb.DTStamp))
	if fb.DTStart != nil {
		writeProp(b, "DTSTART", nil, value.Format(*fb.DTStart))
	}
	if fb.DTEnd != nil {
		writeProp(b, "DTEND", nil, value.Format(*fb.DTEnd))
	}
	if len(fb.FreeBusy) > 0 {
		parts := make([]string, len(fb.FreeBusy))
		for i, p := range fb.FreeBusy {
			parts[i] = p.String()
		}
		writeProp(b, "FREEBUSY", nil, strings.Join(parts, ","))
	}
	writeExtras(b, fb.Extras)
	writeLine(b, "END", "VFREEBUSY")
}

func writeJournal(b *strings.Builder, j *VJournal) {
	writeLine(b, "BEGIN", "VJOURNAL")
	writePropText(b, "UID", j.UID)
	writeProp(b, "DTSTAMP", nil, value.Format(j.DTStamp))
	if j.DTStart != nil {
		writeProp(b, "DTSTART", nil, value.Format(*j.DTStart))
	}
	writePropText(b, "SUMMARY", j.Summary)
	writePropText(b, "DESCRIPTION", j.Description)
	if j.Status != "" {
		writePropText(b, "STATUS", j.Status)
	}
	writeExtras(b, j.Extras)
	writeLine(b, "END", "VJOURNAL")
}

func writeXComponent(b *strings.Builder, x *XComponent) {
	writeLine(b, "BEGIN", x.Name)
	writeExtras(b, x.Properties)
	for _, child := range x.Children {
		writeXComponent(b, child)
	}
	writeLine(b, "END", x.Name)
}

func writeUnrecognized(b *strings.Builder, u *UnrecognizedComponent) {
	writeLine(b, "BEGIN", u.Name)
	writeExtras(b, u.Properties)
	for _, child := range u.Children {
		writeUnrecognized(b, child)
	}
	writeLine(b, "END", u.Name)
}

// foldAndWrite writes one logical content line CRLF-terminated, folding
// at RFC 5545's 75-octet limit by inserting CRLF + SP before the octet
// that would exceed it. The split point is never inside a UTF-8
// multi-byte sequence.
func foldAndWrite(b *strings.Builder, line string) {
	const maxOctets = 75
	remaining := line
	first := true
	for {
		limit := maxOctets
		if !first {
			limit = maxOctets - 1
		}
		if len(remaining) <= limit {
			if !first {
				b.WriteString("\r\n ")
			}
			b.WriteString(remaining)
			b.WriteString("\r\n")
			return
		}
		cut := limit
		for cut > 0 && isUTF8Continuation(remaining[cut]) {
			cut--
		}
		if !first {
			b.WriteString("\r\n ")
		}
		b.WriteString(remaining[:cut])
		remaining = remaining[cut:]
		first = false
	}
}

func isUTF8Continuation(c byte) bool {
	return c&0xC0 == 0x80
}
