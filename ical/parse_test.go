package ical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinimalEvent(t *testing.T) {
	src := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//X//Y//EN\r\n" +
		"BEGIN:VEVENT\r\nUID:abc-123\r\nDTSTAMP:20250101T090000Z\r\n" +
		"DTSTART:20250101T100000Z\r\nSUMMARY:Hi\r\nEND:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	doc, errs, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, doc.Calendars, 1)

	cal := doc.Calendars[0]
	assert.Equal(t, "2.0", cal.Version)
	assert.Equal(t, "-//X//Y//EN", cal.ProdID)
	require.Len(t, cal.Events, 1)

	ev := cal.Events[0]
	assert.Equal(t, "abc-123", ev.UID)
	assert.Equal(t, "Hi", ev.Summary)
	require.NotNil(t, ev.DTStart)
	assert.Equal(t, 2025, ev.DTStart.Date.Year)
}

func TestParseNoCalendarFails(t *testing.T) {
	_, _, err := Parse([]byte("BEGIN:VEVENT\r\nEND:VEVENT\r\n"))
	assert.Error(t, err)
}

func TestParseMissingRequiredFieldAccumulatesError(t *testing.T) {
	src := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//X//Y//EN\r\n" +
		"BEGIN:VEVENT\r\nDTSTAMP:20250101T090000Z\r\nEND:VEVENT\r\n" +
		"END:VCALENDAR\r\n"
	doc, errs, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Calendars, 1)
	assert.NotEmpty(t, errs)
}

func TestParseDTEndDurationMutuallyExclusive(t *testing.T) {
	src := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//X//Y//EN\r\n" +
		"BEGIN:VEVENT\r\nUID:x\r\nDTSTAMP:20250101T090000Z\r\n" +
		"DTSTART:20250101T100000Z\r\nDTEND:20250101T110000Z\r\nDURATION:PT1H\r\n" +
		"END:VEVENT\r\nEND:VCALENDAR\r\n"
	doc, errs, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Calendars, 1)
	assert.NotEmpty(t, errs)
}

func TestParseXComponentPreserved(t *testing.T) {
	src := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//X//Y//EN\r\n" +
		"BEGIN:X-CUSTOM\r\nX-FOO:bar\r\nEND:X-CUSTOM\r\n" +
		"END:VCALENDAR\r\n"
	doc, _, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Calendars[0].XComponents, 1)
	assert.Equal(t, "X-CUSTOM", doc.Calendars[0].XComponents[0].Name)
}
