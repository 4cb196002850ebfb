package ical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRoundTrip(t *testing.T) {
	src := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//X//Y//EN\r\n" +
		"BEGIN:VEVENT\r\nUID:abc-123\r\nDTSTAMP:20250101T090000Z\r\n" +
		"DTSTART:20250101T100000Z\r\nSUMMARY:Hi there\\, world\r\nEND:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	doc, errs, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, doc.Calendars, 1)

	out := Format(doc.Calendars[0])
	assert.Contains(t, string(out), "BEGIN:VCALENDAR\r\n")
	assert.Contains(t, string(out), "UID:abc-123\r\n")

	doc2, errs2, err2 := Parse(out)
	require.NoError(t, err2)
	require.Empty(t, errs2)
	require.Len(t, doc2.Calendars, 1)
	assert.Equal(t, doc.Calendars[0].Events[0].UID, doc2.Calendars[0].Events[0].UID)
	assert.Equal(t, doc.Calendars[0].Events[0].Summary, doc2.Calendars[0].Events[0].Summary)
}

func TestFormatLongLineFolds(t *testing.T) {
	longSummary := ""
	for i := 0; i < 200; i++ {
		longSummary += "a"
	}
	src := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//X//Y//EN\r\n" +
		"BEGIN:VEVENT\r\nUID:abc\r\nDTSTAMP:20250101T090000Z\r\n" +
		"SUMMARY:" + longSummary + "\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"

	doc, _, err := Parse([]byte(src))
	require.NoError(t, err)
	out := Format(doc.Calendars[0])

	for _, line := range splitLines(string(out)) {
		assert.LessOrEqual(t, len(line), 75)
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '\r' && s[i+1] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 2
		}
	}
	return lines
}
