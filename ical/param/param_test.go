package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimcal/aim/ical/span"
)

func TestParseKnownEnum(t *testing.T) {
	p, err := Parse("ROLE", []string{"chair"}, span.Span{})
	require.NoError(t, err)
	require.NotNil(t, p.Enum)
	assert.True(t, p.Enum.Known)
	assert.Equal(t, "CHAIR", p.Enum.Raw)
}

func TestParseUnknownEnumToken(t *testing.T) {
	p, err := Parse("PARTSTAT", []string{"X-CUSTOM"}, span.Span{})
	require.NoError(t, err)
	require.NotNil(t, p.Enum)
	assert.False(t, p.Enum.Known)
	assert.Equal(t, "X-CUSTOM", p.Enum.Raw)
}

func TestParseXParamPassesThrough(t *testing.T) {
	p, err := Parse("X-VENDOR-FLAG", []string{"1"}, span.Span{})
	require.NoError(t, err)
	assert.False(t, p.Known)
	assert.Equal(t, "X-VENDOR-FLAG", p.Name)
}

func TestParseListValuedAcceptsMultiple(t *testing.T) {
	p, err := Parse("MEMBER", []string{"mailto:a@example.com", "mailto:b@example.com"}, span.Span{})
	require.NoError(t, err)
	assert.Len(t, p.Values, 2)
}

func TestParseSingleValuedRejectsMultiple(t *testing.T) {
	_, err := Parse("CN", []string{"A", "B"}, span.Span{})
	assert.Error(t, err)
}

func TestParseRSVP(t *testing.T) {
	p, err := Parse("RSVP", []string{"TRUE"}, span.Span{})
	require.NoError(t, err)
	require.NotNil(t, p.RSVPValue)
	assert.True(t, *p.RSVPValue)

	_, err = Parse("RSVP", []string{"maybe"}, span.Span{})
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	p, _ := Parse("ROLE", []string{"CHAIR"}, span.Span{})
	found, ok := Find([]Parameter{p}, Role)
	assert.True(t, ok)
	assert.Equal(t, "CHAIR", found.Enum.Raw)

	_, ok = Find([]Parameter{p}, TZID)
	assert.False(t, ok)
}
