package prop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimcal/aim/ical/span"
	"github.com/aimcal/aim/ical/syntax"
	"github.com/aimcal/aim/ical/value"
)

func line(name, val string, params ...syntax.Param) *syntax.ContentLine {
	return &syntax.ContentLine{Name: name, Value: val, Params: params}
}

func TestConvertSimpleText(t *testing.T) {
	p, errs := Convert(line("SUMMARY", "Hello, world"))
	require.Empty(t, errs)
	assert.Equal(t, value.KindText, p.Kind)
	require.Len(t, p.Values, 1)
	assert.Equal(t, "Hello, world", p.Values[0])
}

func TestConvertListText(t *testing.T) {
	p, errs := Convert(line("CATEGORIES", "WORK,URGENT"))
	require.Empty(t, errs)
	require.Len(t, p.Values, 2)
	assert.Equal(t, "WORK", p.Values[0])
	assert.Equal(t, "URGENT", p.Values[1])
}

func TestConvertInteger(t *testing.T) {
	p, errs := Convert(line("SEQUENCE", "3"))
	require.Empty(t, errs)
	require.Len(t, p.Values, 1)
	assert.Equal(t, int32(3), p.Values[0])
}

func TestConvertDisallowedValueKind(t *testing.T) {
	_, errs := Convert(line("UID", "abc", syntax.Param{
		Name:   "VALUE",
		Values: []syntax.ParamValue{{Value: "INTEGER"}},
	}))
	require.NotEmpty(t, errs)
}

func TestConvertGeo(t *testing.T) {
	p, errs := Convert(line("GEO", "37.386013;-122.082932"))
	require.Empty(t, errs)
	require.Len(t, p.Values, 1)
	geo := p.Values[0].(Geo)
	assert.InDelta(t, 37.386013, geo.Lat, 1e-9)
	assert.InDelta(t, -122.082932, geo.Lon, 1e-9)
}

func TestConvertUnknownProperty(t *testing.T) {
	p, errs := Convert(line("X-CUSTOM-FIELD", "whatever"))
	require.Empty(t, errs)
	assert.False(t, p.Known)
	assert.Equal(t, "whatever", p.Values[0])
}

func TestValidatePercentComplete(t *testing.T) {
	_, err := ValidatePercentComplete(150, span.Span{})
	assert.Error(t, err)
	v, err := ValidatePercentComplete(42, span.Span{})
	require.NoError(t, err)
	assert.Equal(t, PercentComplete(42), v)
}

func TestValidatePriority(t *testing.T) {
	_, err := ValidatePriority(10, span.Span{})
	assert.Error(t, err)
	_, err = ValidatePriority(-1, span.Span{})
	assert.Error(t, err)
	v, err := ValidatePriority(5, span.Span{})
	require.NoError(t, err)
	assert.Equal(t, Priority(5), v)
}
