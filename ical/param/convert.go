package param

import (
	"github.com/aimcal/aim/ical/syntax"
)

// ParseLine converts every raw parameter attached to a content line into a
// typed Parameter, collecting per-parameter errors without stopping at the
// first one.
func ParseLine(line *syntax.ContentLine) ([]Parameter, []error) {
	params := make([]Parameter, 0, len(line.Params))
	var errs []error
	for _, raw := range line.Params {
		values := make([]string, len(raw.Values))
		for i, v := range raw.Values {
			values[i] = v.Value
		}
		p, err := Parse(raw.Name, values, raw.Span)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		params = append(params, p)
	}
	return params, errs
}

// Find returns the first parameter with the given canonical name
// (case-sensitive, since names are already canonicalized by Parse).
func Find(params []Parameter, name Name) (Parameter, bool) {
	for _, p := range params {
		if Name(p.Name) == name {
			return p, true
		}
	}
	return Parameter{}, false
}
