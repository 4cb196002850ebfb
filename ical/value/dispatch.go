package value

import (
	"strconv"

	"github.com/aimcal/aim/ical/span"
)

// Parse dispatches to the parser for kind, per §4.C's VALUE= dispatch
// table. tzid is forwarded to the date-time/period parsers; it is unused
// by every other kind. The returned value's concrete Go type depends on
// kind: Date, DateTime, Duration, float64, int32, []string (TEXT),
// Period, Recur, UTCOffset, []byte (BINARY), bool, Time, or string (URI,
// CAL-ADDRESS — left as-is; validated for well-formedness by the property
// layer where required).
func Parse(kind Kind, raw string, tzid string, at span.Span) (any, error) {
	switch kind {
	case KindBinary:
		return ParseBinary(raw, at)
	case KindBoolean:
		return ParseBoolean(raw, at)
	case KindDate:
		return ParseDate(raw, at)
	case KindDateTime:
		return ParseDateTime(raw, tzid, at)
	case KindDuration:
		return ParseDuration(raw, at)
	case KindFloat:
		return ParseFloat(raw, at)
	case KindInteger:
		return ParseInteger(raw, at)
	case KindPeriod:
		return ParsePeriod(raw, tzid, at)
	case KindRecur:
		return ParseRecur(raw, tzid, at)
	case KindText:
		return ParseTextList(raw, at)
	case KindTime:
		return ParseTime(raw, at)
	case KindURI, KindCalAddress:
		return raw, nil
	case KindUTCOffset:
		return ParseUTCOffset(raw, at)
	default:
		return nil, errAt(kind, "unknown value kind: "+string(kind), at)
	}
}

// Format renders a previously-parsed value back to its RFC 5545 wire
// text, the inverse of Parse. Text values are the property layer's
// concern (escaping depends on list-vs-single context) and are not
// handled here.
func Format(v any) string {
	switch t := v.(type) {
	case Date:
		return t.String()
	case DateTime:
		return t.String()
	case Duration:
		return t.String()
	case Recur:
		return t.String()
	case Time:
		return t.String()
	case UTCOffset:
		return t.String()
	case Period:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case []byte:
		return FormatBinary(t)
	case string:
		return t
	default:
		return ""
	}
}
