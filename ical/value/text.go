package value

import (
	"strings"

	"github.com/aimcal/aim/ical/span"
)

// UnescapeText decodes RFC 5545 §3.3.11 backslash escapes in a single
// text field: `\\`, `\;`, `\,`, and `\n`/`\N` → LF.
func UnescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			case ';':
				b.WriteByte(';')
				i++
				continue
			case ',':
				b.WriteByte(',')
				i++
				continue
			case 'n', 'N':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EscapeText encodes a text field's raw value for output, the inverse of
// UnescapeText.
func EscapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ';':
			b.WriteString(`\;`)
		case ',':
			b.WriteString(`\,`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseTextList splits a comma-separated TEXT value into its fields,
// honoring backslash-escaped commas, then unescapes each field.
func ParseTextList(s string, _ span.Span) ([]string, error) {
	fields := splitUnescaped(s, ',')
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = UnescapeText(f)
	}
	return out, nil
}

// splitUnescaped splits s on sep, treating `\sep` as a literal (escaped)
// separator rather than a split point.
func splitUnescaped(s string, sep byte) []string {
	var fields []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			cur.WriteByte(c)
			cur.WriteByte(s[i+1])
			i++
			continue
		}
		if c == sep {
			fields = append(fields, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	fields = append(fields, cur.String())
	return fields
}
