package value

import (
	"encoding/base64"

	"github.com/aimcal/aim/ical/span"
)

// ParseBinary decodes an RFC 5545 §3.3.1 BINARY value: standard base64
// (RFC 4648) with correct padding.
func ParseBinary(s string, at span.Span) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errAt(KindBinary, "invalid base64: "+err.Error(), at)
	}
	return b, nil
}

// FormatBinary encodes bytes as a BINARY value.
func FormatBinary(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
