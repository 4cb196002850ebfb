package caldav

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// Capabilities reports the DAV compliance classes a server advertised
// in its OPTIONS response.
type Capabilities struct {
	CalendarAccess bool // "calendar-access" -> REPORT queries usable
	ExtendedMkcol  bool // "extended-mkcol" -> MKCALENDAR usable
}

// Discover issues an OPTIONS request against the client's base URL and
// parses the DAV: response header to determine which CalDAV features
// the server supports.
func (c *Client) Discover(ctx context.Context) (Capabilities, error) {
	resp, err := c.doRequest(ctx, http.MethodOptions, c.cfg.BaseURL, nil, requestOpts{})
	if err != nil {
		return Capabilities{}, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Capabilities{}, httpErrorFor(resp.StatusCode, body)
	}

	var caps Capabilities
	for _, tok := range strings.Split(resp.Header.Get("DAV"), ",") {
		switch strings.TrimSpace(tok) {
		case "calendar-access":
			caps.CalendarAccess = true
		case "extended-mkcol":
			caps.ExtendedMkcol = true
		}
	}
	return caps, nil
}
