package caldav

import (
	"context"
	"io"
	"net/http"
)

// Get fetches one calendar object by its server path.
func (c *Client) Get(ctx context.Context, path string) (Object, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.resolve(path), nil, requestOpts{})
	if err != nil {
		return Object{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Object{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Object{}, httpErrorFor(resp.StatusCode, data)
	}
	return Object{
		Path: path,
		ETag: unquoteETag(resp.Header.Get("ETag")),
		Data: data,
	}, nil
}

// Put uploads a calendar object. ifMatch, when non-empty, makes the
// write conditional on the resource's current ETag (rejecting a
// concurrent remote edit with PreconditionFailedError); ifNoneMatch set
// to "*" makes the write conditional on the resource not existing yet.
// It returns the ETag the server assigned after the write.
func (c *Client) Put(ctx context.Context, path string, data []byte, ifMatch, ifNoneMatch string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, c.resolve(path), data, requestOpts{
		ifMatch:   ifMatch,
		ifNone:    ifNoneMatch,
		extraType: "text/calendar; charset=utf-8",
	})
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return unquoteETag(resp.Header.Get("ETag")), nil
	default:
		return "", httpErrorFor(resp.StatusCode, body)
	}
}

// Delete removes a calendar object. ifMatch, when non-empty, makes the
// delete conditional on the resource's current ETag.
func (c *Client) Delete(ctx context.Context, path, ifMatch string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, c.resolve(path), nil, requestOpts{ifMatch: ifMatch})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return httpErrorFor(resp.StatusCode, body)
	}
}

// MkCalendar creates a new calendar collection at path with the given
// display name (RFC 4791 §5.3.1).
func (c *Client) MkCalendar(ctx context.Context, path, displayName string) error {
	body := `<C:mkcalendar xmlns:D="DAV:" xmlns:C="urn:ietf:params:xml:ns:caldav">` +
		`<D:set><D:prop><D:displayname>` + xmlEscape(displayName) + `</D:displayname></D:prop></D:set>` +
		`</C:mkcalendar>`

	resp, err := c.doRequest(ctx, "MKCALENDAR", c.resolve(path), []byte(body), requestOpts{})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	default:
		return httpErrorFor(resp.StatusCode, respBody)
	}
}

func xmlEscape(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch r {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, string(r)...)
		}
	}
	return string(out)
}
