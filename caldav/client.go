package caldav

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ClientConfig carries the connection settings for a single CalDAV
// server. BaseURL is the calendar-home or principal URL discovery
// starts from.
type ClientConfig struct {
	BaseURL            string
	Auth               Auth
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// Client is a minimal RFC 4791 CalDAV client: it issues PROPFIND/REPORT
// requests and conditional GET/PUT/DELETE, and leaves calendar object
// parsing to the ical package.
type Client struct {
	cfg    ClientConfig
	http   *http.Client
	logger zerolog.Logger
}

// NewClient builds a Client against cfg. It does not make a network
// call; use Discover/Principal/CalendarHomeSet to verify
// connectivity.
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Transport: transport, Timeout: cfg.Timeout},
		logger: logger.With().Str("component", "caldav").Logger(),
	}
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	if t, ok := c.http.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}

// requestOpts carries per-request headers beyond the common ones
// doRequest always sets.
type requestOpts struct {
	depth     string // "", "0", "1", "infinity"
	ifMatch   string
	ifNone    string
	extraType string // overrides the default Content-Type
}

func (c *Client) doRequest(ctx context.Context, method, url string, body []byte, opts requestOpts) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("caldav: build request: %w", err)
	}

	switch c.cfg.Auth.Kind {
	case AuthBasic:
		req.SetBasicAuth(c.cfg.Auth.Username, c.cfg.Auth.Password)
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.cfg.Auth.Token)
	}

	contentType := opts.extraType
	if contentType == "" {
		contentType = "application/xml; charset=utf-8"
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.depth != "" {
		req.Header.Set("Depth", opts.depth)
	}
	if opts.ifMatch != "" {
		req.Header.Set("If-Match", quoteETag(opts.ifMatch))
	}
	if opts.ifNone != "" {
		req.Header.Set("If-None-Match", opts.ifNone)
	}

	c.logger.Debug().Str("method", method).Str("url", url).Msg("caldav request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("caldav: %s %s: %w", method, url, err)
	}
	return resp, nil
}

// quoteETag wraps an ETag in quotes unless it already is one; servers
// expect If-Match/If-None-Match to carry the quoted form.
func quoteETag(etag string) string {
	if strings.HasPrefix(etag, `"`) || etag == "*" {
		return etag
	}
	return `"` + etag + `"`
}

func unquoteETag(etag string) string {
	return strings.Trim(etag, `"`)
}

// propfind issues a PROPFIND against url at the given depth and decodes
// the resulting Multi-Status body.
func (c *Client) propfind(ctx context.Context, url, depth string, req propfindReqNames) (*multistatus, error) {
	body, err := xml.Marshal(propfindReq{Prop: req})
	if err != nil {
		return nil, fmt.Errorf("caldav: encode propfind: %w", err)
	}
	body = append([]byte(xml.Header), body...)

	resp, err := c.doRequest(ctx, "PROPFIND", url, body, requestOpts{depth: depth})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("caldav: read propfind response: %w", err)
	}
	if resp.StatusCode != http.StatusMultiStatus {
		return nil, httpErrorFor(resp.StatusCode, data)
	}

	var ms multistatus
	if err := xml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("caldav: decode propfind response: %w", err)
	}
	return &ms, nil
}

// Principal is the current user's principal URL, discovered via
// DAV:current-user-principal on the server's well-known entry point.
func (c *Client) Principal(ctx context.Context) (string, error) {
	ms, err := c.propfind(ctx, c.cfg.BaseURL, "0", propfindReqNames{CurrentUserPrincipal: &struct{}{}})
	if err != nil {
		return "", err
	}
	for _, resp := range ms.Responses {
		if p, ok := resp.okProp(); ok && p.CurrentUserPrincipal != nil {
			return p.CurrentUserPrincipal.Path, nil
		}
	}
	return "", fmt.Errorf("caldav: current-user-principal not found at %s", c.cfg.BaseURL)
}

// CalendarHomeSet resolves the calendar-home-set collection for a
// principal URL (RFC 4791 §6.2.1).
func (c *Client) CalendarHomeSet(ctx context.Context, principal string) (string, error) {
	ms, err := c.propfind(ctx, c.resolve(principal), "0", propfindReqNames{CalendarHomeSet: &struct{}{}})
	if err != nil {
		return "", err
	}
	for _, resp := range ms.Responses {
		if p, ok := resp.okProp(); ok && p.CalendarHomeSet != nil {
			return p.CalendarHomeSet.Path, nil
		}
	}
	return "", fmt.Errorf("caldav: calendar-home-set not found at %s", principal)
}

// Calendar describes one calendar collection discovered under a
// calendar-home-set.
type Calendar struct {
	Path        string
	DisplayName string
	CTag        string
	Supported   bool // has the calendar resourcetype
}

// ListCalendars enumerates the calendar collections directly under
// homeSet (RFC 4791 §5.2).
func (c *Client) ListCalendars(ctx context.Context, homeSet string) ([]Calendar, error) {
	ms, err := c.propfind(ctx, c.resolve(homeSet), "1", propfindReqNames{
		ResourceType: &struct{}{},
		DisplayName:  &struct{}{},
		CTag:         &struct{}{},
	})
	if err != nil {
		return nil, err
	}

	var out []Calendar
	for _, resp := range ms.Responses {
		p, ok := resp.okProp()
		if !ok {
			continue
		}
		if p.ResourceType == nil || p.ResourceType.Calendar == nil {
			continue
		}
		out = append(out, Calendar{
			Path:        resp.Href,
			DisplayName: p.DisplayName,
			CTag:        p.CTag,
			Supported:   true,
		})
	}
	return out, nil
}

// resolve joins a path returned by the server against the client's
// base URL so relative hrefs keep working.
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimSuffix(c.cfg.BaseURL, "/")
	if idx := strings.Index(base, "://"); idx >= 0 {
		if slash := strings.Index(base[idx+3:], "/"); slash >= 0 {
			base = base[:idx+3+slash]
		}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
