package caldav

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(ClientConfig{
		BaseURL: srv.URL + "/dav/",
		Auth:    Auth{Kind: AuthBasic, Username: "alice", Password: "secret"},
	}, zerolog.Nop())
	return c, srv
}

func TestDiscoverParsesDAVHeader(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("DAV", "1, 2, calendar-access, extended-mkcol")
		w.WriteHeader(http.StatusOK)
	})
	caps, err := c.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !caps.CalendarAccess || !caps.ExtendedMkcol {
		t.Fatalf("Discover: got %+v, want both capabilities set", caps)
	}
}

func TestPrincipalDecodesPropfindResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PROPFIND" {
			t.Fatalf("expected PROPFIND, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusMultiStatus)
		_, _ = io.WriteString(w, `<?xml version="1.0"?>
<multistatus xmlns="DAV:">
  <response>
    <href>/dav/</href>
    <propstat>
      <prop><current-user-principal><href>/dav/principals/alice/</href></current-user-principal></prop>
      <status>HTTP/1.1 200 OK</status>
    </propstat>
  </response>
</multistatus>`)
	})

	principal, err := c.Principal(context.Background())
	if err != nil {
		t.Fatalf("Principal: %v", err)
	}
	if principal != "/dav/principals/alice/" {
		t.Fatalf("Principal: got %q", principal)
	}
}

func TestQueryReturnsObjectsWithETags(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "REPORT" {
			t.Fatalf("expected REPORT, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "VEVENT") {
			t.Fatalf("expected calendar-query body to filter on VEVENT, got %s", body)
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusMultiStatus)
		_, _ = io.WriteString(w, `<?xml version="1.0"?>
<multistatus xmlns="DAV:" xmlns:C="urn:ietf:params:xml:ns:caldav">
  <response>
    <href>/dav/cal/evt-1.ics</href>
    <propstat>
      <prop>
        <getetag>"abc123"</getetag>
        <C:calendar-data>BEGIN:VCALENDAR&#13;END:VCALENDAR</C:calendar-data>
      </prop>
      <status>HTTP/1.1 200 OK</status>
    </propstat>
  </response>
</multistatus>`)
	})

	objs, err := c.Query(context.Background(), "/dav/cal/", "VEVENT", TimeRange{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(objs) != 1 || objs[0].ETag != "abc123" {
		t.Fatalf("Query: got %+v", objs)
	}
}

func TestPutSendsIfMatchAndCapturesETag(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		if got := r.Header.Get("If-Match"); got != `"old-etag"` {
			t.Fatalf("If-Match header: got %q", got)
		}
		w.Header().Set("ETag", `"new-etag"`)
		w.WriteHeader(http.StatusNoContent)
	})

	etag, err := c.Put(context.Background(), "/dav/cal/evt-1.ics", []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), "old-etag", "")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if etag != "new-etag" {
		t.Fatalf("Put: got etag %q, want new-etag", etag)
	}
}

func TestPutPreconditionFailed(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPreconditionFailed)
	})

	_, err := c.Put(context.Background(), "/dav/cal/evt-1.ics", []byte("x"), "stale-etag", "")
	if err == nil {
		t.Fatal("Put: expected precondition-failed error")
	}
	if _, ok := err.(*PreconditionFailedError); !ok {
		t.Fatalf("Put: got %T, want *PreconditionFailedError", err)
	}
}

func TestDeleteTreatsNotFoundAsSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if err := c.Delete(context.Background(), "/dav/cal/gone.ics", ""); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
