package caldav

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aimcal/aim/store"
)

func mustOpenStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSyncCalendarFirstPassFetchesAndRecords(t *testing.T) {
	db := mustOpenStore(t)

	var propfindCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "PROPFIND":
			propfindCalls++
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusMultiStatus)
			_, _ = io.WriteString(w, `<?xml version="1.0"?>
<multistatus xmlns="DAV:" xmlns:CS="http://calendarserver.org/ns/">
  <response>
    <href>/dav/cal/</href>
    <propstat>
      <prop><CS:getctag>cal-v1</CS:getctag></prop>
      <status>HTTP/1.1 200 OK</status>
    </propstat>
  </response>
</multistatus>`)
		case "REPORT":
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusMultiStatus)
			if len(body) > 0 {
				_, _ = io.WriteString(w, `<?xml version="1.0"?>
<multistatus xmlns="DAV:" xmlns:C="urn:ietf:params:xml:ns:caldav">
  <response>
    <href>/dav/cal/evt-1.ics</href>
    <propstat>
      <prop>
        <getetag>"etag-1"</getetag>
        <C:calendar-data>BEGIN:VCALENDAR&#13;BEGIN:VEVENT&#13;UID:evt-1&#13;END:VEVENT&#13;END:VCALENDAR</C:calendar-data>
      </prop>
      <status>HTTP/1.1 200 OK</status>
    </propstat>
  </response>
</multistatus>`)
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL + "/dav/"}, zerolog.Nop())

	var ingested []Object
	result, err := c.SyncCalendar(context.Background(), db, "/dav/cal/", "caldav-test", "VEVENT", func(ctx context.Context, obj Object) error {
		ingested = append(ingested, obj)
		return RecordResource(ctx, db, "evt-1", "caldav-test", obj.Path, obj.ETag, "cal-v1")
	})
	if err != nil {
		t.Fatalf("SyncCalendar: %v", err)
	}
	if result.Unchanged {
		t.Fatal("SyncCalendar: first pass should not be unchanged")
	}
	if result.Added != 1 {
		t.Fatalf("SyncCalendar: got Added=%d, want 1", result.Added)
	}
	if len(ingested) != 1 || ingested[0].ETag != "etag-1" {
		t.Fatalf("SyncCalendar: ingested %+v", ingested)
	}

	rec, found, err := db.GetResource(context.Background(), "evt-1", "caldav-test")
	if err != nil {
		t.Fatalf("GetResource: %v", err)
	}
	if !found || rec.ResourceID != "/dav/cal/evt-1.ics" {
		t.Fatalf("GetResource: got %+v", rec)
	}
}

func TestSyncCalendarUnchangedSkipsReport(t *testing.T) {
	db := mustOpenStore(t)
	if err := RecordResource(context.Background(), db, "evt-1", "caldav-test", "/dav/cal/evt-1.ics", "etag-1", "cal-v1"); err != nil {
		t.Fatalf("RecordResource: %v", err)
	}

	reportCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "PROPFIND":
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusMultiStatus)
			_, _ = io.WriteString(w, `<?xml version="1.0"?>
<multistatus xmlns="DAV:" xmlns:CS="http://calendarserver.org/ns/">
  <response>
    <href>/dav/cal/</href>
    <propstat>
      <prop><CS:getctag>cal-v1</CS:getctag></prop>
      <status>HTTP/1.1 200 OK</status>
    </propstat>
  </response>
</multistatus>`)
		case "REPORT":
			reportCalled = true
			w.WriteHeader(http.StatusMultiStatus)
		}
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL + "/dav/"}, zerolog.Nop())
	result, err := c.SyncCalendar(context.Background(), db, "/dav/cal/", "caldav-test", "VEVENT", func(ctx context.Context, obj Object) error {
		t.Fatal("ingest should not be called when CTag is unchanged")
		return nil
	})
	if err != nil {
		t.Fatalf("SyncCalendar: %v", err)
	}
	if !result.Unchanged {
		t.Fatal("SyncCalendar: expected Unchanged=true")
	}
	if reportCalled {
		t.Fatal("SyncCalendar: REPORT should be skipped when CTag matches")
	}
}
