package aim

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aimcal/aim/config"
	"github.com/aimcal/aim/credentials"
	"github.com/aimcal/aim/ical/value"
	"github.com/aimcal/aim/ical/span"
)

func mustOpenAim(t *testing.T) *Aim {
	t.Helper()
	cfg := &config.Config{StateDir: "", CalDAV: config.CalDAVConfig{Auth: config.AuthConfig{Kind: "none"}}}
	creds := credentials.NewManager(credentials.WithKeyring(credentials.NewMockKeyring()))
	a, err := Open(context.Background(), cfg, creds, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func nowDateTime(t *testing.T) value.DateTime {
	t.Helper()
	now := time.Now().UTC()
	d, err := value.ParseDate(now.Format("20060102"), span.Span{})
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	tm, err := value.ParseTime(now.Format("150405")+"Z", span.Span{})
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	return value.DateTime{Date: d, Time: tm, Zone: value.ZoneUTC}
}

func TestUpsertTodoThenMarkDone(t *testing.T) {
	a := mustOpenAim(t)
	summary := "Buy groceries"
	todo, err := a.UpsertTodo(context.Background(), TodoPatch{Summary: &summary})
	if err != nil {
		t.Fatalf("UpsertTodo: %v", err)
	}
	if todo.Status != "NEEDS-ACTION" {
		t.Fatalf("UpsertTodo: got status %q, want NEEDS-ACTION", todo.Status)
	}

	if err := a.MarkDone(context.Background(), todo.UID); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}

	rec, found, err := a.store.GetTodo(context.Background(), todo.UID)
	if err != nil {
		t.Fatalf("GetTodo: %v", err)
	}
	if !found || rec.Status != "COMPLETED" || rec.Completed == "" {
		t.Fatalf("GetTodo after MarkDone: got %+v", rec)
	}
}

func TestDraftEventFillsUIDAndStamp(t *testing.T) {
	a := mustOpenAim(t)
	now := nowDateTime(t)
	ev, err := a.DraftEvent(context.Background(), EventDraft{Summary: "Team sync", DTStart: now})
	if err != nil {
		t.Fatalf("DraftEvent: %v", err)
	}
	if ev.UID == "" {
		t.Fatal("DraftEvent: UID not filled")
	}
	if ev.DTStamp.Date != now.Date {
		t.Fatalf("DraftEvent: DTStamp not set to now")
	}
	if ev.Summary != "Team sync" {
		t.Fatalf("DraftEvent: got summary %q", ev.Summary)
	}
}

func TestIngestDirectoryParsesAndUpserts(t *testing.T) {
	a := mustOpenAim(t)
	dir := t.TempDir()
	ics := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//aim//test//EN
BEGIN:VEVENT
UID:evt-ingest-1
DTSTAMP:20260131T120000Z
DTSTART:20260201T090000Z
SUMMARY:Ingested event
END:VEVENT
END:VCALENDAR
`
	if err := os.WriteFile(filepath.Join(dir, "one.ics"), []byte(ics), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	report, err := a.IngestDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDirectory: %v", err)
	}
	if report.Parsed != 1 || report.Events != 1 || len(report.Failures) != 0 {
		t.Fatalf("IngestDirectory: got %+v", report)
	}

	ev, err := a.GetEvent(context.Background(), "evt-ingest-1")
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if ev == nil || ev.Summary != "Ingested event" {
		t.Fatalf("GetEvent: got %+v", ev)
	}
}

func TestIngestDirectoryCollectsPerFileFailures(t *testing.T) {
	a := mustOpenAim(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.ics"), []byte("not a calendar"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	report, err := a.IngestDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDirectory: %v", err)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("IngestDirectory: got %d failures, want 1", len(report.Failures))
	}
}
