package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := Execute([]string{"--help"}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "aim") {
		t.Errorf("help output should mention aim, got: %s", stdout.String())
	}
}

func TestIngestThenListEvents(t *testing.T) {
	dir := t.TempDir()
	stateDir := filepath.Join(dir, "state")
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("state_dir: "+stateDir+"\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	icsDir := filepath.Join(dir, "ics")
	if err := os.MkdirAll(icsDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	ics := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//aim//test//EN
BEGIN:VEVENT
UID:evt-cli-1
DTSTAMP:20260131T120000Z
DTSTART:20260201T090000Z
SUMMARY:Team sync
END:VEVENT
END:VCALENDAR
`
	if err := os.WriteFile(filepath.Join(icsDir, "one.ics"), []byte(ics), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := Execute([]string{"--config", configPath, "ingest", icsDir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("ingest: exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "1 event(s)") {
		t.Fatalf("ingest: unexpected output: %s", stdout.String())
	}

	stdout.Reset()
	code = Execute([]string{"--config", configPath, "event", "list"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("event list: exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "evt-cli-1") {
		t.Fatalf("event list: unexpected output: %s", stdout.String())
	}
}
