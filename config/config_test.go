package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Load did not write default config: %v", err)
	}
	if cfg.CalDAV.TimeoutSecs != 30 {
		t.Fatalf("DefaultConfig: got TimeoutSecs=%d, want 30", cfg.CalDAV.TimeoutSecs)
	}
	if cfg.CalDAV.Auth.Kind != "none" {
		t.Fatalf("DefaultConfig: got auth kind %q, want none", cfg.CalDAV.Auth.Kind)
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
calendar_path: /home/alice/calendars
state_dir: /home/alice/.local/share/aim
default_priority: 5
caldav:
  base_url: https://caldav.example.com/
  calendar_home: /dav/calendars/alice/
  auth:
    kind: basic
    username: alice
  timeout_secs: 10
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CalDAV.BaseURL != "https://caldav.example.com/" {
		t.Fatalf("Load: got base_url %q", cfg.CalDAV.BaseURL)
	}
	if cfg.DefaultPriority != 5 {
		t.Fatalf("Load: got default_priority %d, want 5", cfg.DefaultPriority)
	}
	if cfg.CalDAV.Auth.Username != "alice" {
		t.Fatalf("Load: got auth username %q", cfg.CalDAV.Auth.Username)
	}
}

func TestValidateRejectsUnknownAuthKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CalDAV.Auth.Kind = "digest"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate: expected error for unknown auth kind")
	}
}

func TestValidateRequiresUsernameForBasicAuth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CalDAV.BaseURL = "https://caldav.example.com/"
	cfg.CalDAV.Auth.Kind = "basic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate: expected error for missing basic auth username")
	}
}

func TestDatabasePathJoinsStateDir(t *testing.T) {
	cfg := &Config{StateDir: "/var/lib/aim"}
	if got := cfg.DatabasePath(); got != "/var/lib/aim/aim.db" {
		t.Fatalf("DatabasePath: got %q", got)
	}
}

func TestExpandPathExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	got := ExpandPath("~/calendars")
	want := filepath.Join(home, "calendars")
	if got != want {
		t.Fatalf("ExpandPath: got %q, want %q", got, want)
	}
}
