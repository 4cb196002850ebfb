package credentials

import (
	"context"
	"os"
	"testing"
)

func TestSetThenGetResolvesFromKeyring(t *testing.T) {
	mock := NewMockKeyring()
	m := NewManager(WithKeyring(mock))

	if err := m.Set(context.Background(), "alice", "s3cret"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	secret, err := m.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !secret.Found || secret.Source != SourceKeyring || secret.Value != "s3cret" {
		t.Fatalf("Get: got %+v", secret)
	}
}

func TestGetFallsBackToEnvironment(t *testing.T) {
	mock := NewMockKeyring()
	m := NewManager(WithKeyring(mock))

	t.Setenv("AIM_CALDAV_PASSWORD", "env-secret")
	secret, err := m.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !secret.Found || secret.Source != SourceEnvironment || secret.Value != "env-secret" {
		t.Fatalf("Get: got %+v", secret)
	}
}

func TestGetNotFound(t *testing.T) {
	mock := NewMockKeyring()
	m := NewManager(WithKeyring(mock))
	_ = os.Unsetenv("AIM_CALDAV_PASSWORD")
	_ = os.Unsetenv("AIM_CALDAV_TOKEN")

	secret, err := m.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if secret.Found || secret.Source != SourceNone {
		t.Fatalf("Get: got %+v, want not found", secret)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	mock := NewMockKeyring()
	m := NewManager(WithKeyring(mock))

	if err := m.Delete(context.Background(), "never-set"); err != nil {
		t.Fatalf("Delete on missing entry: %v", err)
	}

	if err := m.Set(context.Background(), "alice", "s3cret"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	secret, err := m.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if secret.Found {
		t.Fatalf("Get after delete: still found %+v", secret)
	}
}
