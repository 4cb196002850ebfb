// Package credentials resolves the CalDAV backend's secret (password
// or bearer token) from the OS keyring first, falling back to
// environment variables when no keyring entry exists.
package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Source indicates where a resolved secret came from.
type Source string

const (
	SourceKeyring     Source = "keyring"
	SourceEnvironment Source = "environment"
	SourceNone        Source = "none"
)

// Secret is the result of a Get call.
type Secret struct {
	Source Source
	Value  string
	Found  bool
}

// Keyring is the subset of OS keyring operations credentials needs;
// satisfied by github.com/zalando/go-keyring in production and by a
// MockKeyring in tests.
type Keyring interface {
	Set(service, account, secret string) error
	Get(service, account string) (string, error)
	Delete(service, account string) error
}

const service = "aim-caldav"

// Manager resolves and stores the CalDAV secret.
type Manager struct {
	keyring Keyring
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithKeyring overrides the keyring implementation, used in tests.
func WithKeyring(k Keyring) ManagerOption {
	return func(m *Manager) { m.keyring = k }
}

// NewManager creates a Manager backed by the system keyring unless
// overridden by WithKeyring.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{keyring: &systemKeyring{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set stores the secret for account (the CalDAV username, or "bearer"
// for token auth) in the system keyring.
func (m *Manager) Set(ctx context.Context, account, secret string) error {
	return m.keyring.Set(service, account, secret)
}

// Get resolves the secret for account: keyring first, then the
// AIM_CALDAV_PASSWORD / AIM_CALDAV_TOKEN environment variables.
func (m *Manager) Get(ctx context.Context, account string) (Secret, error) {
	if secret, err := m.keyring.Get(service, account); err == nil && secret != "" {
		return Secret{Source: SourceKeyring, Value: secret, Found: true}, nil
	} else if err != nil && !isNotFound(err) {
		return Secret{}, fmt.Errorf("credentials: keyring lookup: %w", err)
	}

	if token := os.Getenv("AIM_CALDAV_TOKEN"); token != "" {
		return Secret{Source: SourceEnvironment, Value: token, Found: true}, nil
	}
	if password := os.Getenv("AIM_CALDAV_PASSWORD"); password != "" {
		return Secret{Source: SourceEnvironment, Value: password, Found: true}, nil
	}

	return Secret{Source: SourceNone}, nil
}

// Delete removes the stored secret for account. Idempotent: a missing
// entry is not an error.
func (m *Manager) Delete(ctx context.Context, account string) error {
	err := m.keyring.Delete(service, account)
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "secret not found")
}
