package credentials

import (
	"errors"
	"sync"

	"github.com/zalando/go-keyring"
)

// ErrKeyringUnavailable is returned when the system keyring backend is
// not available in the current environment (headless Linux without a
// Secret Service, CI, etc).
var ErrKeyringUnavailable = errors.New("credentials: system keyring not available")

type systemKeyring struct{}

func (systemKeyring) Set(service, account, secret string) error {
	if err := keyring.Set(service, account, secret); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return err
		}
		return ErrKeyringUnavailable
	}
	return nil
}

func (systemKeyring) Get(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", err
		}
		return "", ErrKeyringUnavailable
	}
	return secret, nil
}

func (systemKeyring) Delete(service, account string) error {
	if err := keyring.Delete(service, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return err
		}
		return ErrKeyringUnavailable
	}
	return nil
}

// MockKeyring is an in-memory Keyring for tests.
type MockKeyring struct {
	mu    sync.RWMutex
	store map[string]map[string]string
}

// NewMockKeyring returns an empty mock keyring.
func NewMockKeyring() *MockKeyring {
	return &MockKeyring{store: make(map[string]map[string]string)}
}

func (k *MockKeyring) Set(service, account, secret string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.store[service] == nil {
		k.store[service] = make(map[string]string)
	}
	k.store[service][account] = secret
	return nil
}

func (k *MockKeyring) Get(service, account string) (string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if accounts, ok := k.store[service]; ok {
		if secret, ok := accounts[account]; ok {
			return secret, nil
		}
	}
	return "", keyring.ErrNotFound
}

func (k *MockKeyring) Delete(service, account string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if accounts, ok := k.store[service]; ok {
		if _, ok := accounts[account]; ok {
			delete(accounts, account)
			return nil
		}
	}
	return keyring.ErrNotFound
}
