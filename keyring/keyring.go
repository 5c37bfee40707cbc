// Package keyring remembers tethering passphrases.
// It uses the system keyring when available and keeps secrets in memory
// for the session when it is not.
package keyring

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yllada/connman-gtk/common"
	"github.com/zalando/go-keyring"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = "connman-gtk"

	probeKey = "connman-gtk-probe"
)

// Common errors returned by keyring operations.
var (
	ErrNotFound = errors.New("passphrase not found")
	ErrEmptyKey = errors.New("key cannot be empty")
)

// Store keeps passphrases keyed by technology object path.
type Store struct {
	mu       sync.RWMutex
	fallback bool
	memory   map[string]string
}

var _ common.SecretStore = (*Store)(nil)

// New probes the system keyring and returns a Store. When the keyring is
// unavailable secrets only live as long as the process.
func New() *Store {
	s := &Store{memory: make(map[string]string)}
	if err := keyring.Set(serviceName, probeKey, "probe"); err != nil {
		common.LogWarn("System keyring unavailable, passphrases will not be remembered: %v", err)
		s.fallback = true
		return s
	}
	_ = keyring.Delete(serviceName, probeKey)
	return s
}

// Persistent reports whether secrets survive a restart.
func (s *Store) Persistent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.fallback
}

// Store saves secret under key.
func (s *Store) Store(key, secret string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if secret == "" {
		return s.Delete(key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fallback {
		err := keyring.Set(serviceName, key, secret)
		if err == nil {
			return nil
		}
		common.LogWarn("Keyring write failed, keeping passphrase in memory: %v", err)
		s.fallback = true
	}
	s.memory[key] = secret
	return nil
}

// Get returns the secret stored under key.
func (s *Store) Get(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if secret, ok := s.memory[key]; ok {
		return secret, nil
	}
	if s.fallback {
		return "", ErrNotFound
	}

	secret, err := keyring.Get(serviceName, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keyring read %s: %w", key, err)
	}
	return secret, nil
}

// Delete forgets the secret stored under key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.memory, key)
	if s.fallback {
		return nil
	}
	if err := keyring.Delete(serviceName, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s: %w", key, err)
	}
	return nil
}
