// Package localstate persists the handful of per-device keys that survive
// restarts: theme preference and the three identity fields. Each key is
// independent and optional.
package localstate

import (
	"errors"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
)

// ErrNotFound is returned when a key has never been set.
var ErrNotFound = errors.New("localstate: key not found")

// Well-known keys.
const (
	KeyTheme            = "theme"
	KeyIdentityId       = "identity_id"
	KeyIdentityNickname = "identity_nickname"
	KeyIdentityColor    = "identity_color"
)

// Store is a tiny key->value store. Implementations must be safe for
// concurrent use. All values are short strings.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}

// PebbleStore persists keys in a pebble database under dataDir.
type PebbleStore struct {
	db *pebble.DB
}

func OpenPebble(dataDir string) (*PebbleStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	db, err := pebble.Open(dataDir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Get(key string) (string, error) {
	value, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	out := make([]byte, len(value))
	copy(out, value)
	if closer != nil {
		closer.Close()
	}
	return string(out), nil
}

func (s *PebbleStore) Set(key, value string) error {
	return s.db.Set([]byte(key), []byte(value), pebble.Sync)
}

func (s *PebbleStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// MemoryStore is the fallback when the on-disk store cannot be opened, and
// the usual substitute in tests. Contents vanish on process exit, which is
// exactly the degraded behavior the identity provider expects.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Close() error { return nil }
