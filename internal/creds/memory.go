// internal/creds/memory.go
//
// In-memory implementation of Store. Used in tests and when no database
// path is configured; state is lost when the process restarts.

package creds

import (
	"context"
	"strings"
	"sync"
)

// memory is a map-backed Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards records map
	records map[string]Record // keyed by lower-cased username
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[string]Record)}
}

// Load looks up a record by username.
func (m *memory) Load(ctx context.Context, username string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.records[strings.ToLower(username)]; ok {
		rec.GuessHistogram = append([]int(nil), rec.GuessHistogram...)
		return rec, nil
	}
	return Record{}, ErrNotFound
}

// Save adds or replaces the record in the map.
func (m *memory) Save(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.records[strings.ToLower(rec.Username)]; ok && rec.PasswordHash == "" {
		rec.PasswordHash = prev.PasswordHash
	}
	rec.GuessHistogram = append([]int(nil), rec.GuessHistogram...)
	m.records[strings.ToLower(rec.Username)] = rec
	return nil
}

// CreateUser hashes the password and inserts a fresh record.
func (m *memory) CreateUser(ctx context.Context, username, alias, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[strings.ToLower(username)]; ok {
		return ErrUsernameTaken
	}
	m.records[strings.ToLower(username)] = Record{
		Username:     username,
		Alias:        alias,
		PasswordHash: hash,
	}
	return nil
}
