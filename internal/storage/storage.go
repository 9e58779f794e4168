// Package storage is the durable client storage: a small key-value view over
// the browser session that every store persists itself into.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
)

// Storage persists JSON-encodable values under string keys
type Storage interface {
	// Load decodes the value stored under key into v and reports whether
	// the key was present
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
	Delete(key string) error
}

// ErrCorrupt is wrapped when a stored value cannot be decoded
var ErrCorrupt = errors.New("stored value is corrupt")

// SessionStorage keeps values in a gorilla session. Values are stored as JSON
// strings so any sessions.Store backend can hold them without gob
// registration. Every write saves the session on the response.
type SessionStorage struct {
	session *sessions.Session
	r       *http.Request
	w       http.ResponseWriter
}

// NewSessionStorage binds a session to the current request and response
func NewSessionStorage(session *sessions.Session, w http.ResponseWriter, r *http.Request) *SessionStorage {
	return &SessionStorage{session: session, r: r, w: w}
}

// Session returns the underlying gorilla session
func (s *SessionStorage) Session() *sessions.Session {
	return s.session
}

func (s *SessionStorage) Load(key string, v any) (bool, error) {
	raw, ok := s.session.Values[key].(string)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (s *SessionStorage) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	prev, had := s.session.Values[key]
	s.session.Values[key] = string(data)
	if err := s.persist(); err != nil {
		s.restore(key, prev, had)
		return err
	}
	return nil
}

func (s *SessionStorage) Delete(key string) error {
	prev, ok := s.session.Values[key]
	if !ok {
		return nil
	}
	delete(s.session.Values, key)
	if err := s.persist(); err != nil {
		s.restore(key, prev, true)
		return err
	}
	return nil
}

// restore puts back a value whose write was rejected, so a later save
// does not store it
func (s *SessionStorage) restore(key string, prev any, had bool) {
	if had {
		s.session.Values[key] = prev
		return
	}
	delete(s.session.Values, key)
}

func (s *SessionStorage) persist() error {
	if err := s.session.Save(s.r, s.w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// MemoryStorage is an in-process Storage
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int
}

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(key string, v any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (m *MemoryStorage) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = data
	m.writes++
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	m.writes++
	return nil
}

// Has reports whether key is stored
func (m *MemoryStorage) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok
}

// Writes counts Save and Delete calls
func (m *MemoryStorage) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
