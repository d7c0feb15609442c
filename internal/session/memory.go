package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	values    map[string]string
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It is used when Redis is not
// configured and in tests.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memoryEntry
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore whose sessions expire ttl after their
// last write. A zero ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) live(sessionID string) *memoryEntry {
	e, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.sessions, sessionID)
		return nil
	}
	return e
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(sessionID)
	if e == nil {
		return "", ErrNotFound
	}
	v, ok := e.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(sessionID)
	if e == nil {
		e = &memoryEntry{values: make(map[string]string)}
		s.sessions[sessionID] = e
	}
	e.values[key] = value
	e.expiresAt = s.now().Add(s.ttl)
	return nil
}

// Remove implements Store.
func (s *MemoryStore) Remove(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e := s.live(sessionID); e != nil {
		delete(e.values, key)
	}
	return nil
}
