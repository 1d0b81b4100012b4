package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used in tests and single-node
// development setups without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	identity  Identity
	expiresAt time.Time
}

// NewMemoryStore builds an in-memory Store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: make(map[string]memorySession)}
}

// Create stores the identity under a fresh session ID.
func (s *MemoryStore) Create(ctx context.Context, identity Identity) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = memorySession{identity: identity, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return id, nil
}

// Get resolves a session ID to its identity.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Identity, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	identity := entry.identity
	return &identity, nil
}

// Delete clears the session.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
