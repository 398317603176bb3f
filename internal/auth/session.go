package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInvalidSession covers missing, expired and revoked sessions alike.
// Callers must not be able to tell the cases apart.
var ErrInvalidSession = errors.New("invalid session")

type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store persists sessions. The in-memory implementation is the default;
// a Redis-backed one is available for multi-process deployments.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, bool)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in a map. Expired entries are evicted lazily
// on lookup rather than by a background sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Put(ctx context.Context, s Session) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Session, bool) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, false
	}
	if !m.now().Before(s.ExpiresAt) {
		delete(m.sessions, id)
		return Session{}, false
	}
	return s, true
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
