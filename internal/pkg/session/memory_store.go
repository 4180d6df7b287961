package session

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

// sweepInterval is the minimum time between two expiry sweeps
const sweepInterval = time.Minute

// MemoryStore keeps sessions in process memory. Sessions do not survive a restart
// and are not shared between replicas. Expired sessions are swept on Save, so
// abandoned logins do not accumulate.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]Session
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Save stores a copy of s, first dropping expired sessions if the last sweep
// is older than sweepInterval.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now := m.now(); now.Sub(m.lastSweep) >= sweepInterval {
		m.sweepLocked(now)
	}
	m.sessions[s.ID] = *s
	return nil
}

// sweepLocked removes expired sessions. The caller holds the write lock.
func (m *MemoryStore) sweepLocked(now time.Time) {
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
		}
	}
	m.lastSweep = now
}

// Get returns the session or ErrSessionNotFound; expired entries are dropped.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if s.Expired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, apperrors.ErrSessionNotFound
	}
	return &s, nil
}

// Delete removes a session
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
