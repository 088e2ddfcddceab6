package inmemory

import (
	"context"
	"sync"
	"time"
)

// SessionStore keeps revoked session ids in process memory. Entries are
// dropped lazily once their expiry passes.
type SessionStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *SessionStore) Revoke(ctx context.Context, id string, until time.Time) error {
	if id == "" || !until.After(s.now()) {
		return nil
	}

	s.mu.Lock()
	s.revoked[id] = until
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	now := s.now()

	s.mu.RLock()
	until, ok := s.revoked[id]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if !until.After(now) {
		s.mu.Lock()
		until, ok = s.revoked[id]
		if ok && !until.After(now) {
			delete(s.revoked, id)
		}
		s.mu.Unlock()
		return false, nil
	}

	return true, nil
}

// Len reports how many revocations are currently held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}
