package api

import (
	"sync"
	"time"

	"github.com/switchgames/site/internal/util"
)

// MemorySessionStore is a thread-safe in-memory SessionStore.
type MemorySessionStore struct {
	mu   sync.RWMutex
	data map[string]Session

	// now is swapped out in expiry tests.
	now func() time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		data: make(map[string]Session),
		now:  time.Now,
	}
}

func (s *MemorySessionStore) Create(session Session) string {
	token := util.RandomHex(32)
	s.mu.Lock()
	s.data[token] = session
	s.mu.Unlock()
	return token
}

func (s *MemorySessionStore) Get(token string) (Session, bool) {
	s.mu.RLock()
	session, ok := s.data[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if s.now().After(session.ExpiresAt) {
		s.Delete(token)
		return Session{}, false
	}
	return session, true
}

func (s *MemorySessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
}

func (s *MemorySessionStore) DeleteAccount(accountID string) {
	s.mu.Lock()
	for token, session := range s.data {
		if session.AccountID == accountID {
			delete(s.data, token)
		}
	}
	s.mu.Unlock()
}
