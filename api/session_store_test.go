package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchgames/site/store"
)

func TestSessionCreateAndGet(t *testing.T) {
	s := NewMemorySessionStore()
	token := s.Create(Session{
		AccountID:   "acct-1",
		Role:        store.RoleEditor,
		DisplayName: "Jordan",
		ExpiresAt:   time.Now().Add(time.Hour),
	})
	require.Len(t, token, 64)

	got, ok := s.Get(token)
	require.True(t, ok)
	assert.Equal(t, "acct-1", got.AccountID)
	assert.Equal(t, store.RoleEditor, got.Role)
}

func TestSessionGetMissing(t *testing.T) {
	s := NewMemorySessionStore()
	_, ok := s.Get("no-such-token")
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	s := NewMemorySessionStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	token := s.Create(Session{AccountID: "acct-1", ExpiresAt: now.Add(sessionDuration)})

	_, ok := s.Get(token)
	require.True(t, ok)

	now = now.Add(sessionDuration + time.Second)
	_, ok = s.Get(token)
	assert.False(t, ok, "expired session should be rejected")

	// The entry is evicted, not just hidden.
	s.mu.RLock()
	_, present := s.data[token]
	s.mu.RUnlock()
	assert.False(t, present)
}

func TestSessionDelete(t *testing.T) {
	s := NewMemorySessionStore()
	token := s.Create(Session{AccountID: "acct-1", ExpiresAt: time.Now().Add(time.Hour)})
	s.Delete(token)
	_, ok := s.Get(token)
	assert.False(t, ok)

	// Deleting a missing token should not panic.
	s.Delete("never-existed")
}

func TestSessionDeleteAccount(t *testing.T) {
	s := NewMemorySessionStore()
	expires := time.Now().Add(time.Hour)
	tok1 := s.Create(Session{AccountID: "acct-1", ExpiresAt: expires})
	tok2 := s.Create(Session{AccountID: "acct-1", ExpiresAt: expires})
	other := s.Create(Session{AccountID: "acct-2", ExpiresAt: expires})

	s.DeleteAccount("acct-1")

	_, ok := s.Get(tok1)
	assert.False(t, ok)
	_, ok = s.Get(tok2)
	assert.False(t, ok)
	_, ok = s.Get(other)
	assert.True(t, ok, "other accounts keep their sessions")
}

func TestSessionTokensUnique(t *testing.T) {
	s := NewMemorySessionStore()
	expires := time.Now().Add(time.Hour)
	seen := make(map[string]bool)
	for range 100 {
		token := s.Create(Session{AccountID: "acct", ExpiresAt: expires})
		assert.False(t, seen[token])
		seen[token] = true
	}
}
