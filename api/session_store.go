package api

import (
	"time"

	"github.com/switchgames/site/store"
)

// sessionDuration is how long an admin token stays valid.
const sessionDuration = 8 * time.Hour

// Session holds the server-side state for an authenticated admin token.
type Session struct {
	AccountID   string     `json:"account_id"`
	Role        store.Role `json:"role"`
	DisplayName string     `json:"display_name"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

// SessionStore abstracts session CRUD. The default implementation is
// in-memory: a restart clears all sessions and admins re-login.
type SessionStore interface {
	// Create issues a fresh high-entropy token for the identity.
	Create(session Session) string
	// Get retrieves a session by token. Returns false and evicts the
	// entry if the session does not exist or has expired.
	Get(token string) (Session, bool)
	// Delete removes a session by token.
	Delete(token string)
	// DeleteAccount removes every session belonging to an account.
	DeleteAccount(accountID string)
}
