package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/switchgames/site/auth"
	"github.com/switchgames/site/store"
)

const minPasswordLength = 8

// Login handles POST /api/admin/login. Failed attempts count against a
// per-IP sliding window; once the budget is spent the attempt is
// rejected before the password is checked.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LoginRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}

	ip := extractClientIP(r)
	if blocked, retryAfter := a.loginLimiter.check(ip); blocked {
		a.audit.logFailure(AuditLoginRateLimited, r, "failure budget exhausted")
		writeRateLimited(w, retryAfter)
		return
	}

	identity, err := a.verifier.Login(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			writeInternalError(w, "login failed", err)
			return
		}
		a.loginLimiter.recordFailure(ip)
		a.audit.logFailure(AuditLoginFailure, r, "invalid credentials",
			slog.String("username", auth.FoldUsername(req.Username)))
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	a.loginLimiter.recordSuccess(ip)
	token := a.sessions.Create(Session{
		AccountID:   identity.AccountID,
		Role:        identity.Role,
		DisplayName: identity.DisplayName,
		ExpiresAt:   time.Now().Add(sessionDuration),
	})

	if identity.AccountID != auth.MasterAccountID {
		// Best-effort; a login must not fail because the timestamp
		// could not be persisted.
		if _, err := a.stores.Accounts.Update(identity.AccountID, func(acct *store.StaffAccount) {
			acct.LastLogin = time.Now().UTC()
		}); err != nil {
			slog.Warn("recording last login failed", "account_id", identity.AccountID, "error", err)
		}
	}

	a.audit.logEvent(AuditLoginSuccess, r, identity.AccountID,
		slog.String("role", string(identity.Role)))
	writeJSON(w, http.StatusOK, LoginResponse{
		Message:     "Login successful",
		Token:       token,
		Role:        identity.Role,
		DisplayName: identity.DisplayName,
	})
}

// Logout handles POST /api/admin/logout. It is not behind
// requireSession so an expired token still gets a clean 200.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(adminTokenHeader)
	if token != "" {
		if session, ok := a.sessions.Get(token); ok {
			a.audit.logEvent(AuditLogout, r, session.AccountID)
		}
		a.sessions.Delete(token)
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// ChangePassword handles POST /api/admin/password for the calling
// account. The master password lives in the environment, not the
// account store, so master sessions are turned away.
func (a *API) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session.AccountID == auth.MasterAccountID {
		writeError(w, http.StatusBadRequest, "the master password is configured via the environment")
		return
	}

	req, ok := decodeJSON[ChangePasswordRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}

	account, found := a.stores.Accounts.Find(session.AccountID)
	if !found {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	if !auth.VerifyPassword(req.CurrentPassword, account.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		writeInternalError(w, "password change failed", err)
		return
	}
	if _, err := a.stores.Accounts.Update(session.AccountID, func(acct *store.StaffAccount) {
		acct.PasswordHash = hash
		acct.Touch(time.Now())
	}); err != nil {
		mapError(w, err)
		return
	}

	// Every session for the account is revoked, including this one.
	a.sessions.DeleteAccount(session.AccountID)
	a.audit.logEvent(AuditPasswordChanged, r, session.AccountID)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Password changed; please log in again"})
}
