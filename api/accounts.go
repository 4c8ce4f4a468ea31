package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/switchgames/site/auth"
	"github.com/switchgames/site/store"
)

func accountView(acct store.StaffAccount) Account {
	return Account{
		ID:          acct.ID,
		Username:    acct.Username,
		DisplayName: acct.DisplayName,
		Role:        acct.Role,
		CreatedAt:   acct.CreatedAt,
		UpdatedAt:   acct.UpdatedAt,
		LastLogin:   acct.LastLogin,
	}
}

// ListAccounts handles GET /api/admin/accounts. Password hashes never
// leave the store.
func (a *API) ListAccounts(w http.ResponseWriter, r *http.Request) {
	records := a.stores.Accounts.ReadAll()
	accounts := make([]Account, 0, len(records))
	for _, acct := range records {
		accounts = append(accounts, accountView(acct))
	}
	writeJSON(w, http.StatusOK, AccountsResponse{Accounts: accounts})
}

// CreateAccount handles POST /api/admin/accounts.
func (a *API) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[CreateAccountRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}

	username := strings.TrimSpace(req.Username)
	switch {
	case username == "":
		writeError(w, http.StatusBadRequest, "username is required")
		return
	case a.verifier.IsReservedUsername(username):
		writeError(w, http.StatusBadRequest, "username is reserved")
		return
	case !req.Role.Valid():
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	case len(req.Password) < minPasswordLength:
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if _, exists := a.verifier.Lookup(username); exists {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeInternalError(w, "account creation failed", err)
		return
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}
	account := store.StaffAccount{
		Meta:         store.NewMeta(time.Now()),
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         req.Role,
	}
	if err := a.stores.Accounts.Insert(account); err != nil {
		writeInternalError(w, "account creation failed", err)
		return
	}

	session := sessionFromContext(r.Context())
	a.audit.logEvent(AuditAccountCreated, r, session.AccountID,
		slog.String("created_account_id", account.ID),
		slog.String("role", string(account.Role)))
	writeJSON(w, http.StatusCreated, AccountResponse{
		Message: "Account created",
		Account: accountView(account),
	})
}

// UpdateAccount handles PUT /api/admin/accounts/{id}. Display name,
// role, and password can each be patched independently; a role change
// or password reset revokes the account's sessions.
func (a *API) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := decodeJSON[UpdateAccountRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}
	if req.Role != nil && !req.Role.Valid() {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	if req.Password != nil && len(*req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	var hash string
	if req.Password != nil {
		var err error
		if hash, err = auth.HashPassword(*req.Password); err != nil {
			writeInternalError(w, "account update failed", err)
			return
		}
	}

	account, err := a.stores.Accounts.Update(id, func(acct *store.StaffAccount) {
		if req.DisplayName != nil {
			acct.DisplayName = strings.TrimSpace(*req.DisplayName)
		}
		if req.Role != nil {
			acct.Role = *req.Role
		}
		if req.Password != nil {
			acct.PasswordHash = hash
		}
		acct.Touch(time.Now())
	})
	if err != nil {
		mapError(w, err)
		return
	}

	if req.Role != nil || req.Password != nil {
		a.sessions.DeleteAccount(id)
	}
	session := sessionFromContext(r.Context())
	a.audit.logEvent(AuditAccountUpdated, r, session.AccountID,
		slog.String("updated_account_id", id))
	writeJSON(w, http.StatusOK, AccountResponse{
		Message: "Account updated",
		Account: accountView(account),
	})
}

// DeleteAccount handles DELETE /api/admin/accounts/{id}.
func (a *API) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.stores.Accounts.Delete(id); err != nil {
		mapError(w, err)
		return
	}
	a.sessions.DeleteAccount(id)

	session := sessionFromContext(r.Context())
	a.audit.logEvent(AuditAccountDeleted, r, session.AccountID,
		slog.String("deleted_account_id", id))
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Account deleted"})
}
