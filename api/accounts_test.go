package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchgames/site/api"
	"github.com/switchgames/site/store"
)

func createAccount(t *testing.T, baseURL, token, username, password string, role store.Role) api.Account {
	t.Helper()
	resp := doJSON(t, http.MethodPost, baseURL+"/api/admin/accounts", token, map[string]any{
		"username":    username,
		"password":    password,
		"displayName": username,
		"role":        role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[api.AccountResponse](t, resp).Account
}

func TestAccountCRUD(t *testing.T) {
	srv, _ := setupServer(t)
	master := login(t, srv.URL, "admin", masterPassword).Token

	account := createAccount(t, srv.URL, master, "jordan", "editor-pass-1", store.RoleEditor)
	assert.Equal(t, "jordan", account.Username)
	assert.Equal(t, store.RoleEditor, account.Role)

	// The new account can log in and its role sticks.
	session := login(t, srv.URL, "jordan", "editor-pass-1")
	assert.Equal(t, store.RoleEditor, session.Role)

	// Listing never includes password hashes.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/admin/accounts", master, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[map[string][]map[string]any](t, resp)
	require.Len(t, list["accounts"], 1)
	assert.NotContains(t, list["accounts"][0], "passwordHash")

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/admin/accounts/"+account.ID, master, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Deletion cascades to the account's sessions.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/admin/posts", session.Token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAccountValidation(t *testing.T) {
	srv, _ := setupServer(t)
	master := login(t, srv.URL, "admin", masterPassword).Token

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing username", map[string]any{"password": "long-enough", "role": "editor"}, http.StatusBadRequest},
		{"reserved username", map[string]any{"username": "Admin", "password": "long-enough", "role": "editor"}, http.StatusBadRequest},
		{"unknown role", map[string]any{"username": "sam", "password": "long-enough", "role": "owner"}, http.StatusBadRequest},
		{"short password", map[string]any{"username": "sam", "password": "short", "role": "editor"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/admin/accounts", master, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}

	createAccount(t, srv.URL, master, "jordan", "editor-pass-1", store.RoleEditor)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/admin/accounts", master, map[string]any{
		"username": "JORDAN",
		"password": "another-pass",
		"role":     "editor",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "usernames are unique case-insensitively")
}

func TestRoleEnforcement(t *testing.T) {
	srv, _ := setupServer(t)
	master := login(t, srv.URL, "admin", masterPassword).Token

	createAccount(t, srv.URL, master, "ed", "editor-pass-1", store.RoleEditor)
	createAccount(t, srv.URL, master, "mod", "moderator-pass", store.RoleModerator)
	editor := login(t, srv.URL, "ed", "editor-pass-1").Token
	moderator := login(t, srv.URL, "mod", "moderator-pass").Token

	// Editors manage content but see no inbox, audit, or accounts.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/admin/posts", editor, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/admin/contacts", "/api/admin/audit", "/api/admin/accounts"} {
		resp := doJSON(t, http.MethodGet, srv.URL+path, editor, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "editor on %s", path)
	}

	// Moderators get the inbox too, but not audit or accounts.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/admin/contacts", moderator, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/admin/audit", "/api/admin/accounts"} {
		resp := doJSON(t, http.MethodGet, srv.URL+path, moderator, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "moderator on %s", path)
	}
}

func TestRoleChangeRevokesSessions(t *testing.T) {
	srv, _ := setupServer(t)
	master := login(t, srv.URL, "admin", masterPassword).Token

	account := createAccount(t, srv.URL, master, "jordan", "editor-pass-1", store.RoleEditor)
	session := login(t, srv.URL, "jordan", "editor-pass-1").Token

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/admin/accounts/"+account.ID, master, map[string]any{
		"role": "moderator",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[api.AccountResponse](t, resp)
	assert.Equal(t, store.RoleModerator, updated.Account.Role)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/admin/posts", session, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "old session dies with the old role")

	// A fresh login carries the new role.
	fresh := login(t, srv.URL, "jordan", "editor-pass-1")
	assert.Equal(t, store.RoleModerator, fresh.Role)
}

func TestChangePassword(t *testing.T) {
	srv, _ := setupServer(t)
	master := login(t, srv.URL, "admin", masterPassword).Token

	createAccount(t, srv.URL, master, "jordan", "editor-pass-1", store.RoleEditor)
	session := login(t, srv.URL, "jordan", "editor-pass-1").Token

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/admin/password", session, map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "brand-new-pass",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/admin/password", session, map[string]string{
		"currentPassword": "editor-pass-1",
		"newPassword":     "brand-new-pass",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The change revokes every session, including the caller's.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/admin/posts", session, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login(t, srv.URL, "jordan", "brand-new-pass")
}

func TestMasterCannotChangePassword(t *testing.T) {
	srv, _ := setupServer(t)
	master := login(t, srv.URL, "admin", masterPassword).Token

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/admin/password", master, map[string]string{
		"currentPassword": masterPassword,
		"newPassword":     "brand-new-pass",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
