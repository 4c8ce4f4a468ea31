package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchgames/site/store"
)

func testVerifier(t *testing.T) (*Verifier, *store.Collection[store.StaffAccount]) {
	t.Helper()
	accounts := store.NewCollection[store.StaffAccount](
		filepath.Join(t.TempDir(), "staff-accounts.json"), "accounts")
	return NewVerifier(HashSHA256("master-secret"), "admin", accounts), accounts
}

func TestLoginMaster(t *testing.T) {
	v, _ := testVerifier(t)

	for _, username := range []string{"", "admin", "ADMIN", "  Admin  "} {
		identity, err := v.Login(username, "master-secret")
		require.NoError(t, err, "username %q", username)
		assert.Equal(t, MasterAccountID, identity.AccountID)
		assert.Equal(t, store.RoleSuperadmin, identity.Role)
	}

	_, err := v.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginStaffAccount(t *testing.T) {
	v, accounts := testVerifier(t)

	hash, err := HashPassword("editor-pass")
	require.NoError(t, err)
	account := store.StaffAccount{
		Meta:         store.NewMeta(time.Now()),
		Username:     "Jordan",
		PasswordHash: hash,
		DisplayName:  "Jordan",
		Role:         store.RoleEditor,
	}
	require.NoError(t, accounts.Insert(account))

	identity, err := v.Login("jordan", "editor-pass")
	require.NoError(t, err)
	assert.Equal(t, account.ID, identity.AccountID)
	assert.Equal(t, store.RoleEditor, identity.Role)

	_, err = v.Login("jordan", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = v.Login("nobody", "editor-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaffPasswordNeverMatchesMaster(t *testing.T) {
	v, accounts := testVerifier(t)

	hash, err := HashPassword("editor-pass")
	require.NoError(t, err)
	require.NoError(t, accounts.Insert(store.StaffAccount{
		Meta:         store.NewMeta(time.Now()),
		Username:     "jordan",
		PasswordHash: hash,
		Role:         store.RoleEditor,
	}))

	// The master password only works for the reserved username.
	_, err = v.Login("jordan", "master-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIsReservedUsername(t *testing.T) {
	v, _ := testVerifier(t)
	assert.True(t, v.IsReservedUsername(""))
	assert.True(t, v.IsReservedUsername("Admin"))
	assert.False(t, v.IsReservedUsername("jordan"))
}
