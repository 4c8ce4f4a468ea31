package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/awnumar/memguard"
	"golang.org/x/text/cases"

	"github.com/switchgames/site/store"
)

// MasterAccountID identifies sessions opened with the master password.
const MasterAccountID = "master"

// ErrInvalidCredentials is returned for any failed login: unknown
// username, wrong password, or a corrupt stored hash. Callers must not
// distinguish the cases to the client.
var ErrInvalidCredentials = errors.New("invalid credentials")

var fold = cases.Fold()

// FoldUsername normalizes a username for case-insensitive comparison.
func FoldUsername(username string) string {
	return fold.String(strings.TrimSpace(username))
}

// Identity describes a successfully authenticated principal.
type Identity struct {
	AccountID   string
	Role        store.Role
	DisplayName string
}

// Verifier checks submitted passwords against the master hash and the
// staff-account collection. The master hash lives in a memguard enclave
// so it is encrypted at rest in process memory.
type Verifier struct {
	master    *memguard.Enclave
	adminName string
	accounts  *store.Collection[store.StaffAccount]
}

// NewVerifier creates a Verifier. masterHash is the sha256 hex digest of
// the master password; adminName is the reserved username that routes to
// it (conventionally "admin").
func NewVerifier(masterHash, adminName string, accounts *store.Collection[store.StaffAccount]) *Verifier {
	return &Verifier{
		master:    memguard.NewEnclave([]byte(strings.ToLower(masterHash))),
		adminName: FoldUsername(adminName),
		accounts:  accounts,
	}
}

// Login verifies a password. An empty username or the reserved admin
// username is checked against the master hash; anything else is a
// case-insensitive staff-account lookup.
func (v *Verifier) Login(username, password string) (Identity, error) {
	folded := FoldUsername(username)
	if folded == "" || folded == v.adminName {
		if err := v.verifyMaster(password); err != nil {
			return Identity{}, err
		}
		return Identity{
			AccountID:   MasterAccountID,
			Role:        store.RoleSuperadmin,
			DisplayName: "Administrator",
		}, nil
	}

	account, ok := v.lookup(folded)
	if !ok || !VerifyPassword(password, account.PasswordHash) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{
		AccountID:   account.ID,
		Role:        account.Role,
		DisplayName: account.DisplayName,
	}, nil
}

// Lookup returns the staff account for a username, case-insensitively.
func (v *Verifier) Lookup(username string) (store.StaffAccount, bool) {
	return v.lookup(FoldUsername(username))
}

// IsReservedUsername reports whether the username routes to the master
// password and therefore cannot name a staff account.
func (v *Verifier) IsReservedUsername(username string) bool {
	folded := FoldUsername(username)
	return folded == "" || folded == v.adminName
}

func (v *Verifier) lookup(folded string) (store.StaffAccount, bool) {
	for _, account := range v.accounts.ReadAll() {
		if FoldUsername(account.Username) == folded {
			return account, true
		}
	}
	return store.StaffAccount{}, false
}

func (v *Verifier) verifyMaster(password string) error {
	buf, err := v.master.Open()
	if err != nil {
		return ErrInvalidCredentials
	}
	defer buf.Destroy()

	got := HashSHA256(password)
	if subtle.ConstantTimeCompare([]byte(got), buf.Bytes()) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
