package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyLegacySHA256(t *testing.T) {
	// sha256("password123")
	digest := "ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f"
	assert.True(t, VerifyPassword("password123", digest))
	assert.True(t, VerifyPassword("password123", strings.ToUpper(digest)))
	assert.False(t, VerifyPassword("password124", digest))
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-hash"))
	assert.False(t, VerifyPassword("anything", "$argon2id$garbage"))
}

func TestHashSHA256(t *testing.T) {
	assert.Equal(t,
		"ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f",
		HashSHA256("password123"))
}
