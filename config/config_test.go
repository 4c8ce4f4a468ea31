package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SWG_ADMIN_PASSWORD_HASH", testHash)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5500, cfg.Port)
	assert.Equal(t, ":5500", cfg.Addr())
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "./uploads", cfg.UploadsDir)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, testHash, cfg.AdminPasswordHash)
	assert.Empty(t, cfg.WebhookURL)
	assert.Empty(t, cfg.UniverseIDs)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SWG_ADMIN_PASSWORD_HASH", strings.ToUpper(testHash))
	t.Setenv("SWG_PORT", "8080")
	t.Setenv("SWG_UNIVERSE_IDS", "111,222")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"111", "222"}, cfg.UniverseIDs)
	assert.Equal(t, testHash, cfg.AdminPasswordHash, "hash is lowercased")
}

func TestLoadRejectsBadHash(t *testing.T) {
	t.Setenv("SWG_ADMIN_PASSWORD_HASH", "plaintext-password")
	_, err := Load()
	assert.Error(t, err)
}
