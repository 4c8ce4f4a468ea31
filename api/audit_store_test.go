package api

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTrail(t *testing.T) *AuditTrail {
	t.Helper()
	trail, err := OpenAuditTrail(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { trail.Close() })
	return trail
}

func TestAuditTrailAppendAndList(t *testing.T) {
	trail := testTrail(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		require.NoError(t, trail.Append(AuditEntry{
			Event:     string(AuditLoginSuccess),
			Actor:     fmt.Sprintf("acct-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339Nano),
		}))
	}

	entries, err := trail.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest first.
	assert.Equal(t, "acct-2", entries[0].Actor)
	assert.Equal(t, "acct-0", entries[2].Actor)
	assert.NotEmpty(t, entries[0].ID, "an ID is assigned on append")
}

func TestAuditTrailListLimit(t *testing.T) {
	trail := testTrail(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := range 10 {
		require.NoError(t, trail.Append(AuditEntry{
			Event:     string(AuditRecordCreated),
			CreatedAt: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339Nano),
		}))
	}

	entries, err := trail.List(4)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestAuditTrailEmpty(t *testing.T) {
	trail := testTrail(t)
	entries, err := trail.List(100)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
