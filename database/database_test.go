package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siem-lab/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecentOperations(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordOperation(models.OperationRecord{
		EventType: "webhook_ip_operation",
		Action:    "block",
		IPAddress: "192.168.1.250",
		Success:   true,
		Output:    "blocked 192.168.1.250",
	}))
	require.NoError(t, store.RecordOperation(models.OperationRecord{
		EventType: "auto_block_skipped",
		Action:    "skip",
		IPAddress: "10.0.0.5",
		Success:   true,
	}))

	records, err := store.RecentOperations(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "auto_block_skipped", records[0].EventType)
	assert.Equal(t, "webhook_ip_operation", records[1].EventType)
	assert.Equal(t, "blocked 192.168.1.250", records[1].Output)
	assert.True(t, records[1].Success)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestRecentOperationsHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordOperation(models.OperationRecord{
			EventType: "bulk_operation",
			Action:    "list",
			Success:   true,
		}))
	}

	records, err := store.RecentOperations(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestCleanupOldOperations(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordOperation(models.OperationRecord{
		EventType: "webhook_ip_operation",
		Action:    "status",
		Success:   true,
	}))

	// A future cutoff removes everything; a past cutoff removes nothing.
	require.NoError(t, store.CleanupOldOperations(-time.Hour))
	records, err := store.RecentOperations(10)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, store.RecordOperation(models.OperationRecord{
		EventType: "webhook_ip_operation",
		Action:    "status",
		Success:   true,
	}))
	require.NoError(t, store.CleanupOldOperations(24*time.Hour))
	records, err = store.RecentOperations(10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCleanupCutoffIsExactRegardlessOfHostZone(t *testing.T) {
	store := openTestStore(t)

	// Backdate one row past the retention window using the same UTC text
	// format CURRENT_TIMESTAMP writes, and keep one fresh row.
	old := time.Now().UTC().Add(-10 * 24 * time.Hour).Format("2006-01-02 15:04:05")
	_, err := store.db.Exec(
		"INSERT INTO operations (event_type, action, ip, success, output, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		"webhook_ip_operation", "block", "10.0.0.1", true, "stale", old,
	)
	require.NoError(t, err)
	require.NoError(t, store.RecordOperation(models.OperationRecord{
		EventType: "webhook_ip_operation",
		Action:    "block",
		IPAddress: "10.0.0.2",
		Success:   true,
		Output:    "fresh",
	}))

	require.NoError(t, store.CleanupOldOperations(7*24*time.Hour))

	records, err := store.RecentOperations(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "10.0.0.2", records[0].IPAddress)
}
