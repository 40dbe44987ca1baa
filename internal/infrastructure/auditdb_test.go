package infrastructure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteAuditStore {
	t.Helper()
	store, err := OpenAuditStore(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAuditStoreLogAndQuery(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.LogEvent("sess-1", "df -h", "executed", 0, ""))
	require.NoError(t, store.LogEvent("sess-1", "sudo rm file", "denied", -1, "Confirmation required"))
	require.NoError(t, store.LogEvent("sess-2", "uptime", "executed", 0, ""))

	events, err := store.RecentEvents("sess-1", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "sudo rm file", events[0].Command)
	assert.Equal(t, "denied", events[0].Outcome)
	assert.Equal(t, -1, events[0].ExitCode)
	assert.Equal(t, "df -h", events[1].Command)
	assert.Equal(t, 0, events[1].ExitCode)
}

func TestAuditStoreAllSessions(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.LogEvent("sess-1", "df -h", "executed", 0, ""))
	require.NoError(t, store.LogEvent("sess-2", "uptime", "executed", 0, ""))

	events, err := store.RecentEvents("", 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestAuditStoreLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.LogEvent("sess-1", "echo hi", "executed", 0, ""))
	}

	events, err := store.RecentEvents("sess-1", 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestAuditStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "audit.db")

	store, err := OpenAuditStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.LogEvent("sess-1", "ls", "executed", 0, ""))
}
