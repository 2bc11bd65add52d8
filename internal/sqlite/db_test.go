package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully and are repeatable
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())

	for _, table := range []string{"snapshots", "activity_log"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestStageCheck verifies the stage range constraint on the activity log
func TestStageCheck(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO activity_log (id, activity_type, actor, to_stage, summary, created_at)
		VALUES ('a1', 'event_transition', 'x', 8, 's', CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	require.True(t, isCheckViolation(err))
}
