package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/clubboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func findSnapshot(t *testing.T, repo *SnapshotRepository, resource string) repository.Snapshot {
	t.Helper()
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	for _, snap := range list {
		if snap.Resource == resource {
			return snap
		}
	}
	require.Failf(t, "snapshot not found", "resource %q", resource)
	return repository.Snapshot{}
}

func TestSnapshotRepository_SaveList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewSnapshotRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Save(ctx, &repository.Snapshot{Resource: "events", Payload: []byte(`{"events":[]}`), Seq: 2, FetchedAt: now}))
	require.NoError(t, repo.Save(ctx, &repository.Snapshot{Resource: "counters", Payload: []byte(`{}`), Seq: 1, FetchedAt: now}))

	got := findSnapshot(t, repo, "events")
	require.JSONEq(t, `{"events":[]}`, string(got.Payload))
	require.EqualValues(t, 2, got.Seq)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "counters", list[0].Resource)
}

func TestSnapshotRepository_NewerWins(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewSnapshotRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Save(ctx, &repository.Snapshot{Resource: "users", Payload: []byte(`"v5"`), Seq: 5, FetchedAt: now}))
	require.NoError(t, repo.Save(ctx, &repository.Snapshot{Resource: "users", Payload: []byte(`"v3"`), Seq: 3, FetchedAt: now}))

	got := findSnapshot(t, repo, "users")
	require.Equal(t, `"v5"`, string(got.Payload))

	// A restarted process counts from 1 again but is newer by time.
	require.NoError(t, repo.Save(ctx, &repository.Snapshot{Resource: "users", Payload: []byte(`"v1"`), Seq: 1, FetchedAt: now.Add(time.Minute)}))
	got = findSnapshot(t, repo, "users")
	require.Equal(t, `"v1"`, string(got.Payload))
}

func TestSnapshotRepository_EmptyAndInvalid(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
	require.ErrorIs(t, repo.Save(context.Background(), &repository.Snapshot{}), repository.ErrInvalidInput)
}
