package repository

import (
	"context"
	"time"

	"github.com/rpggio/clubboard/internal/domain/activity"
)

// Snapshot is the last successfully fetched payload of one store resource.
type Snapshot struct {
	Resource  string
	Payload   []byte
	Seq       uint64
	FetchedAt time.Time
}

// SnapshotRepository persists store snapshots across restarts
type SnapshotRepository interface {
	Save(ctx context.Context, snap *Snapshot) error
	List(ctx context.Context) ([]Snapshot, error)
}

// ActivityRepository manages the local activity log
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
	List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}
