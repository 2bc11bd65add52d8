package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/clubboard/internal/repository"
)

// SnapshotRepository implements repository.SnapshotRepository for SQLite
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts the snapshot of a resource. An older sequence number never
// replaces a newer one.
func (r *SnapshotRepository) Save(ctx context.Context, snap *repository.Snapshot) error {
	if snap == nil || snap.Resource == "" {
		return repository.ErrInvalidInput
	}
	fetchedAt := snap.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO snapshots (resource, payload, seq, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(resource) DO UPDATE SET
			payload = excluded.payload,
			seq = excluded.seq,
			fetched_at = excluded.fetched_at
		WHERE excluded.seq >= snapshots.seq OR excluded.fetched_at > snapshots.fetched_at
	`
	if _, err := r.db.ExecContext(ctx, query, snap.Resource, snap.Payload, int64(snap.Seq), fetchedAt); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// List returns every stored snapshot
func (r *SnapshotRepository) List(ctx context.Context) ([]repository.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT resource, payload, seq, fetched_at FROM snapshots ORDER BY resource`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []repository.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*repository.Snapshot, error) {
	var (
		snap repository.Snapshot
		seq  int64
	)
	if err := row.Scan(&snap.Resource, &snap.Payload, &seq, &snap.FetchedAt); err != nil {
		return nil, err
	}
	snap.Seq = uint64(seq)
	return &snap, nil
}
