// Package store caches the dashboard's bootstrap resources in memory.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/otel"
	"github.com/rpggio/clubboard/internal/repository"
)

// Fetcher loads resources from the club API.
type Fetcher interface {
	FetchMediaStats(ctx context.Context) (*stats.MediaSeries, error)
	FetchDesignStats(ctx context.Context) (*stats.DesignSeries, error)
	FetchEventStats(ctx context.Context) (*stats.EventSeries, error)
	FetchEvents(ctx context.Context) (*event.List, error)
	FetchCounters(ctx context.Context) (*stats.Counters, error)
	FetchUsers(ctx context.Context) (*user.List, error)
}

// Listener is told which resource changed.
type Listener func(Resource)

// slot holds one resource. issued is the last sequence token handed out and
// applied the token of the current value; a response whose token is older
// than applied is discarded.
type slot[T any] struct {
	value   *T
	issued  uint64
	applied uint64
	updated time.Time
}

// Store is the in-memory cache of the six bootstrap resources. Getters never
// touch the network.
type Store struct {
	fetcher   Fetcher
	snapshots repository.SnapshotRepository
	logger    *slog.Logger

	mu           sync.Mutex
	media        slot[stats.MediaSeries]
	design       slot[stats.DesignSeries]
	eventStats   slot[stats.EventSeries]
	events       slot[event.List]
	counters     slot[stats.Counters]
	users        slot[user.List]
	listeners    map[uint64]Listener
	nextListener uint64
}

// New creates an empty store. snapshots may be nil to disable persistence.
func New(fetcher Fetcher, snapshots repository.SnapshotRepository, logger *slog.Logger) *Store {
	return &Store{
		fetcher:   fetcher,
		snapshots: snapshots,
		logger:    logger,
		listeners: make(map[uint64]Listener),
	}
}

// MediaStats returns the cached media series, or nil before the first load.
func (s *Store) MediaStats() *stats.MediaSeries { return get(s, &s.media) }

// DesignStats returns the cached design series, or nil before the first load.
func (s *Store) DesignStats() *stats.DesignSeries { return get(s, &s.design) }

// EventStats returns the cached monthly event series, or nil before the first load.
func (s *Store) EventStats() *stats.EventSeries { return get(s, &s.eventStats) }

// Events returns the cached event list, or nil before the first load.
func (s *Store) Events() *event.List { return get(s, &s.events) }

// Counters returns the cached event counters, or nil before the first load.
func (s *Store) Counters() *stats.Counters { return get(s, &s.counters) }

// Users returns the cached user list, or nil before the first load.
func (s *Store) Users() *user.List { return get(s, &s.users) }

// RefetchMediaStats reloads media stats. On failure the cached value is kept.
func (s *Store) RefetchMediaStats(ctx context.Context) (*stats.MediaSeries, error) {
	return refetch(ctx, s, ResourceMediaStats, &s.media, s.fetcher.FetchMediaStats)
}

// RefetchDesignStats reloads design stats. On failure the cached value is kept.
func (s *Store) RefetchDesignStats(ctx context.Context) (*stats.DesignSeries, error) {
	return refetch(ctx, s, ResourceDesignStats, &s.design, s.fetcher.FetchDesignStats)
}

// RefetchEventStats reloads monthly event stats. On failure the cached value is kept.
func (s *Store) RefetchEventStats(ctx context.Context) (*stats.EventSeries, error) {
	return refetch(ctx, s, ResourceEventStats, &s.eventStats, s.fetcher.FetchEventStats)
}

// RefetchEvents reloads the event list. On failure the cached value is kept.
func (s *Store) RefetchEvents(ctx context.Context) (*event.List, error) {
	return refetch(ctx, s, ResourceEvents, &s.events, s.fetcher.FetchEvents)
}

// RefetchCounters reloads the event counters. On failure the cached value is kept.
func (s *Store) RefetchCounters(ctx context.Context) (*stats.Counters, error) {
	return refetch(ctx, s, ResourceCounters, &s.counters, s.fetcher.FetchCounters)
}

// RefetchUsers reloads the user list. On failure the cached value is kept.
func (s *Store) RefetchUsers(ctx context.Context) (*user.List, error) {
	return refetch(ctx, s, ResourceUsers, &s.users, s.fetcher.FetchUsers)
}

// Setters write through the result of a successful mutation. They supersede
// any refetch still in flight.

// SetMediaStats replaces the cached media series.
func (s *Store) SetMediaStats(v *stats.MediaSeries) { set(s, ResourceMediaStats, &s.media, v) }

// SetDesignStats replaces the cached design series.
func (s *Store) SetDesignStats(v *stats.DesignSeries) { set(s, ResourceDesignStats, &s.design, v) }

// SetEventStats replaces the cached monthly event series.
func (s *Store) SetEventStats(v *stats.EventSeries) { set(s, ResourceEventStats, &s.eventStats, v) }

// SetEvents replaces the cached event list.
func (s *Store) SetEvents(v *event.List) { set(s, ResourceEvents, &s.events, v) }

// SetCounters replaces the cached event counters.
func (s *Store) SetCounters(v *stats.Counters) { set(s, ResourceCounters, &s.counters, v) }

// SetUsers replaces the cached user list.
func (s *Store) SetUsers(v *user.List) { set(s, ResourceUsers, &s.users, v) }

// Subscribe registers fn for change notifications. The returned function
// removes it and may be called any number of times.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextListener++
	id := s.nextListener
	s.listeners[id] = fn
	s.mu.Unlock()
	otel.AddListener()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
			otel.RemoveListener()
		})
	}
}

// Bootstrap loads every resource concurrently. It always waits for all of them
// and returns the joined failures; resources that loaded stay loaded.
func (s *Store) Bootstrap(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, r := range Resources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Refetch(ctx, r); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	err := errors.Join(errs...)
	if s.logger != nil {
		if err != nil {
			s.logger.Warn("bootstrap incomplete", "failed", len(errs), "error", err)
		} else {
			s.logger.Info("bootstrap complete", "resources", len(Resources))
		}
	}
	return err
}

// Refetch reloads one resource by name.
func (s *Store) Refetch(ctx context.Context, r Resource) (any, error) {
	switch r {
	case ResourceMediaStats:
		return s.RefetchMediaStats(ctx)
	case ResourceDesignStats:
		return s.RefetchDesignStats(ctx)
	case ResourceEventStats:
		return s.RefetchEventStats(ctx)
	case ResourceEvents:
		return s.RefetchEvents(ctx)
	case ResourceCounters:
		return s.RefetchCounters(ctx)
	case ResourceUsers:
		return s.RefetchUsers(ctx)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownResource, r)
}

// Snapshot is a resource value with the time it was last replaced.
type Snapshot struct {
	Resource  Resource  `json:"resource"`
	UpdatedAt time.Time `json:"updated_at"`
	Data      any       `json:"data"`
}

// Snapshot returns the current value of r; ok is false before the first load.
func (s *Store) Snapshot(r Resource) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		data    any
		loaded  bool
		updated time.Time
	)
	switch r {
	case ResourceMediaStats:
		data, loaded, updated = s.media.value, s.media.value != nil, s.media.updated
	case ResourceDesignStats:
		data, loaded, updated = s.design.value, s.design.value != nil, s.design.updated
	case ResourceEventStats:
		data, loaded, updated = s.eventStats.value, s.eventStats.value != nil, s.eventStats.updated
	case ResourceEvents:
		data, loaded, updated = s.events.value, s.events.value != nil, s.events.updated
	case ResourceCounters:
		data, loaded, updated = s.counters.value, s.counters.value != nil, s.counters.updated
	case ResourceUsers:
		data, loaded, updated = s.users.value, s.users.value != nil, s.users.updated
	}
	if !loaded {
		return Snapshot{}, false
	}
	return Snapshot{Resource: r, UpdatedAt: updated, Data: data}, true
}

// Hydrate fills empty slots from persisted snapshots of an earlier run.
// Corrupt snapshots are skipped.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	snaps, err := s.snapshots.List(ctx)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}
	for _, snap := range snaps {
		var (
			loaded bool
			err    error
		)
		switch Resource(snap.Resource) {
		case ResourceMediaStats:
			loaded, err = hydrate(s, &s.media, snap)
		case ResourceDesignStats:
			loaded, err = hydrate(s, &s.design, snap)
		case ResourceEventStats:
			loaded, err = hydrate(s, &s.eventStats, snap)
		case ResourceEvents:
			loaded, err = hydrate(s, &s.events, snap)
		case ResourceCounters:
			loaded, err = hydrate(s, &s.counters, snap)
		case ResourceUsers:
			loaded, err = hydrate(s, &s.users, snap)
		default:
			continue
		}
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping corrupt snapshot", "resource", snap.Resource, "error", err)
			}
			continue
		}
		if loaded {
			s.notify(Resource(snap.Resource))
		}
	}
	return nil
}

func get[T any](s *Store, sl *slot[T]) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sl.value
}

func refetch[T any](ctx context.Context, s *Store, r Resource, sl *slot[T], fetch func(context.Context) (*T, error)) (*T, error) {
	s.mu.Lock()
	sl.issued++
	token := sl.issued
	s.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		otel.RecordRefetch(ctx, string(r), otel.OutcomeError)
		if s.logger != nil {
			s.logger.Warn("refetch failed", "resource", r, "error", err)
		}
		return nil, fmt.Errorf("refetching %s: %w", r, err)
	}

	s.mu.Lock()
	if token < sl.applied {
		current := sl.value
		s.mu.Unlock()
		otel.RecordRefetch(ctx, string(r), otel.OutcomeStale)
		if s.logger != nil {
			s.logger.Debug("discarding stale response", "resource", r, "token", token)
		}
		return current, nil
	}
	sl.value = v
	sl.applied = token
	sl.updated = time.Now().UTC()
	s.mu.Unlock()

	otel.RecordRefetch(ctx, string(r), otel.OutcomeApplied)
	s.persist(ctx, r, v, token)
	s.notify(r)
	return v, nil
}

func set[T any](s *Store, r Resource, sl *slot[T], v *T) {
	s.mu.Lock()
	sl.issued++
	sl.applied = sl.issued
	sl.value = v
	sl.updated = time.Now().UTC()
	s.mu.Unlock()
	s.notify(r)
}

func hydrate[T any](s *Store, sl *slot[T], snap repository.Snapshot) (bool, error) {
	var v T
	if err := json.Unmarshal(snap.Payload, &v); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl.value != nil {
		return false, nil
	}
	sl.value = &v
	sl.updated = snap.FetchedAt
	return true, nil
}

func (s *Store) persist(ctx context.Context, r Resource, v any, token uint64) {
	if s.snapshots == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err == nil {
		err = s.snapshots.Save(ctx, &repository.Snapshot{
			Resource:  string(r),
			Payload:   payload,
			Seq:       token,
			FetchedAt: time.Now().UTC(),
		})
	}
	if err != nil && s.logger != nil {
		s.logger.Warn("snapshot persist failed", "resource", r, "error", err)
	}
}

func (s *Store) notify(r Resource) {
	s.mu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(r)
	}
}
