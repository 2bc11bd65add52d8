package mocks

import (
	"context"

	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/session"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/repository"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SnapshotRepository is a mock for repository.SnapshotRepository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Save(ctx context.Context, snap *repository.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *SnapshotRepository) List(ctx context.Context) ([]repository.Snapshot, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]repository.Snapshot); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserGateway is a mock for user.Gateway.
type UserGateway struct {
	mock.Mock
}

func (m *UserGateway) UpdateUser(ctx context.Context, id string, role user.Role, team user.Team) error {
	args := m.Called(ctx, id, role, team)
	return args.Error(0)
}

func (m *UserGateway) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UserCache is a mock for user.Cache.
type UserCache struct {
	mock.Mock
}

func (m *UserCache) Users() *user.List {
	args := m.Called()
	if list, ok := args.Get(0).(*user.List); ok {
		return list
	}
	return nil
}

func (m *UserCache) RefetchUsers(ctx context.Context) (*user.List, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).(*user.List); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EventGateway is a mock for event.Gateway.
type EventGateway struct {
	mock.Mock
}

func (m *EventGateway) CreateEvent(ctx context.Context, ev event.Event) (*event.Event, error) {
	args := m.Called(ctx, ev)
	if out, ok := args.Get(0).(*event.Event); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventGateway) UpdateEvent(ctx context.Context, id string, patch event.Patch) (*event.Event, error) {
	args := m.Called(ctx, id, patch)
	if out, ok := args.Get(0).(*event.Event); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventGateway) SuggestEvent(ctx context.Context, id, suggestion string) error {
	args := m.Called(ctx, id, suggestion)
	return args.Error(0)
}

func (m *EventGateway) IncrementCompleted(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// EventCache is a mock for event.Cache.
type EventCache struct {
	mock.Mock
}

func (m *EventCache) Events() *event.List {
	args := m.Called()
	if list, ok := args.Get(0).(*event.List); ok {
		return list
	}
	return nil
}

func (m *EventCache) RefetchEvents(ctx context.Context) (*event.List, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).(*event.List); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventCache) SetEvents(list *event.List) {
	m.Called(list)
}

// StatsGateway is a mock for stats.Gateway.
type StatsGateway struct {
	mock.Mock
}

func (m *StatsGateway) AddMediaStat(ctx context.Context, entry stats.MediaEntry) ([]stats.MediaEntry, error) {
	args := m.Called(ctx, entry)
	if out, ok := args.Get(0).([]stats.MediaEntry); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StatsGateway) AddDesignStat(ctx context.Context, entry stats.DesignEntry) ([]stats.DesignEntry, error) {
	args := m.Called(ctx, entry)
	if out, ok := args.Get(0).([]stats.DesignEntry); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StatsGateway) TeamStats(ctx context.Context) ([]stats.TeamStats, error) {
	args := m.Called(ctx)
	if out, ok := args.Get(0).([]stats.TeamStats); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

// StatsCache is a mock for stats.Cache.
type StatsCache struct {
	mock.Mock
}

func (m *StatsCache) MediaStats() *stats.MediaSeries {
	if s, ok := m.Called().Get(0).(*stats.MediaSeries); ok {
		return s
	}
	return nil
}

func (m *StatsCache) RefetchMediaStats(ctx context.Context) (*stats.MediaSeries, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*stats.MediaSeries); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StatsCache) SetMediaStats(s *stats.MediaSeries) {
	m.Called(s)
}

func (m *StatsCache) DesignStats() *stats.DesignSeries {
	if s, ok := m.Called().Get(0).(*stats.DesignSeries); ok {
		return s
	}
	return nil
}

func (m *StatsCache) RefetchDesignStats(ctx context.Context) (*stats.DesignSeries, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*stats.DesignSeries); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StatsCache) SetDesignStats(s *stats.DesignSeries) {
	m.Called(s)
}

func (m *StatsCache) EventStats() *stats.EventSeries {
	if s, ok := m.Called().Get(0).(*stats.EventSeries); ok {
		return s
	}
	return nil
}

func (m *StatsCache) RefetchEventStats(ctx context.Context) (*stats.EventSeries, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*stats.EventSeries); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StatsCache) Counters() *stats.Counters {
	if c, ok := m.Called().Get(0).(*stats.Counters); ok {
		return c
	}
	return nil
}

func (m *StatsCache) RefetchCounters(ctx context.Context) (*stats.Counters, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).(*stats.Counters); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// QueryGateway is a mock for query.Gateway.
type QueryGateway struct {
	mock.Mock
}

func (m *QueryGateway) ListQueries(ctx context.Context, caller user.Identity) (*query.List, error) {
	args := m.Called(ctx, caller)
	if list, ok := args.Get(0).(*query.List); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *QueryGateway) SubmitQuery(ctx context.Context, sub query.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *QueryGateway) AddressQuery(ctx context.Context, id, solution, addressedBy string) error {
	args := m.Called(ctx, id, solution, addressedBy)
	return args.Error(0)
}

// SessionGateway is a mock for session.Gateway.
type SessionGateway struct {
	mock.Mock
}

func (m *SessionGateway) Login(ctx context.Context, creds session.Credentials) (user.Identity, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(user.Identity), args.Error(1)
}

func (m *SessionGateway) Logout(ctx context.Context, passkey string) error {
	args := m.Called(ctx, passkey)
	return args.Error(0)
}

func (m *SessionGateway) Signup(ctx context.Context, req session.SignupRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
