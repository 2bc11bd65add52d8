package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/clubboard/internal/apiclient"
	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/store"
	"github.com/stretchr/testify/require"
)

type eventStub struct {
	listFn       func(context.Context) ([]event.Event, error)
	getFn        func(context.Context, string) (event.Event, error)
	createFn     func(context.Context, user.Identity, event.CreateRequest) (event.Event, error)
	transitionFn func(context.Context, user.Identity, event.TransitionRequest) (event.Event, error)
}

func (s eventStub) List(ctx context.Context) ([]event.Event, error) { return s.listFn(ctx) }
func (s eventStub) Get(ctx context.Context, id string) (event.Event, error) {
	return s.getFn(ctx, id)
}
func (s eventStub) Create(ctx context.Context, caller user.Identity, req event.CreateRequest) (event.Event, error) {
	return s.createFn(ctx, caller, req)
}
func (s eventStub) Transition(ctx context.Context, caller user.Identity, req event.TransitionRequest) (event.Event, error) {
	return s.transitionFn(ctx, caller, req)
}

type statsStub struct {
	overviewFn func(context.Context) (stats.Overview, error)
	teamsFn    func(context.Context) ([]stats.TeamStats, error)
	needsMedia bool
}

func (s statsStub) Overview(ctx context.Context) (stats.Overview, error) { return s.overviewFn(ctx) }
func (s statsStub) Teams(ctx context.Context) ([]stats.TeamStats, error) { return s.teamsFn(ctx) }
func (s statsStub) NeedsMediaEntry(context.Context) (bool, error)        { return s.needsMedia, nil }
func (s statsStub) NeedsDesignEntry(context.Context) (bool, error) {
	return false, errors.New("design unavailable")
}
func (s statsStub) SubmitMedia(context.Context, user.Identity, stats.MediaInput) (*stats.MediaSeries, error) {
	return nil, stats.ErrDuplicatePeriod
}
func (s statsStub) SubmitDesign(context.Context, user.Identity, stats.DesignInput) (*stats.DesignSeries, error) {
	return &stats.DesignSeries{}, nil
}

type userStub struct {
	users   []user.User
	updated []string
}

func (s *userStub) List(context.Context) ([]user.User, error) { return s.users, nil }
func (s *userStub) Update(_ context.Context, _ user.Identity, id string, role user.Role, team user.Team) error {
	s.updated = append(s.updated, fmt.Sprintf("%s:%s:%s", id, role, team))
	return nil
}
func (s *userStub) Delete(context.Context, user.Identity, string) error { return nil }

type queryStub struct {
	queries []query.Query
}

func (s queryStub) List(context.Context, user.Identity) ([]query.Query, error) { return s.queries, nil }
func (s queryStub) Address(context.Context, user.Identity, string, string) (query.Query, error) {
	return query.Query{}, query.ErrAlreadyAddressed
}

type activityStub struct {
	opts activity.ListOptions
}

func (s *activityStub) Recent(_ context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	s.opts = opts
	return []activity.Entry{{ID: "a1", Type: activity.TypeEventTransition}}, nil
}

type storeStub struct {
	failing map[store.Resource]error
	calls   []store.Resource
}

func (s *storeStub) Refetch(_ context.Context, r store.Resource) (any, error) {
	s.calls = append(s.calls, r)
	return nil, s.failing[r]
}

type callerStub user.Identity

func (c callerStub) Current() user.Identity { return user.Identity(c) }

var (
	admin    = callerStub{ID: "u1", Name: "Asha", Role: user.RolePresident, Team: user.TeamIntellexa}
	techLead = callerStub{ID: "u2", Name: "Ravi", Role: user.RoleTechnicalLead, Team: user.TeamIntellexa}
	member   = callerStub{ID: "u3", Name: "Mina", Role: user.RoleCoreMember, Team: user.TeamWeb}
)

func sampleEvents() []event.Event {
	return []event.Event{
		{ID: "1", Name: "Hackathon", ProgressIndex: 3, Status: event.StatusOngoing, ContributedDate: "2024-03-01"},
		{ID: "2", Name: "Talk", ProgressIndex: 0, Status: event.StatusUnderApproval, ContributedDate: "2024-04-01"},
		{ID: "3", Name: "Workshop", ProgressIndex: 1, Status: event.StatusOngoing, EventDate: "2099-01-01"},
	}
}

func newTestHandler(caller Caller) (*Handler, *storeStub) {
	st := &storeStub{failing: map[store.Resource]error{}}
	h := NewHandler(Services{
		Events: eventStub{
			listFn: func(context.Context) ([]event.Event, error) { return sampleEvents(), nil },
			getFn: func(_ context.Context, id string) (event.Event, error) {
				for _, ev := range sampleEvents() {
					if ev.ID == id {
						return ev, nil
					}
				}
				return event.Event{}, event.ErrEventNotFound
			},
			createFn: func(_ context.Context, _ user.Identity, req event.CreateRequest) (event.Event, error) {
				return event.Event{ID: "9", Name: req.Name, Status: event.StatusUnderApproval}, nil
			},
			transitionFn: func(_ context.Context, _ user.Identity, req event.TransitionRequest) (event.Event, error) {
				if req.Action != event.ActionAdvance {
					return event.Event{}, fmt.Errorf("planning: %w", event.ErrInvalidTransition)
				}
				return event.Event{ID: req.EventID, ProgressIndex: 4, Status: event.StatusOngoing}, nil
			},
		},
		Stats: statsStub{
			overviewFn: func(context.Context) (stats.Overview, error) {
				return stats.Overview{Counters: stats.Counters{TotalEvents: 4}}, errors.New("media stats: unavailable")
			},
			teamsFn: func(context.Context) ([]stats.TeamStats, error) {
				return []stats.TeamStats{{Name: "Web", TotalEvents: 2}}, nil
			},
			needsMedia: true,
		},
		Users: &userStub{users: []user.User{{ID: "u9", Name: "Lee"}}},
		Queries: queryStub{queries: []query.Query{
			{ID: "q1", Addressed: true},
			{ID: "q2"},
		}},
		Activity: &activityStub{},
		Store:    st,
		Caller:   caller,
	})
	h.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return h, st
}

func call(t *testing.T, h *Handler, method, params string) (any, error) {
	t.Helper()
	var raw json.RawMessage
	if params != "" {
		raw = json.RawMessage(params)
	}
	return h.Handle(context.Background(), method, raw)
}

func TestHandler_ListEvents(t *testing.T) {
	h, _ := newTestHandler(admin)

	result, err := call(t, h, "list_events", "")
	require.NoError(t, err)
	views := result.([]EventView)
	require.Len(t, views, 3)
	require.Equal(t, "2", views[0].ID, "newest contribution first")

	var hackathon EventView
	for _, v := range views {
		if v.ID == "1" {
			hackathon = v
		}
	}
	require.Equal(t, "Approval", hackathon.StageName)
	require.Equal(t, []event.Action{event.ActionAdvance, event.ActionRevert}, hackathon.Actions)

	result, err = call(t, h, "list_events", `{"status":"under approval"}`)
	require.NoError(t, err)
	require.Len(t, result.([]EventView), 1)
}

func TestHandler_ListEventsTechLeadView(t *testing.T) {
	h, _ := newTestHandler(techLead)

	result, err := call(t, h, "list_events", `{"view":"techlead"}`)
	require.NoError(t, err)
	resp := result.(TechLeadEventsResponse)
	require.Len(t, resp.Submittable, 2)
	require.Equal(t, []event.Action{event.ActionSubmitLinks}, resp.Submittable[0].Actions)
}

func TestHandler_TransitionEvent(t *testing.T) {
	h, _ := newTestHandler(admin)

	result, err := call(t, h, "transition_event", `{"event_id":"1","action":"advance"}`)
	require.NoError(t, err)
	resp := result.(TransitionEventResponse)
	require.Equal(t, event.StageDesignApproval, resp.FromStage)
	require.Equal(t, 4, resp.Event.ProgressIndex)

	_, err = call(t, h, "transition_event", `{"event_id":"1","action":"complete"}`)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_TRANSITION", apiErr.Code)

	_, err = call(t, h, "transition_event", `{"event_id":"missing","action":"advance"}`)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "EVENT_NOT_FOUND", apiErr.Code)
}

func TestHandler_CreateEvent(t *testing.T) {
	h, _ := newTestHandler(member)

	result, err := call(t, h, "create_event", `{"eventName":"Quiz","organiser":"Web"}`)
	require.NoError(t, err)
	view := result.(EventView)
	require.Equal(t, "Quiz", view.Name)
	require.Equal(t, "Event Team", view.StageName)
	require.Empty(t, view.Actions)
}

func TestHandler_GetStatsKeepsPartialOverview(t *testing.T) {
	h, _ := newTestHandler(admin)

	result, err := call(t, h, "get_stats", "")
	require.NoError(t, err)
	resp := result.(StatsResponse)
	require.Equal(t, 4, resp.Overview.Counters.TotalEvents)
	require.True(t, resp.NeedsMediaEntry)
	require.False(t, resp.NeedsDesignEntry)
	require.Len(t, resp.Warnings, 1)

	result, err = call(t, h, "get_stats", `{"kind":"teams"}`)
	require.NoError(t, err)
	require.Len(t, result.(StatsResponse).Teams, 1)
}

func TestHandler_SubmitStatsErrors(t *testing.T) {
	h, _ := newTestHandler(admin)

	_, err := call(t, h, "submit_media_stats", `{"instagram":1,"linkedin":2,"youtube":3}`)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "DUPLICATE_PERIOD", apiErr.Code)

	_, err = call(t, h, "submit_design_stats", `{"posters":"many"}`)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_PARAMS", apiErr.Code)
}

func TestHandler_Users(t *testing.T) {
	h, _ := newTestHandler(member)
	_, err := call(t, h, "list_users", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "ACCESS_DENIED", apiErr.Code)

	h, _ = newTestHandler(admin)
	result, err := call(t, h, "list_users", "")
	require.NoError(t, err)
	require.Len(t, result.([]user.User), 1)

	result, err = call(t, h, "update_user", `{"id":"u9","role":"Lead","team":"Web"}`)
	require.NoError(t, err)
	require.Equal(t, StatusResponse{Status: "updated"}, result)
	require.Equal(t, []string{"u9:Lead:Web"}, h.users.(*userStub).updated)
}

func TestHandler_Queries(t *testing.T) {
	h, _ := newTestHandler(admin)

	result, err := call(t, h, "list_queries", `{"pending_only":true}`)
	require.NoError(t, err)
	resp := result.(QueriesResponse)
	require.Equal(t, 1, resp.Pending)
	require.Len(t, resp.Queries, 1)
	require.Equal(t, "q2", resp.Queries[0].ID)

	_, err = call(t, h, "address_query", `{"id":"q1","solution":"done"}`)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "ALREADY_ADDRESSED", apiErr.Code)
}

func TestHandler_Refresh(t *testing.T) {
	h, st := newTestHandler(admin)
	st.failing[store.ResourceUsers] = &apiclient.NetworkError{Method: "GET", Path: "/users", Status: 502}

	result, err := call(t, h, "refresh", "")
	require.NoError(t, err)
	resp := result.(RefreshResponse)
	require.Len(t, resp.Refreshed, len(store.Resources)-1)
	require.Len(t, resp.Errors, 1)
	require.True(t, strings.HasPrefix(resp.Errors[0], "users:"))

	_, err = call(t, h, "refresh", `{"resource":"users"}`)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "NETWORK_ERROR", apiErr.Code)

	_, err = call(t, h, "refresh", `{"resource":"nope"}`)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "UNKNOWN_RESOURCE", apiErr.Code)
}

func TestHandler_RecentActivity(t *testing.T) {
	h, _ := newTestHandler(admin)

	result, err := call(t, h, "get_recent_activity", `{"subject_id":"1","limit":5,"types":["event_transition"]}`)
	require.NoError(t, err)
	require.Len(t, result.([]activity.Entry), 1)
	opts := h.activity.(*activityStub).opts
	require.Equal(t, "1", opts.SubjectID)
	require.Equal(t, 5, opts.Limit)
	require.Equal(t, []activity.Type{activity.TypeEventTransition}, opts.Types)
}

func TestHandler_UnknownMethod(t *testing.T) {
	h, _ := newTestHandler(admin)
	_, err := call(t, h, "bogus", "")
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestToolCatalog(t *testing.T) {
	catalog := buildToolCatalog()
	require.Len(t, catalog, 14)

	seen := map[string]bool{}
	for _, tool := range catalog {
		require.False(t, seen[tool.Name], "duplicate tool %s", tool.Name)
		seen[tool.Name] = true
		require.Equal(t, "object", tool.InputSchema["type"])
	}
}

func TestProgressionDoc(t *testing.T) {
	doc := progressionDoc()
	require.Contains(t, doc, "| 6 Marketing | revert | admin | 4 Media Team |")
	require.Contains(t, doc, "| 5 Approval | advance | admin | 6 Marketing | marketingFile |")
	require.Contains(t, doc, "increments completed counter")
}

func TestNewServer_CallTool(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHandler(admin)
	server := NewServer(Config{Services: Services{
		Events:   h.events,
		Stats:    h.stats,
		Users:    h.users,
		Queries:  h.queries,
		Activity: h.activity,
		Store:    h.store,
		Caller:   admin,
	}})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 14)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_event",
		Arguments: map[string]any{"id": "1"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	text := res.Content[0].(*sdkmcp.TextContent).Text
	require.Contains(t, text, `"stage_name":"Approval"`)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_event",
		Arguments: map[string]any{"id": "missing"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, res.Content[0].(*sdkmcp.TextContent).Text, "EVENT_NOT_FOUND")
}
