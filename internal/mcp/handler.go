package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/store"
)

// ErrUnknownMethod indicates a tool name the handler does not dispatch.
var ErrUnknownMethod = errors.New("unknown method")

// Handler dispatches MCP commands.
type Handler struct {
	events   EventService
	stats    StatsService
	users    UserService
	queries  QueryService
	activity ActivityService
	store    StoreService
	caller   Caller
	now      func() time.Time
}

// NewHandler creates a new MCP handler.
func NewHandler(svcs Services) *Handler {
	return &Handler{
		events:   svcs.Events,
		stats:    svcs.Stats,
		users:    svcs.Users,
		queries:  svcs.Queries,
		activity: svcs.Activity,
		store:    svcs.Store,
		caller:   svcs.Caller,
		now:      time.Now,
	}
}

// Handle dispatches MCP requests to domain services, acting as the current caller.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	caller := h.currentCaller()

	switch method {
	case "list_events":
		var req ListEventsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		events, err := h.events.List(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		actor := event.ActorFor(caller)
		if req.View == "techlead" {
			buckets := event.TechLeadBuckets(events, h.now())
			return TechLeadEventsResponse{
				Submittable: eventViews(buckets.Submittable, actor),
				Editable:    eventViews(buckets.Editable, actor),
				Disabled:    eventViews(buckets.Disabled, actor),
			}, nil
		}
		if req.Status != "" {
			events = event.ByStatus(events, req.Status)
		}
		return eventViews(event.SortByContributed(events), actor), nil
	case "get_event":
		var req GetEventParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ev, err := h.events.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return newEventView(ev, event.ActorFor(caller)), nil
	case "transition_event":
		var req TransitionEventParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		before, err := h.events.Get(ctx, req.EventID)
		if err != nil {
			return nil, mapError(err)
		}
		fields := make(map[event.Field]string, len(req.Fields))
		for k, v := range req.Fields {
			fields[event.Field(k)] = v
		}
		ev, err := h.events.Transition(ctx, caller, event.TransitionRequest{
			EventID: req.EventID,
			Action:  req.Action,
			Fields:  fields,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return TransitionEventResponse{
			Event:     newEventView(ev, event.ActorFor(caller)),
			FromStage: before.Stage(),
		}, nil
	case "create_event":
		var req event.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ev, err := h.events.Create(ctx, caller, req)
		if err != nil {
			return nil, mapError(err)
		}
		return newEventView(ev, event.ActorFor(caller)), nil
	case "get_stats":
		var req GetStatsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.Kind == "teams" {
			teams, err := h.stats.Teams(ctx)
			if err != nil {
				return nil, mapError(err)
			}
			return StatsResponse{Teams: teams}, nil
		}
		overview, err := h.stats.Overview(ctx)
		resp := StatsResponse{Overview: &overview}
		if err != nil {
			resp.Warnings = append(resp.Warnings, err.Error())
		}
		if needs, err := h.stats.NeedsMediaEntry(ctx); err == nil {
			resp.NeedsMediaEntry = needs
		}
		if needs, err := h.stats.NeedsDesignEntry(ctx); err == nil {
			resp.NeedsDesignEntry = needs
		}
		return resp, nil
	case "submit_media_stats":
		var req stats.MediaInput
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		series, err := h.stats.SubmitMedia(ctx, caller, req)
		if err != nil {
			return nil, mapError(err)
		}
		return series, nil
	case "submit_design_stats":
		var req stats.DesignInput
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		series, err := h.stats.SubmitDesign(ctx, caller, req)
		if err != nil {
			return nil, mapError(err)
		}
		return series, nil
	case "list_users":
		if err := caller.CanAccess(user.ViewAdmin); err != nil {
			return nil, mapError(err)
		}
		users, err := h.users.List(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return users, nil
	case "update_user":
		var req UpdateUserParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.users.Update(ctx, caller, req.ID, user.Role(req.Role), user.Team(req.Team)); err != nil {
			return nil, mapError(err)
		}
		return StatusResponse{Status: "updated"}, nil
	case "delete_user":
		var req DeleteUserParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.users.Delete(ctx, caller, req.ID); err != nil {
			return nil, mapError(err)
		}
		return StatusResponse{Status: "deleted"}, nil
	case "list_queries":
		var req ListQueriesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		queries, err := h.queries.List(ctx, caller)
		if err != nil {
			return nil, mapError(err)
		}
		list := query.List{Queries: queries}
		resp := QueriesResponse{Queries: query.PendingFirst(queries), Pending: list.Pending()}
		if req.PendingOnly {
			resp.Queries = resp.Queries[:resp.Pending]
		}
		return resp, nil
	case "address_query":
		var req AddressQueryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		q, err := h.queries.Address(ctx, caller, req.ID, req.Solution)
		if err != nil {
			return nil, mapError(err)
		}
		return q, nil
	case "refresh":
		var req RefreshParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.refresh(ctx, req.Resource)
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		entries, err := h.activity.Recent(ctx, activity.ListOptions{
			SubjectID: req.SubjectID,
			Types:     req.Types,
			Since:     req.Since,
			Limit:     req.Limit,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func (h *Handler) refresh(ctx context.Context, name string) (RefreshResponse, error) {
	if name != "" {
		r, err := store.ParseResource(name)
		if err != nil {
			return RefreshResponse{}, mapError(err)
		}
		if _, err := h.store.Refetch(ctx, r); err != nil {
			return RefreshResponse{}, mapError(err)
		}
		return RefreshResponse{Refreshed: []store.Resource{r}}, nil
	}

	var resp RefreshResponse
	for _, r := range store.Resources {
		if _, err := h.store.Refetch(ctx, r); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", r, err))
			continue
		}
		resp.Refreshed = append(resp.Refreshed, r)
	}
	return resp, nil
}

func (h *Handler) currentCaller() user.Identity {
	if h.caller == nil {
		return user.Identity{}
	}
	return h.caller.Current()
}

func newEventView(ev event.Event, actor event.Actor) EventView {
	view := EventView{Event: ev, StageName: ev.Stage().String()}
	if actor != "" {
		view.Actions = event.Available(ev.Stage(), actor)
	}
	return view
}

func eventViews(events []event.Event, actor event.Actor) []EventView {
	out := make([]EventView, 0, len(events))
	for _, ev := range events {
		out = append(out, newEventView(ev, actor))
	}
	return out
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error(), RecoveryHint: "Check the tool's input schema"}
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
