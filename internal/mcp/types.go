package mcp

import (
	"time"

	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/store"
)

// ToolDefinition describes one tool and its JSON input schema.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type ListEventsParams struct {
	Status event.Status `json:"status,omitempty"`
	View   string       `json:"view,omitempty"`
}

type GetEventParams struct {
	ID string `json:"id"`
}

type TransitionEventParams struct {
	EventID string            `json:"event_id"`
	Action  event.Action      `json:"action"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type GetStatsParams struct {
	Kind string `json:"kind,omitempty"`
}

type UpdateUserParams struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Team string `json:"team"`
}

type DeleteUserParams struct {
	ID string `json:"id"`
}

type ListQueriesParams struct {
	PendingOnly bool `json:"pending_only,omitempty"`
}

type AddressQueryParams struct {
	ID       string `json:"id"`
	Solution string `json:"solution"`
}

type RefreshParams struct {
	Resource string `json:"resource,omitempty"`
}

type GetRecentActivityParams struct {
	SubjectID string          `json:"subject_id,omitempty"`
	Types     []activity.Type `json:"types,omitempty"`
	Since     *time.Time      `json:"since,omitempty"`
	Limit     int             `json:"limit,omitempty"`
}

// EventView is an event with its stage name and the caller's next actions.
type EventView struct {
	event.Event
	StageName string         `json:"stage_name"`
	Actions   []event.Action `json:"actions,omitempty"`
}

type TechLeadEventsResponse struct {
	Submittable []EventView `json:"submittable"`
	Editable    []EventView `json:"editable"`
	Disabled    []EventView `json:"disabled"`
}

type TransitionEventResponse struct {
	Event     EventView   `json:"event"`
	FromStage event.Stage `json:"from_stage"`
}

type StatsResponse struct {
	Overview         *stats.Overview   `json:"overview,omitempty"`
	NeedsMediaEntry  bool              `json:"needs_media_entry,omitempty"`
	NeedsDesignEntry bool              `json:"needs_design_entry,omitempty"`
	Teams            []stats.TeamStats `json:"teams,omitempty"`
	Warnings         []string          `json:"warnings,omitempty"`
}

type QueriesResponse struct {
	Queries []query.Query `json:"queries"`
	Pending int           `json:"pending"`
}

type RefreshResponse struct {
	Refreshed []store.Resource `json:"refreshed"`
	Errors    []string         `json:"errors,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
