package mcp

import (
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/store"
)

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Events
		{
			Name:        "list_events",
			Description: "List cached events newest first, each with its stage name and the actions the current caller may take",
			InputSchema: objectSchema(map[string]any{
				"status": map[string]any{
					"type":        "string",
					"description": "Only events with this status",
					"enum":        []string{string(event.StatusUnderApproval), string(event.StatusOngoing), string(event.StatusCompleted)},
				},
				"view": map[string]any{
					"type":        "string",
					"description": "techlead groups approved events into submittable, editable and disabled",
					"enum":        []string{"all", "techlead"},
				},
			}),
		},
		{
			Name:        "get_event",
			Description: "Get one event by ID from the cache",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Event ID"),
			}, "id"),
		},
		{
			Name:        "transition_event",
			Description: "Move an event through the pipeline. Required fields depend on the stage; see clubboard://docs/progression",
			InputSchema: objectSchema(map[string]any{
				"event_id": stringProp("Event ID"),
				"action": map[string]any{
					"type":        "string",
					"description": "Pipeline action",
					"enum":        actionNames(),
				},
				"fields": map[string]any{
					"type":                 "object",
					"description":          "Stage fields such as marketingFile, formLink or postInstagram",
					"additionalProperties": map[string]any{"type": "string"},
				},
			}, "event_id", "action"),
		},
		{
			Name:        "create_event",
			Description: "Propose a new event. It starts under approval at the first stage",
			InputSchema: objectSchema(map[string]any{
				"eventName":            stringProp("Event name"),
				"organiser":            stringProp("Organising person or body"),
				"eventDate":            stringProp("Date of the event (YYYY-MM-DD)"),
				"venue":                stringProp("Venue"),
				"time":                 stringProp("Start time"),
				"targetYear":           stringProp("Target audience year"),
				"expectedParticipants": stringProp("Expected head count"),
				"proposal":             stringProp("Proposal document link"),
			}, "eventName", "organiser"),
		},

		// Stats
		{
			Name:        "get_stats",
			Description: "Get the dashboard overview (counters, monthly series, trends) or per-team contribution counts",
			InputSchema: objectSchema(map[string]any{
				"kind": map[string]any{
					"type":        "string",
					"description": "overview (default) or teams",
					"enum":        []string{"overview", "teams"},
				},
			}),
		},
		{
			Name:        "submit_media_stats",
			Description: "Record this month's follower counts. Media team only; one entry per month",
			InputSchema: objectSchema(map[string]any{
				"instagram": intProp("Instagram followers"),
				"linkedin":  intProp("LinkedIn followers"),
				"youtube":   intProp("YouTube subscribers"),
			}, "instagram", "linkedin", "youtube"),
		},
		{
			Name:        "submit_design_stats",
			Description: "Record this month's poster count. Design team only; one entry per month",
			InputSchema: objectSchema(map[string]any{
				"posters": intProp("Posters designed this month"),
			}, "posters"),
		},

		// Members
		{
			Name:        "list_users",
			Description: "List registered members. Admin only",
			InputSchema: objectSchema(map[string]any{}),
		},
		{
			Name:        "update_user",
			Description: "Change a member's role and team. Admin only",
			InputSchema: objectSchema(map[string]any{
				"id":   stringProp("User ID"),
				"role": map[string]any{"type": "string", "enum": roleNames()},
				"team": map[string]any{"type": "string", "enum": teamNames()},
			}, "id", "role", "team"),
		},
		{
			Name:        "delete_user",
			Description: "Remove a member. Admin only",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("User ID"),
			}, "id"),
		},

		// Queries
		{
			Name:        "list_queries",
			Description: "List member queries, unaddressed first",
			InputSchema: objectSchema(map[string]any{
				"pending_only": map[string]any{
					"type":        "boolean",
					"description": "Only unaddressed queries",
				},
			}),
		},
		{
			Name:        "address_query",
			Description: "Answer a query. Admin only; a query can be addressed once",
			InputSchema: objectSchema(map[string]any{
				"id":       stringProp("Query ID"),
				"solution": stringProp("Answer text"),
			}, "id", "solution"),
		},

		// Cache
		{
			Name:        "refresh",
			Description: "Reload one cached resource, or all of them when resource is omitted",
			InputSchema: objectSchema(map[string]any{
				"resource": map[string]any{
					"type":        "string",
					"description": "Resource to reload",
					"enum":        resourceNames(),
				},
			}),
		},
		{
			Name:        "get_recent_activity",
			Description: "Get actions performed through this server, newest first",
			InputSchema: objectSchema(map[string]any{
				"subject_id": stringProp("Event, user or query ID"),
				"types": map[string]any{
					"type":        "array",
					"description": "Filter by activity types",
					"items":       map[string]any{"type": "string"},
				},
				"since": stringProp("Only entries at or after this time (RFC 3339)"),
				"limit": intProp("Maximum number of entries"),
			}),
		},
	}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "description": description}
}

func actionNames() []string {
	seen := map[event.Action]bool{}
	var out []string
	for _, r := range event.Table() {
		if !seen[r.Action] {
			seen[r.Action] = true
			out = append(out, string(r.Action))
		}
	}
	return out
}

func roleNames() []string {
	out := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		out[i] = string(r)
	}
	return out
}

func teamNames() []string {
	out := make([]string, len(user.Teams))
	for i, t := range user.Teams {
		out[i] = string(t)
	}
	return out
}

func resourceNames() []string {
	out := make([]string, len(store.Resources))
	for i, r := range store.Resources {
		out[i] = string(r)
	}
	return out
}
