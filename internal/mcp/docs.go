package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/store"
)

const serverInstructions = `clubboard reads and updates the club dashboard through a cached view of the club API.

Core concepts:
- Cache: six resources (media_stats, design_stats, event_stats, events, counters, users) loaded at start.
  Reads never hit the network; call refresh when data looks stale. A failed refresh keeps the old data.
- Event pipeline: every event carries a progress index 0..7. Each step belongs to one actor
  (admin, techlead, design, media). list_events and get_event show the actions the current caller may take.
- Tools act as the identity the server is signed in with.

Workflow:
1) Orient: get_stats for the overview, list_events for the pipeline.
2) Act: transition_event with the event's listed action and the stage's required fields.
3) Check: get_recent_activity shows what this server changed.

Docs:
- clubboard://docs/progression (stage table: who moves an event, and what each step needs)
- clubboard://docs/resources (cache resources and refresh behaviour)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     func() string
}

var docResources = []docResource{
	{
		URI:         "clubboard://docs/progression",
		Name:        "docs_progression",
		Title:       "Event progression",
		Description: "Every pipeline transition with its actor, required fields and effects.",
		Content:     progressionDoc,
	},
	{
		URI:         "clubboard://docs/resources",
		Name:        "docs_resources",
		Title:       "Cached resources",
		Description: "What the cache holds and how it is refreshed.",
		Content:     resourcesDoc,
	},
}

func progressionDoc() string {
	var b strings.Builder
	b.WriteString("# Event progression\n\n")
	b.WriteString("| From | Action | Actor | To | Required | Effect |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range event.Table() {
		required := make([]string, len(r.Required))
		for i, f := range r.Required {
			required[i] = string(f)
		}
		var effects []string
		if r.SetStatus != "" {
			effects = append(effects, "status "+string(r.SetStatus))
		}
		if r.Submitted {
			effects = append(effects, "marks links submitted")
		}
		if r.Effect == event.EffectIncrementCompleted {
			effects = append(effects, "increments completed counter")
		}
		fmt.Fprintf(&b, "| %d %s | %s | %s | %d %s | %s | %s |\n",
			int(r.From), r.From, r.Action, r.Actor, int(r.To), r.To,
			strings.Join(required, ", "), strings.Join(effects, "; "))
	}
	b.WriteString("\nA failed request leaves the event unchanged. Status is completed exactly when the index is 7.\n")
	return b.String()
}

func resourcesDoc() string {
	var b strings.Builder
	b.WriteString("# Cached resources\n\n")
	for _, r := range store.Resources {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString(`
Refreshing a resource replaces it only when the response is newer than the last applied one.
Writes (transitions, stats submissions, member changes) update the cache on success.
`)
	return b.String()
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		content := doc.Content()

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     content,
				}},
			}, nil
		})
	}
}
