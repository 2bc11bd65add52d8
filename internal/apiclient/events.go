package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rpggio/clubboard/internal/domain/event"
)

type eventEnvelope struct {
	Data *event.Event `json:"data"`
}

// FetchEvents loads the events visible to the current caller.
func (c *Client) FetchEvents(ctx context.Context) (*event.List, error) {
	req, err := jsonRequest(http.MethodGet, "/events", "/events", nil)
	if err != nil {
		return nil, err
	}
	req.caller = c.caller()
	var out event.List
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEvent posts a new event proposal.
func (c *Client) CreateEvent(ctx context.Context, ev event.Event) (*event.Event, error) {
	req, err := jsonRequest(http.MethodPost, "/add_event", "/add_event", ev)
	if err != nil {
		return nil, err
	}
	var out eventEnvelope
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateEvent sends a partial update. The returned event is nil when the API
// doesn't echo it.
func (c *Client) UpdateEvent(ctx context.Context, id string, patch event.Patch) (*event.Event, error) {
	req, err := jsonRequest(http.MethodPut, "/editevent/"+url.PathEscape(id), "/editevent/{id}", patch)
	if err != nil {
		return nil, err
	}
	var out eventEnvelope
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SuggestEvent attaches an admin suggestion.
func (c *Client) SuggestEvent(ctx context.Context, id, suggestion string) error {
	req, err := jsonRequest(http.MethodPut, "/suggest/"+url.PathEscape(id), "/suggest/{id}",
		map[string]string{"suggestion": suggestion})
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// IncrementCompleted bumps the completed-events counter.
func (c *Client) IncrementCompleted(ctx context.Context) error {
	req, err := jsonRequest(http.MethodGet, "/stats/events/increment", "/stats/events/increment", nil)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}
