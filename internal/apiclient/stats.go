package apiclient

import (
	"context"
	"net/http"

	"github.com/rpggio/clubboard/internal/domain/stats"
)

// FetchMediaStats loads the monthly media series.
func (c *Client) FetchMediaStats(ctx context.Context) (*stats.MediaSeries, error) {
	return fetchSeries[stats.MediaEntry](ctx, c, "/stats/media")
}

// FetchDesignStats loads the monthly design series.
func (c *Client) FetchDesignStats(ctx context.Context) (*stats.DesignSeries, error) {
	return fetchSeries[stats.DesignEntry](ctx, c, "/stats/design")
}

// FetchEventStats loads the monthly completed-events series.
func (c *Client) FetchEventStats(ctx context.Context) (*stats.EventSeries, error) {
	return fetchSeries[stats.EventEntry](ctx, c, "/stats/event")
}

func fetchSeries[T stats.Entry](ctx context.Context, c *Client, path string) (*stats.Series[T], error) {
	req, err := jsonRequest(http.MethodGet, path, path, nil)
	if err != nil {
		return nil, err
	}
	var out stats.Series[T]
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchCounters loads the dashboard counters.
func (c *Client) FetchCounters(ctx context.Context) (*stats.Counters, error) {
	req, err := jsonRequest(http.MethodGet, "/events/count", "/events/count", nil)
	if err != nil {
		return nil, err
	}
	var out stats.Counters
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type updatedSeries[T stats.Entry] struct {
	UpdatedData struct {
		Stat []T `json:"stat"`
	} `json:"updated_data"`
}

// AddMediaStat posts a monthly media entry and returns the updated series.
func (c *Client) AddMediaStat(ctx context.Context, entry stats.MediaEntry) ([]stats.MediaEntry, error) {
	return addStat(ctx, c, "/stats/media/add", entry)
}

// AddDesignStat posts a monthly design entry and returns the updated series.
func (c *Client) AddDesignStat(ctx context.Context, entry stats.DesignEntry) ([]stats.DesignEntry, error) {
	return addStat(ctx, c, "/stats/design/add", entry)
}

func addStat[T stats.Entry](ctx context.Context, c *Client, path string, entry T) ([]T, error) {
	req, err := jsonRequest(http.MethodPost, path, path, entry)
	if err != nil {
		return nil, err
	}
	var out updatedSeries[T]
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.UpdatedData.Stat, nil
}

// TeamStats loads per-team contribution counts.
func (c *Client) TeamStats(ctx context.Context) ([]stats.TeamStats, error) {
	req, err := jsonRequest(http.MethodGet, "/teams/stats", "/teams/stats", nil)
	if err != nil {
		return nil, err
	}
	var out []stats.TeamStats
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
