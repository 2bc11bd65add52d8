package stats

import (
	"context"

	"github.com/rpggio/clubboard/internal/domain/activity"
)

// Gateway submits stats to the external API.
type Gateway interface {
	AddMediaStat(ctx context.Context, entry MediaEntry) ([]MediaEntry, error)
	AddDesignStat(ctx context.Context, entry DesignEntry) ([]DesignEntry, error)
	TeamStats(ctx context.Context) ([]TeamStats, error)
}

// Cache is the subset of the bootstrap store holding stats resources.
type Cache interface {
	MediaStats() *MediaSeries
	RefetchMediaStats(ctx context.Context) (*MediaSeries, error)
	SetMediaStats(s *MediaSeries)
	DesignStats() *DesignSeries
	RefetchDesignStats(ctx context.Context) (*DesignSeries, error)
	SetDesignStats(s *DesignSeries)
	EventStats() *EventSeries
	RefetchEventStats(ctx context.Context) (*EventSeries, error)
	Counters() *Counters
	RefetchCounters(ctx context.Context) (*Counters, error)
}

// ActivityRepository records submissions.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
