package event

import (
	"context"

	"github.com/rpggio/clubboard/internal/domain/activity"
)

// Gateway persists event changes through the external API.
type Gateway interface {
	CreateEvent(ctx context.Context, ev Event) (*Event, error)
	UpdateEvent(ctx context.Context, id string, patch Patch) (*Event, error)
	SuggestEvent(ctx context.Context, id, suggestion string) error
	IncrementCompleted(ctx context.Context) error
}

// Cache is the bootstrap store slot holding the events list.
type Cache interface {
	Events() *List
	RefetchEvents(ctx context.Context) (*List, error)
	SetEvents(list *List)
}

// ActivityRepository records transitions.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
