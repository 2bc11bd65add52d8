package store

import (
	"errors"
	"fmt"
)

// Resource names one cached dataset.
type Resource string

const (
	ResourceMediaStats  Resource = "media_stats"
	ResourceDesignStats Resource = "design_stats"
	ResourceEventStats  Resource = "event_stats"
	ResourceEvents      Resource = "events"
	ResourceCounters    Resource = "counters"
	ResourceUsers       Resource = "users"
)

// Resources lists every resource in bootstrap order.
var Resources = []Resource{
	ResourceMediaStats,
	ResourceDesignStats,
	ResourceEventStats,
	ResourceEvents,
	ResourceCounters,
	ResourceUsers,
}

// ErrUnknownResource indicates a resource name outside Resources.
var ErrUnknownResource = errors.New("unknown resource")

// ParseResource validates a resource name.
func ParseResource(name string) (Resource, error) {
	for _, r := range Resources {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, name)
}
