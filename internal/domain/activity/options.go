package activity

import "time"

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	SubjectID string
	Types     []Type
	Since     *time.Time
	Limit     int
}
