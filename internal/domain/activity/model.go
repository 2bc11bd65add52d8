package activity

import "time"

// Type identifies what a logged action did.
type Type string

const (
	TypeEventCreated    Type = "event_created"
	TypeEventUpdated    Type = "event_updated"
	TypeEventTransition Type = "event_transition"
	TypeStatsSubmitted  Type = "stats_submitted"
	TypeUserUpdated     Type = "user_updated"
	TypeUserDeleted     Type = "user_deleted"
	TypeQuerySubmitted  Type = "query_submitted"
	TypeQueryAddressed  Type = "query_addressed"
)

// Entry is one action performed through this client.
type Entry struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Actor     string    `json:"actor"`
	SubjectID string    `json:"subject_id,omitempty"`
	FromStage *int      `json:"from_stage,omitempty"`
	ToStage   *int      `json:"to_stage,omitempty"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
