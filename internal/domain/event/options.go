package event

// CreateRequest holds the fields of a new event proposal.
type CreateRequest struct {
	Name                 string `json:"eventName"`
	Organiser            string `json:"organiser"`
	EventDate            string `json:"eventDate,omitempty"`
	Venue                string `json:"venue,omitempty"`
	Time                 string `json:"time,omitempty"`
	TargetYear           string `json:"targetYear,omitempty"`
	ExpectedParticipants string `json:"expectedParticipants,omitempty"`
	Proposal             string `json:"proposal,omitempty"`
}

// TransitionRequest moves one event through the pipeline.
type TransitionRequest struct {
	EventID string           `json:"event_id"`
	Action  Action           `json:"action"`
	Fields  map[Field]string `json:"fields,omitempty"`
}
