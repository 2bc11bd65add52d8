package event

import (
	"encoding/json"
	"strings"
)

// Status is the coarse lifecycle label stored alongside the progress index.
type Status string

const (
	StatusUnderApproval Status = "under approval"
	StatusOngoing       Status = "ongoing"
	StatusCompleted     Status = "completed"
)

// UnmarshalJSON accepts the mixed casing the API stores ("Under Approval").
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Status(strings.ToLower(strings.TrimSpace(raw)))
	return nil
}

// Event is an event record as served by the external API.
type Event struct {
	ID                   string `json:"_id"`
	Name                 string `json:"eventName"`
	Organiser            string `json:"organiser"`
	ProposedBy           string `json:"proposed_by,omitempty"`
	Status               Status `json:"status"`
	ProgressIndex        int    `json:"progressIndex"`
	ContributedDate      string `json:"contributedDate,omitempty"`
	EventDate            string `json:"eventDate,omitempty"`
	Venue                string `json:"venue,omitempty"`
	Time                 string `json:"time,omitempty"`
	Suggestion           string `json:"suggestion,omitempty"`
	TargetYear           string `json:"targetYear,omitempty"`
	ExpectedParticipants string `json:"expectedParticipants,omitempty"`
	Submitted            bool   `json:"submitted,omitempty"`

	Proposal      string `json:"proposal,omitempty"`
	MarketingFile string `json:"marketingFile,omitempty"`
	FormLink      string `json:"formLink,omitempty"`
	MeetLink      string `json:"meetLink,omitempty"`

	Banner         string `json:"banner,omitempty"`
	PosterWhatsapp string `json:"posterWhatsapp,omitempty"`
	PosterInsta    string `json:"posterInsta,omitempty"`

	PreInstagram  string `json:"preInstagram,omitempty"`
	PreLinkedin   string `json:"preLinkedin,omitempty"`
	PreYoutube    string `json:"preYoutube,omitempty"`
	PostInstagram string `json:"postInstagram,omitempty"`
	PostLinkedin  string `json:"postLinkedin,omitempty"`
	PostYoutube   string `json:"postYoutube,omitempty"`
}

// Stage returns the event's position in the pipeline.
func (e Event) Stage() Stage { return Stage(e.ProgressIndex) }

// Completed reports whether the event reached the final stage.
func (e Event) Completed() bool { return e.Stage() == StageCompleted }

// Field returns the value of a patchable field by its wire name.
func (e Event) Field(f Field) string {
	switch f {
	case FieldMarketingFile:
		return e.MarketingFile
	case FieldFormLink:
		return e.FormLink
	case FieldMeetLink:
		return e.MeetLink
	case FieldVenue:
		return e.Venue
	case FieldEventDate:
		return e.EventDate
	case FieldTime:
		return e.Time
	case FieldBanner:
		return e.Banner
	case FieldPosterWhatsapp:
		return e.PosterWhatsapp
	case FieldPosterInsta:
		return e.PosterInsta
	case FieldPreInstagram:
		return e.PreInstagram
	case FieldPreLinkedin:
		return e.PreLinkedin
	case FieldPreYoutube:
		return e.PreYoutube
	case FieldPostInstagram:
		return e.PostInstagram
	case FieldPostLinkedin:
		return e.PostLinkedin
	case FieldPostYoutube:
		return e.PostYoutube
	}
	return ""
}

// List is the payload of GET /events.
type List struct {
	Events []Event `json:"events"`
}

// Find returns the event with the given ID.
func (l *List) Find(id string) (Event, bool) {
	if l == nil {
		return Event{}, false
	}
	for _, e := range l.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Patch is the partial body of PUT /editevent/{id}. Nil fields are omitted.
type Patch struct {
	ProgressIndex *int    `json:"progressIndex,omitempty"`
	Status        *Status `json:"status,omitempty"`
	Submitted     *bool   `json:"submitted,omitempty"`
	Suggestion    *string `json:"suggestion,omitempty"`

	Fields map[Field]string `json:"-"`
}

// MarshalJSON flattens Fields into the top-level object.
func (p Patch) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fields)+4)
	for k, v := range p.Fields {
		out[string(k)] = v
	}
	if p.ProgressIndex != nil {
		out["progressIndex"] = *p.ProgressIndex
	}
	if p.Status != nil {
		out["status"] = *p.Status
	}
	if p.Submitted != nil {
		out["submitted"] = *p.Submitted
	}
	if p.Suggestion != nil {
		out["suggestion"] = *p.Suggestion
	}
	return json.Marshal(out)
}
