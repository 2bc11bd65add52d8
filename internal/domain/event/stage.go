package event

import (
	"fmt"

	"github.com/rpggio/clubboard/internal/domain/user"
)

// Stage is the progress index of an event: which team currently holds it.
type Stage int

const (
	StageProposed       Stage = 0
	StageTechLead       Stage = 1
	StageDesign         Stage = 2
	StageDesignApproval Stage = 3
	StageMedia          Stage = 4
	StageMediaApproval  Stage = 5
	StageMarketing      Stage = 6
	StageCompleted      Stage = 7
)

var stageNames = [...]string{
	"Event Team",
	"Tech Lead",
	"Design Team",
	"Approval",
	"Media Team",
	"Approval",
	"Marketing",
	"Completed",
}

// Valid reports whether the stage lies in the closed range [0,7].
func (s Stage) Valid() bool {
	return s >= StageProposed && s <= StageCompleted
}

func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Field is the wire name of a stage-specific event field.
type Field string

const (
	FieldMarketingFile  Field = "marketingFile"
	FieldFormLink       Field = "formLink"
	FieldMeetLink       Field = "meetLink"
	FieldVenue          Field = "venue"
	FieldEventDate      Field = "eventDate"
	FieldTime           Field = "time"
	FieldBanner         Field = "banner"
	FieldPosterWhatsapp Field = "posterWhatsapp"
	FieldPosterInsta    Field = "posterInsta"
	FieldPreInstagram   Field = "preInstagram"
	FieldPreLinkedin    Field = "preLinkedin"
	FieldPreYoutube     Field = "preYoutube"
	FieldPostInstagram  Field = "postInstagram"
	FieldPostLinkedin   Field = "postLinkedin"
	FieldPostYoutube    Field = "postYoutube"
)

// Actor is the role-specific party allowed to move an event.
type Actor string

const (
	ActorContributor Actor = "contributor"
	ActorTechLead    Actor = "techlead"
	ActorDesign      Actor = "design"
	ActorMedia       Actor = "media"
	ActorAdmin       Actor = "admin"
)

// ActorFor maps a signed-in caller to the actor it plays in the pipeline.
// Anonymous callers map to the empty actor.
func ActorFor(id user.Identity) Actor {
	switch {
	case id.IsZero():
		return ""
	case user.IsTechLead(id.Role, id.Team):
		return ActorTechLead
	case user.IsAdmin(id.Role, id.Team):
		return ActorAdmin
	case id.Team == user.TeamMedia:
		return ActorMedia
	case id.Team == user.TeamDesign:
		return ActorDesign
	default:
		return ActorContributor
	}
}
