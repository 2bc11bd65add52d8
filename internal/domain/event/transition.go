package event

import (
	"fmt"
	"slices"
	"strings"
)

// Action names a pipeline step requested by an actor.
type Action string

const (
	ActionApprove      Action = "approve"
	ActionSubmitLinks  Action = "submit_links"
	ActionSubmitDesign Action = "submit_design"
	ActionSubmitMedia  Action = "submit_media"
	ActionAdvance      Action = "advance"
	ActionRevert       Action = "revert"
	ActionComplete     Action = "complete"
)

// SideEffect is an extra call issued after a transition is persisted.
type SideEffect int

const (
	EffectNone SideEffect = iota
	// EffectIncrementCompleted bumps the external completed-events counter.
	EffectIncrementCompleted
)

// Rule is one row of the transition table.
type Rule struct {
	From      Stage
	Action    Action
	Actor     Actor
	To        Stage
	Required  []Field
	Accepts   []Field
	SetStatus Status
	Submitted bool
	Effect    SideEffect
}

type ruleKey struct {
	from   Stage
	action Action
}

var rules = map[ruleKey]Rule{}

func init() {
	for _, r := range []Rule{
		{
			From: StageProposed, Action: ActionApprove, Actor: ActorAdmin, To: StageTechLead,
			Required:  []Field{FieldMarketingFile},
			Accepts:   []Field{FieldMarketingFile, FieldVenue, FieldEventDate, FieldTime},
			SetStatus: StatusOngoing,
		},
		{
			From: StageTechLead, Action: ActionSubmitLinks, Actor: ActorTechLead, To: StageDesign,
			Required:  []Field{FieldFormLink},
			Accepts:   []Field{FieldFormLink, FieldMeetLink},
			Submitted: true,
		},
		{
			From: StageDesign, Action: ActionSubmitDesign, Actor: ActorDesign, To: StageDesignApproval,
			Accepts: []Field{FieldBanner, FieldPosterWhatsapp, FieldPosterInsta},
		},
		{From: StageDesignApproval, Action: ActionAdvance, Actor: ActorAdmin, To: StageMedia},
		{From: StageDesignApproval, Action: ActionRevert, Actor: ActorAdmin, To: StageDesign},
		{
			From: StageMedia, Action: ActionSubmitMedia, Actor: ActorMedia, To: StageMediaApproval,
			Required: []Field{FieldPostInstagram, FieldPostLinkedin},
			Accepts: []Field{
				FieldPreInstagram, FieldPreLinkedin, FieldPreYoutube,
				FieldPostInstagram, FieldPostLinkedin, FieldPostYoutube,
			},
		},
		{
			From: StageMediaApproval, Action: ActionAdvance, Actor: ActorAdmin, To: StageMarketing,
			Required: []Field{FieldMarketingFile},
			Accepts:  []Field{FieldMarketingFile},
		},
		{From: StageMediaApproval, Action: ActionRevert, Actor: ActorAdmin, To: StageMedia},
		{
			From: StageMarketing, Action: ActionComplete, Actor: ActorAdmin, To: StageCompleted,
			SetStatus: StatusCompleted, Effect: EffectIncrementCompleted,
		},
		{
			From: StageMarketing, Action: ActionAdvance, Actor: ActorAdmin, To: StageCompleted,
			SetStatus: StatusCompleted, Effect: EffectIncrementCompleted,
		},
		// Reverting out of marketing skips the media approval stage.
		{From: StageMarketing, Action: ActionRevert, Actor: ActorAdmin, To: StageMedia},
	} {
		rules[ruleKey{r.From, r.Action}] = r
	}
}

// Lookup returns the rule for an action at a stage, checking the actor.
func Lookup(from Stage, action Action, actor Actor) (Rule, error) {
	if !from.Valid() {
		return Rule{}, fmt.Errorf("%w: %d", ErrInvalidStage, int(from))
	}
	rule, ok := rules[ruleKey{from, action}]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, from)
	}
	if rule.Actor != actor {
		return Rule{}, ErrAccessDenied
	}
	return rule, nil
}

// Available lists the actions an actor may take on an event at a stage.
func Available(from Stage, actor Actor) []Action {
	var out []Action
	for key, rule := range rules {
		if key.from == from && rule.Actor == actor {
			out = append(out, key.action)
		}
	}
	slices.Sort(out)
	return out
}

// Table returns every rule ordered by source stage then action.
func Table() []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Rule) int {
		if a.From != b.From {
			return int(a.From) - int(b.From)
		}
		return strings.Compare(string(a.Action), string(b.Action))
	})
	return out
}

// Plan is a validated transition ready to be persisted.
type Plan struct {
	Rule  Rule
	Patch Patch
	// Next is the event as it will look once the patch is applied.
	Next Event
}

// PlanTransition validates an action against the table and the event's fields and
// builds the PUT body. input overrides the event's current field values; fields the
// rule does not accept are rejected. No network call is made.
func PlanTransition(ev Event, actor Actor, action Action, input map[Field]string) (Plan, error) {
	rule, err := Lookup(ev.Stage(), action, actor)
	if err != nil {
		return Plan{}, err
	}
	if !rule.To.Valid() {
		return Plan{}, fmt.Errorf("%w: %d", ErrInvalidStage, int(rule.To))
	}

	for f := range input {
		if !slices.Contains(rule.Accepts, f) {
			return Plan{}, fmt.Errorf("%w: %s not accepted by %s", ErrInvalidInput, f, action)
		}
	}

	values := make(map[Field]string, len(rule.Accepts))
	for _, f := range rule.Accepts {
		v := ev.Field(f)
		if in, ok := input[f]; ok {
			v = strings.TrimSpace(in)
		}
		if v != "" {
			values[f] = v
		}
	}
	for _, f := range rule.Required {
		if values[f] == "" {
			return Plan{}, fmt.Errorf("%w: %s", ErrMissingField, f)
		}
	}

	to := int(rule.To)
	patch := Patch{ProgressIndex: &to}
	if len(values) > 0 {
		patch.Fields = values
	}
	switch {
	case rule.SetStatus != "":
		status := rule.SetStatus
		patch.Status = &status
	case ev.Status == StatusCompleted:
		// Only stage 7 may carry the completed status.
		status := StatusOngoing
		patch.Status = &status
	}
	if rule.Submitted {
		submitted := true
		patch.Submitted = &submitted
	}

	return Plan{Rule: rule, Patch: patch, Next: Apply(ev, patch)}, nil
}

// Apply returns ev with patch applied.
func Apply(ev Event, patch Patch) Event {
	out := ev
	if patch.ProgressIndex != nil {
		out.ProgressIndex = *patch.ProgressIndex
	}
	if patch.Status != nil {
		out.Status = *patch.Status
	}
	if patch.Submitted != nil {
		out.Submitted = *patch.Submitted
	}
	if patch.Suggestion != nil {
		out.Suggestion = *patch.Suggestion
	}
	for f, v := range patch.Fields {
		out.setField(f, v)
	}
	return out
}

func (e *Event) setField(f Field, v string) {
	switch f {
	case FieldMarketingFile:
		e.MarketingFile = v
	case FieldFormLink:
		e.FormLink = v
	case FieldMeetLink:
		e.MeetLink = v
	case FieldVenue:
		e.Venue = v
	case FieldEventDate:
		e.EventDate = v
	case FieldTime:
		e.Time = v
	case FieldBanner:
		e.Banner = v
	case FieldPosterWhatsapp:
		e.PosterWhatsapp = v
	case FieldPosterInsta:
		e.PosterInsta = v
	case FieldPreInstagram:
		e.PreInstagram = v
	case FieldPreLinkedin:
		e.PreLinkedin = v
	case FieldPreYoutube:
		e.PreYoutube = v
	case FieldPostInstagram:
		e.PostInstagram = v
	case FieldPostLinkedin:
		e.PostLinkedin = v
	case FieldPostYoutube:
		e.PostYoutube = v
	}
}
