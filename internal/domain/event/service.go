package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/user"
)

// Service runs the event pipeline against the API and the events cache.
type Service struct {
	gateway    Gateway
	cache      Cache
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new event service.
func NewService(gateway Gateway, cache Cache, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		gateway:    gateway,
		cache:      cache,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns the cached events, loading them on first use.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	list, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	return list.Events, nil
}

// Get returns one event from the cache.
func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	list, err := s.events(ctx)
	if err != nil {
		return Event{}, err
	}
	ev, ok := list.Find(id)
	if !ok {
		return Event{}, ErrEventNotFound
	}
	return ev, nil
}

// Transition validates and persists one pipeline step. Guard failures return
// before any request is issued. A failed update leaves the cache untouched.
func (s *Service) Transition(ctx context.Context, caller user.Identity, req TransitionRequest) (Event, error) {
	if strings.TrimSpace(req.EventID) == "" {
		return Event{}, ErrInvalidInput
	}
	ev, err := s.Get(ctx, req.EventID)
	if err != nil {
		return Event{}, err
	}

	plan, err := PlanTransition(ev, ActorFor(caller), req.Action, req.Fields)
	if err != nil {
		return Event{}, err
	}

	if _, err := s.gateway.UpdateEvent(ctx, ev.ID, plan.Patch); err != nil {
		return Event{}, fmt.Errorf("updating event: %w", err)
	}

	if plan.Rule.Effect == EffectIncrementCompleted {
		if err := s.gateway.IncrementCompleted(ctx); err != nil && s.logger != nil {
			s.logger.Warn("completed counter increment failed", "event_id", ev.ID, "error", err)
		}
	}

	next := s.writeThrough(ctx, plan.Next)

	from, to := int(plan.Rule.From), int(plan.Rule.To)
	s.log(ctx, &activity.Entry{
		Type:      activity.TypeEventTransition,
		Actor:     caller.Name,
		SubjectID: ev.ID,
		FromStage: &from,
		ToStage:   &to,
		Summary:   fmt.Sprintf("%s: %s -> %s", req.Action, plan.Rule.From, plan.Rule.To),
	})
	if s.logger != nil {
		s.logger.Info("event transitioned", "event_id", ev.ID, "action", req.Action, "from", from, "to", to)
	}
	return next, nil
}

// Create proposes a new event at stage 0.
func (s *Service) Create(ctx context.Context, caller user.Identity, req CreateRequest) (Event, error) {
	if caller.IsZero() {
		return Event{}, ErrAccessDenied
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Organiser = strings.TrimSpace(req.Organiser)
	if req.Name == "" {
		return Event{}, fmt.Errorf("%w: eventName", ErrMissingField)
	}
	if req.Organiser == "" {
		return Event{}, fmt.Errorf("%w: organiser", ErrMissingField)
	}

	ev := Event{
		Name:                 req.Name,
		Organiser:            req.Organiser,
		ProposedBy:           caller.Name,
		Status:               StatusUnderApproval,
		ProgressIndex:        int(StageProposed),
		ContributedDate:      s.now().Format(time.DateOnly),
		EventDate:            req.EventDate,
		Venue:                req.Venue,
		Time:                 req.Time,
		TargetYear:           req.TargetYear,
		ExpectedParticipants: req.ExpectedParticipants,
		Proposal:             req.Proposal,
	}
	created, err := s.gateway.CreateEvent(ctx, ev)
	if err != nil {
		return Event{}, fmt.Errorf("creating event: %w", err)
	}
	if created != nil {
		ev = *created
	}
	s.refresh(ctx)
	s.log(ctx, &activity.Entry{
		Type:      activity.TypeEventCreated,
		Actor:     caller.Name,
		SubjectID: ev.ID,
		Summary:   ev.Name,
	})
	return ev, nil
}

// UpdateLinks lets the tech lead replace the form and meet links of an event
// already past link submission, up to the event date. Progress is unchanged.
func (s *Service) UpdateLinks(ctx context.Context, caller user.Identity, id, formLink, meetLink string) (Event, error) {
	if ActorFor(caller) != ActorTechLead {
		return Event{}, ErrAccessDenied
	}
	ev, err := s.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if classify(ev, s.today()) != bucketEditable {
		return Event{}, ErrNotEditable
	}
	formLink = strings.TrimSpace(formLink)
	if formLink == "" {
		return Event{}, fmt.Errorf("%w: %s", ErrMissingField, FieldFormLink)
	}

	patch := Patch{Fields: map[Field]string{FieldFormLink: formLink}}
	if meetLink = strings.TrimSpace(meetLink); meetLink != "" {
		patch.Fields[FieldMeetLink] = meetLink
	}
	if _, err := s.gateway.UpdateEvent(ctx, ev.ID, patch); err != nil {
		return Event{}, fmt.Errorf("updating event links: %w", err)
	}
	next := s.writeThrough(ctx, Apply(ev, patch))
	s.log(ctx, &activity.Entry{
		Type:      activity.TypeEventUpdated,
		Actor:     caller.Name,
		SubjectID: ev.ID,
		Summary:   "links updated",
	})
	return next, nil
}

// Suggest attaches an admin suggestion to an event.
func (s *Service) Suggest(ctx context.Context, caller user.Identity, id, suggestion string) error {
	if !caller.IsAdmin() {
		return ErrAccessDenied
	}
	suggestion = strings.TrimSpace(suggestion)
	if strings.TrimSpace(id) == "" || suggestion == "" {
		return ErrInvalidInput
	}
	if err := s.gateway.SuggestEvent(ctx, id, suggestion); err != nil {
		return fmt.Errorf("suggesting on event: %w", err)
	}
	s.refresh(ctx)
	s.log(ctx, &activity.Entry{
		Type:      activity.TypeEventUpdated,
		Actor:     caller.Name,
		SubjectID: id,
		Summary:   "suggestion: " + suggestion,
	})
	return nil
}

func (s *Service) events(ctx context.Context) (*List, error) {
	if list := s.cache.Events(); list != nil {
		return list, nil
	}
	list, err := s.cache.RefetchEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	return list, nil
}

// writeThrough refetches the events list after a successful update. When the
// refetch fails the cached copy is patched locally instead.
func (s *Service) writeThrough(ctx context.Context, next Event) Event {
	list, err := s.cache.RefetchEvents(ctx)
	if err == nil {
		if ev, ok := list.Find(next.ID); ok {
			return ev
		}
		return next
	}
	if s.logger != nil {
		s.logger.Warn("refetch events after update failed", "event_id", next.ID, "error", err)
	}
	if cached := s.cache.Events(); cached != nil {
		patched := &List{Events: make([]Event, len(cached.Events))}
		copy(patched.Events, cached.Events)
		for i := range patched.Events {
			if patched.Events[i].ID == next.ID {
				patched.Events[i] = next
			}
		}
		s.cache.SetEvents(patched)
	}
	return next
}

func (s *Service) refresh(ctx context.Context) {
	if _, err := s.cache.RefetchEvents(ctx); err != nil && s.logger != nil {
		s.logger.Warn("refetch events after mutation failed", "error", err)
	}
}

func (s *Service) log(ctx context.Context, entry *activity.Entry) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("activity log failed", "type", entry.Type, "error", err)
	}
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
