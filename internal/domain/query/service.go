package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/user"
)

// Service handles query submission and resolution.
type Service struct {
	gateway    Gateway
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new query service.
func NewService(gateway Gateway, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, activities: activities, logger: logger}
}

// Submit validates and posts a query. Anyone may submit.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Message = strings.TrimSpace(sub.Message)
	if sub.Name == "" || sub.Message == "" {
		return ErrInvalidInput
	}
	if !sub.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := s.gateway.SubmitQuery(ctx, sub); err != nil {
		return fmt.Errorf("submitting query: %w", err)
	}
	s.log(ctx, &activity.Entry{
		Type:    activity.TypeQuerySubmitted,
		Actor:   sub.Name,
		Summary: string(sub.Category),
	})
	return nil
}

// List returns the caller's visible queries, unaddressed first.
func (s *Service) List(ctx context.Context, caller user.Identity) ([]Query, error) {
	if caller.IsZero() {
		return nil, ErrAccessDenied
	}
	list, err := s.gateway.ListQueries(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("listing queries: %w", err)
	}
	return PendingFirst(list.Queries), nil
}

// Pending counts the unaddressed queries visible to the caller.
func (s *Service) Pending(ctx context.Context, caller user.Identity) (int, error) {
	if caller.IsZero() {
		return 0, ErrAccessDenied
	}
	list, err := s.gateway.ListQueries(ctx, caller)
	if err != nil {
		return 0, fmt.Errorf("listing queries: %w", err)
	}
	return list.Pending(), nil
}

// Address records an admin's solution. A query is addressed at most once.
func (s *Service) Address(ctx context.Context, caller user.Identity, id, solution string) (Query, error) {
	if !caller.IsAdmin() {
		return Query{}, ErrAccessDenied
	}
	solution = strings.TrimSpace(solution)
	if strings.TrimSpace(id) == "" || solution == "" {
		return Query{}, ErrInvalidInput
	}

	list, err := s.gateway.ListQueries(ctx, caller)
	if err != nil {
		return Query{}, fmt.Errorf("listing queries: %w", err)
	}
	q, ok := list.Find(id)
	if !ok {
		return Query{}, ErrQueryNotFound
	}
	if q.Addressed {
		return Query{}, ErrAlreadyAddressed
	}

	if err := s.gateway.AddressQuery(ctx, id, solution, caller.Name); err != nil {
		return Query{}, fmt.Errorf("addressing query: %w", err)
	}
	q.Addressed = true
	q.Solution = solution
	q.AddressedBy = caller.Name
	s.log(ctx, &activity.Entry{
		Type:      activity.TypeQueryAddressed,
		Actor:     caller.Name,
		SubjectID: id,
		Summary:   solution,
	})
	return q, nil
}

func (s *Service) log(ctx context.Context, entry *activity.Entry) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("activity log failed", "type", entry.Type, "error", err)
	}
}
