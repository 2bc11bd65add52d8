package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/clubboard/internal/domain/activity"
)

// Service handles member administration.
type Service struct {
	gateway    Gateway
	cache      Cache
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new user service.
func NewService(gateway Gateway, cache Cache, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		gateway:    gateway,
		cache:      cache,
		activities: activities,
		logger:     logger,
	}
}

// List returns the cached users, loading them on first use.
func (s *Service) List(ctx context.Context) ([]User, error) {
	if list := s.cache.Users(); list != nil {
		return list.Users, nil
	}
	list, err := s.cache.RefetchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return list.Users, nil
}

// Update changes a member's role and team.
func (s *Service) Update(ctx context.Context, caller Identity, id string, role Role, team Team) error {
	if !caller.IsAdmin() {
		return ErrAccessDenied
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	if !team.Valid() {
		return ErrInvalidTeam
	}

	if err := s.gateway.UpdateUser(ctx, id, role, team); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	s.refresh(ctx)
	s.log(ctx, &activity.Entry{
		Type:      activity.TypeUserUpdated,
		Actor:     caller.Name,
		SubjectID: id,
		Summary:   fmt.Sprintf("set %s / %s", role, team),
	})
	return nil
}

// Delete removes a member.
func (s *Service) Delete(ctx context.Context, caller Identity, id string) error {
	if !caller.IsAdmin() {
		return ErrAccessDenied
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}

	if err := s.gateway.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	s.refresh(ctx)
	s.log(ctx, &activity.Entry{
		Type:      activity.TypeUserDeleted,
		Actor:     caller.Name,
		SubjectID: id,
		Summary:   "removed member",
	})
	return nil
}

func (s *Service) refresh(ctx context.Context) {
	if _, err := s.cache.RefetchUsers(ctx); err != nil && s.logger != nil {
		s.logger.Warn("refetch users after mutation failed", "error", err)
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
