package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rpggio/clubboard/internal/domain/user"
)

// Service holds the signed-in caller and runs the account flows.
type Service struct {
	gateway Gateway
	events  EventsRefresher
	logger  *slog.Logger

	mu       sync.RWMutex
	identity user.Identity
}

// NewService creates a session seeded with an initial identity, which may be zero.
func NewService(gateway Gateway, events EventsRefresher, initial user.Identity, logger *slog.Logger) *Service {
	return &Service{
		gateway:  gateway,
		events:   events,
		logger:   logger,
		identity: initial,
	}
}

// Current returns the signed-in caller, or the zero identity.
func (s *Service) Current() user.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Require returns the signed-in caller or ErrNotSignedIn.
func (s *Service) Require() (user.Identity, error) {
	id := s.Current()
	if id.IsZero() {
		return user.Identity{}, ErrNotSignedIn
	}
	return id, nil
}

func (s *Service) set(id user.Identity) {
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
}

// Login authenticates, stores the returned identity and reloads the events
// visible to it. A failed events reload does not fail the login.
func (s *Service) Login(ctx context.Context, creds Credentials) (user.Identity, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return user.Identity{}, ErrInvalidInput
	}
	id, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return user.Identity{}, fmt.Errorf("logging in: %w", err)
	}
	s.set(id)
	if s.logger != nil {
		s.logger.Info("signed in", "name", id.Name, "role", id.Role, "team", id.Team)
	}

	if s.events != nil {
		if _, err := s.events.RefetchEvents(ctx); err != nil && s.logger != nil {
			s.logger.Warn("refetch events after login failed", "error", err)
		}
	}
	return id, nil
}

// Logout ends the session. The local identity is cleared even when the API
// call fails; that error is still returned.
func (s *Service) Logout(ctx context.Context) error {
	id := s.Current()
	s.set(user.Identity{})
	if id.Passkey == "" {
		return nil
	}
	if err := s.gateway.Logout(ctx, id.Passkey); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}

// Signup registers a new member. The caller stays signed out.
func (s *Service) Signup(ctx context.Context, req SignupRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return ErrInvalidInput
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if err := s.gateway.Signup(ctx, req); err != nil {
		return fmt.Errorf("creating account: %w", err)
	}
	return nil
}
