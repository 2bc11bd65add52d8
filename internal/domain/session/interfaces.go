package session

import (
	"context"

	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/user"
)

// Gateway reaches the account endpoints of the external API.
type Gateway interface {
	Login(ctx context.Context, creds Credentials) (user.Identity, error)
	Logout(ctx context.Context, passkey string) error
	Signup(ctx context.Context, req SignupRequest) error
}

// EventsRefresher reloads the identity-scoped events list after a login.
type EventsRefresher interface {
	RefetchEvents(ctx context.Context) (*event.List, error)
}
