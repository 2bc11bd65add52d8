package user

import (
	"context"

	"github.com/rpggio/clubboard/internal/domain/activity"
)

// Gateway performs member administration against the external API.
type Gateway interface {
	UpdateUser(ctx context.Context, id string, role Role, team Team) error
	DeleteUser(ctx context.Context, id string) error
}

// Cache is the bootstrap store slot holding the users list.
type Cache interface {
	Users() *List
	RefetchUsers(ctx context.Context) (*List, error)
}

// ActivityRepository records admin actions.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
