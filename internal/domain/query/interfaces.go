package query

import (
	"context"

	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/user"
)

// Gateway reaches the query endpoints of the external API.
type Gateway interface {
	ListQueries(ctx context.Context, caller user.Identity) (*List, error)
	SubmitQuery(ctx context.Context, sub Submission) error
	AddressQuery(ctx context.Context, id, solution, addressedBy string) error
}

// ActivityRepository records query handling.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
