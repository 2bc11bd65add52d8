package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var admin = user.Identity{ID: "u0", Name: "Admin", Role: user.RolePresident, Team: user.TeamIntellexa}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	gateway := &mocks.UserGateway{}
	cache := &mocks.UserCache{}
	activities := &mocks.ActivityRepository{}

	gateway.On("UpdateUser", ctx, "u1", user.RoleLead, user.TeamWeb).Return(nil)
	cache.On("RefetchUsers", ctx).Return(&user.List{}, nil)
	activities.On("Log", ctx, mock.Anything).Return(nil)

	svc := user.NewService(gateway, cache, activities, nil)
	require.NoError(t, svc.Update(ctx, admin, "u1", user.RoleLead, user.TeamWeb))
	gateway.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestUserService_UpdateRejectsUnknownRole(t *testing.T) {
	svc := user.NewService(&mocks.UserGateway{}, &mocks.UserCache{}, nil, nil)
	err := svc.Update(context.Background(), admin, "u1", user.Role("Captain"), user.TeamWeb)
	require.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestUserService_UpdateRequiresAdmin(t *testing.T) {
	svc := user.NewService(&mocks.UserGateway{}, &mocks.UserCache{}, nil, nil)
	caller := user.Identity{Name: "Lead", Role: user.RoleTechnicalLead, Team: user.TeamIntellexa}
	err := svc.Update(context.Background(), caller, "u1", user.RoleLead, user.TeamWeb)
	require.ErrorIs(t, err, user.ErrAccessDenied)
}

func TestUserService_DeleteFailureSkipsRefetch(t *testing.T) {
	ctx := context.Background()

	gateway := &mocks.UserGateway{}
	cache := &mocks.UserCache{}
	gateway.On("DeleteUser", ctx, "u1").Return(errors.New("boom"))

	svc := user.NewService(gateway, cache, nil, nil)
	require.Error(t, svc.Delete(ctx, admin, "u1"))
	cache.AssertNotCalled(t, "RefetchUsers", mock.Anything)
}

func TestUserService_ListUsesCache(t *testing.T) {
	cache := &mocks.UserCache{}
	cache.On("Users").Return(&user.List{Users: []user.User{{ID: "u1"}}})

	svc := user.NewService(&mocks.UserGateway{}, cache, nil, nil)
	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	cache.AssertNotCalled(t, "RefetchUsers", mock.Anything)
}
