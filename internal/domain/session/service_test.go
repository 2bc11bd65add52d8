package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/session"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_LoginStoresIdentityAndRefetches(t *testing.T) {
	ctx := context.Background()
	gateway := &mocks.SessionGateway{}
	events := &mocks.EventCache{}

	id := user.Identity{ID: "u1", Name: "Asha", Role: user.RolePresident, Team: user.TeamIntellexa, Passkey: "pk"}
	gateway.On("Login", ctx, session.Credentials{Email: "a@x.org", Password: "pw"}).Return(id, nil)
	events.On("RefetchEvents", ctx).Return(&event.List{}, nil).Once()

	svc := session.NewService(gateway, events, user.Identity{}, nil)
	_, err := svc.Require()
	require.ErrorIs(t, err, session.ErrNotSignedIn)

	got, err := svc.Login(ctx, session.Credentials{Email: " a@x.org ", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, id, got)
	require.Equal(t, id, svc.Current())
	events.AssertExpectations(t)
}

func TestSessionService_LoginFailureKeepsSignedOut(t *testing.T) {
	ctx := context.Background()
	gateway := &mocks.SessionGateway{}
	gateway.On("Login", ctx, mock.Anything).Return(user.Identity{}, errors.New("401"))

	svc := session.NewService(gateway, nil, user.Identity{}, nil)
	_, err := svc.Login(ctx, session.Credentials{Email: "a@x.org", Password: "bad"})
	require.Error(t, err)
	require.True(t, svc.Current().IsZero())

	_, err = svc.Login(ctx, session.Credentials{Email: "a@x.org"})
	require.ErrorIs(t, err, session.ErrInvalidInput)
}

func TestSessionService_LogoutClearsEvenOnFailure(t *testing.T) {
	ctx := context.Background()
	gateway := &mocks.SessionGateway{}
	gateway.On("Logout", ctx, "pk").Return(errors.New("offline"))

	svc := session.NewService(gateway, nil, user.Identity{Name: "Asha", Passkey: "pk"}, nil)
	require.Error(t, svc.Logout(ctx))
	require.True(t, svc.Current().IsZero())
}

func TestSessionService_LogoutWithoutPasskeySkipsRequest(t *testing.T) {
	gateway := &mocks.SessionGateway{}
	svc := session.NewService(gateway, nil, user.Identity{Name: "Asha"}, nil)
	require.NoError(t, svc.Logout(context.Background()))
	gateway.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestSessionService_SignupChecksConfirmation(t *testing.T) {
	ctx := context.Background()
	gateway := &mocks.SessionGateway{}
	gateway.On("Signup", ctx, mock.Anything).Return(nil).Once()

	svc := session.NewService(gateway, nil, user.Identity{}, nil)
	err := svc.Signup(ctx, session.SignupRequest{Name: "A", Email: "a@x.org", Password: "p1", ConfirmPassword: "p2"})
	require.ErrorIs(t, err, session.ErrPasswordMismatch)

	require.NoError(t, svc.Signup(ctx, session.SignupRequest{Name: "A", Email: "a@x.org", Password: "p1", ConfirmPassword: "p1"}))
	gateway.AssertNumberOfCalls(t, "Signup", 1)
}

func TestSignupRequest_FormSkipsEmpty(t *testing.T) {
	form := session.SignupRequest{Name: "A", Email: "e", Password: "p", ConfirmPassword: "p", Year: "2"}.Form()
	require.Equal(t, [][2]string{{"name", "A"}, {"email", "e"}, {"password", "p"}, {"year", "2"}}, form)
}
