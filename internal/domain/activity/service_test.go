package activity_test

import (
	"context"
	"testing"

	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogFillsDefaults(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.ID != "" && !e.CreatedAt.IsZero()
	})).Return(nil)

	svc := activity.NewService(repo, nil)
	entry := &activity.Entry{Type: activity.TypeEventTransition, Actor: "admin", SubjectID: "e1"}
	require.NoError(t, svc.Log(ctx, entry))
	require.NotEmpty(t, entry.ID)
	repo.AssertExpectations(t)
}

func TestActivityService_LogRejectsEmpty(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.Log(context.Background(), &activity.Entry{}), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.Log(context.Background(), nil), activity.ErrInvalidInput)
}

func TestActivityService_RecentDefaultsLimit(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("List", ctx, activity.ListOptions{SubjectID: "e1", Limit: 50}).Return([]activity.Entry{{ID: "a1"}}, nil)

	svc := activity.NewService(repo, nil)
	entries, err := svc.Recent(ctx, activity.ListOptions{SubjectID: "e1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
