package activity_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fias/marcaciones/internal/domain/activity"
	"github.com/fias/marcaciones/internal/repository/mocks"
)

func TestRecordFillsEntry(t *testing.T) {
	repo := new(mocks.ActivityRepository)
	svc := activity.NewService(repo, slog.Default())

	repo.On("Log", mock.Anything, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.ID != "" &&
			e.Message == "Funcionario creado: Ana Torres" &&
			e.Level == activity.LevelSuccess &&
			e.Actor == "Sistema" &&
			!e.CreatedAt.IsZero()
	})).Return(nil)

	svc.Record(context.Background(), activity.LevelSuccess, "Funcionario creado: %s", "Ana Torres")
	repo.AssertExpectations(t)
}

func TestRecordSwallowsRepositoryErrors(t *testing.T) {
	repo := new(mocks.ActivityRepository)
	svc := activity.NewService(repo, slog.Default())

	repo.On("Log", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	// Must not panic or surface the error.
	svc.Record(context.Background(), activity.LevelError, "algo falló")
	repo.AssertExpectations(t)
}

func TestRecentClampsLimit(t *testing.T) {
	repo := new(mocks.ActivityRepository)
	svc := activity.NewService(repo, slog.Default())

	repo.On("Recent", mock.Anything, activity.Retention).Return([]activity.Entry{}, nil).Times(3)

	for _, limit := range []int{0, -5, activity.Retention + 1} {
		_, err := svc.Recent(context.Background(), limit)
		require.NoError(t, err)
	}
	repo.AssertExpectations(t)
}

func TestRecentPassesValidLimit(t *testing.T) {
	repo := new(mocks.ActivityRepository)
	svc := activity.NewService(repo, slog.Default())

	repo.On("Recent", mock.Anything, 10).Return([]activity.Entry{{Message: "hola"}}, nil)

	entries, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
