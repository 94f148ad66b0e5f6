package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chops-club/membership-dashboard/internal/models"
	"github.com/chops-club/membership-dashboard/internal/storage"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Fetch(ctx context.Context, path string) ([]models.Row, error) {
	args := m.Called(ctx, path)
	rows, _ := args.Get(0).([]models.Row)
	return rows, args.Error(1)
}

func (m *MockStore) FetchNested(ctx context.Context, parent string, parentIDs []string, sub string) ([]models.Row, error) {
	args := m.Called(ctx, parent, parentIDs, sub)
	rows, _ := args.Get(0).([]models.Row)
	return rows, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSessions_ReturnsRowsAsIs(t *testing.T) {
	store := new(MockStore)
	rows := []models.Row{
		{"id": "s1", "name": "Spring"},
		{"id": "s2", "name": "Winter", "endDate": "2025-01-10T00:00:00Z"},
	}
	store.On("Fetch", mock.Anything, "sessionConfigs").Return(rows, nil)

	got, err := New(store, discardLogger()).Sessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestTrainings_AnnotatesLevelAndSorts(t *testing.T) {
	store := new(MockStore)
	store.On("Fetch", mock.Anything, "levels").Return([]models.Row{
		{"id": "lvl-b"},
		{"id": "lvl-a"},
	}, nil)
	store.On("FetchNested", mock.Anything, "levels", []string{"lvl-b", "lvl-a"}, "trainings").Return([]models.Row{
		{"id": "t1", "parentUid": "lvl-b", "day_of_week": "monday", "start_time": "18:00"},
		{"id": "t2", "parentUid": "lvl-a", "day_of_week": "tuesday", "start_time": "10:00"},
		{"id": "t3", "parentUid": "lvl-a", "day_of_week": "monday", "start_time": "19:00"},
		{"id": "t4", "parentUid": "lvl-a", "day_of_week": "monday", "start_time": "17:00"},
		{"id": "t5", "parentUid": "lvl-a"},
	}, nil)

	got, err := New(store, discardLogger()).Trainings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 5)

	order := make([]string, 0, len(got))
	for _, row := range got {
		order = append(order, row.ID())
		assert.NotContains(t, row, "parentUid")
	}
	// уровень, затем день недели, затем время; строки без ключа в конце уровня
	assert.Equal(t, []string{"t4", "t3", "t2", "t5", "t1"}, order)
	require.NotNil(t, got[0].Str("level"))
	assert.Equal(t, "lvl-a", *got[0].Str("level"))
}

func TestTrainings_LevelsFetchErrorPropagates(t *testing.T) {
	store := new(MockStore)
	store.On("Fetch", mock.Anything, "levels").Return(nil, storage.ErrUnavailable)

	_, err := New(store, discardLogger()).Trainings(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}
