package activity

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chops-club/membership-dashboard/internal/models"
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

func TestList_SortsByDateDescending(t *testing.T) {
	store := new(MockStore)
	store.On("Fetch", mock.Anything, "users").Return([]models.Row{
		{"id": "p1"}, {"id": "p2"},
	}, nil)
	store.On("FetchNested", mock.Anything, "users", []string{"p1", "p2"}, "inscriptions").Return([]models.Row{
		{"id": "old", "parentUid": "p1", "date": "2024-01-01T00:00:00Z"},
		{"id": "undated", "parentUid": "p1"},
		{"id": "new", "parentUid": "p2", "date": "2025-01-01T00:00:00Z"},
	}, nil)

	rows, err := New(store, discardLogger()).List(context.Background(), KindInscriptions)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// датированные по убыванию, без даты в конце
	assert.Equal(t, "new", rows[0].ID())
	assert.Equal(t, "old", rows[1].ID())
	assert.Equal(t, "undated", rows[2].ID())
}

func TestList_UnknownKindRejected(t *testing.T) {
	store := new(MockStore)

	_, err := New(store, discardLogger()).List(context.Background(), "payments")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
	store.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestList_AllKindsAccepted(t *testing.T) {
	for _, kind := range []string{KindExceedances, KindInscriptions, KindParticipations} {
		t.Run(kind, func(t *testing.T) {
			store := new(MockStore)
			store.On("Fetch", mock.Anything, "users").Return([]models.Row{{"id": "p1"}}, nil)
			store.On("FetchNested", mock.Anything, "users", []string{"p1"}, kind).Return([]models.Row{}, nil)

			rows, err := New(store, discardLogger()).List(context.Background(), kind)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}
