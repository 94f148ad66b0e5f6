package member

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chops-club/membership-dashboard/internal/cache"
	"github.com/chops-club/membership-dashboard/internal/models"
	"github.com/chops-club/membership-dashboard/internal/storage"
)

// MockStore реализует интерфейс member.Store
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

type passthroughAvatars struct{}

func (passthroughAvatars) Resolve(ref *string) string {
	if ref == nil {
		return "default"
	}
	return *ref
}

func newService(store *MockStore) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	snapshot := cache.NewMemberSnapshot[models.ReconciledMember](time.Minute)
	return New(store, passthroughAvatars{}, snapshot, logger)
}

func setupHappyStore() *MockStore {
	store := &MockStore{}
	store.On("Fetch", mock.Anything, "users").Return([]models.Row{
		{"id": "p1", "first_name": "Ana", "email": "ana@example.com"},
	}, nil).Once()
	store.On("FetchNested", mock.Anything, "users", []string{"p1"}, "children").Return([]models.Row{
		{"id": "c1", "parentUid": "p1", "firstName": "Lea"},
	}, nil).Once()
	store.On("Fetch", mock.Anything, "purchases").Return([]models.Row{
		{"id": "pur1", "userId": "p1", "childId": "", "status": "paid",
			"finalAmount": float64(50), "createdAt._seconds": float64(100)},
	}, nil).Once()
	store.On("Fetch", mock.Anything, "sessionConfigs").Return([]models.Row(nil), nil).Once()
	return store
}

func TestList_BuildsAndCaches(t *testing.T) {
	store := setupHappyStore()
	service := newService(store)

	members, err := service.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Ana", members[0].FullName)
	assert.Equal(t, "Lea", members[1].FullName)

	// повторный вызов обслуживается из снапшота: моки с .Once() не падают
	again, err := service.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, members, again)

	store.AssertExpectations(t)
}

func TestList_FilterByRole(t *testing.T) {
	store := setupHappyStore()
	service := newService(store)

	members, err := service.List(context.Background(), Filter{Roles: []string{"child"}})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleChild, members[0].Role)
}

func TestList_FilterByStatusNone(t *testing.T) {
	store := setupHappyStore()
	service := newService(store)

	// ребёнок без покупки проходит только через фильтр none
	members, err := service.List(context.Background(), Filter{Statuses: []string{StatusNone}})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "c1", members[0].ID)
	assert.Nil(t, members[0].Status)
}

func TestList_FilterByQuery(t *testing.T) {
	store := setupHappyStore()
	service := newService(store)

	members, err := service.List(context.Background(), Filter{Query: "ana@"})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "p1", members[0].ID)
}

func TestList_FetchErrorAbortsBuild(t *testing.T) {
	store := &MockStore{}
	store.On("Fetch", mock.Anything, "users").Return([]models.Row(nil), storage.ErrUnavailable)
	service := newService(store)

	_, err := service.List(context.Background(), Filter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestRefresh_InvalidatesAndRebuilds(t *testing.T) {
	store := setupHappyStore()
	service := newService(store)

	_, err := service.List(context.Background(), Filter{})
	require.NoError(t, err)

	// после Refresh хранилище читается заново
	store.On("Fetch", mock.Anything, "users").Return([]models.Row{
		{"id": "p1", "first_name": "Ana"},
		{"id": "p2", "first_name": "Boris"},
	}, nil).Once()
	store.On("FetchNested", mock.Anything, "users", []string{"p1", "p2"}, "children").
		Return([]models.Row(nil), nil).Once()
	store.On("Fetch", mock.Anything, "purchases").Return([]models.Row(nil), nil).Once()
	store.On("Fetch", mock.Anything, "sessionConfigs").Return([]models.Row(nil), nil).Once()

	members, err := service.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, members, 2)

	store.AssertExpectations(t)
}
