package admin

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chops-club/membership-dashboard/internal/models"
	"github.com/chops-club/membership-dashboard/internal/storage"
)

// MockMutator реализует интерфейс admin.Mutator
type MockMutator struct {
	mock.Mock
}

func (m *MockMutator) MarkPurchasePaid(ctx context.Context, purchaseID, adminUID string) error {
	args := m.Called(ctx, purchaseID, adminUID)
	return args.Error(0)
}

func (m *MockMutator) ValidateStudent(ctx context.Context, userID, adminUID string) error {
	args := m.Called(ctx, userID, adminUID)
	return args.Error(0)
}

// MockPublisher реализует интерфейс admin.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

type countingInvalidator struct {
	calls atomic.Int32
}

func (c *countingInvalidator) Invalidate() { c.calls.Add(1) }

func newService(store *MockMutator, events *MockPublisher, inv *countingInvalidator) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(store, events, inv, logger)
}

func TestMarkPurchasePaid_Success(t *testing.T) {
	store := &MockMutator{}
	events := &MockPublisher{}
	inv := &countingInvalidator{}

	store.On("MarkPurchasePaid", mock.Anything, "pur1", "admin-1").Return(nil)
	events.On("Publish", "admin.action", mock.MatchedBy(func(msg any) bool {
		event, ok := msg.(models.AuditEvent)
		return ok &&
			event.Action == models.AuditActionMarkPaid &&
			event.TargetID == "pur1" &&
			event.AdminUID == "admin-1" &&
			event.ID != ""
	})).Return(nil)

	service := newService(store, events, inv)
	err := service.MarkPurchasePaid(context.Background(), "pur1", "admin-1")

	require.NoError(t, err)
	assert.Equal(t, int32(1), inv.calls.Load())
	store.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestMarkPurchasePaid_NotFound_KeepsSnapshot(t *testing.T) {
	store := &MockMutator{}
	events := &MockPublisher{}
	inv := &countingInvalidator{}

	store.On("MarkPurchasePaid", mock.Anything, "missing", "admin-1").
		Return(storage.ErrNotFound)

	service := newService(store, events, inv)
	err := service.MarkPurchasePaid(context.Background(), "missing", "admin-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, int32(0), inv.calls.Load())
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestValidateStudent_Success(t *testing.T) {
	store := &MockMutator{}
	events := &MockPublisher{}
	inv := &countingInvalidator{}

	store.On("ValidateStudent", mock.Anything, "p1", "admin-1").Return(nil)
	events.On("Publish", "admin.action", mock.MatchedBy(func(msg any) bool {
		event, ok := msg.(models.AuditEvent)
		return ok && event.Action == models.AuditActionValidateStudent && event.TargetID == "p1"
	})).Return(nil)

	service := newService(store, events, inv)
	err := service.ValidateStudent(context.Background(), "p1", "admin-1")

	require.NoError(t, err)
	assert.Equal(t, int32(1), inv.calls.Load())
}

func TestMarkPurchasePaid_PublishFailureIsNotFatal(t *testing.T) {
	store := &MockMutator{}
	events := &MockPublisher{}
	inv := &countingInvalidator{}

	store.On("MarkPurchasePaid", mock.Anything, "pur1", "admin-1").Return(nil)
	events.On("Publish", "admin.action", mock.Anything).Return(errors.New("broker down"))

	service := newService(store, events, inv)
	err := service.MarkPurchasePaid(context.Background(), "pur1", "admin-1")

	// мутация выполнена: ошибка очереди не возвращается вызывающему
	require.NoError(t, err)
	assert.Equal(t, int32(1), inv.calls.Load())
}
