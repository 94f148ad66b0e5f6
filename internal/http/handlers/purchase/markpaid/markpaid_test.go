package markpaid

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chops-club/membership-dashboard/internal/http/middlewarectx"
	"github.com/chops-club/membership-dashboard/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) MarkPurchasePaid(ctx context.Context, purchaseID, adminUID string) error {
	args := m.Called(ctx, purchaseID, adminUID)
	return args.Error(0)
}

func TestMarkPaidHandler(t *testing.T) {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	logger := slog.New(h)

	tests := []struct {
		name       string
		purchaseID string
		mockSetup  func(*MockService)
		wantStatus int
	}{
		{
			name:       "успешная отметка",
			purchaseID: "pur-1",
			mockSetup: func(m *MockService) {
				m.On("MarkPurchasePaid", mock.Anything, "pur-1", "operator").Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "покупка не найдена",
			purchaseID: "ghost",
			mockSetup: func(m *MockService) {
				m.On("MarkPurchasePaid", mock.Anything, "ghost", "operator").
					Return(storage.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "хранилище недоступно",
			purchaseID: "pur-1",
			mockSetup: func(m *MockService) {
				m.On("MarkPurchasePaid", mock.Anything, "pur-1", "operator").
					Return(storage.ErrUnavailable).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.mockSetup(service)
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/purchases/"+tt.purchaseID+"/mark-paid", nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.purchaseID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.User, "operator")
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
