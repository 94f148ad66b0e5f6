package validatestudent

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

func (m *MockService) ValidateStudent(ctx context.Context, userID, adminUID string) error {
	args := m.Called(ctx, userID, adminUID)
	return args.Error(0)
}

func TestValidateStudentHandler(t *testing.T) {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	logger := slog.New(h)

	tests := []struct {
		name       string
		userID     string
		withUser   bool
		mockSetup  func(*MockService)
		wantStatus int
	}{
		{
			name:     "успешное подтверждение",
			userID:   "p1",
			withUser: true,
			mockSetup: func(m *MockService) {
				m.On("ValidateStudent", mock.Anything, "p1", "operator").Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "родитель не найден",
			userID:   "ghost",
			withUser: true,
			mockSetup: func(m *MockService) {
				m.On("ValidateStudent", mock.Anything, "ghost", "operator").
					Return(storage.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:     "хранилище недоступно",
			userID:   "p1",
			withUser: true,
			mockSetup: func(m *MockService) {
				m.On("ValidateStudent", mock.Anything, "p1", "operator").
					Return(storage.ErrUnavailable).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "нет оператора в контексте",
			userID:     "p1",
			withUser:   false,
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.mockSetup(service)
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/members/"+tt.userID+"/validate-student", nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.userID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.User, "operator")
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
