package login

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chops-club/membership-dashboard/internal/services/operator"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	logger := slog.New(h)

	tests := []struct {
		name       string
		body       string
		mockSetup  func(*MockService)
		wantStatus int
		wantToken  string
	}{
		{
			name: "успешный вход",
			body: `{"password":"club-secret"}`,
			mockSetup: func(m *MockService) {
				m.On("Login", "club-secret").Return("jwt-token", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantToken:  "jwt-token",
		},
		{
			name: "неверный пароль",
			body: `{"password":"wrong"}`,
			mockSetup: func(m *MockService) {
				m.On("Login", "wrong").Return("", operator.ErrInvalidPassword).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "пустой пароль не проходит валидацию",
			body:       `{"password":""}`,
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "битый JSON",
			body:       `{password`,
			mockSetup:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.mockSetup(service)
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantToken != "" {
				var resp struct {
					Status string `json:"status"`
					Data   struct {
						Token string `json:"token"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, tt.wantToken, resp.Data.Token)
			}
			service.AssertExpectations(t)
		})
	}
}
