// Package login реализует HTTP-обработчик входа оператора панели.
//
// В нём определяется структура Request для входных данных, выполняется
// декодирование JSON, валидация полей и делегирование проверки пароля
// сервису оператора. При успешном входе возвращается JSON с токеном сессии;
// в случае ошибок формируются соответствующие HTTP-ответы.
package login

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/chops-club/membership-dashboard/internal/http/response"
	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/services/operator"
)

// Request — структура входных данных для входа оператора.
type Request struct {
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс проверки пароля и выдачи токена.
type Service interface {
	Login(password string) (string, error)
}

// Handler обрабатывает HTTP-запросы входа оператора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход оператора
// @Description Проверяет пароль панели и возвращает JWT токен сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Пароль панели"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, operator.ErrInvalidPassword) {
			log.Error("login rejected")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid password"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("operator logged in")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":    token,
		"username": operator.Username,
		"role":     operator.RoleAdmin,
	}))
}
