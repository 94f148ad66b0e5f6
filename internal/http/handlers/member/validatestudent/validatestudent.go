// Package validatestudent реализует HTTP-обработчик подтверждения
// студенческого статуса родителя.
package validatestudent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/chops-club/membership-dashboard/internal/http/middlewarectx"
	"github.com/chops-club/membership-dashboard/internal/http/response"
	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/storage"
)

// Service описывает интерфейс административного действия.
type Service interface {
	ValidateStudent(ctx context.Context, userID, adminUID string) error
}

// Handler обрабатывает HTTP-запросы подтверждения студенческого статуса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подтверждение студенческого статуса
// @Description Снимает флаг ожидания и подтверждает студенческий статус родителя.
// @Tags Members
// @Produce  json
// @Param id path string true "Идентификатор родителя"
// @Success 200 {object} map[string]any "Статус подтверждён"
// @Failure 404 {object} response.ErrorResponse "Родитель не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /members/{id}/validate-student [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.validatestudent"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")
	if userID == "" {
		log.Error("missing member id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing member id"))
		return
	}

	adminUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || adminUID == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.ValidateStudent(r.Context(), userID, adminUID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("member not found", slog.String("user_id", userID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
			return
		}
		log.Error("failed to validate student", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to validate student"))
		return
	}

	log.Info("student status validated", slog.String("user_id", userID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_id": userID,
	}))
}
