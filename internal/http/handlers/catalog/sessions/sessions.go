// Package sessions реализует HTTP-обработчик списка сезонов.
package sessions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/chops-club/membership-dashboard/internal/http/response"
	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/models"
)

// Service описывает интерфейс справочника сезонов.
type Service interface {
	Sessions(ctx context.Context) ([]models.Row, error)
}

// Handler обрабатывает HTTP-запросы списка сезонов.
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
// @Summary Список сезонов
// @Description Возвращает все сезоны клуба как есть.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Список сезонов"
// @Failure 500 {object} response.ErrorResponse "Ошибка загрузки сезонов"
// @Security BearerAuth
// @Router /sessions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.sessions"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessions, err := h.service.Sessions(r.Context())
	if err != nil {
		log.Error("failed to list sessions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list sessions"))
		return
	}

	log.Info("sessions listed", slog.Int("count", len(sessions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(sessions),
		"sessions": sessions,
	}))
}
