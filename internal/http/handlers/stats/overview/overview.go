// Package overview реализует HTTP-обработчик агрегатов обзорной страницы.
package overview

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/chops-club/membership-dashboard/internal/http/response"
	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/services/stats"
)

// Service описывает интерфейс сервиса агрегатов.
type Service interface {
	Overview(ctx context.Context) (*stats.Overview, error)
}

// Handler обрабатывает HTTP-запросы агрегатов обзорной страницы.
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
// @Summary Агрегаты обзорной страницы
// @Description Возвращает количества участников и покупок, выручку и динамику регистраций.
// @Tags Stats
// @Produce  json
// @Success 200 {object} map[string]any "Агрегаты"
// @Failure 500 {object} response.ErrorResponse "Ошибка подсчета агрегатов"
// @Security BearerAuth
// @Router /stats/overview [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	overview, err := h.service.Overview(r.Context())
	if err != nil {
		log.Error("failed to build overview", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build overview"))
		return
	}

	log.Info("overview served")
	render.JSON(w, r, response.StatusOKWithData(overview))
}
