// Package list реализует HTTP-обработчик плоской таблицы покупок.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/chops-club/membership-dashboard/internal/http/response"
	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/services/purchase"
)

// Service описывает интерфейс сервиса таблицы покупок.
type Service interface {
	List(ctx context.Context) ([]purchase.View, error)
}

// Handler обрабатывает HTTP-запросы списка покупок.
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
// @Summary Таблица покупок
// @Description Возвращает все покупки с нормализованной датой, свежие первыми.
// @Tags Purchases
// @Produce  json
// @Success 200 {object} map[string]any "Список покупок"
// @Failure 500 {object} response.ErrorResponse "Ошибка загрузки покупок"
// @Security BearerAuth
// @Router /purchases [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.purchase.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	purchases, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list purchases", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list purchases"))
		return
	}

	log.Info("purchases listed", slog.Int("count", len(purchases)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":     len(purchases),
		"purchases": purchases,
	}))
}
