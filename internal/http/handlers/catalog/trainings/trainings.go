// Package trainings реализует HTTP-обработчик расписания тренировок по уровням.
package trainings

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

// Service описывает интерфейс справочника тренировок.
type Service interface {
	Trainings(ctx context.Context) ([]models.Row, error)
}

// Handler обрабатывает HTTP-запросы расписания тренировок.
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
// @Summary Расписание тренировок
// @Description Возвращает тренировки всех уровней, отсортированные по уровню, дню недели и времени начала.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Список тренировок"
// @Failure 500 {object} response.ErrorResponse "Ошибка загрузки тренировок"
// @Security BearerAuth
// @Router /trainings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.trainings"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	trainings, err := h.service.Trainings(r.Context())
	if err != nil {
		log.Error("failed to list trainings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list trainings"))
		return
	}

	log.Info("trainings listed", slog.Int("count", len(trainings)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":     len(trainings),
		"trainings": trainings,
	}))
}
