// Package list реализует HTTP-обработчик журналов активности участников.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/chops-club/membership-dashboard/internal/http/response"
	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/models"
	"github.com/chops-club/membership-dashboard/internal/services/activity"
)

// Service описывает интерфейс сервиса журналов активности.
type Service interface {
	List(ctx context.Context, kind string) ([]models.Row, error)
}

// Handler обрабатывает HTTP-запросы журналов активности.
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
// @Summary Журнал активности
// @Description Возвращает журнал указанного вида по всем участникам, свежие записи первыми.
// @Tags Activity
// @Produce  json
// @Param kind path string true "Вид журнала" Enums(exceedances, inscriptions, participations)
// @Success 200 {object} map[string]any "Записи журнала"
// @Failure 400 {object} response.ErrorResponse "Неизвестный вид журнала"
// @Failure 500 {object} response.ErrorResponse "Ошибка загрузки журнала"
// @Security BearerAuth
// @Router /activity/{kind} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activity.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	kind := chi.URLParam(r, "kind")
	entries, err := h.service.List(r.Context(), kind)
	if err != nil {
		if errors.Is(err, activity.ErrUnknownKind) {
			log.Error("unknown activity kind", slog.String("kind", kind))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown activity kind"))
			return
		}
		log.Error("failed to list activity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list activity"))
		return
	}

	log.Info("activity listed", slog.String("kind", kind), slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"kind":    kind,
		"count":   len(entries),
		"entries": entries,
	}))
}
