// Package refresh реализует HTTP-обработчик принудительной пересборки
// сводной таблицы членов клуба.
package refresh

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

// Service описывает интерфейс пересборки сводной таблицы.
type Service interface {
	Refresh(ctx context.Context) ([]models.ReconciledMember, error)
}

// Handler обрабатывает HTTP-запросы пересборки таблицы.
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
// @Summary Пересборка сводной таблицы
// @Description Сбрасывает снапшот и немедленно собирает таблицу заново из хранилища.
// @Tags Members
// @Produce  json
// @Success 200 {object} map[string]any "Таблица пересобрана"
// @Failure 500 {object} response.ErrorResponse "Ошибка пересборки"
// @Security BearerAuth
// @Router /members/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	members, err := h.service.Refresh(r.Context())
	if err != nil {
		log.Error("failed to refresh member table", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to refresh member table"))
		return
	}

	log.Info("member table refreshed", slog.Int("count", len(members)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": len(members),
	}))
}
