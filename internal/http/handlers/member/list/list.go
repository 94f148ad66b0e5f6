// Package list реализует HTTP-обработчик выдачи сводной таблицы членов клуба
// с фильтрами по типу участника, статусу оплаты и подстроке имени или почты.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/chops-club/membership-dashboard/internal/http/response"
	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/models"
	"github.com/chops-club/membership-dashboard/internal/services/member"
)

// Service описывает интерфейс сервиса сводной таблицы.
type Service interface {
	List(ctx context.Context, filter member.Filter) ([]models.ReconciledMember, error)
}

// Handler обрабатывает HTTP-запросы списка членов клуба.
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
// @Summary Сводная таблица членов клуба
// @Description Возвращает объединённые строки родителей и детей с последней покупкой и сезоном.
// @Tags Members
// @Produce  json
// @Param type query string false "Фильтр по типу участника (parent|child), несколько через запятую"
// @Param status query string false "Фильтр по статусу оплаты, none отбирает участников без покупки"
// @Param q query string false "Подстрока имени или почты"
// @Success 200 {object} map[string]any "Список членов клуба"
// @Failure 500 {object} response.ErrorResponse "Ошибка пересборки таблицы"
// @Security BearerAuth
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := member.Filter{
		Roles:    splitParam(r.URL.Query().Get("type")),
		Statuses: splitParam(r.URL.Query().Get("status")),
		Query:    r.URL.Query().Get("q"),
	}

	members, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build member table"))
		return
	}

	log.Info("members listed", slog.Int("count", len(members)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":   len(members),
		"members": members,
	}))
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
