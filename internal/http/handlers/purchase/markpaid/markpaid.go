// Package markpaid реализует HTTP-обработчик отметки покупки оплаченной.
package markpaid

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
	MarkPurchasePaid(ctx context.Context, purchaseID, adminUID string) error
}

// Handler обрабатывает HTTP-запросы отметки покупки оплаченной.
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
// @Summary Отметка покупки оплаченной
// @Description Переводит покупку в статус paid и записывает действие оператора.
// @Tags Purchases
// @Produce  json
// @Param id path string true "Идентификатор покупки"
// @Success 200 {object} map[string]any "Покупка отмечена оплаченной"
// @Failure 404 {object} response.ErrorResponse "Покупка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /purchases/{id}/mark-paid [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.purchase.markpaid"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	purchaseID := chi.URLParam(r, "id")
	if purchaseID == "" {
		log.Error("missing purchase id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing purchase id"))
		return
	}

	adminUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || adminUID == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.MarkPurchasePaid(r.Context(), purchaseID, adminUID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("purchase not found", slog.String("purchase_id", purchaseID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("purchase not found"))
			return
		}
		log.Error("failed to mark purchase paid", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark purchase paid"))
		return
	}

	log.Info("purchase marked paid", slog.String("purchase_id", purchaseID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"purchase_id": purchaseID,
	}))
}
