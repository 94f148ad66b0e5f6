// Package purchase отдает плоскую таблицу покупок с нормализованной датой,
// свежие покупки первыми.
package purchase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/chops-club/membership-dashboard/internal/models"
)

// Store загружает коллекцию покупок.
type Store interface {
	Fetch(ctx context.Context, path string) ([]models.Row, error)
}

// View одна строка таблицы покупок. Поля-указатели сериализуются в null,
// когда значение в документе отсутствует.
type View struct {
	ID            string     `json:"id"`
	UserID        *string    `json:"userId"`
	ChildID       *string    `json:"childId"`
	Status        *string    `json:"status"`
	Amount        *float64   `json:"amount"`
	PaymentMethod *string    `json:"paymentMethod"`
	MembershipID  *string    `json:"membershipId"`
	SessionID     *string    `json:"sessionId"`
	CreatedAt     *time.Time `json:"createdAt"`
}

// Service сервисный слой таблицы покупок.
type Service struct {
	store Store
	log   *slog.Logger
}

// New создает сервис таблицы покупок.
func New(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// List возвращает все покупки, свежие первыми. Покупки без даты идут после
// датированных, внутри групп порядок стабилизирован идентификатором.
func (s *Service) List(ctx context.Context) ([]View, error) {
	const op = "services.purchase.List"

	rows, err := s.store.Fetch(ctx, "purchases")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views := make([]View, 0, len(rows))
	for _, row := range rows {
		p := models.Purchase{
			FinalAmount: row.Float("finalAmount"),
			BasePrice:   row.Float("basePrice"),
		}
		views = append(views, View{
			ID:            row.ID(),
			UserID:        row.Str("userId"),
			ChildID:       row.Str("childId"),
			Status:        row.Str("status"),
			Amount:        p.Amount(),
			PaymentMethod: row.Str("paymentMethod"),
			MembershipID:  row.Str("membershipId"),
			SessionID:     row.Str("sessionId"),
			CreatedAt:     row.Time("createdAt"),
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].CreatedAt, views[j].CreatedAt
		switch {
		case a == nil && b == nil:
			return views[i].ID < views[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return views[i].ID < views[j].ID
		default:
			return a.After(*b)
		}
	})
	return views, nil
}
