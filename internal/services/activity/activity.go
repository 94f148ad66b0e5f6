// Package activity отдает журналы активности участников: превышения,
// записи на тренировки и посещения. Журналы лежат в подколлекциях
// каждого пользователя и собираются веерной загрузкой.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/chops-club/membership-dashboard/internal/models"
)

// Виды журналов активности, совпадают с именами подколлекций.
const (
	KindExceedances    = "exceedances"
	KindInscriptions   = "inscriptions"
	KindParticipations = "participations"
)

// ErrUnknownKind запрошен журнал, которого не существует.
var ErrUnknownKind = fmt.Errorf("unknown activity kind")

// Store загружает коллекции документов журналов.
type Store interface {
	Fetch(ctx context.Context, path string) ([]models.Row, error)
	FetchNested(ctx context.Context, parent string, parentIDs []string, sub string) ([]models.Row, error)
}

// Service сервисный слой журналов активности.
type Service struct {
	store Store
	log   *slog.Logger
}

// New создает сервис журналов.
func New(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// List возвращает журнал указанного вида по всем пользователям,
// свежие записи первыми. Записи без даты идут после датированных
// в порядке загрузки.
func (s *Service) List(ctx context.Context, kind string) ([]models.Row, error) {
	const op = "services.activity.List"

	switch kind {
	case KindExceedances, KindInscriptions, KindParticipations:
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownKind, kind)
	}

	parents, err := s.store.Fetch(ctx, "users")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	parentIDs := make([]string, 0, len(parents))
	for _, p := range parents {
		parentIDs = append(parentIDs, p.ID())
	}

	rows, err := s.store.FetchNested(ctx, "users", parentIDs, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Time("date"), rows[j].Time("date")
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return rows, nil
}
