// Package catalog отдает справочные коллекции панели: сезоны и расписание
// тренировок по уровням. Данные справочников меняются редко и читаются
// напрямую из хранилища без снапшот-кеша.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/chops-club/membership-dashboard/internal/models"
)

// Store загружает коллекции документов справочников.
type Store interface {
	Fetch(ctx context.Context, path string) ([]models.Row, error)
	FetchNested(ctx context.Context, parent string, parentIDs []string, sub string) ([]models.Row, error)
}

// Service сервисный слой справочников.
type Service struct {
	store Store
	log   *slog.Logger
}

// New создает сервис справочников.
func New(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Sessions возвращает список сезонов как есть.
func (s *Service) Sessions(ctx context.Context) ([]models.Row, error) {
	const op = "services.catalog.Sessions"
	rows, err := s.store.Fetch(ctx, "sessionConfigs")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

// Trainings возвращает тренировки всех уровней одним списком. Каждая строка
// помечена полем level с идентификатором уровня, список отсортирован по
// уровню, дню недели и времени начала.
func (s *Service) Trainings(ctx context.Context) ([]models.Row, error) {
	const op = "services.catalog.Trainings"

	levels, err := s.store.Fetch(ctx, "levels")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	levelIDs := make([]string, 0, len(levels))
	for _, lvl := range levels {
		levelIDs = append(levelIDs, lvl.ID())
	}

	rows, err := s.store.FetchNested(ctx, "levels", levelIDs, "trainings")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// пометка родителя у тренировок называется level, а не parentUid
	for _, row := range rows {
		row["level"] = row["parentUid"]
		delete(row, "parentUid")
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range []string{"level", "day_of_week", "start_time"} {
			a, b := rows[i].Str(key), rows[j].Str(key)
			if c := compareMissingLast(a, b); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return rows, nil
}

// compareMissingLast сравнивает значения ключа сортировки, помещая
// отсутствующие значения в конец списка.
func compareMissingLast(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
