// Package audit обрабатывает события административных действий из очереди
// и записывает их в журнал аудита.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/models"
)

// Recorder сохраняет события аудита в хранилище.
type Recorder interface {
	InsertAuditRecord(ctx context.Context, event models.AuditEvent) error
}

// Service обработчик событий шины аудита.
type Service struct {
	store Recorder
	log   *slog.Logger
}

// New создает обработчик событий аудита.
func New(store Recorder, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Handle разбирает тело сообщения и записывает событие в журнал.
// Ошибка возвращает сообщение в очередь на повторную доставку,
// запись журнала идемпотентна по идентификатору события.
func (s *Service) Handle(ctx context.Context) func([]byte) error {
	const op = "services.audit.Handle"

	return func(body []byte) error {
		var event models.AuditEvent
		if err := json.Unmarshal(body, &event); err != nil {
			// битое сообщение не станет валидным при повторной доставке
			s.log.Error("malformed audit event dropped", sl.Err(err))
			return nil
		}
		if event.ID == "" {
			s.log.Error("audit event without id dropped",
				slog.String("action", event.Action))
			return nil
		}

		if err := s.store.InsertAuditRecord(ctx, event); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("audit event recorded",
			slog.String("event_id", event.ID),
			slog.String("action", event.Action),
			slog.String("target_id", event.TargetID))
		return nil
	}
}
