// Package admin реализует административные действия оператора:
// отметку покупки оплаченной и подтверждение студенческого статуса.
// Успешная мутация сбрасывает снапшот сводной таблицы и публикует
// событие в журнал аудита.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/models"
)

// Mutator определяет мутации документного хранилища.
type Mutator interface {
	// MarkPurchasePaid переводит покупку в статус "paid".
	MarkPurchasePaid(ctx context.Context, purchaseID, adminUID string) error
	// ValidateStudent подтверждает студенческий статус родителя.
	ValidateStudent(ctx context.Context, userID, adminUID string) error
}

// Publisher публикует события аудита в очередь.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Invalidator сбрасывает снапшот сводной таблицы членов клуба.
type Invalidator interface {
	Invalidate()
}

// Service связывает мутации хранилища с инвалидацией кеша и аудитом.
// Сервис не проверяет бизнес-правила перед мутацией: он гарантирует лишь,
// что следующая пересборка таблицы увидит измененное состояние хранилища.
type Service struct {
	store    Mutator
	events   Publisher
	snapshot Invalidator
	log      *slog.Logger
	now      func() time.Time
}

// New создает сервис административных действий.
func New(store Mutator, events Publisher, snapshot Invalidator, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		events:   events,
		snapshot: snapshot,
		log:      log,
		now:      time.Now,
	}
}

// MarkPurchasePaid отмечает покупку оплаченной. При ErrNotFound снапшот
// не сбрасывается: хранилище не менялось.
func (s *Service) MarkPurchasePaid(ctx context.Context, purchaseID, adminUID string) error {
	if err := s.store.MarkPurchasePaid(ctx, purchaseID, adminUID); err != nil {
		return err
	}
	s.afterMutation(models.AuditActionMarkPaid, purchaseID, adminUID)
	return nil
}

// ValidateStudent подтверждает студенческий статус родителя.
func (s *Service) ValidateStudent(ctx context.Context, userID, adminUID string) error {
	if err := s.store.ValidateStudent(ctx, userID, adminUID); err != nil {
		return err
	}
	s.afterMutation(models.AuditActionValidateStudent, userID, adminUID)
	return nil
}

// afterMutation сбрасывает снапшот и публикует событие аудита.
// Публикация — fire-and-forget: сбой очереди логируется, но не
// откатывает уже выполненную мутацию.
func (s *Service) afterMutation(action, targetID, adminUID string) {
	s.snapshot.Invalidate()

	event := models.AuditEvent{
		ID:         uuid.New().String(),
		Action:     action,
		TargetID:   targetID,
		AdminUID:   adminUID,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Publish("admin.action", event); err != nil {
		s.log.Warn("failed to publish audit event",
			slog.String("action", action),
			slog.String("target_id", targetID),
			sl.Err(err))
		return
	}
	s.log.Info("admin action applied",
		slog.String("action", action),
		slog.String("target_id", targetID),
		slog.String("admin_uid", adminUID))
}
