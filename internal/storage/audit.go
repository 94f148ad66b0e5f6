package storage

import (
	"context"
	"fmt"

	"github.com/chops-club/membership-dashboard/internal/models"
)

// InsertAuditRecord сохраняет событие административного действия в журнал.
// Повторная доставка того же события из очереди не создаёт дубликата.
func (s *Storage) InsertAuditRecord(ctx context.Context, event models.AuditEvent) error {
	const op = "storage.InsertAuditRecord"

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	query := `INSERT INTO audit_log (id, action, target_id, admin_uid, occurred_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (id) DO NOTHING`
	_, err := s.DB.ExecContext(ctx, query,
		event.ID, event.Action, event.TargetID, event.AdminUID, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	return nil
}
