package models

import "time"

// Типы административных действий, попадающих в журнал аудита.
const (
	AuditActionMarkPaid        = "markPaid"
	AuditActionValidateStudent = "validateStudent"
)

// AuditEvent — событие административного действия, публикуемое в очередь
// после успешной мутации хранилища и сохраняемое воркером audit-logger.
type AuditEvent struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	TargetID   string    `json:"target_id"`
	AdminUID   string    `json:"admin_uid"`
	OccurredAt time.Time `json:"occurred_at"`
}
