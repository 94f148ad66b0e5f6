package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chops-club/membership-dashboard/internal/models"
)

// lastAdminAction — форма аудиторской отметки, проставляемой на документе
// при административном действии. Совпадает для обеих операций.
type lastAdminAction struct {
	Type     string `json:"type"`
	AdminUID string `json:"adminUid"`
	Date     string `json:"date"`
}

// MarkPurchasePaid переводит покупку в статус "paid", проставляет updatedAt
// и lastAdminAction. Возвращает ErrNotFound, если документа больше нет.
func (s *Storage) MarkPurchasePaid(ctx context.Context, purchaseID, adminUID string) error {
	const op = "storage.MarkPurchasePaid"

	patch := map[string]any{
		"status":    models.PurchaseStatusPaid,
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
		"lastAdminAction": lastAdminAction{
			Type:     models.AuditActionMarkPaid,
			AdminUID: adminUID,
			Date:     time.Now().UTC().Format(time.RFC3339),
		},
	}
	return s.patchDocument(ctx, op, "purchases", purchaseID, patch)
}

// ValidateStudent снимает с родителя флаг ожидания студенческого статуса
// и выставляет isStudent, с той же формой аудиторской отметки.
func (s *Storage) ValidateStudent(ctx context.Context, userID, adminUID string) error {
	const op = "storage.ValidateStudent"

	patch := map[string]any{
		"isStudentPending": false,
		"isStudent":        true,
		"lastAdminAction": lastAdminAction{
			Type:     models.AuditActionValidateStudent,
			AdminUID: adminUID,
			Date:     time.Now().UTC().Format(time.RFC3339),
		},
	}
	return s.patchDocument(ctx, op, "users", userID, patch)
}

func (s *Storage) patchDocument(ctx context.Context, op, path, docID string, patch map[string]any) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE documents SET data = data || $1::jsonb
			  WHERE collection_path = $2 AND doc_id = $3`
	result, err := s.DB.ExecContext(ctx, query, body, path, docID)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %s/%s: %w", op, path, docID, ErrNotFound)
	}
	return nil
}
