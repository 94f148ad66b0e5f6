package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/chops-club/membership-dashboard/internal/models"
)

// Fetch возвращает все документы коллекции по её логическому пути.
// Отсутствующая или пустая коллекция — пустой срез без ошибки.
// Порядок строк не гарантируется.
func (s *Storage) Fetch(ctx context.Context, path string) ([]models.Row, error) {
	const op = "storage.Fetch"

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	query := `SELECT doc_id, data FROM documents WHERE collection_path = $1`
	rows, err := s.DB.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.Row
	for rows.Next() {
		var docID string
		var data []byte
		if err := rows.Scan(&docID, &data); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
		}
		row, err := flattenDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%s: document %s/%s: %w", op, path, docID, err)
		}
		row["id"] = docID
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	return result, nil
}

// FetchNested выбирает подколлекцию {parent}/{id}/{sub} для каждого
// родительского документа ограниченным пулом воркеров и помечает каждую
// строку полем parentUid. Это контекст загрузки, а не содержимое
// документа: в теле вложенных документов родительского id нет.
//
// Итоговый порядок детерминирован порядком parentIDs и не зависит от
// планировщика. Первая ошибка прерывает всю выборку.
func (s *Storage) FetchNested(ctx context.Context, parent string, parentIDs []string, sub string) ([]models.Row, error) {
	const op = "storage.FetchNested"

	results := make([][]models.Row, len(parentIDs))
	errs := make([]error, len(parentIDs))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, pid := range parentIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, pid string) {
			defer wg.Done()
			defer func() { <-sem }()

			rows, err := s.Fetch(ctx, fmt.Sprintf("%s/%s/%s", parent, pid, sub))
			if err != nil {
				errs[i] = err
				return
			}
			for _, row := range rows {
				row["parentUid"] = pid
			}
			results[i] = rows
		}(i, pid)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	var out []models.Row
	for _, rows := range results {
		out = append(out, rows...)
	}
	return out, nil
}
