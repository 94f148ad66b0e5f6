package storage

import (
	"encoding/json"

	"github.com/chops-club/membership-dashboard/internal/models"
)

// flattenDocument разбирает JSONB-тело документа в плоскую строку:
// ключи вложенных объектов соединяются точкой (createdAt._seconds),
// массивы и скаляры остаются значениями как есть.
func flattenDocument(data []byte) (models.Row, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	row := models.Row{}
	flattenInto(row, "", doc)
	return row, nil
}

func flattenInto(row models.Row, prefix string, doc map[string]any) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(row, key, nested)
			continue
		}
		row[key] = v
	}
}
