package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenDocument(t *testing.T) {
	tests := []struct {
		name string
		data string
		want map[string]any
	}{
		{
			name: "плоский документ остается без изменений",
			data: `{"first_name": "Ana", "isAdmin": true, "basePrice": 50}`,
			want: map[string]any{
				"first_name": "Ana",
				"isAdmin":    true,
				"basePrice":  float64(50),
			},
		},
		{
			name: "вложенный объект дает ключи через точку",
			data: `{"createdAt": {"_seconds": 1700000000, "_nanoseconds": 0}, "status": "paid"}`,
			want: map[string]any{
				"createdAt._seconds":     float64(1700000000),
				"createdAt._nanoseconds": float64(0),
				"status":                 "paid",
			},
		},
		{
			name: "двойная вложенность",
			data: `{"lastAdminAction": {"meta": {"type": "markPaid"}}}`,
			want: map[string]any{
				"lastAdminAction.meta.type": "markPaid",
			},
		},
		{
			name: "массив остается значением",
			data: `{"tags": ["a", "b"]}`,
			want: map[string]any{
				"tags": []any{"a", "b"},
			},
		},
		{
			name: "null сохраняется как nil-значение",
			data: `{"childId": null}`,
			want: map[string]any{
				"childId": nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := flattenDocument([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, map[string]any(row))
		})
	}
}

func TestFlattenDocument_InvalidJSON(t *testing.T) {
	_, err := flattenDocument([]byte("not json"))
	assert.Error(t, err)
}
