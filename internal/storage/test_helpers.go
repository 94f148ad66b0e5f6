package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для наполнения документного хранилища
// тестовыми данными.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateDocument кладет документ в коллекцию по логическому пути.
func (f *TestDataFactory) CreateDocument(t *testing.T, path, docID string, doc map[string]any) {
	t.Helper()
	body, err := json.Marshal(doc)
	require.NoError(t, err)
	_, err = f.storage.DB.Exec(`INSERT INTO documents (collection_path, doc_id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection_path, doc_id) DO UPDATE SET data = EXCLUDED.data`,
		path, docID, body)
	require.NoError(t, err)
}

// CreateParent создает документ родителя в коллекции users.
func (f *TestDataFactory) CreateParent(t *testing.T, uid, firstName, lastName, email string) {
	t.Helper()
	f.CreateDocument(t, "users", uid, map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
	})
}

// CreateChild создает документ ребёнка в подколлекции users/{uid}/children.
func (f *TestDataFactory) CreateChild(t *testing.T, parentUID, childID, firstName, lastName string) {
	t.Helper()
	f.CreateDocument(t, "users/"+parentUID+"/children", childID, map[string]any{
		"firstName": firstName,
		"lastName":  lastName,
	})
}

// CreatePurchase создает документ покупки с датой в формате Firestore-секунд.
func (f *TestDataFactory) CreatePurchase(t *testing.T, id, userID, childID, status string, amount float64, createdAtSeconds int64) {
	t.Helper()
	f.CreateDocument(t, "purchases", id, map[string]any{
		"userId":      userID,
		"childId":     childID,
		"status":      status,
		"finalAmount": amount,
		"createdAt":   map[string]any{"_seconds": createdAtSeconds},
	})
}
