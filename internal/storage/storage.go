// Package storage реализует адаптер документного хранилища поверх PostgreSQL.
// Коллекции исходной базы переносятся в таблицу documents: путь коллекции,
// идентификатор документа и его тело в JSONB. Адаптер отдаёт документы
// «расплющенными» строками и выполняет точечные административные мутации.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrUnavailable — хранилище недоступно: сеть, авторизация или таймаут.
	// Текущая пересборка сводной таблицы прерывается целиком.
	ErrUnavailable = errors.New("record store unavailable")
	// ErrNotFound — административная мутация адресует несуществующий документ.
	ErrNotFound = errors.New("document not found")
)

// Storage инкапсулирует соединение с PostgreSQL и параметры выборки:
// таймаут на один запрос и ширину параллельной выборки подколлекций.
type Storage struct {
	DB      *sql.DB
	timeout time.Duration
	workers int
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string, timeout time.Duration, workers int) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	if workers < 1 {
		workers = 1
	}

	return &Storage{
		DB:      db,
		timeout: timeout,
		workers: workers,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'documents'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table documents missing or query error: %w", err)
	}
	return nil
}

func (s *Storage) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
