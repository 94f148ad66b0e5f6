package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemberSnapshot хранит одну собранную сводную таблицу членов клуба.
// Таблица дорогая: пересборка перечитывает все коллекции с фан-аутом
// по родителям, поэтому она строится не чаще одного раза за окно TTL
// и явно сбрасывается административными действиями.
//
// Читатели видят консистентный снимок: таблица подменяется атомарно,
// старая остается доступной, пока строится новая. Неудачная сборка
// ничего не кеширует.
type MemberSnapshot[T any] struct {
	mu    sync.Mutex
	table atomic.Pointer[snapshotEntry[T]]
	ttl   time.Duration
}

type snapshotEntry[T any] struct {
	rows    []T
	builtAt time.Time
}

// NewMemberSnapshot создает пустой снапшот-кеш с окном жизни ttl.
func NewMemberSnapshot[T any](ttl time.Duration) *MemberSnapshot[T] {
	return &MemberSnapshot[T]{ttl: ttl}
}

// GetOrBuild возвращает закешированную таблицу либо собирает новую через
// build. Параллельные вызовы не собирают таблицу дважды: сборка идет под
// мьютексом, остальные читатели в это время получают прежний снимок
// или ждут результата.
func (c *MemberSnapshot[T]) GetOrBuild(ctx context.Context, build func(ctx context.Context) ([]T, error)) ([]T, error) {
	if entry := c.table.Load(); entry != nil && !c.expired(entry) {
		return entry.rows, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry := c.table.Load(); entry != nil && !c.expired(entry) {
		return entry.rows, nil
	}

	rows, err := build(ctx)
	if err != nil {
		return nil, err
	}
	c.table.Store(&snapshotEntry[T]{rows: rows, builtAt: time.Now()})
	return rows, nil
}

// Invalidate сбрасывает снимок: следующий GetOrBuild соберет таблицу заново.
func (c *MemberSnapshot[T]) Invalidate() {
	c.table.Store(nil)
}

func (c *MemberSnapshot[T]) expired(entry *snapshotEntry[T]) bool {
	return c.ttl > 0 && time.Since(entry.builtAt) >= c.ttl
}
