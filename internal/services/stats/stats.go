// Package stats считает агрегаты обзорной страницы панели: количество
// родителей, детей и покупок, выручку по оплаченным покупкам и динамику
// регистраций по месяцам. Агрегаты кешируются в redis, потому что
// обзорная страница открывается чаще, чем меняются данные.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/chops-club/membership-dashboard/internal/lib/sl"
	"github.com/chops-club/membership-dashboard/internal/models"
)

const cacheKey = "stats:overview"

// Store загружает коллекции документов для подсчета агрегатов.
type Store interface {
	Fetch(ctx context.Context, path string) ([]models.Row, error)
	FetchNested(ctx context.Context, parent string, parentIDs []string, sub string) ([]models.Row, error)
}

// Cacher кеширует агрегаты между запросами.
type Cacher interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// MonthlySignups количество регистраций родителей за один календарный месяц.
type MonthlySignups struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Overview агрегаты обзорной страницы.
type Overview struct {
	Parents        int              `json:"parents"`
	Children       int              `json:"children"`
	Purchases      int              `json:"purchases"`
	PaidPurchases  int              `json:"paid_purchases"`
	PaidRevenue    float64          `json:"paid_revenue"`
	SignupsByMonth []MonthlySignups `json:"signups_by_month"`
}

// Service сервисный слой агрегатов.
type Service struct {
	store Store
	cache Cacher
	ttl   time.Duration
	log   *slog.Logger
}

// New создает сервис агрегатов.
func New(store Store, c Cacher, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{store: store, cache: c, ttl: ttl, log: log}
}

// Overview возвращает агрегаты обзорной страницы, при возможности из кеша.
// Ошибки кеша не фатальны: агрегаты пересчитываются из хранилища.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	const op = "services.stats.Overview"

	var cached Overview
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("stats cache read failed", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	overview, err := s.build(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(cacheKey, overview, s.ttl); err != nil {
		s.log.Warn("stats cache write failed", sl.Err(err))
	}
	return overview, nil
}

func (s *Service) build(ctx context.Context) (*Overview, error) {
	parents, err := s.store.Fetch(ctx, "users")
	if err != nil {
		return nil, err
	}
	parentIDs := make([]string, 0, len(parents))
	for _, p := range parents {
		parentIDs = append(parentIDs, p.ID())
	}
	children, err := s.store.FetchNested(ctx, "users", parentIDs, "children")
	if err != nil {
		return nil, err
	}
	purchases, err := s.store.Fetch(ctx, "purchases")
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Parents:   len(parents),
		Children:  len(children),
		Purchases: len(purchases),
	}
	for _, row := range purchases {
		status := row.Str("status")
		if status == nil || *status != "paid" {
			continue
		}
		overview.PaidPurchases++
		p := models.Purchase{
			FinalAmount: row.Float("finalAmount"),
			BasePrice:   row.Float("basePrice"),
		}
		if amount := p.Amount(); amount != nil {
			overview.PaidRevenue += *amount
		}
	}
	overview.SignupsByMonth = signupsByMonth(parents)
	return overview, nil
}

// signupsByMonth группирует регистрации родителей по календарным месяцам
// в формате YYYY-MM, по возрастанию месяца. Регистрации без даты не входят.
func signupsByMonth(parents []models.Row) []MonthlySignups {
	counts := make(map[string]int)
	for _, row := range parents {
		t := row.Time("createdAt")
		if t == nil {
			continue
		}
		counts[t.Format("2006-01")]++
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	result := make([]MonthlySignups, 0, len(months))
	for _, m := range months {
		result = append(result, MonthlySignups{Month: m, Count: counts[m]})
	}
	return result
}
