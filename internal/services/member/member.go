// Package member реализует сервис сводной таблицы членов клуба:
// загрузку коллекций из хранилища, пересборку таблицы через reconcile
// и выдачу отфильтрованных строк презентационному слою.
package member

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/chops-club/membership-dashboard/internal/cache"
	"github.com/chops-club/membership-dashboard/internal/models"
	"github.com/chops-club/membership-dashboard/internal/services/reconcile"
)

// Store определяет методы адаптера хранилища, нужные сервису.
type Store interface {
	// Fetch возвращает все документы коллекции по логическому пути.
	Fetch(ctx context.Context, path string) ([]models.Row, error)
	// FetchNested выбирает подколлекцию {parent}/{id}/{sub} для каждого родителя.
	FetchNested(ctx context.Context, parent string, parentIDs []string, sub string) ([]models.Row, error)
}

// Filter — фильтры списка членов. Пустые срезы и строки пропускают всё.
// StatusNone в Statuses отбирает участников вообще без покупки.
type Filter struct {
	Roles    []string
	Statuses []string
	Query    string
}

// StatusNone — признак «без покупки» в фильтре по статусу оплаты.
const StatusNone = "none"

// Service собирает и кеширует сводную таблицу членов клуба.
type Service struct {
	store    Store
	avatars  reconcile.AvatarResolver
	snapshot *cache.MemberSnapshot[models.ReconciledMember]
	log      *slog.Logger
	now      func() time.Time
}

// New создает сервис членов клуба.
func New(store Store, avatars reconcile.AvatarResolver, snapshot *cache.MemberSnapshot[models.ReconciledMember], log *slog.Logger) *Service {
	return &Service{
		store:    store,
		avatars:  avatars,
		snapshot: snapshot,
		log:      log,
		now:      time.Now,
	}
}

// List возвращает сводную таблицу, пересобирая её при истекшем или
// сброшенном снапшоте, и применяет фильтры к готовым строкам.
func (s *Service) List(ctx context.Context, filter Filter) ([]models.ReconciledMember, error) {
	members, err := s.snapshot.GetOrBuild(ctx, s.build)
	if err != nil {
		return nil, err
	}
	return applyFilter(members, filter), nil
}

// Refresh сбрасывает снапшот и немедленно собирает таблицу заново.
func (s *Service) Refresh(ctx context.Context) ([]models.ReconciledMember, error) {
	s.snapshot.Invalidate()
	return s.snapshot.GetOrBuild(ctx, s.build)
}

// build загружает снимок всех коллекций и прогоняет его через reconcile.
// Любая ошибка выборки прерывает сборку целиком: частичной таблицы не бывает.
func (s *Service) build(ctx context.Context) ([]models.ReconciledMember, error) {
	started := time.Now()

	parents, err := s.store.Fetch(ctx, "users")
	if err != nil {
		return nil, err
	}

	parentIDs := make([]string, 0, len(parents))
	for _, row := range parents {
		parentIDs = append(parentIDs, row.ID())
	}
	children, err := s.store.FetchNested(ctx, "users", parentIDs, "children")
	if err != nil {
		return nil, err
	}

	purchases, err := s.store.Fetch(ctx, "purchases")
	if err != nil {
		return nil, err
	}
	sessions, err := s.store.Fetch(ctx, "sessionConfigs")
	if err != nil {
		return nil, err
	}

	members, err := reconcile.Build(reconcile.BuildInput{
		Parents:   parents,
		Children:  children,
		Purchases: purchases,
		Sessions:  sessions,
	}, s.avatars, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info("member table rebuilt",
		slog.Int("members", len(members)),
		slog.Duration("took", time.Since(started)))
	return members, nil
}

func applyFilter(members []models.ReconciledMember, filter Filter) []models.ReconciledMember {
	result := make([]models.ReconciledMember, 0, len(members))
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	for _, m := range members {
		if len(filter.Roles) > 0 && !containsString(filter.Roles, string(m.Role)) {
			continue
		}
		if len(filter.Statuses) > 0 && !statusMatches(filter.Statuses, m.Status) {
			continue
		}
		if query != "" && !queryMatches(m, query) {
			continue
		}
		result = append(result, m)
	}
	return result
}

// statusMatches различает «без покупки» и конкретный статус: nil-статус
// проходит только через явный StatusNone.
func statusMatches(statuses []string, status *string) bool {
	if status == nil {
		return containsString(statuses, StatusNone)
	}
	return containsString(statuses, *status)
}

func queryMatches(m models.ReconciledMember, query string) bool {
	if strings.Contains(strings.ToLower(m.FullName), query) {
		return true
	}
	return m.Email != nil && strings.Contains(strings.ToLower(*m.Email), query)
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
