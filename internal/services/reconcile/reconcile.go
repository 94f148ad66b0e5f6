// Package reconcile собирает сводную таблицу членов клуба: объединяет
// записи родителей и детей в одну схему, прикрепляет к каждому участнику
// его последнюю покупку и данные сезона этой покупки.
package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/chops-club/membership-dashboard/internal/models"
)

// BuildInput — сырые коллекции, загруженные адаптером хранилища за один
// снимок: родители, дети (с аннотацией parentUid), покупки и сезоны.
type BuildInput struct {
	Parents   []models.Row
	Children  []models.Row
	Purchases []models.Row
	Sessions  []models.Row
}

// AvatarResolver превращает ссылку на изображение из документа в доступный URL.
type AvatarResolver interface {
	Resolve(ref *string) string
}

// Build строит по одной строке ReconciledMember на каждого участника.
// Функция чистая и детерминированная: одинаковый снимок входных коллекций
// дает побайтово одинаковую таблицу независимо от порядка выборки покупок.
func Build(in BuildInput, avatars AvatarResolver, now time.Time) ([]models.ReconciledMember, error) {
	const op = "reconcile.Build"

	// шаг 1-2: нормализация и объединение, родители раньше детей
	people := make([]models.Person, 0, len(in.Parents)+len(in.Children))
	for _, row := range in.Parents {
		people = append(people, personFromParent(row))
	}
	for _, row := range in.Children {
		people = append(people, personFromChild(row))
	}

	// шаг 3: последняя покупка в каждой партиции (владелец, ребёнок)
	latest := make(map[string]models.Purchase)
	for _, row := range in.Purchases {
		p := purchaseFromRow(row)
		current, ok := latest[p.Key()]
		if !ok || morePrecedent(p, current) {
			latest[p.Key()] = p
		}
	}

	sessions := make(map[string]models.Session, len(in.Sessions))
	for _, row := range in.Sessions {
		s := sessionFromRow(row)
		sessions[s.ID] = s
	}

	members := make([]models.ReconciledMember, 0, len(people))
	for _, person := range people {
		member := models.ReconciledMember{
			ID:               person.ID,
			Role:             person.Role,
			ParentUID:        person.ParentUID,
			FullName:         fullName(person),
			Email:            person.Email,
			Phone:            person.Phone,
			Address:          person.Address,
			BirthDate:        person.BirthDate,
			AvatarURL:        avatars.Resolve(person.ImageRef),
			IsAdmin:          person.IsAdmin,
			IsCoach:          person.IsCoach,
			IsStudent:        person.IsStudent,
			IsStudentPending: person.IsStudentPending,
		}

		// шаг 4: ключ участника смотрит в ту же партицию, что и покупки
		childKey := ""
		if person.Role == models.RoleChild {
			childKey = person.ID
		}
		purchase, ok := latest[person.ParentUID+"\x00"+childKey]
		if ok {
			member.PurchaseID = &purchase.ID
			member.Status = purchase.Status
			member.Amount = purchase.Amount()
			member.PaymentMethod = purchase.PaymentMethod
			member.MembershipID = purchase.MembershipID
			member.SessionID = purchase.SessionID
			member.PurchasedAt = purchase.CreatedAt
		}

		// шаг 5: сезон покупки и оставшиеся дни
		if member.SessionID != nil {
			if session, found := sessions[*member.SessionID]; found {
				member.SessionName = session.Name
				end, err := sessionEnd(session.EndDate)
				if err != nil {
					return nil, fmt.Errorf("%s: session %s: %w", op, session.ID, err)
				}
				if end != nil {
					days := daysLeft(*end, now)
					member.DaysLeft = &days
				}
			}
		}

		members = append(members, member)
	}
	return members, nil
}

// morePrecedent сообщает, вытесняет ли покупка a текущего кандидата b
// в своей партиции: более поздняя дата создания выигрывает, известная
// дата выигрывает у неизвестной, при равенстве (включая обе неизвестные)
// побеждает меньший идентификатор документа.
func morePrecedent(a, b models.Purchase) bool {
	switch {
	case a.CreatedAt == nil && b.CreatedAt == nil:
		return a.ID < b.ID
	case a.CreatedAt == nil:
		return false
	case b.CreatedAt == nil:
		return true
	case a.CreatedAt.Equal(*b.CreatedAt):
		return a.ID < b.ID
	default:
		return a.CreatedAt.After(*b.CreatedAt)
	}
}

// fullName склеивает имя и фамилию, пропуская неизвестные части:
// отсутствующая фамилия не оставляет хвостового пробела и не
// превращается в литерал «неизвестно».
func fullName(p models.Person) string {
	first, last := "", ""
	if p.FirstName != nil {
		first = *p.FirstName
	}
	if p.LastName != nil {
		last = *p.LastName
	}
	return strings.TrimSpace(first + " " + last)
}
