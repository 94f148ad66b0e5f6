package models

import "time"

// ReconciledMember — одна строка сводной таблицы членов клуба:
// участник, его последняя покупка и сезон этой покупки.
// Строится заново при каждой пересборке таблицы и не изменяется после.
//
// Поля-указатели сериализуются в null, когда значение неизвестно;
// null и пустая строка/ноль в выдаче не совпадают намеренно.
type ReconciledMember struct {
	ID               string     `json:"id"`
	Role             Role       `json:"type"`
	ParentUID        string     `json:"parentUid"`
	FullName         string     `json:"full_name"`
	Email            *string    `json:"email"`
	Phone            *string    `json:"phone_number"`
	Address          *string    `json:"address"`
	BirthDate        *string    `json:"birth_date"`
	AvatarURL        string     `json:"avatar"`
	IsAdmin          bool       `json:"isAdmin"`
	IsCoach          bool       `json:"isCoach"`
	IsStudent        bool       `json:"isStudent"`
	IsStudentPending bool       `json:"isStudentPending"`
	PurchaseID       *string    `json:"purchaseId"`
	Status           *string    `json:"status"`
	Amount           *float64   `json:"amount"`
	PaymentMethod    *string    `json:"paymentMethod"`
	MembershipID     *string    `json:"membershipId"`
	SessionID        *string    `json:"sessionId"`
	PurchasedAt      *time.Time `json:"purchasedAt"`
	SessionName      *string    `json:"session_name"`
	DaysLeft         *int       `json:"days_left"`
}
