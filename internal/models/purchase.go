package models

import "time"

// Статусы покупки, встречающиеся в коллекции purchases.
const (
	PurchaseStatusPaid    = "paid"
	PurchaseStatusPending = "pending"
)

// Purchase — типизированная запись покупки/абонемента.
// ChildID пуст для покупок уровня родителя. CreatedAt равен nil, когда
// дата создания отсутствует или не распарсилась: такие записи при выборе
// «последней покупки» уступают записям с известной датой.
type Purchase struct {
	ID            string
	UserID        string
	ChildID       string
	Status        *string
	FinalAmount   *float64
	BasePrice     *float64
	PaymentMethod *string
	MembershipID  *string
	SessionID     *string
	PromoCode     *string
	CreatedAt     *time.Time
}

// Amount возвращает сумму покупки: finalAmount, а при его отсутствии
// basePrice. Ноль — валидная сумма и не считается отсутствием.
func (p Purchase) Amount() *float64 {
	if p.FinalAmount != nil {
		return p.FinalAmount
	}
	return p.BasePrice
}

// Key возвращает ключ партиции покупок: пара (владелец, ребёнок).
// Разделитель-нулевой байт исключает склейку соседних ключей.
func (p Purchase) Key() string {
	return p.UserID + "\x00" + p.ChildID
}
