package reconcile

import "github.com/chops-club/membership-dashboard/internal/models"

// personFromParent приводит строку коллекции users к общей схеме Person.
// Родитель — владелец собственной учетной записи: parentUid равен его id.
func personFromParent(row models.Row) models.Person {
	return models.Person{
		ID:               row.ID(),
		Role:             models.RoleParent,
		ParentUID:        row.ID(),
		FirstName:        row.Str("first_name"),
		LastName:         row.Str("last_name"),
		Email:            row.Str("email"),
		Phone:            row.Str("phone_number"),
		Address:          row.Str("address"),
		BirthDate:        row.Str("birth_date"),
		ImageRef:         row.Str("image_url"),
		IsAdmin:          row.Bool("isAdmin"),
		IsCoach:          row.Bool("isCoach"),
		IsStudent:        row.Bool("isStudent"),
		IsStudentPending: row.Bool("isStudentPending"),
	}
}

// personFromChild приводит строку подколлекции children к общей схеме.
// Имена полей у детских документов другие (firstName против first_name),
// а владелец берется из аннотации parentUid, проставленной адаптером при
// загрузке, — в теле документа его нет. Контактные поля у детей
// отсутствуют и остаются неизвестными, не пустыми.
func personFromChild(row models.Row) models.Person {
	parentUID, _ := row["parentUid"].(string)
	return models.Person{
		ID:               row.ID(),
		Role:             models.RoleChild,
		ParentUID:        parentUID,
		FirstName:        row.Str("firstName"),
		LastName:         row.Str("lastName"),
		BirthDate:        row.Str("birthDate"),
		ImageRef:         row.Str("photoUrl"),
		IsAdmin:          row.Bool("isAdmin"),
		IsCoach:          row.Bool("isCoach"),
		IsStudent:        row.Bool("isStudent"),
		IsStudentPending: row.Bool("isStudentPending"),
	}
}

// purchaseFromRow типизирует строку коллекции purchases. Неизвестная или
// неразборчивая дата создания — nil: такая покупка уступает покупкам
// с известной датой при выборе последней.
func purchaseFromRow(row models.Row) models.Purchase {
	userID, _ := row["userId"].(string)
	childID, _ := row["childId"].(string)
	return models.Purchase{
		ID:            row.ID(),
		UserID:        userID,
		ChildID:       childID,
		Status:        row.Str("status"),
		FinalAmount:   row.Float("finalAmount"),
		BasePrice:     row.Float("basePrice"),
		PaymentMethod: row.Str("paymentMethod"),
		MembershipID:  row.Str("membershipId"),
		SessionID:     row.Str("sessionId"),
		PromoCode:     row.Str("promoCode"),
		CreatedAt:     row.Time("createdAt"),
	}
}

// sessionFromRow типизирует строку коллекции sessionConfigs.
// endDate остается сырым значением до вычисления оставшихся дней.
func sessionFromRow(row models.Row) models.Session {
	return models.Session{
		ID:      row.ID(),
		Name:    row.Str("name"),
		EndDate: row["endDate"],
	}
}
