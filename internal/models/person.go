package models

// Role тип участника: родитель (владелец учетной записи) или ребёнок.
type Role string

const (
	// RoleParent — строка из коллекции users.
	RoleParent Role = "parent"
	// RoleChild — строка из подколлекции users/{uid}/children.
	RoleChild Role = "child"
)

// Person — нормализованная запись участника после приведения полей
// родителя и ребёнка к общей схеме. Поля-указатели со значением nil
// означают «неизвестно»: поле либо отсутствует у данной роли вовсе,
// либо не заполнено в документе.
type Person struct {
	ID               string
	Role             Role
	ParentUID        string // для родителя — собственный id
	FirstName        *string
	LastName         *string
	Email            *string // только у родителей
	Phone            *string // только у родителей
	Address          *string // только у родителей
	BirthDate        *string
	ImageRef         *string // абсолютный URL или путь в хранилище
	IsAdmin          bool
	IsCoach          bool
	IsStudent        bool
	IsStudentPending bool
}
