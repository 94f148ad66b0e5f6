package models

// Session — запись периода записи (сезона) из коллекции sessionConfigs.
// EndDate хранится сырым значением документа: разбор даты откладывается
// до вычисления оставшихся дней, где отличие «не распарсилось» от
// «нет зоны» имеет значение.
type Session struct {
	ID      string
	Name    *string
	EndDate any
}
