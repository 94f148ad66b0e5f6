// Package models содержит доменные структуры панели: сырые строки документов,
// типизированные записи Person/Purchase/Session и итоговую строку
// сводной таблицы членов клуба.
package models

import (
	"strings"
	"time"
)

// Row представляет один документ коллекции в «расплющенном» виде:
// вложенные объекты превращаются в ключи через точку
// (например createdAt._seconds), плюс служебные поля id и parentUid,
// добавленные адаптером хранилища при загрузке.
type Row map[string]any

// ID возвращает идентификатор документа, добавленный адаптером.
func (r Row) ID() string {
	s, _ := r["id"].(string)
	return s
}

// Str возвращает строковое значение поля или nil, если поле отсутствует,
// не строка или пустая строка. Пустота и отсутствие здесь равнозначны:
// в документах исходной базы незаполненные поля встречаются в обоих видах.
func (r Row) Str(key string) *string {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// Float возвращает числовое значение поля или nil, если поле отсутствует
// или не число. Ноль — валидное значение, не признак отсутствия.
func (r Row) Float(key string) *float64 {
	f, ok := r[key].(float64)
	if !ok {
		return nil
	}
	return &f
}

// Bool возвращает булево значение поля, отсутствие трактуется как false.
func (r Row) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Time извлекает временную метку поля по всем встречающимся в документах
// представлениям: вложенные секунды эпохи (key._seconds), число либо
// строка. Строка без зоны трактуется как UTC: такие метки сравниваются
// только между собой, и единообразная трактовка сохраняет их порядок.
// Неизвестная или неразборчивая метка — nil.
func (r Row) Time(key string) *time.Time {
	if secs, ok := r[key+"._seconds"].(float64); ok {
		t := time.Unix(int64(secs), 0).UTC()
		return &t
	}
	switch v := r[key].(type) {
	case float64:
		t := time.Unix(int64(v), 0).UTC()
		return &t
	case string:
		return parseLooseTime(v)
	default:
		return nil
	}
}

func parseLooseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}
