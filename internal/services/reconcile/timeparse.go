package reconcile

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrNormalization — временная метка не приводится к строгому значению там,
// где оно обязательно: дата конца сезона без смещения зоны попала бы в
// арифметику дней с молчаливой догадкой о зоне и дала бы неверный знак.
var ErrNormalization = errors.New("timestamp normalization fault")

// sessionEnd строго разбирает дату конца сезона. Отсутствующее или вовсе
// неразборчивое значение — (nil, nil): оставшиеся дни неизвестны. Дата,
// которая разбирается, но не несет смещения зоны, — ErrNormalization.
func sessionEnd(v any) (*time.Time, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case float64:
		// секунды эпохи всегда в UTC
		t := time.Unix(int64(val), 0).UTC()
		return &t, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if t, err := time.Parse(layout, s); err == nil {
				u := t.UTC()
				return &u, nil
			}
		}
		for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
			if _, err := time.Parse(layout, s); err == nil {
				return nil, fmt.Errorf("naive end date %q: %w", s, ErrNormalization)
			}
		}
		return nil, nil
	default:
		return nil, nil
	}
}

// daysLeft возвращает число целых дней от now до end, оба в UTC.
// Отрицательное значение — сезон истек; округление вниз, как и счет
// полными днями: за 119 часов до конца остается 4 дня.
func daysLeft(end, now time.Time) int {
	diff := end.UTC().Sub(now.UTC())
	return int(math.Floor(diff.Hours() / 24))
}
