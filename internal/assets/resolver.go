// Package assets отвечает за превращение ссылки на изображение из документа
// в доступный URL: аватарка по умолчанию, абсолютный URL как есть либо
// подписанная ссылка с ограниченным сроком действия для пути в хранилище.
package assets

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chops-club/membership-dashboard/internal/config"
)

// Resolver выпускает подписанные ссылки на объекты файлового хранилища.
// Ссылки не кешируются: по истечении срока действия требуется повторный
// вызов Resolve.
type Resolver struct {
	baseURL    string
	defaultURL string
	secret     string
	validity   time.Duration
	now        func() time.Time
}

// NewResolver создает резолвер по настройкам из конфигурации.
func NewResolver(cfg config.Assets) *Resolver {
	validity := cfg.Validity
	if validity <= 0 {
		validity = time.Hour
	}
	return &Resolver{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		defaultURL: cfg.DefaultAvatarURL,
		secret:     cfg.SigningSecret,
		validity:   validity,
		now:        time.Now,
	}
}

// Resolve возвращает доступный URL для ссылки из документа.
// Порядок правил: пустая ссылка — аватарка по умолчанию; абсолютный URL —
// без изменений; иначе путь в хранилище превращается в подписанную ссылку.
// Ошибок наружу нет: сбой подписи откатывается на аватарку по умолчанию.
func (r *Resolver) Resolve(ref *string) string {
	if ref == nil || *ref == "" {
		return r.defaultURL
	}
	if strings.HasPrefix(*ref, "http://") || strings.HasPrefix(*ref, "https://") {
		return *ref
	}

	objectPath := strings.TrimLeft(*ref, "/")
	expiresAt := r.now().Add(r.validity)

	claims := jwt.RegisteredClaims{
		Subject:   objectPath,
		IssuedAt:  jwt.NewNumericDate(r.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(r.secret))
	if err != nil {
		return r.defaultURL
	}

	query := url.Values{}
	query.Set("token", token)
	query.Set("expires", fmt.Sprintf("%d", expiresAt.Unix()))

	escaped := (&url.URL{Path: objectPath}).EscapedPath()
	return fmt.Sprintf("%s/%s?%s", r.baseURL, escaped, query.Encode())
}
