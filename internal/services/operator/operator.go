// Package operator реализует парольный вход оператора панели.
// Панель обслуживает один административный аккаунт: пароль сверяется
// с настроенным bcrypt-хешем, успешный вход выдает токен сессии.
package operator

import (
	"errors"
	"fmt"
	"log/slog"

	libjwt "github.com/chops-club/membership-dashboard/internal/lib/jwt"
	"github.com/chops-club/membership-dashboard/internal/lib/password"
)

// Имя и роль единственного оператора панели.
const (
	Username  = "operator"
	RoleAdmin = "admin"
)

// ErrInvalidPassword пароль не совпал с настроенным хешем.
var ErrInvalidPassword = errors.New("invalid password")

// Service сервисный слой входа оператора.
type Service struct {
	passwordHash string
	maker        libjwt.Maker
	log          *slog.Logger
}

// New создает сервис входа оператора.
func New(passwordHash string, maker libjwt.Maker, log *slog.Logger) *Service {
	return &Service{passwordHash: passwordHash, maker: maker, log: log}
}

// Login сверяет пароль и возвращает токен сессии с ролью администратора.
func (s *Service) Login(pass string) (string, error) {
	const op = "services.operator.Login"

	if err := password.CompareHash(s.passwordHash, pass); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidPassword)
	}

	token, err := s.maker.GenerateToken(Username, RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
