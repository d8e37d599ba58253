package auth

import (
	"context"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/integrations/fieldservice"
	"github.com/quadralivre/QL-BookingClient/pkg/fallback"
)

// APIClient интерфейс клиента backend для операций авторизации
type APIClient interface {
	SignUp(ctx context.Context, req *fieldservice.SignUpRequest) (*domain.User, error)
	SignIn(ctx context.Context, req *fieldservice.SignInRequest) (*fieldservice.SignInResponse, error)
}

// UsersRepository интерфейс репозитория оффлайн-аккаунтов
type UsersRepository interface {
	FindByEmail(email string) (*domain.OfflineUser, error)
	Append(user *domain.OfflineUser) error
}

// SessionRepository интерфейс репозитория сессии
type SessionRepository interface {
	Token() (string, error)
	User() (*domain.User, error)
	Save(token string, user *domain.User) error
	Clear() error
}

// Recorder интерфейс метрик операций
type Recorder = fallback.Recorder

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
