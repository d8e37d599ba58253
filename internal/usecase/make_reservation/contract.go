package make_reservation

import (
	"context"
	"time"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
)

// AuthService интерфейс сервиса аутентификации
type AuthService interface {
	CurrentUser() (*domain.User, error)
	Token(now time.Time) (string, error)
}

// ReservationsService интерфейс сервиса бронирований
type ReservationsService interface {
	Create(ctx context.Context, token string, candidate *domain.Reservation) (*domain.Reservation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
