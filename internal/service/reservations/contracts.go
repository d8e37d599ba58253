package reservations

import (
	"context"
	"time"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/integrations/fieldservice"
	"github.com/quadralivre/QL-BookingClient/pkg/fallback"
)

// APIClient интерфейс клиента backend для операций с бронями
type APIClient interface {
	CreateReservation(ctx context.Context, token string, req *fieldservice.CreateReservationRequest) (*domain.Reservation, error)
	MyReservations(ctx context.Context, token string) ([]*domain.Reservation, error)
	CancelReservation(ctx context.Context, token string, id string) error
}

// ReservationsRepository интерфейс локального репозитория броней
type ReservationsRepository interface {
	List() ([]*domain.Reservation, error)
	ListActive() ([]*domain.Reservation, error)
	Append(reservation *domain.Reservation) error
	Cancel(id string) error
	ReplaceAll(list []*domain.Reservation) error
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

// Recorder интерфейс метрик операций
type Recorder = fallback.Recorder

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
