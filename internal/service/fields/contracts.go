package fields

import (
	"context"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/integrations/fieldservice"
	"github.com/quadralivre/QL-BookingClient/pkg/fallback"
)

// APIClient интерфейс клиента backend для операций с полями
type APIClient interface {
	ListFields(ctx context.Context) ([]*domain.Field, error)
	GetField(ctx context.Context, id string) (*domain.Field, error)
	ListFieldsByCity(ctx context.Context, city string) ([]*domain.Field, error)
	CreateField(ctx context.Context, token string, req *fieldservice.CreateFieldRequest) (*domain.Field, error)
}

// FieldsRepository интерфейс репозитория локально созданных полей
type FieldsRepository interface {
	List() ([]*domain.Field, error)
	GetByID(id string) (*domain.Field, error)
	ListByCity(city string) ([]*domain.Field, error)
	Append(field *domain.Field) error
}

// CityCacheRepository интерфейс кеша последнего поиска по городу
type CityCacheRepository interface {
	Save(city string, results []*domain.Field) error
	Last() (string, []*domain.Field, error)
}

// Recorder интерфейс метрик операций
type Recorder = fallback.Recorder

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
