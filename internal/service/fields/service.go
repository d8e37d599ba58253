package fields

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	fieldsRepo "github.com/quadralivre/QL-BookingClient/internal/infra/storage/fields"
	"github.com/quadralivre/QL-BookingClient/internal/integrations/fieldservice"
	"github.com/quadralivre/QL-BookingClient/pkg/fallback"
)

// Service сервис каталога полей: чтение с backend с локальным fallback,
// создание полей с сохранением в localFields при недоступном backend
type Service struct {
	api       APIClient
	local     FieldsRepository
	cityCache CityCacheRepository
	metrics   Recorder
	logger    Logger
}

// NewService создает новый экземпляр сервиса полей
func NewService(
	api APIClient,
	local FieldsRepository,
	cityCache CityCacheRepository,
	metrics Recorder,
	logger Logger,
) *Service {
	return &Service{
		api:       api,
		local:     local,
		cityCache: cityCache,
		metrics:   metrics,
		logger:    logger,
	}
}

// List возвращает каталог полей: backend, при транспортной ошибке —
// локально созданные поля
func (s *Service) List(ctx context.Context) ([]*domain.Field, error) {
	list, source, err := fallback.DoRecorded(ctx, "list_fields", s.metrics,
		s.api.ListFields,
		s.local.List,
		fieldservice.IsTransportError,
	)
	if err != nil {
		s.logger.Error("List: failed to list fields: %v", err)
		return nil, err
	}

	s.logger.Info("List: %d fields from %s", len(list), source)
	return list, nil
}

// Get возвращает поле по идентификатору
func (s *Service) Get(ctx context.Context, id string) (*domain.Field, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: field id is required", ErrInvalidInput)
	}

	field, source, err := fallback.DoRecorded(ctx, "get_field", s.metrics,
		func(ctx context.Context) (*domain.Field, error) {
			return s.api.GetField(ctx, id)
		},
		func() (*domain.Field, error) {
			return s.local.GetByID(id)
		},
		fieldservice.IsTransportError,
	)
	if err != nil {
		if errors.Is(err, fieldsRepo.ErrFieldNotFound) {
			s.logger.Warn("Get: field id=%s not found locally", id)
			return nil, ErrFieldNotFound
		}
		var apiErr *fieldservice.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			s.logger.Warn("Get: field id=%s not found on backend", id)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("Get: failed to get field id=%s: %v", id, err)
		return nil, err
	}

	s.logger.Info("Get: field id=%s from %s", id, source)
	return field, nil
}

// SearchByCity ищет поля по городу. Успешный удалённый результат
// кешируется; при транспортной ошибке возвращается кеш последнего
// поиска этого города, иначе локальные поля города.
func (s *Service) SearchByCity(ctx context.Context, city string) ([]*domain.Field, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}

	results, source, err := fallback.DoRecorded(ctx, "search_city", s.metrics,
		func(ctx context.Context) ([]*domain.Field, error) {
			return s.api.ListFieldsByCity(ctx, city)
		},
		func() ([]*domain.Field, error) {
			return s.searchLocally(city)
		},
		fieldservice.IsTransportError,
	)
	if err != nil {
		s.logger.Error("SearchByCity: city=%s: %v", city, err)
		return nil, err
	}

	if source == fallback.SourceRemote {
		if cacheErr := s.cityCache.Save(city, results); cacheErr != nil {
			// Кеш не критичен для результата поиска
			s.logger.Warn("SearchByCity: failed to cache results: %v", cacheErr)
		}
	}

	s.logger.Info("SearchByCity: city=%s, %d fields from %s", city, len(results), source)
	return results, nil
}

// searchLocally ищет в кеше последнего поиска, затем среди локальных полей
func (s *Service) searchLocally(city string) ([]*domain.Field, error) {
	cachedCity, cached, err := s.cityCache.Last()
	if err == nil && strings.EqualFold(cachedCity, city) {
		return cached, nil
	}

	return s.local.ListByCity(city)
}

// Create создает поле с недельным расписанием. Требует авторизации.
// При транспортной ошибке поле сохраняется в localFields с локальным id.
func (s *Service) Create(ctx context.Context, token string, req *fieldservice.CreateFieldRequest) (*domain.Field, error) {
	if err := validateSchedule(req.Schedule); err != nil {
		s.logger.Warn("Create: schedule validation failed: %v", err)
		return nil, err
	}

	field, source, err := fallback.DoRecorded(ctx, "create_field", s.metrics,
		func(ctx context.Context) (*domain.Field, error) {
			return s.api.CreateField(ctx, token, req)
		},
		func() (*domain.Field, error) {
			return s.createLocally(req)
		},
		fieldservice.IsTransportError,
	)
	if err != nil {
		s.logger.Error("Create: failed to create field %q: %v", req.Name, err)
		return nil, err
	}

	s.logger.Info("Create: field id=%s created via %s", field.ID, source)
	return field, nil
}

// createLocally собирает поле с локальным идентификатором и сохраняет
// его в localFields
func (s *Service) createLocally(req *fieldservice.CreateFieldRequest) (*domain.Field, error) {
	schedule := make([]domain.TimeSlot, 0, len(req.Schedule))
	for _, slot := range req.Schedule {
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		schedule = append(schedule, slot)
	}

	field := &domain.Field{
		ID:          "local-" + uuid.NewString(),
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		SportType:   req.SportType,
		Description: req.Description,
		Images:      req.Images,
		Schedule:    schedule,
	}

	if err := s.local.Append(field); err != nil {
		return nil, fmt.Errorf("%w: failed to store field locally: %v", ErrInternal, err)
	}
	return field, nil
}

// validateSchedule проверяет недельное расписание:
// для открытых дней заданы часы (start < end) и неотрицательная цена,
// на каждый день недели не больше одного слота
func validateSchedule(schedule []domain.TimeSlot) error {
	if len(schedule) == 0 {
		return fmt.Errorf("%w: schedule is required", ErrInvalidSchedule)
	}

	seen := map[domain.Weekday]bool{}
	for _, slot := range schedule {
		if !domain.IsValidWeekday(string(slot.DayOfWeek)) {
			return fmt.Errorf("%w: unknown day of week %q", ErrInvalidSchedule, slot.DayOfWeek)
		}
		if seen[slot.DayOfWeek] {
			return fmt.Errorf("%w: duplicate slot for %s", ErrInvalidSchedule, slot.DayOfWeek)
		}
		seen[slot.DayOfWeek] = true

		if !slot.IsOpen {
			continue
		}

		if err := slot.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, slot.DayOfWeek, err)
		}
		if err := slot.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, slot.DayOfWeek, err)
		}
		if !slot.StartTime.IsBefore(slot.EndTime) {
			return fmt.Errorf("%w: %s: start time must be before end time", ErrInvalidSchedule, slot.DayOfWeek)
		}
		if _, err := slot.HourlyPrice(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, slot.DayOfWeek, err)
		}
	}
	return nil
}
