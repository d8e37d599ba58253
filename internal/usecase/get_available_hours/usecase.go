package get_available_hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
)

// UseCase use case получения доступных часов начала брони на день
type UseCase struct {
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(logger Logger) *UseCase {
	return &UseCase{
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных часов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableHours: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableHours: field=%s, date=%s", req.Field.ID, req.Date)

	// 2. Разбираем дату и определяем день недели
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableHours: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	day, err := domain.ResolveBookingDate(date, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, domain.ErrPastDate) {
			uc.logger.Warn("GetAvailableHours: date %s is in the past", req.Date)
			return nil, ErrPastDate
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 3. Находим рабочий интервал площадки на этот день недели
	slot := req.Field.SlotForDay(day)
	if slot == nil {
		uc.logger.Info("GetAvailableHours: field=%s closed on %s", req.Field.ID, day)
		return nil, fmt.Errorf("%w: %s", ErrDayClosed, day)
	}

	// 4. Генерируем часы начала
	hours, err := OpenHours(slot)
	if err != nil {
		uc.logger.Error("GetAvailableHours: field=%s has invalid schedule: %v", req.Field.ID, err)
		return nil, err
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDayClosed, day)
	}

	return &Response{
		Date:      req.Date,
		DayOfWeek: day,
		Slot:      slot,
		Hours:     hours,
	}, nil
}
