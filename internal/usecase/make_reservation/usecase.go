package make_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	authService "github.com/quadralivre/QL-BookingClient/internal/service/auth"
	reservationsService "github.com/quadralivre/QL-BookingClient/internal/service/reservations"
	"github.com/quadralivre/QL-BookingClient/internal/usecase/get_available_hours"
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

// Wizard пошаговый мастер бронирования площадки.
// Шаги: выбор даты -> выбор времени -> сводка -> подтверждение.
// Назад можно вернуться с любого незавершённого шага; выбранные значения
// при этом сохраняются, а производные поля пересчитываются заново.
type Wizard struct {
	field        *domain.Field
	auth         AuthService
	reservations ReservationsService
	timeProvider TimeProvider
	logger       Logger

	mu       sync.Mutex
	inFlight bool

	step          Step
	date          string
	dayOfWeek     domain.Weekday
	slot          *domain.TimeSlot
	startTime     types.TimeString
	durationHours int

	created *domain.Reservation
}

// NewWizard создает мастер бронирования для площадки
func NewWizard(field *domain.Field, auth AuthService, reservations ReservationsService, logger Logger) *Wizard {
	return &Wizard{
		field:         field,
		auth:          auth,
		reservations:  reservations,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		step:          StepSelectingDate,
		durationHours: domain.DefaultDurationHours,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (w *Wizard) WithTimeProvider(tp TimeProvider) *Wizard {
	w.timeProvider = tp
	return w
}

// Step возвращает текущий шаг мастера
func (w *Wizard) Step() Step {
	return w.step
}

// SelectDate выбирает дату брони и переводит мастер на выбор времени.
// При ошибке валидации мастер остаётся на шаге выбора даты.
func (w *Wizard) SelectDate(date string) error {
	if w.step == StepConfirmed {
		return ErrInvalidStep
	}

	if date == "" {
		return ErrNoDateSelected
	}

	parsed, err := domain.ParseDate(date)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	day, err := domain.ResolveBookingDate(parsed, w.timeProvider.Now())
	if err != nil {
		if errors.Is(err, domain.ErrPastDate) {
			return ErrPastDate
		}
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	slot := w.field.SlotForDay(day)
	if slot == nil {
		return fmt.Errorf("%w: %s", ErrNoAvailabilityForDay, day)
	}

	hours, err := get_available_hours.OpenHours(slot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(hours) == 0 {
		return fmt.Errorf("%w: %s", ErrNoAvailabilityForDay, day)
	}

	w.date = date
	w.dayOfWeek = day
	w.slot = slot
	w.step = StepSelectingTime

	w.logger.Info("Wizard: date selected: field=%s, date=%s, day=%s", w.field.ID, date, day)

	return nil
}

// AvailableHours возвращает часы начала брони для выбранной даты
func (w *Wizard) AvailableHours() ([]types.TimeString, error) {
	if w.step != StepSelectingTime && w.step != StepSummary {
		return nil, ErrInvalidStep
	}
	hours, err := get_available_hours.OpenHours(w.slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return hours, nil
}

// MaxDuration возвращает максимальную длительность для выбранного часа начала
func (w *Wizard) MaxDuration(start types.TimeString) (int, error) {
	if w.step != StepSelectingTime && w.step != StepSummary {
		return 0, ErrInvalidStep
	}
	max, err := get_available_hours.MaxDuration(w.slot, start)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return max, nil
}

// SelectTime выбирает час начала и длительность и переводит мастер на сводку.
// Требует аутентифицированного пользователя.
func (w *Wizard) SelectTime(start types.TimeString, durationHours int) error {
	if w.step != StepSelectingTime && w.step != StepSummary {
		return ErrInvalidStep
	}

	max, err := get_available_hours.MaxDuration(w.slot, start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if max == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidStartTime, start)
	}

	if durationHours < domain.MinDurationHours || durationHours > max {
		return fmt.Errorf("%w: %d hours (allowed 1-%d)", ErrInvalidDuration, durationHours, max)
	}

	// Бронировать могут только аутентифицированные пользователи
	if _, err := w.auth.CurrentUser(); err != nil {
		if errors.Is(err, authService.ErrNotAuthenticated) {
			return ErrAuthRequired
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	w.startTime = start
	w.durationHours = durationHours
	w.step = StepSummary

	w.logger.Info("Wizard: time selected: field=%s, start=%s, duration=%dh", w.field.ID, start, durationHours)

	return nil
}

// Back возвращает мастер на предыдущий шаг. Выбранные значения сохраняются.
func (w *Wizard) Back() error {
	switch w.step {
	case StepSelectingTime:
		w.step = StepSelectingDate
		return nil
	case StepSummary:
		w.step = StepSelectingTime
		return nil
	default:
		return ErrInvalidStep
	}
}

// Summary возвращает сводку брони с пересчитанными производными полями
func (w *Wizard) Summary() (*Summary, error) {
	if w.step != StepSummary {
		return nil, ErrInvalidStep
	}

	endTime, price, err := w.derive()
	if err != nil {
		return nil, err
	}

	return &Summary{
		FieldID:       w.field.ID,
		FieldName:     w.field.Name,
		Date:          w.date,
		DayOfWeek:     w.dayOfWeek,
		StartTime:     w.startTime,
		EndTime:       endTime,
		DurationHours: w.durationHours,
		Price:         price,
	}, nil
}

// Confirm подтверждает бронь: собирает запись, проверяет дубликат и сохраняет.
// Повторный вызов до завершения первого отклоняется, второй записи не будет.
func (w *Wizard) Confirm(ctx context.Context) (*domain.Reservation, error) {
	if w.step != StepSummary {
		return nil, ErrInvalidStep
	}

	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrReservationInFlight
	}
	w.inFlight = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	// 1. Актуальный токен сессии
	token, err := w.auth.Token(w.timeProvider.Now())
	if err != nil {
		if errors.Is(err, authService.ErrNotAuthenticated) {
			return nil, ErrAuthRequired
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	user, err := w.auth.CurrentUser()
	if err != nil {
		if errors.Is(err, authService.ErrNotAuthenticated) {
			return nil, ErrAuthRequired
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 2. Собираем запись брони
	endTime, price, err := w.derive()
	if err != nil {
		return nil, err
	}

	candidate := &domain.Reservation{
		UserID:    user.ID,
		FieldID:   w.field.ID,
		FieldName: w.field.Name,
		Date:      w.date,
		DayOfWeek: w.dayOfWeek,
		StartTime: w.startTime,
		EndTime:   endTime,
		Price:     price,
		Status:    domain.StatusConfirmed,
	}

	// 3. Сохраняем; при дубликате остаёмся на сводке
	created, err := w.reservations.Create(ctx, token, candidate)
	if err != nil {
		if errors.Is(err, reservationsService.ErrDuplicate) {
			w.logger.Warn("Wizard: duplicate booking: field=%s, date=%s, start=%s",
				w.field.ID, w.date, w.startTime)
			return nil, fmt.Errorf("%w: %s %s %s", ErrDuplicateBooking, w.field.ID, w.date, w.startTime)
		}
		return nil, err
	}

	w.created = created
	w.step = StepConfirmed

	w.logger.Info("Wizard: reservation confirmed: id=%s, field=%s, date=%s", created.ID, w.field.ID, w.date)

	return created, nil
}

// Reservation возвращает созданную бронь после подтверждения
func (w *Wizard) Reservation() *domain.Reservation {
	return w.created
}

// Reset сбрасывает мастер в начальное состояние для новой брони
func (w *Wizard) Reset() {
	w.step = StepSelectingDate
	w.date = ""
	w.dayOfWeek = ""
	w.slot = nil
	w.startTime = ""
	w.durationHours = domain.DefaultDurationHours
	w.created = nil
}

// derive пересчитывает производные поля: время конца и итоговую цену
func (w *Wizard) derive() (types.TimeString, string, error) {
	endTime, err := w.startTime.AddHours(w.durationHours)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	hourly, err := w.slot.HourlyPrice()
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	price := domain.FormatPrice(domain.TotalPrice(hourly, w.durationHours))

	return endTime, price, nil
}
