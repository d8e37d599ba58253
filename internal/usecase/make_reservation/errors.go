package make_reservation

import "errors"

var (
	// ErrNoDateSelected возвращается, когда дата не выбрана
	ErrNoDateSelected = errors.New("no date selected")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrPastDate возвращается, когда выбранная дата уже прошла
	ErrPastDate = errors.New("booking date is in the past")

	// ErrNoAvailabilityForDay возвращается, когда площадка не работает в выбранный день
	ErrNoAvailabilityForDay = errors.New("no availability for this day")

	// ErrInvalidStartTime возвращается, когда выбранное время не входит в доступные часы
	ErrInvalidStartTime = errors.New("start time is not available")

	// ErrInvalidDuration возвращается, когда длительность вне допустимого диапазона
	ErrInvalidDuration = errors.New("invalid booking duration")

	// ErrAuthRequired возвращается, когда пользователь не аутентифицирован
	ErrAuthRequired = errors.New("authentication required")

	// ErrDuplicateBooking возвращается при попытке повторно забронировать тот же слот
	ErrDuplicateBooking = errors.New("duplicate booking for this slot")

	// ErrReservationInFlight возвращается при повторном подтверждении до завершения первого
	ErrReservationInFlight = errors.New("reservation request already in flight")

	// ErrInvalidStep возвращается при переходе, недопустимом из текущего шага
	ErrInvalidStep = errors.New("operation is not allowed at this step")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("make_reservation: internal error")
)
