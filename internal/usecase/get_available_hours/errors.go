package get_available_hours

import "errors"

var (
	// ErrFieldRequired возвращается, когда площадка не передана
	ErrFieldRequired = errors.New("field is required")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrPastDate возвращается, когда дата уже прошла
	ErrPastDate = errors.New("booking date is in the past")

	// ErrDayClosed возвращается, когда площадка не работает в этот день недели
	ErrDayClosed = errors.New("field is closed on this day")

	// ErrInvalidSchedule возвращается при некорректном расписании площадки
	ErrInvalidSchedule = errors.New("field has invalid schedule")
)
