package fields

import "errors"

var (
	// ErrFieldNotFound возвращается, когда поле не найдено ни на backend,
	// ни в локальном хранилище
	ErrFieldNotFound = errors.New("fields: field not found")

	// ErrInvalidSchedule возвращается при некорректном недельном расписании
	ErrInvalidSchedule = errors.New("fields: invalid schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("fields: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("fields: internal error")
)
