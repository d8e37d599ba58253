package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена в хранилище
	ErrReservationNotFound = errors.New("reservations.repository: reservation not found")

	// ErrCannotCancel возвращается при попытке отменить уже отменённую бронь
	ErrCannotCancel = errors.New("reservations.repository: reservation cannot be cancelled")

	// ErrStore возвращается при ошибках нижележащего хранилища
	ErrStore = errors.New("reservations.repository: store error")
)
