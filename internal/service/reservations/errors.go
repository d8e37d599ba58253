package reservations

import "errors"

var (
	ErrDuplicate           = errors.New("reservations.service: duplicate reservation for slot")
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")
	ErrCannotCancel        = errors.New("reservations.service: reservation cannot be cancelled")
	ErrNotAuthenticated    = errors.New("reservations.service: not authenticated")
	ErrInternal            = errors.New("reservations.service: internal error")
)
