package fieldservice

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable возвращается при транспортной ошибке: backend недоступен,
	// запрос не выполнился или ответ не получен. Такие ошибки запускают
	// переключение на локальное хранилище.
	ErrUnavailable = errors.New("fieldservice client: backend unavailable")

	// ErrInvalidResponse возвращается, когда ответ backend не удалось
	// разобрать. Классифицируется как транспортная ошибка: результат
	// удалённого вызова непригоден.
	ErrInvalidResponse = errors.New("fieldservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fieldservice client: internal error")
)

// APIError оформленная ошибка уровня приложения от backend (4xx/5xx с телом).
// Пробрасывается вызывающему как есть и никогда не маскируется локальным
// fallback.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fieldservice: api error %d: %s", e.StatusCode, e.Detail)
}

// IsTransportError сообщает, является ли ошибка транспортной.
// Используется как классификатор для remote-with-local-fallback.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrInvalidResponse)
}

// IsConflict сообщает, что backend ответил конфликтом (409)
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 409
}

// IsAuthError сообщает, что backend отверг авторизацию (401/403)
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}
