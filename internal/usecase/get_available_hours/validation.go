package get_available_hours

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Field == nil {
		return ErrFieldRequired
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	return nil
}
