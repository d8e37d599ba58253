package fieldservice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

var nonDigits = regexp.MustCompile(`\D`)

// newValidator создает валидатор схем с доменными правилами:
// weekday — ключ дня недели, timestr — время HH:MM, cpf — бразильский CPF.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Ошибки регистрации возможны только при некорректной сигнатуре функции
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return domain.IsValidWeekday(fl.Field().String())
	})

	_ = v.RegisterValidation("timestr", func(fl validator.FieldLevel) bool {
		return types.TimeString(fl.Field().String()).Validate() == nil
	})

	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return isValidCPF(fl.Field().String())
	})

	return v
}

// isValidCPF проверяет CPF: ровно 11 цифр и не все цифры одинаковые.
// Контрольные разряды не считаются — backend выполняет полную проверку.
func isValidCPF(cpf string) bool {
	digits := nonDigits.ReplaceAllString(cpf, "")
	if len(digits) != 11 {
		return false
	}
	return strings.Count(digits, string(digits[0])) != 11
}

// validateStruct валидирует запрос или ответ на границе клиента
func (c *Client) validateStruct(v interface{}) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// validateRequest валидирует исходящий запрос до обращения к сети
func (c *Client) validateRequest(v interface{}) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: invalid request: %v", ErrInternal, err)
	}
	return nil
}
