package make_reservation

import (
	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

// Step шаг мастера бронирования
type Step string

const (
	StepSelectingDate Step = "selecting_date"
	StepSelectingTime Step = "selecting_time"
	StepSummary       Step = "summary"
	StepConfirmed     Step = "confirmed"
)

// Summary сводка брони перед подтверждением.
// Производные поля (конец, цена) пересчитываются при каждом запросе сводки.
type Summary struct {
	FieldID       string
	FieldName     string
	Date          string
	DayOfWeek     domain.Weekday
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours int
	Price         string
}
