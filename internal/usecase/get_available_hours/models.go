package get_available_hours

import (
	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

// Request модель запроса доступных часов на день
type Request struct {
	Field *domain.Field // Площадка с расписанием
	Date  string        // Дата в формате YYYY-MM-DD
}

// Response модель ответа со списком стартовых часов
type Response struct {
	Date      string             // Дата, на которую запрашивались часы
	DayOfWeek domain.Weekday     // День недели этой даты
	Slot      *domain.TimeSlot   // Рабочий интервал площадки на этот день
	Hours     []types.TimeString // Возможные часы начала брони
}
