package get_available_hours

import (
	"fmt"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

// OpenHours генерирует часы начала брони для рабочего интервала площадки.
// Брони начинаются только в целый час: минуты из расписания отбрасываются.
// Последний возможный час начала - за час до закрытия.
// Для закрытого дня возвращается пустой список.
func OpenHours(slot *domain.TimeSlot) ([]types.TimeString, error) {
	if slot == nil || !slot.IsOpen {
		return []types.TimeString{}, nil
	}

	startHour, err := slot.StartTime.Hour()
	if err != nil {
		return nil, fmt.Errorf("%w: start time %q", ErrInvalidSchedule, slot.StartTime)
	}

	endHour, err := slot.EndTime.Hour()
	if err != nil {
		return nil, fmt.Errorf("%w: end time %q", ErrInvalidSchedule, slot.EndTime)
	}

	hours := make([]types.TimeString, 0, endHour-startHour)
	for h := startHour; h < endHour; h++ {
		hours = append(hours, types.TimeString(fmt.Sprintf("%02d:00", h)))
	}

	return hours, nil
}

// MaxDuration возвращает максимальную длительность брони в часах
// при выбранном часе начала. Ноль означает, что старт недоступен:
// вне рабочего интервала или не из сгенерированной последовательности
// (разрешены только целые часы).
func MaxDuration(slot *domain.TimeSlot, start types.TimeString) (int, error) {
	if slot == nil || !slot.IsOpen {
		return 0, nil
	}

	startMinutes, err := start.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: start time %q", ErrInvalidSchedule, start)
	}
	if startMinutes%60 != 0 {
		return 0, nil
	}
	startHour := startMinutes / 60

	openHour, err := slot.StartTime.Hour()
	if err != nil {
		return 0, fmt.Errorf("%w: start time %q", ErrInvalidSchedule, slot.StartTime)
	}

	endHour, err := slot.EndTime.Hour()
	if err != nil {
		return 0, fmt.Errorf("%w: end time %q", ErrInvalidSchedule, slot.EndTime)
	}

	if startHour < openHour || startHour >= endHour {
		return 0, nil
	}

	return endHour - startHour, nil
}
