package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

// TimeSlot один день недельного расписания доступности поля:
// открыт/закрыт, рабочие часы и цена за час.
// Цена хранится строкой с двумя знаками после запятой — так её отдаёт backend
// и так она лежит в локальном хранилище.
type TimeSlot struct {
	ID        string           `json:"id"`
	DayOfWeek Weekday          `json:"dayOfWeek"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Price     string           `json:"price"`
	IsOpen    bool             `json:"isOpen"`
}

// HourlyPrice парсит цену за час. Принимает запятую как десятичный разделитель.
func (s *TimeSlot) HourlyPrice() (float64, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s.Price), ",", ".")
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid slot price %q: %w", s.Price, err)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative slot price %q", s.Price)
	}
	return price, nil
}

// Field спортивное поле: идентификация, адрес, вид спорта и недельное расписание
type Field struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	SportType   string     `json:"sportType"`
	Description string     `json:"description"`
	Images      []string   `json:"images"`
	Schedule    []TimeSlot `json:"schedule"`
}

// SlotForDay возвращает авторитетный слот расписания для дня недели:
// первый открытый слот с этим днём. nil, если поле закрыто в этот день.
func (f *Field) SlotForDay(day Weekday) *TimeSlot {
	for i := range f.Schedule {
		slot := &f.Schedule[i]
		if slot.DayOfWeek == day && slot.IsOpen {
			return slot
		}
	}
	return nil
}
