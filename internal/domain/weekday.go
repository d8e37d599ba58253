package domain

import (
	"errors"
	"fmt"
	"time"
)

// Weekday ключ дня недели в расписании доступности
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

var (
	// ErrPastDate возвращается при попытке забронировать дату в прошлом
	ErrPastDate = errors.New("date is in the past")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format")
)

// Индекс 0-6 соответствует time.Weekday (0 = воскресенье)
var weekdayByIndex = [7]Weekday{
	Sunday,
	Monday,
	Tuesday,
	Wednesday,
	Thursday,
	Friday,
	Saturday,
}

// WeekdayOf возвращает ключ дня недели для календарной даты
func WeekdayOf(date time.Time) Weekday {
	return weekdayByIndex[int(date.Weekday())]
}

// IsValidWeekday проверяет, что строка является одним из 7 ключей дней недели
func IsValidWeekday(s string) bool {
	for _, w := range weekdayByIndex {
		if Weekday(s) == w {
			return true
		}
	}
	return false
}

// ParseDate парсит календарную дату формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

// ResolveBookingDate проверяет, что дата не в прошлом, и возвращает её день недели.
// Для сравнения время суток обнуляется: сегодняшняя дата всегда допустима.
// Чистая функция без побочных эффектов.
func ResolveBookingDate(date, today time.Time) (Weekday, error) {
	dateOnly := truncateToDay(date)
	todayOnly := truncateToDay(today)

	if dateOnly.Before(todayOnly) {
		return "", ErrPastDate
	}

	return WeekdayOf(dateOnly), nil
}

// truncateToDay обнуляет время суток, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
