package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ограничения бронирования
const (
	// MinDurationHours минимальная длительность бронирования в часах
	MinDurationHours = 1

	// DefaultDurationHours длительность по умолчанию при открытии мастера
	DefaultDurationHours = 1
)
