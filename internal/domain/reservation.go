package domain

import (
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

// ReservationStatus статус брони
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation бронь поля на конкретную дату и интервал времени.
// Название поля денормализовано для отображения истории.
// Переход статуса односторонний: confirmed -> cancelled, записи не удаляются.
type Reservation struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	FieldID   string            `json:"fieldId"`
	FieldName string            `json:"fieldName"`
	Date      string            `json:"date"` // YYYY-MM-DD
	DayOfWeek Weekday           `json:"dayOfWeek"`
	StartTime types.TimeString  `json:"startTime"`
	EndTime   types.TimeString  `json:"endTime"`
	Price     string            `json:"price"` // итоговая цена за всю бронь
	Status    ReservationStatus `json:"status"`
	CreatedAt string            `json:"createdAt"` // RFC3339
}

// IsActive возвращает true для подтверждённой (не отменённой) брони
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled возвращает true для отменённой брони
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если бронь ещё можно отменить
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// SameSlot возвращает true, если other занимает тот же слот:
// совпадают поле, дата и время начала
func (r *Reservation) SameSlot(other *Reservation) bool {
	return r.FieldID == other.FieldID &&
		r.Date == other.Date &&
		r.StartTime == other.StartTime
}
