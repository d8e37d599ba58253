package fieldservice

import (
	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

// SignUpRequest запрос регистрации пользователя
type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	CPF      string `json:"cpf" validate:"required,cpf"`
}

// SignInRequest запрос входа
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse ответ на вход: токен и профиль пользователя
type SignInResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// CreateFieldRequest запрос создания поля с недельным расписанием
type CreateFieldRequest struct {
	Name        string            `json:"name" validate:"required"`
	Address     string            `json:"address" validate:"required"`
	City        string            `json:"city" validate:"required"`
	SportType   string            `json:"sportType" validate:"required"`
	Description string            `json:"description"`
	Images      []string          `json:"images"`
	Schedule    []domain.TimeSlot `json:"schedule" validate:"required,dive"`
}

// CreateReservationRequest запрос создания брони
type CreateReservationRequest struct {
	FieldID   string `json:"fieldId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	DayOfWeek string `json:"dayOfWeek" validate:"required,weekday"`
	StartTime string `json:"startTime" validate:"required,timestr"`
	EndTime   string `json:"endTime" validate:"required"`
	Price     string `json:"price" validate:"required"`
}

// ErrorResponse тело ошибки backend
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Схемы ответов backend. Явные типы на границе: payload валидируется
// при получении, а не доверяется как есть.

type fieldPayload struct {
	ID          string        `json:"id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Address     string        `json:"address"`
	City        string        `json:"city"`
	SportType   string        `json:"sportType"`
	Description string        `json:"description"`
	Images      []string      `json:"images"`
	Schedule    []slotPayload `json:"schedule" validate:"dive"`
}

type slotPayload struct {
	ID        string `json:"id"`
	DayOfWeek string `json:"dayOfWeek" validate:"required,weekday"`
	StartTime string `json:"startTime" validate:"omitempty,timestr"`
	EndTime   string `json:"endTime" validate:"omitempty,timestr"`
	Price     string `json:"price"`
	IsOpen    bool   `json:"isOpen"`
}

type reservationPayload struct {
	ID        string `json:"id" validate:"required"`
	UserID    string `json:"userId"`
	FieldID   string `json:"fieldId" validate:"required"`
	FieldName string `json:"fieldName"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	DayOfWeek string `json:"dayOfWeek" validate:"required,weekday"`
	StartTime string `json:"startTime" validate:"required,timestr"`
	EndTime   string `json:"endTime" validate:"required"`
	Price     string `json:"price"`
	Status    string `json:"status" validate:"required,oneof=confirmed cancelled"`
	CreatedAt string `json:"createdAt"`
}

func (p *fieldPayload) toDomain() *domain.Field {
	schedule := make([]domain.TimeSlot, 0, len(p.Schedule))
	for _, slot := range p.Schedule {
		schedule = append(schedule, slot.toDomain())
	}

	return &domain.Field{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		City:        p.City,
		SportType:   p.SportType,
		Description: p.Description,
		Images:      p.Images,
		Schedule:    schedule,
	}
}

func (p *slotPayload) toDomain() domain.TimeSlot {
	return domain.TimeSlot{
		ID:        p.ID,
		DayOfWeek: domain.Weekday(p.DayOfWeek),
		StartTime: types.TimeString(p.StartTime),
		EndTime:   types.TimeString(p.EndTime),
		Price:     p.Price,
		IsOpen:    p.IsOpen,
	}
}

func (p *reservationPayload) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:        p.ID,
		UserID:    p.UserID,
		FieldID:   p.FieldID,
		FieldName: p.FieldName,
		Date:      p.Date,
		DayOfWeek: domain.Weekday(p.DayOfWeek),
		StartTime: types.TimeString(p.StartTime),
		EndTime:   types.TimeString(p.EndTime),
		Price:     p.Price,
		Status:    domain.ReservationStatus(p.Status),
		CreatedAt: p.CreatedAt,
	}
}
