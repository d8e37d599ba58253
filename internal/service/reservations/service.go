package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/integrations/fieldservice"
	storage "github.com/quadralivre/QL-BookingClient/internal/infra/storage/reservations"
	"github.com/quadralivre/QL-BookingClient/pkg/fallback"
)

// Service сервис бронирований: создание, список, отмена.
// Работает по схеме remote-first: сначала backend, при его недоступности -
// локальное хранилище.
type Service struct {
	api     APIClient
	local   ReservationsRepository
	timePr  TimeProvider
	metrics Recorder
	log     Logger
}

func NewService(api APIClient, local ReservationsRepository, timePr TimeProvider, metrics Recorder, log Logger) *Service {
	return &Service{
		api:     api,
		local:   local,
		timePr:  timePr,
		metrics: metrics,
		log:     log,
	}
}

// List возвращает все брони пользователя (включая отменённые).
// При успешном ответе backend локальная копия синхронизируется целиком.
func (s *Service) List(ctx context.Context, token string) ([]*domain.Reservation, error) {
	list, source, err := fallback.DoRecorded(ctx, "list_reservations", s.metrics,
		func(ctx context.Context) ([]*domain.Reservation, error) {
			return s.api.MyReservations(ctx, token)
		},
		func() ([]*domain.Reservation, error) {
			return s.listLocally()
		},
		fieldservice.IsTransportError,
	)
	if err != nil {
		return nil, err
	}

	if source == fallback.SourceRemote {
		// Синхронизируем локальную копию; ошибка записи не фатальна
		if syncErr := s.local.ReplaceAll(list); syncErr != nil {
			s.log.Warn("[List] Failed to sync reservations locally: %v", syncErr)
		}
	}

	return list, nil
}

// ListActive возвращает только подтверждённые брони
func (s *Service) ListActive(ctx context.Context, token string) ([]*domain.Reservation, error) {
	list, err := s.List(ctx, token)
	if err != nil {
		return nil, err
	}

	active := make([]*domain.Reservation, 0, len(list))
	for _, r := range list {
		if r.IsActive() {
			active = append(active, r)
		}
	}

	return active, nil
}

// IsDuplicate проверяет, совпадает ли кандидат с уже существующей
// подтверждённой бронью по ключу (площадка, дата, время начала)
func (s *Service) IsDuplicate(candidate *domain.Reservation, existing []*domain.Reservation) bool {
	for _, r := range existing {
		if r.IsActive() && r.SameSlot(candidate) {
			return true
		}
	}
	return false
}

// Create создаёт бронь. Перед записью повторно проверяет дубликат по самому
// свежему доступному списку броней. При недоступности backend бронь
// сохраняется локально с синтетическим идентификатором.
func (s *Service) Create(ctx context.Context, token string, candidate *domain.Reservation) (*domain.Reservation, error) {
	// 1. Проверка дубликата непосредственно перед записью
	existing, err := s.List(ctx, token)
	if err != nil {
		s.log.Warn("[Create] Failed to load existing reservations for duplicate check: %v", err)
		existing = nil
	}
	if s.IsDuplicate(candidate, existing) {
		return nil, fmt.Errorf("%w: field %s, date %s, start %s",
			ErrDuplicate, candidate.FieldID, candidate.Date, candidate.StartTime)
	}

	// 2. Создание на backend с локальным fallback
	created, source, err := fallback.DoRecorded(ctx, "create_reservation", s.metrics,
		func(ctx context.Context) (*domain.Reservation, error) {
			return s.createRemotely(ctx, token, candidate)
		},
		func() (*domain.Reservation, error) {
			return s.createLocally(candidate)
		},
		fieldservice.IsTransportError,
	)
	if err != nil {
		var apiErr *fieldservice.APIError
		if errors.As(err, &apiErr) && fieldservice.IsConflict(apiErr) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicate, apiErr.Detail)
		}
		return nil, err
	}

	// 3. Зеркалим созданную на backend бронь в локальное хранилище
	if source == fallback.SourceRemote {
		if mirrorErr := s.local.Append(created); mirrorErr != nil {
			s.log.Warn("[Create] Failed to mirror reservation locally: %v", mirrorErr)
		}
	}

	s.log.Info("[Create] Reservation created: id=%s, field=%s, date=%s, source=%s",
		created.ID, created.FieldID, created.Date, source)

	return created, nil
}

// Cancel отменяет подтверждённую бронь
func (s *Service) Cancel(ctx context.Context, token string, id string) error {
	_, source, err := fallback.DoRecorded(ctx, "cancel_reservation", s.metrics,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.CancelReservation(ctx, token, id)
		},
		func() (struct{}, error) {
			return struct{}{}, s.cancelLocally(id)
		},
		fieldservice.IsTransportError,
	)
	if err != nil {
		var apiErr *fieldservice.APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == 404 {
				return fmt.Errorf("%w: id %s", ErrReservationNotFound, id)
			}
			return err
		}
		return err
	}

	// После успешной отмены на backend обновляем и локальную копию
	if source == fallback.SourceRemote {
		if localErr := s.cancelLocally(id); localErr != nil &&
			!errors.Is(localErr, ErrReservationNotFound) {
			s.log.Warn("[Cancel] Failed to update local copy: %v", localErr)
		}
	}

	s.log.Info("[Cancel] Reservation cancelled: id=%s, source=%s", id, source)

	return nil
}

func (s *Service) listLocally() ([]*domain.Reservation, error) {
	list, err := s.local.List()
	if err != nil {
		return nil, fmt.Errorf("%w: List - failed to read local reservations: %v", ErrInternal, err)
	}
	return list, nil
}

func (s *Service) createRemotely(ctx context.Context, token string, candidate *domain.Reservation) (*domain.Reservation, error) {
	req := &fieldservice.CreateReservationRequest{
		FieldID:   candidate.FieldID,
		Date:      candidate.Date,
		DayOfWeek: string(candidate.DayOfWeek),
		StartTime: string(candidate.StartTime),
		EndTime:   string(candidate.EndTime),
		Price:     candidate.Price,
	}
	return s.api.CreateReservation(ctx, token, req)
}

func (s *Service) createLocally(candidate *domain.Reservation) (*domain.Reservation, error) {
	reservation := *candidate
	reservation.ID = "local-" + uuid.NewString()
	reservation.Status = domain.StatusConfirmed
	reservation.CreatedAt = s.timePr.Now().Format(time.RFC3339)

	if err := s.local.Append(&reservation); err != nil {
		return nil, fmt.Errorf("%w: createLocally - failed to persist reservation: %v", ErrInternal, err)
	}

	return &reservation, nil
}

func (s *Service) cancelLocally(id string) error {
	err := s.local.Cancel(id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrReservationNotFound):
		return fmt.Errorf("%w: id %s", ErrReservationNotFound, id)
	case errors.Is(err, storage.ErrCannotCancel):
		return fmt.Errorf("%w: id %s", ErrCannotCancel, id)
	default:
		return fmt.Errorf("%w: cancelLocally - %v", ErrInternal, err)
	}
}
