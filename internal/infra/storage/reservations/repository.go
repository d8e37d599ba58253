package reservations

import (
	"fmt"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/localstore"
)

// Repository репозиторий броней поверх локального key-value хранилища.
// Брони лежат JSON-массивом под ключом userReservations.
type Repository struct {
	store localstore.Store
}

// NewRepository создает репозиторий броней
func NewRepository(store localstore.Store) *Repository {
	return &Repository{store: store}
}

// List возвращает все брони локального хранилища, включая отменённые
func (r *Repository) List() ([]*domain.Reservation, error) {
	list := []*domain.Reservation{}
	if _, err := localstore.GetJSON(r.store, localstore.KeyUserReservations, &list); err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrStore, err)
	}
	return list, nil
}

// ListActive возвращает только подтверждённые брони
func (r *Repository) ListActive() ([]*domain.Reservation, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}

	active := make([]*domain.Reservation, 0, len(list))
	for _, res := range list {
		if res.IsActive() {
			active = append(active, res)
		}
	}
	return active, nil
}

// Append добавляет бронь в конец списка
func (r *Repository) Append(reservation *domain.Reservation) error {
	list, err := r.List()
	if err != nil {
		return err
	}

	list = append(list, reservation)
	if err := localstore.SetJSON(r.store, localstore.KeyUserReservations, list); err != nil {
		return fmt.Errorf("%w: Append: %v", ErrStore, err)
	}
	return nil
}

// Cancel помечает бронь отменённой. Запись остаётся в истории.
func (r *Repository) Cancel(id string) error {
	list, err := r.List()
	if err != nil {
		return err
	}

	for _, res := range list {
		if res.ID != id {
			continue
		}

		if !res.CanBeCancelled() {
			return ErrCannotCancel
		}

		res.Status = domain.StatusCancelled
		if err := localstore.SetJSON(r.store, localstore.KeyUserReservations, list); err != nil {
			return fmt.Errorf("%w: Cancel: %v", ErrStore, err)
		}
		return nil
	}

	return ErrReservationNotFound
}

// ReplaceAll перезаписывает локальный список целиком.
// Используется для оппортунистической синхронизации после успешного
// удалённого чтения: remote побеждает, local — кеш.
func (r *Repository) ReplaceAll(list []*domain.Reservation) error {
	if list == nil {
		list = []*domain.Reservation{}
	}
	if err := localstore.SetJSON(r.store, localstore.KeyUserReservations, list); err != nil {
		return fmt.Errorf("%w: ReplaceAll: %v", ErrStore, err)
	}
	return nil
}
