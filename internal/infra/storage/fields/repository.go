package fields

import (
	"fmt"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/localstore"
)

// Repository репозиторий полей, созданных локально (без доступа к backend).
// Поля лежат JSON-массивом под ключом localFields.
type Repository struct {
	store localstore.Store
}

// NewRepository создает репозиторий локальных полей
func NewRepository(store localstore.Store) *Repository {
	return &Repository{store: store}
}

// List возвращает все локально созданные поля
func (r *Repository) List() ([]*domain.Field, error) {
	list := []*domain.Field{}
	if _, err := localstore.GetJSON(r.store, localstore.KeyLocalFields, &list); err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrStore, err)
	}
	return list, nil
}

// GetByID ищет поле по идентификатору
func (r *Repository) GetByID(id string) (*domain.Field, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}

	for _, field := range list {
		if field.ID == id {
			return field, nil
		}
	}
	return nil, ErrFieldNotFound
}

// ListByCity возвращает локальные поля указанного города
func (r *Repository) ListByCity(city string) ([]*domain.Field, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Field, 0, len(list))
	for _, field := range list {
		if field.City == city {
			matched = append(matched, field)
		}
	}
	return matched, nil
}

// Append добавляет поле в конец списка
func (r *Repository) Append(field *domain.Field) error {
	list, err := r.List()
	if err != nil {
		return err
	}

	list = append(list, field)
	if err := localstore.SetJSON(r.store, localstore.KeyLocalFields, list); err != nil {
		return fmt.Errorf("%w: Append: %v", ErrStore, err)
	}
	return nil
}
