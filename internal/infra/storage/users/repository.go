package users

import (
	"fmt"
	"strings"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/localstore"
)

// Repository репозиторий оффлайн-аккаунтов, созданных без доступа к backend.
// Аккаунты лежат JSON-массивом под ключом offlineUsers.
type Repository struct {
	store localstore.Store
}

// NewRepository создает репозиторий оффлайн-аккаунтов
func NewRepository(store localstore.Store) *Repository {
	return &Repository{store: store}
}

// List возвращает все оффлайн-аккаунты
func (r *Repository) List() ([]*domain.OfflineUser, error) {
	list := []*domain.OfflineUser{}
	if _, err := localstore.GetJSON(r.store, localstore.KeyOfflineUsers, &list); err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrStore, err)
	}
	return list, nil
}

// FindByEmail ищет оффлайн-аккаунт по email (без учёта регистра)
func (r *Repository) FindByEmail(email string) (*domain.OfflineUser, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}

	for _, user := range list {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Append добавляет новый оффлайн-аккаунт. Email должен быть уникален.
func (r *Repository) Append(user *domain.OfflineUser) error {
	list, err := r.List()
	if err != nil {
		return err
	}

	for _, existing := range list {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailTaken
		}
	}

	list = append(list, user)
	if err := localstore.SetJSON(r.store, localstore.KeyOfflineUsers, list); err != nil {
		return fmt.Errorf("%w: Append: %v", ErrStore, err)
	}
	return nil
}
