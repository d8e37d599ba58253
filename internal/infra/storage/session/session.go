// Package session хранение данных текущей сессии: токен авторизации
// и профиль пользователя под ключами token и userData.
package session

import (
	"errors"
	"fmt"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/localstore"
)

var (
	// ErrNoSession возвращается, когда сессия отсутствует
	ErrNoSession = errors.New("session.repository: no active session")

	// ErrStore возвращается при ошибках нижележащего хранилища
	ErrStore = errors.New("session.repository: store error")
)

// Repository репозиторий сессии
type Repository struct {
	store localstore.Store
}

// NewRepository создает репозиторий сессии
func NewRepository(store localstore.Store) *Repository {
	return &Repository{store: store}
}

// Token возвращает сохранённый токен авторизации
func (r *Repository) Token() (string, error) {
	token, ok, err := r.store.Get(localstore.KeyToken)
	if err != nil {
		return "", fmt.Errorf("%w: Token: %v", ErrStore, err)
	}
	if !ok || token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// User возвращает профиль текущего пользователя
func (r *Repository) User() (*domain.User, error) {
	user := &domain.User{}
	ok, err := localstore.GetJSON(r.store, localstore.KeyUserData, user)
	if err != nil {
		return nil, fmt.Errorf("%w: User: %v", ErrStore, err)
	}
	if !ok {
		return nil, ErrNoSession
	}
	return user, nil
}

// Save сохраняет токен и профиль пользователя
func (r *Repository) Save(token string, user *domain.User) error {
	if err := r.store.Set(localstore.KeyToken, token); err != nil {
		return fmt.Errorf("%w: Save token: %v", ErrStore, err)
	}
	if err := localstore.SetJSON(r.store, localstore.KeyUserData, user); err != nil {
		return fmt.Errorf("%w: Save user: %v", ErrStore, err)
	}
	return nil
}

// Clear удаляет сессию (logout)
func (r *Repository) Clear() error {
	if err := r.store.Remove(localstore.KeyToken); err != nil {
		return fmt.Errorf("%w: Clear token: %v", ErrStore, err)
	}
	if err := r.store.Remove(localstore.KeyUserData); err != nil {
		return fmt.Errorf("%w: Clear user: %v", ErrStore, err)
	}
	return nil
}
