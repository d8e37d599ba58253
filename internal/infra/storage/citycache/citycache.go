// Package citycache кеш последнего поиска полей по городу:
// название города под ключом searchedCity, результаты под cityResults.
package citycache

import (
	"errors"
	"fmt"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/localstore"
)

var (
	// ErrNoSearch возвращается, когда сохранённого поиска нет
	ErrNoSearch = errors.New("citycache.repository: no cached search")

	// ErrStore возвращается при ошибках нижележащего хранилища
	ErrStore = errors.New("citycache.repository: store error")
)

// Repository репозиторий кеша поиска по городу
type Repository struct {
	store localstore.Store
}

// NewRepository создает репозиторий кеша поиска
func NewRepository(store localstore.Store) *Repository {
	return &Repository{store: store}
}

// Save сохраняет город и результаты последнего поиска
func (r *Repository) Save(city string, results []*domain.Field) error {
	if results == nil {
		results = []*domain.Field{}
	}
	if err := r.store.Set(localstore.KeySearchedCity, city); err != nil {
		return fmt.Errorf("%w: Save city: %v", ErrStore, err)
	}
	if err := localstore.SetJSON(r.store, localstore.KeyCityResults, results); err != nil {
		return fmt.Errorf("%w: Save results: %v", ErrStore, err)
	}
	return nil
}

// Last возвращает город и результаты последнего сохранённого поиска
func (r *Repository) Last() (string, []*domain.Field, error) {
	city, ok, err := r.store.Get(localstore.KeySearchedCity)
	if err != nil {
		return "", nil, fmt.Errorf("%w: Last city: %v", ErrStore, err)
	}
	if !ok || city == "" {
		return "", nil, ErrNoSearch
	}

	results := []*domain.Field{}
	if _, err := localstore.GetJSON(r.store, localstore.KeyCityResults, &results); err != nil {
		return "", nil, fmt.Errorf("%w: Last results: %v", ErrStore, err)
	}
	return city, results, nil
}
