// Package localstore локальное долговременное хранилище клиента.
// Интерфейс повторяет контракт key-value хранилища браузера:
// get/set/remove строковых значений по ключу. В production значения
// лежат в JSON-файле, в тестах — в памяти.
package localstore

import (
	"encoding/json"
	"fmt"
)

// Ключи хранилища. Контракт разделяется с другими клиентами маркетплейса
// и должен сохраняться как есть.
const (
	KeyToken            = "token"
	KeyUserData         = "userData"
	KeyUserReservations = "userReservations"
	KeyLocalFields      = "localFields"
	KeyOfflineUsers     = "offlineUsers"
	KeySearchedCity     = "searchedCity"
	KeyCityResults      = "cityResults"
)

// Store key-value хранилище строковых значений
type Store interface {
	// Get возвращает значение и признак его наличия
	Get(key string) (string, bool, error)

	// Set записывает значение по ключу
	Set(key, value string) error

	// Remove удаляет ключ. Отсутствие ключа не ошибка.
	Remove(key string) error
}

// GetJSON читает значение ключа и десериализует его в out.
// При отсутствии ключа out не модифицируется и возвращается false.
func GetJSON(s Store, key string, out interface{}) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorruptedValue, key, err)
	}
	return true, nil
}

// SetJSON сериализует value и записывает его по ключу
func SetJSON(s Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrEncodeValue, key, err)
	}
	return s.Set(key, string(raw))
}
