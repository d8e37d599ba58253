package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда оффлайн-пользователь не найден
	ErrUserNotFound = errors.New("users.repository: user not found")

	// ErrEmailTaken возвращается, когда email уже занят оффлайн-аккаунтом
	ErrEmailTaken = errors.New("users.repository: email already registered")

	// ErrStore возвращается при ошибках нижележащего хранилища
	ErrStore = errors.New("users.repository: store error")
)
