package auth

import "errors"

var (
	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("auth: invalid email or password")

	// ErrNotAuthenticated возвращается, когда активной сессии нет
	// или её токен истёк
	ErrNotAuthenticated = errors.New("auth: not authenticated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
