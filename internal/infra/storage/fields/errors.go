package fields

import "errors"

var (
	// ErrFieldNotFound возвращается, когда поле не найдено в локальном хранилище
	ErrFieldNotFound = errors.New("fields.repository: field not found")

	// ErrStore возвращается при ошибках нижележащего хранилища
	ErrStore = errors.New("fields.repository: store error")
)
