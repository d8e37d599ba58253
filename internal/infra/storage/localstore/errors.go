package localstore

import "errors"

var (
	// ErrReadStore возвращается при ошибке чтения файла хранилища
	ErrReadStore = errors.New("localstore: failed to read store")

	// ErrWriteStore возвращается при ошибке записи файла хранилища
	ErrWriteStore = errors.New("localstore: failed to write store")

	// ErrCorruptedValue возвращается, когда значение ключа не десериализуется
	ErrCorruptedValue = errors.New("localstore: corrupted value")

	// ErrEncodeValue возвращается при ошибке сериализации значения
	ErrEncodeValue = errors.New("localstore: failed to encode value")
)
