// Package fallback реализует общий паттерн "remote-first с локальным запасным
// вариантом": операция сначала выполняется против удалённого API, а при
// транспортной ошибке переключается на локальное хранилище. Ошибки уровня
// приложения (валидация, конфликты) пробрасываются без маскировки.
package fallback

import (
	"context"
	"time"
)

// Source источник результата операции
type Source string

const (
	// SourceRemote результат получен от удалённого API
	SourceRemote Source = "remote"

	// SourceLocal результат получен из локального хранилища
	SourceLocal Source = "local"
)

// Classifier определяет, является ли ошибка транспортной.
// Только транспортные ошибки запускают локальный fallback.
type Classifier func(error) bool

// Do выполняет remote; при транспортной ошибке (по isTransport) выполняет local
// и возвращает его результат как авторитетный для этого вызова.
// Ошибка уровня приложения возвращается как есть.
func Do[T any](
	ctx context.Context,
	remote func(ctx context.Context) (T, error),
	local func() (T, error),
	isTransport Classifier,
) (T, Source, error) {
	result, err := remote(ctx)
	if err == nil {
		return result, SourceRemote, nil
	}

	if !isTransport(err) {
		var zero T
		return zero, SourceRemote, err
	}

	result, localErr := local()
	if localErr != nil {
		var zero T
		return zero, SourceLocal, localErr
	}

	return result, SourceLocal, nil
}

// Исходы удалённого вызова для Recorder
const (
	outcomeOK        = "ok"
	outcomeAppError  = "app_error"
	outcomeTransport = "transport_error"
)

// Recorder принимает метрики операций. Реализуется pkg/metrics.
type Recorder interface {
	ObserveRemote(operation, outcome string, duration time.Duration)
	IncFallback(operation string)
	IncLocal(operation string)
}

// DoRecorded то же, что Do, но фиксирует исход и длительность удалённого
// вызова и факт переключения на локальное хранилище. rec может быть nil.
func DoRecorded[T any](
	ctx context.Context,
	operation string,
	rec Recorder,
	remote func(ctx context.Context) (T, error),
	local func() (T, error),
	isTransport Classifier,
) (T, Source, error) {
	started := time.Now()
	result, err := remote(ctx)
	elapsed := time.Since(started)

	if err == nil {
		if rec != nil {
			rec.ObserveRemote(operation, outcomeOK, elapsed)
		}
		return result, SourceRemote, nil
	}

	if !isTransport(err) {
		if rec != nil {
			rec.ObserveRemote(operation, outcomeAppError, elapsed)
		}
		var zero T
		return zero, SourceRemote, err
	}

	if rec != nil {
		rec.ObserveRemote(operation, outcomeTransport, elapsed)
		rec.IncFallback(operation)
	}

	result, localErr := local()
	if localErr != nil {
		var zero T
		return zero, SourceLocal, localErr
	}

	if rec != nil {
		rec.IncLocal(operation)
	}
	return result, SourceLocal, nil
}

