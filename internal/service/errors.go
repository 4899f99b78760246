package service

import (
	"ShareIt/internal/repo"
	"errors"
	"fmt"
)

// Виды ошибок бизнес-логики. Сравнивать через errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrConditionsNotMet = errors.New("conditions not met")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
)

// Error: ошибка сервиса с причиной для клиента.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string { return e.Reason }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func conditionsNotMet(format string, args ...any) error {
	return newError(ErrConditionsNotMet, format, args...)
}

func forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

func conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

// lookup переводит отсутствие записи в ErrNotFound, остальные ошибки отдаёт как есть.
func lookup(err error, format string, args ...any) error {
	if repo.IsNotFound(err) {
		return notFound(format, args...)
	}
	return err
}
