package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Закрытый набор видов ошибок. Хендлеры сопоставляют их со статусами HTTP.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal error")
)

// internalErr оборачивает сбой хранилища или криптопримитива. Повторов нет: ошибка сразу уходит вызывающему.
func internalErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}

// notFoundOr превращает gorm.ErrRecordNotFound в ErrNotFound, остальное - в ErrInternal.
func notFoundOr(op, what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return internalErr(op, err)
}

// parseID проверяет формат идентификатора и возвращает его каноническую запись.
func parseID(field, raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: malformed %s", ErrBadRequest, field)
	}
	return id.String(), nil
}
