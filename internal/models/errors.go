package models

import "errors"

// Виды ошибок ядра. Сервисы и репозитории оборачивают их через %w,
// HTTP-слой сопоставляет их со статусами ответа.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
)
