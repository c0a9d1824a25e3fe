// Package apperrors предоставляет структурированные ошибки приложения.
// Переименован из errors чтобы избежать конфликта со стандартной библиотекой.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
// Коды ошибок Loupe API (LOUPE.*) объявлены в пакете адаптера.
const (
	// Category: CONFIG — загрузка и валидация конфигурации.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"
	ErrConfigMissing  = "CONFIG.MISSING"

	// Category: COMMAND — выполнение команд.
	ErrCommandNotFound = "COMMAND.NOT_FOUND"
	ErrCommandExec     = "COMMAND.EXEC_FAILED"
	ErrCommandParams   = "COMMAND.INVALID_PARAMS"

	// Category: OUTPUT — форматирование вывода.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"
)

// codedError — ошибка с машиночитаемым кодом.
type codedError interface {
	ErrorCode() string
}

// AppError представляет структурированную ошибку приложения.
// Message НЕ ДОЛЖЕН содержать секреты (пароли, session token).
type AppError struct {
	// Code — машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message — человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause — исходная ошибка, в JSON не попадает.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrorCode возвращает машиночитаемый код ошибки.
func (e *AppError) ErrorCode() string {
	return e.Code
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Code возвращает код первой ошибки в цепочке, у которой он есть.
// Если кода нет, возвращается fallback.
func Code(err error, fallback string) string {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.ErrorCode()
	}
	return fallback
}
