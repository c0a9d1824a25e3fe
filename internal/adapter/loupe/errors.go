package loupe

import (
	"errors"
	"fmt"

	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
)

// Коды ошибок для операций Loupe.
const (
	// ErrLoupeConnect — сетевая ошибка или ошибка чтения ответа
	ErrLoupeConnect = "LOUPE.CONNECT_FAILED"
	// ErrLoupeAPI — сервер вернул не-2xx ответ
	ErrLoupeAPI = "LOUPE.API_FAILED"
	// ErrLoupeAuth — не удалось получить session token
	ErrLoupeAuth = "LOUPE.AUTH_FAILED"
	// ErrLoupeNotFound — искомая версия приложения отсутствует
	ErrLoupeNotFound = "LOUPE.NOT_FOUND"
	// ErrLoupeValidation — ошибка валидации входных данных
	ErrLoupeValidation = "LOUPE.VALIDATION_FAILED"
	// ErrLoupeDecode — тело ответа не удалось разобрать как JSON
	ErrLoupeDecode = "LOUPE.DECODE_FAILED"
)

// Сообщения для ответов без тела.
const (
	msgUnauthorized = "Verify that the credentials used to connect are correct."
	msgForbidden    = "Verify that the credentials used to connect have permission to access related resources."
	msgNotFoundFmt  = "Verify that the URL in the operation or credentials is correct (resolved to '%s')."
)

// LoupeError представляет ошибку при работе с Loupe API.
type LoupeError struct {
	// Code — код ошибки (одна из констант ErrLoupe*)
	Code string
	// Message — сообщение сервера или описание ошибки
	Message string
	// StatusCode — HTTP статус ответа (0 если запрос не дошёл до сервера)
	StatusCode int
	// URL — адрес запроса; может быть пустым
	URL string
	// Cause — оригинальная ошибка
	Cause error
}

// Error реализует интерфейс error.
func (e *LoupeError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("(%d) %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap возвращает оригинальную ошибку для errors.Is/As.
func (e *LoupeError) Unwrap() error {
	return e.Cause
}

// ErrorCode возвращает машиночитаемый код ошибки.
func (e *LoupeError) ErrorCode() string {
	return e.Code
}

// FullMessage возвращает сообщение в формате, пригодном для журнала выполнения.
func (e *LoupeError) FullMessage() string {
	return fmt.Sprintf("The server returned an error (%d): %s", e.StatusCode, e.Message)
}

// As поддерживает преобразование LoupeError в apperrors.AppError через errors.As.
func (e *LoupeError) As(target any) bool {
	if t, ok := target.(**apperrors.AppError); ok {
		*t = &apperrors.AppError{
			Code:    e.Code,
			Message: e.Message,
			Cause:   e.Cause,
		}
		return true
	}
	return false
}

// NewLoupeError создаёт ошибку Loupe без HTTP статуса.
func NewLoupeError(code, message string, cause error) *LoupeError {
	return &LoupeError{Code: code, Message: message, Cause: cause}
}

// NewLoupeErrorWithStatus создаёт ошибку Loupe с HTTP статусом и адресом запроса.
func NewLoupeErrorWithStatus(code, message string, statusCode int, url string, cause error) *LoupeError {
	return &LoupeError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		URL:        url,
		Cause:      cause,
	}
}

// ValidationError представляет ошибку валидации входных данных.
// Возвращается до любого сетевого вызова.
type ValidationError struct {
	// Field — имя поля с ошибкой
	Field string
	// Message — описание ошибки
	Message string
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] поле '%s': %s", ErrLoupeValidation, e.Field, e.Message)
}

// ErrorCode возвращает машиночитаемый код ошибки валидации.
func (e *ValidationError) ErrorCode() string {
	return ErrLoupeValidation
}

// As поддерживает преобразование ValidationError в apperrors.AppError через errors.As.
func (e *ValidationError) As(target any) bool {
	if t, ok := target.(**apperrors.AppError); ok {
		*t = &apperrors.AppError{
			Code:    ErrLoupeValidation,
			Message: fmt.Sprintf("поле '%s': %s", e.Field, e.Message),
		}
		return true
	}
	return false
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func hasCode(err error, code string) bool {
	var lErr *LoupeError
	if errors.As(err, &lErr) {
		return lErr.Code == code
	}
	return false
}

// IsNotFoundError проверяет, является ли ошибка ошибкой "версия не найдена".
func IsNotFoundError(err error) bool {
	return hasCode(err, ErrLoupeNotFound)
}

// IsAuthError проверяет, является ли ошибка ошибкой аутентификации.
func IsAuthError(err error) bool {
	return hasCode(err, ErrLoupeAuth)
}

// IsAPIError проверяет, является ли ошибка не-2xx ответом API.
func IsAPIError(err error) bool {
	return hasCode(err, ErrLoupeAPI)
}

// IsConnectionError проверяет, является ли ошибка сетевой.
func IsConnectionError(err error) bool {
	return hasCode(err, ErrLoupeConnect)
}

// IsValidationError проверяет, является ли ошибка ошибкой валидации.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// StatusCode возвращает HTTP статус из цепочки ошибок или 0.
func StatusCode(err error) int {
	var lErr *LoupeError
	if errors.As(err, &lErr) {
		return lErr.StatusCode
	}
	return 0
}

// FullMessage возвращает сообщение ошибки для журнала.
// Для LoupeError со статусом используется формат "The server returned an error (N): ...".
func FullMessage(err error) string {
	if err == nil {
		return ""
	}
	var lErr *LoupeError
	if errors.As(err, &lErr) && lErr.StatusCode != 0 {
		return lErr.FullMessage()
	}
	return err.Error()
}
