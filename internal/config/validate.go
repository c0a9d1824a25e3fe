package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator создаёт validator, который называет поля по env-тегу,
// чтобы сообщение указывало на переменную окружения.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name, _, _ := strings.Cut(fld.Tag.Get("env"), ","); name != "" && name != "-" {
			return name
		}
		if name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ","); name != "" && name != "-" {
			return name
		}
		return fld.Name
	})
	return v
}

// FieldError — ошибка валидации одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error реализует интерфейс error.
func (fe FieldError) Error() string {
	return fe.Field + ": " + fe.Message
}

// FieldErrors — ошибки валидации нескольких полей.
type FieldErrors []FieldError

// Error реализует интерфейс error.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// ValidateStruct проверяет структуру по тегам validate.
// Возвращает FieldErrors или nil.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	result := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		result = append(result, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "обязательный параметр"
	case "url":
		return fmt.Sprintf("ожидается абсолютный URL, получено %q", fe.Value())
	case "oneof":
		return "допустимые значения: " + fe.Param()
	case "gt":
		return "должно быть больше " + fe.Param()
	case "gte":
		return "должно быть не меньше " + fe.Param()
	case "lte":
		return "должно быть не больше " + fe.Param()
	default:
		return fe.Error()
	}
}
