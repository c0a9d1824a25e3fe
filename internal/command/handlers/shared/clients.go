// Package shared предоставляет общие утилиты для обработчиков команд Loupe.
package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
)

// ClientFactory создаёт клиент Loupe по конфигурации команды.
type ClientFactory func(cfg *config.Config) (loupe.Client, error)

// Deps — зависимости обработчиков, которые main получает из DI.
// Нулевые поля заменяются значениями по умолчанию.
type Deps struct {
	NewClient ClientFactory
	Logger    logging.Logger
}

// WithDefaults возвращает копию с заполненными пустыми полями.
func (d Deps) WithDefaults() Deps {
	if d.NewClient == nil {
		d.NewClient = func(cfg *config.Config) (loupe.Client, error) {
			return CreateLoupeClient(cfg)
		}
	}
	if d.Logger == nil {
		d.Logger = logging.NewSlogAdapter(slog.Default())
	}
	return d
}

// CreateLoupeClient создаёт клиент Loupe из эффективных учётных данных cfg
// (Credentials с переопределениями Connection).
func CreateLoupeClient(cfg *config.Config, opts ...loupe.Option) (loupe.Client, error) {
	if cfg == nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigMissing, "конфигурация не может быть nil", nil)
	}

	creds := cfg.EffectiveCredentials()
	if err := creds.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigMissing,
			"не заданы учётные данные Loupe: "+err.Error(), err)
	}

	base := []loupe.Option{
		loupe.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		loupe.WithUserAgent(constants.AppName + "/" + constants.Version),
	}
	client, err := loupe.NewAPIClient(creds.BaseURL, creds.UserName, creds.Password, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// IsConfigError сообщает, что ошибка вызвана конфигурацией, а не сервером.
func IsConfigError(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.ErrConfigMissing
}
