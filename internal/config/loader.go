package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
)

// MustLoad загружает конфигурацию из файла LOUPE_CONFIG (если задан)
// и переменных окружения.
func MustLoad() (*Config, error) {
	return Load(os.Getenv(constants.EnvConfigFile))
}

// Load загружает конфигурацию. Пустой path означает только переменные окружения.
// Переменные окружения переопределяют значения из файла.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				fmt.Sprintf("не удалось прочитать файл конфигурации %s", path), err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать переменные окружения", err)
	}

	if err := ValidateStruct(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			"некорректная конфигурация: "+err.Error(), err)
	}

	return &cfg, nil
}

// Template возвращает пример конфигурации для `loupectl config init`.
func Template() *Config {
	logDefaults := logging.DefaultConfig()
	return &Config{
		Credentials: LoupeCredentials{
			BaseURL:  "https://us.onloupe.com",
			Tenant:   "YourTenant",
			UserName: "ci@example.com",
		},
		Params: OperationParams{
			Product:     "YourProduct",
			Application: "YourApplication",
			ReleaseType: "Minor",
		},
		HTTPTimeout: 30 * time.Second,
		Logging: LoggingConfig{
			Level:      logDefaults.Level,
			Format:     logDefaults.Format,
			Output:     logDefaults.Output,
			FilePath:   logDefaults.FilePath,
			MaxSize:    logDefaults.MaxSize,
			MaxBackups: logDefaults.MaxBackups,
			MaxAge:     logDefaults.MaxAge,
		},
		Metrics: MetricsConfig{JobName: constants.AppName, Timeout: 10 * time.Second},
		Tracing: TracingConfig{ServiceName: constants.AppName, Environment: "production", Timeout: 5 * time.Second, SamplingRate: 1},
	}
}

// WriteTemplate записывает cfg в YAML-файл path с правами только для владельца.
// Существующий файл не перезаписывается.
func WriteTemplate(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("конфигурация не может быть nil")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать конфигурацию: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePermPrivate)
	if err != nil {
		return fmt.Errorf("не удалось создать файл %s: %w", path, err)
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close() //nolint:errcheck // ошибка записи важнее
		return fmt.Errorf("не удалось записать файл %s: %w", path, err)
	}
	return f.Close()
}
