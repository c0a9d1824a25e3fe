// Package config загружает конфигурацию loupe-ci.
//
// Источники значений в порядке возрастания приоритета:
//  1. env-default теги структур;
//  2. YAML-файл, путь к которому задан в LOUPE_CONFIG;
//  3. переменные окружения LOUPE_*.
package config

import (
	"log/slog"
	"strings"
	"time"
)

// Config — конфигурация приложения.
type Config struct {
	// Command — имя выполняемой команды.
	Command string `yaml:"command" env:"LOUPE_COMMAND"`

	// Credentials — сохранённые учётные данные Loupe.
	// Проверяются отдельно через Validate: команды help и version работают без них.
	Credentials LoupeCredentials `yaml:"credentials" validate:"-"`

	// Connection — параметры подключения уровня операции.
	// Непустые поля переопределяют Credentials.
	Connection ConnectionOverride `yaml:"connection"`

	// Params — параметры команд.
	Params OperationParams `yaml:"params"`

	// HTTPTimeout — таймаут одного HTTP-запроса к Loupe.
	HTTPTimeout time.Duration `yaml:"httpTimeout" env:"LOUPE_HTTP_TIMEOUT" env-default:"30s" validate:"gt=0"`

	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoupeCredentials — учётные данные Loupe.
type LoupeCredentials struct {
	// BaseURL — адрес API; пустой означает https://us.onloupe.com.
	BaseURL string `yaml:"baseUrl" env:"LOUPE_BASE_URL" validate:"omitempty,url"`

	// Tenant — арендатор (customer name). Для single-tenant установки пуст.
	Tenant string `yaml:"tenant" env:"LOUPE_TENANT"`

	UserName string `yaml:"userName" env:"LOUPE_USERNAME" validate:"required"`
	Password string `yaml:"password" env:"LOUPE_PASSWORD" validate:"required"`
}

// Description возвращает "user" или "user (tenant)".
func (c LoupeCredentials) Description() string {
	if c.Tenant == "" {
		return c.UserName
	}
	return c.UserName + " (" + c.Tenant + ")"
}

// IsEmpty сообщает, что учётные данные не заданы.
func (c LoupeCredentials) IsEmpty() bool {
	return strings.TrimSpace(c.UserName) == "" && c.Password == ""
}

// Validate проверяет обязательные поля.
func (c LoupeCredentials) Validate() error {
	return ValidateStruct(c)
}

// LogValue скрывает пароль при логировании через slog.
func (c LoupeCredentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", c.BaseURL),
		slog.String("tenant", c.Tenant),
		slog.String("user", c.UserName),
	)
}

// ConnectionOverride — поля подключения, заданные на уровне операции.
type ConnectionOverride struct {
	BaseURL  string `yaml:"baseUrl" env:"LOUPE_CONNECTION_BASE_URL" validate:"omitempty,url"`
	Tenant   string `yaml:"tenant" env:"LOUPE_CONNECTION_TENANT"`
	UserName string `yaml:"userName" env:"LOUPE_CONNECTION_USERNAME"`
	Password string `yaml:"password" env:"LOUPE_CONNECTION_PASSWORD"`
}

// EffectiveCredentials возвращает Credentials с применёнными непустыми полями Connection.
func (c *Config) EffectiveCredentials() LoupeCredentials {
	creds := c.Credentials
	if c.Connection.BaseURL != "" {
		creds.BaseURL = c.Connection.BaseURL
	}
	if c.Connection.Tenant != "" {
		creds.Tenant = c.Connection.Tenant
	}
	if c.Connection.UserName != "" {
		creds.UserName = c.Connection.UserName
	}
	if c.Connection.Password != "" {
		creds.Password = c.Connection.Password
	}
	return creds
}

// OperationParams — параметры команд ensure-version, enumerate-issues и suggest.
// Обязательность полей проверяет конкретная команда.
type OperationParams struct {
	Product     string `yaml:"product" env:"LOUPE_PRODUCT"`
	Application string `yaml:"application" env:"LOUPE_APPLICATION"`

	// Version — версия приложения. Для enumerate-issues может содержать '*'.
	Version string `yaml:"version" env:"LOUPE_VERSION"`

	Caption         string `yaml:"caption" env:"LOUPE_CAPTION"`
	Description     string `yaml:"description" env:"LOUPE_DESCRIPTION"`
	PromotionLevel  string `yaml:"promotionLevel" env:"LOUPE_PROMOTION_LEVEL"`
	ReleaseNotesURL string `yaml:"releaseNotesUrl" env:"LOUPE_RELEASE_NOTES_URL"`

	// ReleaseDate — дата в свободном формате ("2024-03-05", "March 5, 2024", ...).
	ReleaseDate string `yaml:"releaseDate" env:"LOUPE_RELEASE_DATE"`

	ReleaseType string `yaml:"releaseType" env:"LOUPE_RELEASE_TYPE"`

	// SuggestKind — вид подсказки команды suggest.
	SuggestKind string `yaml:"suggestKind" env:"LOUPE_SUGGEST_KIND"`
}
