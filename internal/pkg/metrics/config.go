package metrics

import (
	"errors"
	"net/url"
	"time"
)

var (
	// ErrPushgatewayURLRequired — метрики включены, но URL Pushgateway не задан.
	ErrPushgatewayURLRequired = errors.New("pushgateway URL is required when metrics enabled")
	// ErrPushgatewayURLInvalid — URL Pushgateway без схемы или хоста.
	ErrPushgatewayURLInvalid = errors.New("pushgateway URL has invalid format")
	// ErrJobNameRequired — не указано имя job.
	ErrJobNameRequired = errors.New("job name is required")
	// ErrInvalidTimeout — таймаут не положительный.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)

// DefaultJobName — имя job в Pushgateway по умолчанию.
const DefaultJobName = "loupe-ci"

// Config содержит настройки сбора и отправки метрик.
type Config struct {
	// Enabled — включены ли метрики.
	Enabled bool
	// PushgatewayURL — адрес Prometheus Pushgateway, например "http://pushgateway:9091".
	PushgatewayURL string
	// JobName — имя job для группировки метрик.
	JobName string
	// Timeout — таймаут отправки.
	Timeout time.Duration
	// InstanceLabel — значение label instance; пустое — hostname.
	InstanceLabel string
}

// Validate проверяет конфигурацию. Отключённые метрики всегда валидны.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}
	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}
	if c.JobName == "" {
		return ErrJobNameRequired
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию (метрики отключены).
func DefaultConfig() Config {
	return Config{
		JobName: DefaultJobName,
		Timeout: 10 * time.Second,
	}
}
