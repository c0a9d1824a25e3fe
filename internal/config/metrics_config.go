package config

import "time"

// MetricsConfig содержит настройки для Prometheus метрик.
type MetricsConfig struct {
	// Enabled — включены ли метрики (по умолчанию false).
	Enabled bool `yaml:"enabled" env:"LOUPE_METRICS_ENABLED"`

	// PushgatewayURL — URL Prometheus Pushgateway.
	// Пример: "http://pushgateway:9091"
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"LOUPE_METRICS_PUSHGATEWAY_URL" validate:"required_if=Enabled true,omitempty,url"`

	// JobName — имя job для группировки метрик.
	JobName string `yaml:"jobName" env:"LOUPE_METRICS_JOB_NAME" env-default:"loupe-ci"`

	// Timeout — таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"LOUPE_METRICS_TIMEOUT" env-default:"10s" validate:"gt=0"`

	// InstanceLabel — переопределение instance label.
	// Если пусто — используется hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"LOUPE_METRICS_INSTANCE"`
}
