package config

import "time"

// TracingConfig содержит настройки OpenTelemetry трейсинга.
// Трейсинг отключён по умолчанию.
type TracingConfig struct {
	Enabled bool `yaml:"enabled" env:"LOUPE_TRACING_ENABLED"`

	// Endpoint — адрес OTLP HTTP коллектора, например "localhost:4318".
	Endpoint string `yaml:"endpoint" env:"LOUPE_TRACING_ENDPOINT" validate:"required_if=Enabled true"`

	ServiceName string `yaml:"serviceName" env:"LOUPE_TRACING_SERVICE_NAME" env-default:"loupe-ci"`
	Environment string `yaml:"environment" env:"LOUPE_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure — отправка без TLS.
	Insecure bool `yaml:"insecure" env:"LOUPE_TRACING_INSECURE"`

	Timeout time.Duration `yaml:"timeout" env:"LOUPE_TRACING_TIMEOUT" env-default:"5s" validate:"gt=0"`

	// SamplingRate — доля сэмплируемых трейсов от 0.0 до 1.0.
	SamplingRate float64 `yaml:"samplingRate" env:"LOUPE_TRACING_SAMPLING_RATE" env-default:"1.0" validate:"gte=0,lte=1"`
}
