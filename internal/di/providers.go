package di

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/metrics"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
	"github.com/Kargones/loupe-ci/internal/pkg/tracing"
)

// ProvideLogger создаёт Logger на основе cfg.Logging.
// Пустые поля (и nil cfg) заменяются значениями logging.DefaultConfig.
func ProvideLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()
	if cfg == nil {
		return logging.NewLogger(logCfg)
	}

	l := cfg.Logging
	if l.Level != "" {
		logCfg.Level = l.Level
	}
	if l.Format != "" {
		logCfg.Format = l.Format
	}
	if l.Output != "" {
		logCfg.Output = l.Output
	}
	if l.FilePath != "" {
		logCfg.FilePath = l.FilePath
	}
	// Размер 0 MB не имеет смысла для lumberjack, поэтому 0 означает default.
	if l.MaxSize > 0 {
		logCfg.MaxSize = l.MaxSize
	}
	if l.MaxBackups > 0 {
		logCfg.MaxBackups = l.MaxBackups
	}
	if l.MaxAge > 0 {
		logCfg.MaxAge = l.MaxAge
	}
	logCfg.Compress = l.Compress

	return logging.NewLogger(logCfg)
}

// ProvideOutputWriter создаёт Writer по LOUPE_OUTPUT_FORMAT; по умолчанию text.
func ProvideOutputWriter() output.Writer {
	format := os.Getenv(constants.EnvOutputFormat)
	if format == "" {
		format = output.FormatText
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует trace_id запуска (32 hex-символа).
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе cfg.Metrics.
// При отключённых метриках или ошибке создания возвращает NopCollector.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(metrics.Config{
		Enabled:        cfg.Metrics.Enabled,
		PushgatewayURL: cfg.Metrics.PushgatewayURL,
		JobName:        cfg.Metrics.JobName,
		Timeout:        cfg.Metrics.Timeout,
		InstanceLabel:  cfg.Metrics.InstanceLabel,
	}, logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider инициализирует OTel TracerProvider и возвращает shutdown.
// При отключённом трейсинге или ошибке инициализации возвращает nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Endpoint:     cfg.Tracing.Endpoint,
		ServiceName:  cfg.Tracing.ServiceName,
		Version:      constants.Version,
		Environment:  cfg.Tracing.Environment,
		Insecure:     cfg.Tracing.Insecure,
		Timeout:      cfg.Tracing.Timeout,
		SamplingRate: cfg.Tracing.SamplingRate,
	}, logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideClientFactory создаёт фабрику клиентов Loupe. Клиенты пишут
// отладочный журнал в logger, длительность запросов в collector и span-ы
// в глобальный TracerProvider на момент создания клиента.
func ProvideClientFactory(logger logging.Logger, collector metrics.Collector) shared.ClientFactory {
	return func(cfg *config.Config) (loupe.Client, error) {
		return shared.CreateLoupeClient(cfg,
			loupe.WithLogger(logger.With("component", "loupe")),
			loupe.WithRequestRecorder(collector),
			loupe.WithTracerProvider(otel.GetTracerProvider()),
		)
	}
}
