package di

import (
	"context"

	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/metrics"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новой зависимости:
//  1. Добавить поле в App
//  2. Создать провайдер в providers.go
//  3. Добавить провайдер в ProviderSet в wire.go
//  4. Перегенерировать wire_gen.go
type App struct {
	// Config передаётся извне через InitializeApp().
	Config *config.Config

	// Logger создаётся через ProvideLogger на основе LoggingConfig.
	Logger logging.Logger

	// OutputWriter форматирует результаты по LOUPE_OUTPUT_FORMAT.
	OutputWriter output.Writer

	// TraceID — идентификатор запуска для корреляции логов.
	TraceID string

	// ClientFactory создаёт клиент Loupe с логгером, метриками запросов
	// и трейсингом этого App.
	ClientFactory shared.ClientFactory

	// MetricsCollector — Prometheus collector или NopCollector, если метрики отключены.
	MetricsCollector metrics.Collector

	// TracerShutdown отправляет буферизированные span-ы и завершает TracerProvider.
	TracerShutdown func(context.Context) error
}

// Deps возвращает зависимости для регистрации обработчиков команд.
func (a *App) Deps() shared.Deps {
	return shared.Deps{NewClient: a.ClientFactory, Logger: a.Logger}
}
