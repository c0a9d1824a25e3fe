// Package metrics собирает метрики команд и HTTP запросов к Loupe
// и отправляет их в Prometheus Pushgateway.
//
// NewCollector выбирает реализацию по конфигурации: PrometheusCollector
// при включённых метриках, NopCollector иначе.
package metrics

import (
	"context"
	"time"

	"github.com/Kargones/loupe-ci/internal/pkg/logging"
)

// Collector определяет интерфейс сбора метрик.
type Collector interface {
	// RecordCommandStart записывает начало выполнения команды.
	RecordCommandStart(command, tenant string)

	// RecordCommandEnd записывает завершение команды с результатом.
	RecordCommandEnd(command, tenant string, duration time.Duration, success bool)

	// RecordAPIRequest записывает один HTTP запрос к Loupe API.
	// statusCode = 0 означает, что ответ не получен.
	RecordAPIRequest(endpoint, method string, statusCode int, duration time.Duration)

	// Push отправляет метрики в Pushgateway.
	// Ошибки отправки логируются, метод всегда возвращает nil.
	Push(ctx context.Context) error
}

// NewCollector создаёт Collector на основе конфигурации.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}
	return NewPrometheusCollector(config, logger)
}

// NopCollector — реализация Collector для отключённых метрик.
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

func (c *NopCollector) RecordCommandStart(string, string) {}
func (c *NopCollector) RecordCommandEnd(string, string, time.Duration, bool) {}
func (c *NopCollector) RecordAPIRequest(string, string, int, time.Duration) {}
func (c *NopCollector) Push(context.Context) error { return nil }
