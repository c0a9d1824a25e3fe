package metrics

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/urlutil"
)

const namespace = "loupe"

// maxLabelLength ограничивает длину значения label.
const maxLabelLength = 128

// PrometheusCollector реализует Collector на Prometheus метриках.
// Метрики:
//   - loupe_command_duration_seconds{command,tenant,status}
//   - loupe_command_success_total{command,tenant}
//   - loupe_command_error_total{command,tenant}
//   - loupe_api_requests_total{endpoint,method,status}
//   - loupe_api_request_duration_seconds{endpoint,method}
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry
	instance string

	commandDuration *prometheus.HistogramVec
	commandSuccess  *prometheus.CounterVec
	commandError    *prometheus.CounterVec
	apiRequests     *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
}

// NewPrometheusCollector создаёт PrometheusCollector с собственным registry.
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для label instance", "error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	c := &PrometheusCollector{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		instance: instance,
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"command", "tenant", "status"}),
		commandSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_success_total",
			Help:      "Total number of successful command executions",
		}, []string{"command", "tenant"}),
		commandError: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_error_total",
			Help:      "Total number of failed command executions",
		}, []string{"command", "tenant"}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of HTTP requests to the Loupe API",
		}, []string{"endpoint", "method", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of HTTP requests to the Loupe API in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
	}

	for _, m := range []prometheus.Collector{c.commandDuration, c.commandSuccess, c.commandError, c.apiRequests, c.apiDuration} {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}
	return c, nil
}

// RecordCommandStart только пишет отладочное сообщение: метрики фиксируются по завершении.
func (c *PrometheusCollector) RecordCommandStart(command, tenant string) {
	c.logger.Debug("metrics: команда запущена", "command", command, "tenant", tenant)
}

// RecordCommandEnd обновляет histogram длительности и счётчик успехов или ошибок.
func (c *PrometheusCollector) RecordCommandEnd(command, tenant string, duration time.Duration, success bool) {
	command = sanitizeLabel(command)
	tenant = sanitizeLabel(tenant)

	status := "success"
	if !success {
		status = "error"
	}
	c.commandDuration.WithLabelValues(command, tenant, status).Observe(duration.Seconds())
	if success {
		c.commandSuccess.WithLabelValues(command, tenant).Inc()
	} else {
		c.commandError.WithLabelValues(command, tenant).Inc()
	}

	c.logger.Debug("metrics: команда завершена",
		"command", command,
		"tenant", tenant,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// RecordAPIRequest учитывает HTTP запрос к Loupe API.
// Ответ не получен (statusCode = 0) учитывается со status="error".
func (c *PrometheusCollector) RecordAPIRequest(endpoint, method string, statusCode int, duration time.Duration) {
	endpoint = sanitizeLabel(endpoint)
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	c.apiRequests.WithLabelValues(endpoint, method, status).Inc()
	c.apiDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// Push отправляет метрики в Pushgateway. Ошибки только логируются.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		return nil
	}
	if ctx.Err() != nil {
		c.logger.Debug("metrics: отправка отменена")
		return nil
	}

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// Registry возвращает registry коллектора. Используется в тестах.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// sanitizeLabel заменяет управляющие символы на '_' и обрезает значение
// до maxLabelLength рун.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	if runes := []rune(clean); len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}
