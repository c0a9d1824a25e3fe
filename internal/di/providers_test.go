package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/metrics"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
)

func TestProvideLogger(t *testing.T) {
	assert.NotNil(t, ProvideLogger(nil), "nil Config даёт logger по умолчанию")
	assert.NotNil(t, ProvideLogger(&config.Config{
		Logging: config.LoggingConfig{Level: "debug", Format: "json"},
	}))
}

func TestProvideOutputWriter(t *testing.T) {
	t.Setenv(constants.EnvOutputFormat, "json")
	assert.IsType(t, &output.JSONWriter{}, ProvideOutputWriter())

	t.Setenv(constants.EnvOutputFormat, "")
	assert.IsType(t, &output.TextWriter{}, ProvideOutputWriter())
}

func TestProvideTraceID(t *testing.T) {
	id := ProvideTraceID()
	assert.Regexp(t, `^[0-9a-f]{32}$`, id)
	assert.NotEqual(t, id, ProvideTraceID())
}

func TestProvideMetricsCollector(t *testing.T) {
	logger := logging.NewNopLogger()

	assert.IsType(t, &metrics.NopCollector{}, ProvideMetricsCollector(nil, logger))
	assert.IsType(t, &metrics.NopCollector{}, ProvideMetricsCollector(&config.Config{}, logger))

	enabled := &config.Config{Metrics: config.MetricsConfig{
		Enabled:        true,
		PushgatewayURL: "http://pushgateway:9091",
		JobName:        "loupe-ci",
		Timeout:        time.Second,
	}}
	assert.IsType(t, &metrics.PrometheusCollector{}, ProvideMetricsCollector(enabled, logger))

	broken := &config.Config{Metrics: config.MetricsConfig{Enabled: true}}
	assert.IsType(t, &metrics.NopCollector{}, ProvideMetricsCollector(broken, logger),
		"ошибка конфигурации даёт NopCollector")
}

func TestProvideTracerProvider(t *testing.T) {
	logger := logging.NewNopLogger()

	shutdown := ProvideTracerProvider(nil, logger)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	shutdown = ProvideTracerProvider(&config.Config{}, logger)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

// recordingCollector запоминает вызовы RecordAPIRequest.
type recordingCollector struct {
	metrics.NopCollector

	mu        sync.Mutex
	endpoints []string
}

func (r *recordingCollector) RecordAPIRequest(endpoint, _ string, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpoints = append(r.endpoints, endpoint)
}

func TestProvideClientFactory(t *testing.T) {
	var (
		mu        sync.Mutex
		userAgent string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		userAgent = r.Header.Get("User-Agent")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/token":
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 60})
		case "/api/Tenant/ForUser":
			_ = json.NewEncoder(w).Encode(map[string]any{"tenants": []map[string]string{{"tenantName": "Acme"}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	collector := &recordingCollector{}
	factory := ProvideClientFactory(logging.NewNopLogger(), collector)

	cfg := &config.Config{
		Credentials: config.LoupeCredentials{BaseURL: srv.URL, UserName: "ci", Password: "secret"},
		HTTPTimeout: 5 * time.Second,
	}
	client, err := factory(cfg)
	require.NoError(t, err)

	resp, err := client.GetTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Tenants, 1)
	assert.Equal(t, "Acme", resp.Tenants[0].TenantName)

	assert.Len(t, collector.endpoints, 2, "запрос токена и запрос арендаторов")
	mu.Lock()
	assert.Equal(t, constants.AppName+"/"+constants.Version, userAgent)
	mu.Unlock()

	_, err = factory(&config.Config{HTTPTimeout: time.Second})
	assert.Error(t, err, "без учётных данных клиент не создаётся")
}

func TestInitializeApp(t *testing.T) {
	cfg := &config.Config{
		Command: constants.ActEnsureVersion,
		Logging: config.LoggingConfig{Level: "debug", Format: "text"},
	}

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.Same(t, cfg, app.Config)
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.OutputWriter)
	assert.Len(t, app.TraceID, 32)
	assert.NotNil(t, app.ClientFactory)
	assert.IsType(t, &metrics.NopCollector{}, app.MetricsCollector)
	require.NotNil(t, app.TracerShutdown)
	assert.NoError(t, app.TracerShutdown(context.Background()))

	deps := app.Deps()
	assert.NotNil(t, deps.NewClient)
	assert.Same(t, app.Logger, deps.Logger)
}
