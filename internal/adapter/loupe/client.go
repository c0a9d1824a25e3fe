package loupe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/urlutil"
)

// DefaultBaseURL — адрес облачной установки Loupe.
const DefaultBaseURL = "https://us.onloupe.com"

// DefaultTimeout — таймаут HTTP клиента по умолчанию.
const DefaultTimeout = 60 * time.Second

const tracerName = "github.com/Kargones/loupe-ci/internal/adapter/loupe"

// RequestRecorder принимает сведения о каждом HTTP запросе к Loupe.
// Реализуется metrics.Collector.
type RequestRecorder interface {
	RecordAPIRequest(endpoint, method string, statusCode int, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordAPIRequest(string, string, int, time.Duration) {}

// Compile-time проверка реализации интерфейса.
var _ Client = (*APIClient)(nil)

// APIClient реализует Client поверх net/http.
// Хранит только неизменяемую конфигурацию и безопасен для конкурентного использования.
type APIClient struct {
	baseURL    string
	userName   string
	password   string
	userAgent  string
	httpClient *http.Client
	logger     logging.Logger
	recorder   RequestRecorder
	tracer     trace.Tracer
}

// Option настраивает APIClient.
type Option func(*APIClient)

// WithHTTPClient задаёт HTTP клиент (например, из httptest.Server).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger задаёт логгер для отладочных сообщений клиента.
func WithLogger(l logging.Logger) Option {
	return func(c *APIClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestRecorder задаёт приёмник метрик HTTP запросов.
func WithRequestRecorder(r RequestRecorder) Option {
	return func(c *APIClient) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithTracerProvider задаёт provider для client span-ов.
// По умолчанию используется глобальный otel.GetTracerProvider().
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *APIClient) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithUserAgent переопределяет заголовок User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *APIClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewAPIClient создаёт клиент Loupe.
// Пустой baseURL заменяется на DefaultBaseURL, завершающий '/' отбрасывается.
func NewAPIClient(baseURL, userName, password string, opts ...Option) (*APIClient, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, NewValidationError("UserName", "имя пользователя Loupe обязательно")
	}
	if password == "" {
		return nil, NewValidationError("Password", "пароль Loupe обязателен")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	c := &APIClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		userName:   userName,
		password:   password,
		userAgent:  "loupe-ci",
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.NewNopLogger(),
		recorder:   nopRecorder{},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL возвращает базовый адрес сервера без завершающего '/'.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Authenticate получает session token по логину и паролю.
func (c *APIClient) Authenticate(ctx context.Context) (*AuthenticationToken, error) {
	data, err := c.send(ctx, http.MethodGet, "auth/token", APIOptions{}, nil, func(req *http.Request) {
		req.SetBasicAuth(c.userName, c.password)
	})
	if err != nil {
		var lErr *LoupeError
		if errors.As(err, &lErr) && lErr.Code == ErrLoupeAPI {
			lErr.Code = ErrLoupeAuth
		}
		return nil, err
	}

	token, err := decode[AuthenticationToken](data)
	if err != nil {
		return nil, err
	}
	if token.Token == "" {
		return nil, NewLoupeError(ErrLoupeAuth, "сервер не вернул access_token", nil)
	}
	return token, nil
}

// invoke выполняет авторизованный запрос и разбирает тело ответа в T.
// Пустое тело ответа даёт нулевое значение T.
func invoke[T any](ctx context.Context, c *APIClient, token *AuthenticationToken, method, relativeURL string, opts APIOptions, body any) (*T, error) {
	if token == nil {
		return nil, NewValidationError("token", "session token не получен")
	}
	data, err := c.send(ctx, method, relativeURL, opts, body, func(req *http.Request) {
		req.Header.Set("Authorization", "Session "+token.Token)
	})
	if err != nil {
		return nil, err
	}
	return decode[T](data)
}

func decode[T any](data []byte) (*T, error) {
	var out T
	if len(bytes.TrimSpace(data)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, NewLoupeError(ErrLoupeDecode, "не удалось разобрать ответ Loupe API", err)
	}
	return &out, nil
}

// send выполняет HTTP запрос и возвращает тело успешного (2xx) ответа.
func (c *APIClient) send(ctx context.Context, method, relativeURL string, opts APIOptions, body any, authorize func(*http.Request)) ([]byte, error) {
	reqURL := BuildURL(c.baseURL, relativeURL, opts)
	endpoint := endpointLabel(relativeURL)

	ctx, span := c.tracer.Start(ctx, method+" "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("loupe.endpoint", endpoint),
			attribute.String("loupe.tenant", opts.Tenant),
		),
	)
	defer span.End()

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, NewLoupeError(ErrLoupeAPI, "не удалось сериализовать тело запроса", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, NewLoupeError(ErrLoupeConnect, "не удалось создать HTTP запрос", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if opts.Product != "" {
		req.Header.Set("loupe-product", opts.Product)
	}
	if opts.Application != "" {
		req.Header.Set("loupe-application", opts.Application)
	}
	authorize(req)

	c.logger.Debug("Запрос к Loupe API",
		"method", method,
		"endpoint", relativeURL,
		"host", urlutil.MaskURL(reqURL),
		"tenant", opts.Tenant,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.RecordAPIRequest(endpoint, method, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return nil, NewLoupeErrorWithStatus(ErrLoupeConnect, "не удалось выполнить запрос к Loupe API", 0, reqURL, err)
	}
	defer func() {
		if errBody := resp.Body.Close(); errBody != nil {
			c.logger.Debug("Не удалось закрыть тело ответа", "error", errBody.Error())
		}
	}()

	respBody, readErr := io.ReadAll(resp.Body)
	c.recorder.RecordAPIRequest(endpoint, method, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if readErr != nil {
			span.RecordError(readErr)
			span.SetStatus(codes.Error, "read error")
			return nil, NewLoupeErrorWithStatus(ErrLoupeConnect, "не удалось прочитать ответ Loupe API", resp.StatusCode, reqURL, readErr)
		}
		return respBody, nil
	}

	apiErr := wrapResponseError(resp.StatusCode, respBody, readErr, reqURL)
	span.RecordError(apiErr)
	span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	c.logger.Debug("Loupe API вернул ошибку",
		"endpoint", relativeURL,
		"status", resp.StatusCode,
		"error", apiErr.Error(),
	)
	return nil, apiErr
}

// wrapResponseError строит ошибку для не-2xx ответа.
// Порядок: поле message из JSON, затем текст тела, затем стандартные
// сообщения для 401/403/404. Если тело не прочитано и статус не из этого
// набора, возвращается исходная ошибка чтения.
func wrapResponseError(statusCode int, body []byte, readErr error, reqURL string) *LoupeError {
	if readErr == nil {
		var payload apiErrorResponse
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return NewLoupeErrorWithStatus(ErrLoupeAPI, payload.Message, statusCode, reqURL, nil)
		}
		if text := strings.TrimSpace(string(body)); text != "" {
			return NewLoupeErrorWithStatus(ErrLoupeAPI, text, statusCode, reqURL, nil)
		}
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return NewLoupeErrorWithStatus(ErrLoupeAPI, msgUnauthorized, statusCode, reqURL, readErr)
	case http.StatusForbidden:
		return NewLoupeErrorWithStatus(ErrLoupeAPI, msgForbidden, statusCode, reqURL, readErr)
	case http.StatusNotFound:
		return NewLoupeErrorWithStatus(ErrLoupeAPI, fmt.Sprintf(msgNotFoundFmt, reqURL), statusCode, reqURL, readErr)
	}

	if readErr != nil {
		return NewLoupeErrorWithStatus(ErrLoupeConnect, "не удалось прочитать ответ Loupe API", statusCode, reqURL, readErr)
	}
	return NewLoupeErrorWithStatus(ErrLoupeAPI, http.StatusText(statusCode), statusCode, reqURL, nil)
}

// endpointLabel заменяет идентификаторы в пути на "{id}",
// чтобы метки метрик и имена span-ов не зависели от конкретной версии.
func endpointLabel(relativeURL string) string {
	segments := strings.Split(strings.Trim(relativeURL, "/"), "/")
	for i, s := range segments {
		if _, err := uuid.Parse(s); err == nil {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

// compactID форматирует идентификатор версии без дефисов (32 hex символа).
func compactID(id string) string {
	if parsed, err := uuid.Parse(id); err == nil {
		return strings.ReplaceAll(parsed.String(), "-", "")
	}
	return strings.ReplaceAll(id, "-", "")
}
