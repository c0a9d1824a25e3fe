// Package tracing связывает trace ID команды с логами и OpenTelemetry span-ами.
//
// Trace ID — 32 hex символа (16 байт), совместим с W3C Trace Context:
//
//	traceID := tracing.GenerateTraceID()
//	ctx = tracing.WithTraceID(ctx, traceID)
//	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)
package tracing

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type traceIDKey struct{}

var fallbackCounter atomic.Uint64

// WithTraceID возвращает context с trace ID.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext возвращает trace ID или пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateTraceID возвращает случайный trace ID из 32 hex символов.
// Если источник случайных чисел недоступен, ID строится из времени и счётчика.
func GenerateTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackTraceID()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	return fmt.Sprintf("%016x%016x", uint64(time.Now().UnixNano()), counter)
}

// ContextWithOTelTraceID добавляет remote span context с заданным trace ID,
// чтобы span-ы команды и HTTP запросов к Loupe имели тот же trace ID, что и логи.
// Невалидный traceIDHex оставляет контекст без изменений.
func ContextWithOTelTraceID(ctx context.Context, traceIDHex string) context.Context {
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	return trace.ContextWithRemoteSpanContext(ctx, sc)
}
