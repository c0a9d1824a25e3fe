// Package logging предоставляет интерфейс и реализации для структурированного логирования.
package logging

import "log/slog"

// Logger определяет интерфейс для структурированного логирования.
//
//	logger.Info("Версия создана", "version", v, "tenant", tenant)
//
// Logger пишет только в stderr или файл, stdout занят результатом команды.
type Logger interface {
	// Debug — детали HTTP запросов к Loupe и промежуточные шаги.
	Debug(msg string, args ...any)

	// Info — значимые события (найдена версия, создана версия).
	Info(msg string, args ...any)

	// Warn — recoverable проблемы, использование устаревших имён команд.
	Warn(msg string, args ...any)

	// Error — ошибки, требующие внимания.
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	With(args ...any) Logger
}

// SlogAdapter реализует Logger поверх slog.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter оборачивает slog.Logger. При nil используется slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug записывает сообщение уровня DEBUG.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.logger.Debug(msg, args...) }

// Info записывает сообщение уровня INFO.
func (s *SlogAdapter) Info(msg string, args ...any) { s.logger.Info(msg, args...) }

// Warn записывает сообщение уровня WARN.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.logger.Warn(msg, args...) }

// Error записывает сообщение уровня ERROR.
func (s *SlogAdapter) Error(msg string, args ...any) { s.logger.Error(msg, args...) }

// With возвращает новый Logger с добавленными атрибутами.
func (s *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(args...)}
}

// NopLogger игнорирует все сообщения. Используется в тестах.
type NopLogger struct{}

// NewNopLogger создаёт NopLogger.
func NewNopLogger() Logger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(string, ...any) {}
func (n *NopLogger) Info(string, ...any)  {}
func (n *NopLogger) Warn(string, ...any)  {}
func (n *NopLogger) Error(string, ...any) {}

// With возвращает тот же NopLogger.
func (n *NopLogger) With(...any) Logger { return n }
