// Package main содержит точку входа loupe-ci: выполнение одной команды
// Loupe (ensure-version, enumerate-issues, suggest) из CI-конвейера.
// Команда и параметры задаются переменными окружения LOUPE_*.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/loupe-ci/internal/command"
	"github.com/Kargones/loupe-ci/internal/command/handlers"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/di"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/metrics"
	"github.com/Kargones/loupe-ci/internal/pkg/tracing"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// registerCommands регистрирует обработчики один раз за процесс.
func registerCommands(l logging.Logger, deps shared.Deps) error {
	registerOnce.Do(func() {
		registerErr = handlers.RegisterAll(deps)
	})
	if registerErr != nil {
		l.Error("Ошибка регистрации команд", slog.String("error", registerErr.Error()))
	}
	return registerErr
}

// recordMetrics записывает результат команды и отправляет метрики в Pushgateway.
func recordMetrics(ctx context.Context, collector metrics.Collector, cmd, tenant string, start time.Time, success bool) {
	collector.RecordCommandEnd(cmd, tenant, time.Since(start), success)
	_ = collector.Push(ctx) // ошибки push логируются внутри
}

// exitCode переводит ошибку команды в код завершения.
func exitCode(err error) int {
	if err == nil {
		return constants.ExitOK
	}
	switch apperrors.Code(err, "") {
	case apperrors.ErrConfigMissing, apperrors.ErrConfigLoad, apperrors.ErrConfigValidate:
		return constants.ExitConfigError
	}
	return constants.ExitCommandFailed
}

func main() {
	os.Exit(run())
}

// run возвращает код завершения. os.Exit вызывается в main после того,
// как отработают defer-ы (завершение трейсинга, span.End).
func run() int {
	cfg, err := config.MustLoad()
	if err != nil || cfg == nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return constants.ExitConfigError
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось инициализировать приложение: %v\n", err)
		return constants.ExitConfigError
	}
	l := app.Logger.With("trace_id", app.TraceID)
	l.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit_hash", constants.PreCommitHash),
	)

	if cfg.Command == "" {
		cfg.Command = constants.ActHelp
	}

	if err := registerCommands(l, app.Deps()); err != nil {
		return constants.ExitCommandFailed
	}

	ctx := tracing.WithTraceID(context.Background(), app.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, app.TraceID)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			l.Error("ошибка завершения tracing",
				slog.String("error", err.Error()),
				slog.String("command", cfg.Command),
			)
		}
	}()

	tenant := cfg.EffectiveCredentials().Tenant
	ctx, span := otel.Tracer(constants.AppName).Start(ctx, cfg.Command,
		trace.WithAttributes(
			attribute.String("command", cfg.Command),
			attribute.String("loupe.tenant", tenant),
			attribute.String("trace_id", app.TraceID),
		),
	)
	defer span.End()

	handler, ok := command.Get(cfg.Command)
	if !ok {
		l.Error("неизвестная команда",
			slog.String(constants.EnvCommand, cfg.Command),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		span.SetStatus(codes.Error, "unknown command")
		return constants.ExitUnknownCommand
	}

	app.MetricsCollector.RecordCommandStart(cfg.Command, tenant)
	start := time.Now()

	l.Debug("Выполнение команды", slog.String("command", cfg.Command))
	execErr := handler.Execute(ctx, cfg)
	recordMetrics(ctx, app.MetricsCollector, cfg.Command, tenant, start, execErr == nil)

	if execErr != nil {
		span.RecordError(execErr)
		span.SetStatus(codes.Error, apperrors.Code(execErr, apperrors.ErrCommandExec))
		l.Error("Ошибка выполнения команды",
			slog.String("command", cfg.Command),
			slog.String("error", execErr.Error()),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		return exitCode(execErr)
	}
	return constants.ExitOK
}
