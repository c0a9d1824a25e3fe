package shared

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
	"github.com/Kargones/loupe-ci/internal/pkg/tracing"
)

// Execution — контекст вывода одной команды: формат, trace_id и время старта.
type Execution struct {
	Command string
	Format  string
	TraceID string
	Start   time.Time

	// Out — куда пишется результат; по умолчанию os.Stdout.
	Out io.Writer
}

// NewExecution создаёт Execution. trace_id берётся из контекста или генерируется.
func NewExecution(ctx context.Context, command string) *Execution {
	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}
	return &Execution{
		Command: command,
		Format:  os.Getenv(constants.EnvOutputFormat),
		TraceID: traceID,
		Start:   time.Now(),
		Out:     os.Stdout,
	}
}

func (e *Execution) metadata() *output.Metadata {
	return &output.Metadata{
		DurationMs: time.Since(e.Start).Milliseconds(),
		TraceID:    e.TraceID,
		APIVersion: constants.APIVersion,
	}
}

// Success выводит успешный результат.
func (e *Execution) Success(data any, summary *output.SummaryInfo) error {
	return output.NewWriter(e.Format).Write(e.Out, &output.Result{
		Status:   output.StatusSuccess,
		Command:  e.Command,
		Data:     data,
		Metadata: e.metadata(),
		Summary:  summary,
	})
}

// DryRun выводит план вместо выполнения.
func (e *Execution) DryRun(plan *output.DryRunPlan) error {
	return output.WriteDryRunResult(e.Out, e.Format, e.Command, e.TraceID, constants.APIVersion, e.Start, plan)
}

// Fail выводит ошибку и возвращает её в виде AppError.
// Код берётся из цепочки err, иначе используется fallback.
// Для ошибок Loupe сообщение имеет вид "The server returned an error (N): ...".
func (e *Execution) Fail(fallback string, err error) error {
	code := apperrors.Code(err, fallback)
	message := loupe.FullMessage(err)

	writeErr := output.NewWriter(e.Format).Write(e.Out, &output.Result{
		Status:   output.StatusError,
		Command:  e.Command,
		Error:    &output.ErrorInfo{Code: code, Message: message},
		Metadata: e.metadata(),
	})
	if writeErr != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось вывести ошибку", writeErr)
	}
	return apperrors.NewAppError(code, message, err)
}
