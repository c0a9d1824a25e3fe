package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Kargones/loupe-ci/internal/config"
)

// Deprecatable реализуется обработчиками устаревших имён команд.
// Используется командой help.
type Deprecatable interface {
	IsDeprecated() bool
	NewName() string
}

var (
	_ Handler      = (*DeprecatedBridge)(nil)
	_ Deprecatable = (*DeprecatedBridge)(nil)
)

// DeprecatedBridge выполняет команду под устаревшим именем
// (ensure-application-version, issue-source) и предупреждает об этом в stderr.
type DeprecatedBridge struct {
	actual     Handler
	deprecated string
	newName    string

	// warn — куда писать предупреждение; nil означает os.Stderr.
	warn io.Writer
}

// Name возвращает устаревшее имя.
func (b *DeprecatedBridge) Name() string { return b.deprecated }

// Description возвращает описание основной команды.
func (b *DeprecatedBridge) Description() string { return b.actual.Description() }

// IsDeprecated всегда возвращает true.
func (b *DeprecatedBridge) IsDeprecated() bool { return true }

// NewName возвращает актуальное имя команды.
func (b *DeprecatedBridge) NewName() string { return b.newName }

// Execute пишет предупреждение в stderr (stdout занят JSON-выводом)
// и выполняет основную команду. Отменённый контекст возвращается сразу.
func (b *DeprecatedBridge) Execute(ctx context.Context, cfg *config.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w := b.warn
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "WARNING: command '%s' is deprecated, use '%s' instead\n", b.deprecated, b.newName) //nolint:errcheck // предупреждение best-effort
	return b.actual.Execute(ctx, cfg)
}
