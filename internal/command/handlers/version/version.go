// Package version реализует команду version: версия сборки и список
// команд с их устаревшими именами.
package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/Kargones/loupe-ci/internal/command"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
	"github.com/Kargones/loupe-ci/internal/pkg/tracing"
)

// RegisterCmd регистрирует команду version.
func RegisterCmd() error {
	return command.Register(&VersionHandler{})
}

// VersionData содержит информацию о версии приложения.
type VersionData struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit"`

	// Aliases — команды и их устаревшие имена.
	Aliases []AliasEntry `json:"aliases"`
}

// AliasEntry связывает команду с устаревшим именем.
type AliasEntry struct {
	Command     string `json:"command"`
	LegacyAlias string `json:"legacy_alias"`
}

func (d *VersionData) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s version %s\n  Go:     %s\n  Commit: %s\n",
		constants.AppName, d.Version, d.GoVersion, d.Commit); err != nil {
		return err
	}
	if len(d.Aliases) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nУстаревшие имена:"); err != nil {
		return err
	}
	for _, a := range d.Aliases {
		if _, err := fmt.Fprintf(w, "  %-30s → %s\n", a.LegacyAlias, a.Command); err != nil {
			return err
		}
	}
	return nil
}

// buildVersionData подставляет "dev" и "unknown" для пустых значений.
func buildVersionData(version, commit string) *VersionData {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	data := &VersionData{
		Version:   version,
		GoVersion: runtime.Version(),
		Commit:    commit,
		Aliases:   []AliasEntry{},
	}
	for _, info := range command.ListAllWithAliases() {
		if info.DeprecatedAlias != "" {
			data.Aliases = append(data.Aliases, AliasEntry{Command: info.Name, LegacyAlias: info.DeprecatedAlias})
		}
	}
	return data
}

// VersionHandler обрабатывает команду version.
type VersionHandler struct{}

// Name возвращает имя команды.
func (h *VersionHandler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *VersionHandler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute выводит версию. Текстовый формат компактный, без metadata.
func (h *VersionHandler) Execute(ctx context.Context, _ *config.Config) error {
	start := time.Now()
	data := buildVersionData(constants.Version, constants.PreCommitHash)

	format := os.Getenv(constants.EnvOutputFormat)
	if format != output.FormatJSON {
		return data.writeText(os.Stdout)
	}

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}
	return output.NewWriter(format).Write(os.Stdout, &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActVersion,
		Data:    data,
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: constants.APIVersion,
		},
	})
}
