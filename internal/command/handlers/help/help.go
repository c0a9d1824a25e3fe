// Package help реализует команду help: список зарегистрированных команд
// и переменных окружения, которыми они управляются.
package help

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Kargones/loupe-ci/internal/command"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
	"github.com/Kargones/loupe-ci/internal/pkg/tracing"
)

// RegisterCmd регистрирует команду help.
func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data содержит информацию обо всех доступных командах.
type Data struct {
	Commands []CommandInfo `json:"commands"`
	Options  []Option      `json:"options"`
}

// CommandInfo описывает одну команду.
type CommandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Deprecated — true для устаревшего имени; NewName указывает на актуальное.
	Deprecated bool   `json:"deprecated,omitempty"`
	NewName    string `json:"new_name,omitempty"`
}

// Option — переменная окружения, влияющая на выполнение команд.
type Option struct {
	Env         string `json:"env"`
	Description string `json:"description"`
}

var options = []Option{
	{constants.EnvCommand, "Имя выполняемой команды"},
	{constants.EnvConfigFile, "Путь к YAML-файлу конфигурации"},
	{constants.EnvOutputFormat, "Формат вывода: text или json"},
	{constants.EnvDryRun, "true: построить план без изменений в Loupe"},
	{"LOUPE_BASE_URL", "Адрес Loupe (по умолчанию https://us.onloupe.com)"},
	{"LOUPE_TENANT", "Арендатор Loupe"},
	{"LOUPE_USERNAME", "Пользователь Loupe"},
	{"LOUPE_PASSWORD", "Пароль пользователя Loupe"},
	{"LOUPE_PRODUCT", "Продукт"},
	{"LOUPE_APPLICATION", "Приложение"},
	{"LOUPE_VERSION", "Версия приложения, для enumerate-issues допускается '*'"},
	{"LOUPE_SUGGEST_KIND", "Вид подсказки для команды suggest"},
}

// Handler обрабатывает команду help.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute выполняет команду help.
func (h *Handler) Execute(ctx context.Context, _ *config.Config) error {
	start := time.Now()
	data := buildData()

	format := os.Getenv(constants.EnvOutputFormat)
	// Текстовый вид компактный, без metadata.
	if format != output.FormatJSON {
		return data.writeText(os.Stdout)
	}

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}

	return output.NewWriter(format).Write(os.Stdout, &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActHelp,
		Data:    data,
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: constants.APIVersion,
		},
	})
}

func buildData() *Data {
	data := &Data{Options: options}
	for name, handler := range command.All() {
		info := CommandInfo{Name: name, Description: handler.Description()}
		if dep, ok := handler.(command.Deprecatable); ok && dep.IsDeprecated() {
			info.Deprecated = true
			info.NewName = dep.NewName()
		}
		data.Commands = append(data.Commands, info)
	}
	sort.Slice(data.Commands, func(i, j int) bool {
		return data.Commands[i].Name < data.Commands[j].Name
	})
	return data
}

func (d *Data) writeText(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString(constants.AppName + " — интеграция CI с Loupe\n")
	sb.WriteString("\nКоманды:\n")

	width := 0
	for _, cmd := range d.Commands {
		width = max(width, len(cmd.Name))
	}
	for _, cmd := range d.Commands {
		desc := cmd.Description
		if cmd.Deprecated {
			desc = fmt.Sprintf("[deprecated → %s] %s", cmd.NewName, desc)
		}
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, cmd.Name, desc)
	}

	width = 0
	for _, opt := range d.Options {
		width = max(width, len(opt.Env))
	}
	sb.WriteString("\nПеременные окружения:\n")
	for _, opt := range d.Options {
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, opt.Env, opt.Description)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
