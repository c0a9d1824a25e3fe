// Package issueshandler реализует команду enumerate-issues: список проблем
// Loupe для версии приложения или для версий, подходящих под шаблон.
package issueshandler

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/command"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
)

// RegisterCmd регистрирует enumerate-issues и устаревшее имя issue-source.
func RegisterCmd(deps shared.Deps) error {
	return command.RegisterWithAlias(&Handler{deps: deps.WithDefaults()}, constants.ActIssueSource)
}

// Data — результат команды.
type Data struct {
	Version string              `json:"version"`
	Issues  []loupe.IssueRecord `json:"issues"`
}

// WriteText выводит проблемы таблицей.
func (d *Data) WriteText(w io.Writer) error {
	if len(d.Issues) == 0 {
		_, err := fmt.Fprintf(w, "Проблем для версии %s не найдено\n", d.Version)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCLOSED\tSUBMITTER\tTITLE\tURL")
	for _, issue := range d.Issues {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\t%s\n",
			issue.ID, issue.Status, issue.Closed, issue.Submitter, oneLine(issue.Title), issue.URL)
	}
	return tw.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Counts возвращает число открытых и закрытых проблем.
func (d *Data) Counts() (open, closed int) {
	for _, issue := range d.Issues {
		if issue.Closed {
			closed++
		} else {
			open++
		}
	}
	return open, closed
}

type input struct {
	Tenant      string
	Product     string `env:"LOUPE_PRODUCT" validate:"required"`
	Application string `env:"LOUPE_APPLICATION" validate:"required"`
	Version     string `env:"LOUPE_VERSION" validate:"required"`
}

// Handler обрабатывает команду enumerate-issues.
type Handler struct {
	deps   shared.Deps
	client loupe.Client
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActEnumerateIssues
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Список проблем Loupe для версии приложения (поддерживается шаблон '*')"
}

// Execute выполняет команду. Команда только читает данные, поэтому
// dry-run не меняет её поведения.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	exec := shared.NewExecution(ctx, constants.ActEnumerateIssues)
	if cfg == nil {
		return exec.Fail(apperrors.ErrConfigMissing, fmt.Errorf("конфигурация не загружена"))
	}

	in := input{
		Tenant:      cfg.EffectiveCredentials().Tenant,
		Product:     strings.TrimSpace(cfg.Params.Product),
		Application: strings.TrimSpace(cfg.Params.Application),
		Version:     strings.TrimSpace(cfg.Params.Version),
	}
	if err := config.ValidateStruct(in); err != nil {
		return exec.Fail(apperrors.ErrCommandParams, err)
	}

	log := h.logger().With(
		"command", constants.ActEnumerateIssues,
		"trace_id", exec.TraceID,
		"version", in.Version,
	)

	client, err := h.getClient(cfg)
	if err != nil {
		return exec.Fail(apperrors.ErrConfigMissing, err)
	}

	issues, err := client.GetIssues(ctx, in.Tenant, in.Version, in.Product, in.Application)
	if err != nil {
		log.Error("Не удалось получить проблемы", "error", loupe.FullMessage(err))
		return exec.Fail(apperrors.ErrCommandExec, err)
	}

	data := &Data{
		Version: in.Version,
		Issues:  loupe.NewIssueRecords(client.BaseURL(), issues),
	}
	open, closed := data.Counts()
	log.Info("Проблемы получены", "open", open, "closed", closed)

	summary := output.NewSummaryInfo()
	summary.AddMetric("Открытых проблем", strconv.Itoa(open), "")
	summary.AddMetric("Закрытых проблем", strconv.Itoa(closed), "")
	return exec.Success(data, summary)
}

func (h *Handler) getClient(cfg *config.Config) (loupe.Client, error) {
	if h.client != nil {
		return h.client, nil
	}
	return h.deps.NewClient(cfg)
}

func (h *Handler) logger() logging.Logger {
	if h.deps.Logger == nil {
		return logging.NewNopLogger()
	}
	return h.deps.Logger
}
