// Package ensureversionhandler реализует команду ensure-version:
// версия приложения в Loupe создаётся, если её нет, иначе обновляется.
package ensureversionhandler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/command"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/dryrun"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
)

// Действия, которые сообщает команда.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionPlannedCreate = "planned-create"
	ActionPlannedUpdate = "planned-update"
)

// RegisterCmd регистрирует ensure-version и устаревшее имя ensure-application-version.
func RegisterCmd(deps shared.Deps) error {
	return command.RegisterWithAlias(&Handler{deps: deps.WithDefaults()}, constants.ActEnsureApplicationVersion)
}

// Data — результат команды.
type Data struct {
	Action      string `json:"action"`
	Version     string `json:"version"`
	VersionID   string `json:"version_id,omitempty"`
	Product     string `json:"product"`
	Application string `json:"application"`
	Tenant      string `json:"tenant,omitempty"`
}

// WriteText выводит результат одной строкой.
func (d *Data) WriteText(w io.Writer) error {
	tenant := d.Tenant
	if tenant == "" {
		tenant = "single tenant"
	}
	_, err := fmt.Fprintf(w, "%s %s/%s %s [%s]\n", d.Action, d.Product, d.Application, d.Version, tenant)
	return err
}

// input — обязательные параметры команды. Теги env используются для
// имён полей в сообщениях валидации.
type input struct {
	Tenant      string
	Product     string `env:"LOUPE_PRODUCT" validate:"required"`
	Application string `env:"LOUPE_APPLICATION" validate:"required"`
	Version     string `env:"LOUPE_VERSION" validate:"required"`
}

// Handler обрабатывает команду ensure-version.
type Handler struct {
	deps shared.Deps

	// client подменяется в тестах; nil означает deps.NewClient.
	client loupe.Client
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActEnsureVersion
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Создание или обновление версии приложения в Loupe"
}

// Execute выполняет команду.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	exec := shared.NewExecution(ctx, constants.ActEnsureVersion)
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
		"command", constants.ActEnsureVersion,
		"trace_id", exec.TraceID,
		"product", in.Product,
		"application", in.Application,
		"version", in.Version,
	)

	summary := output.NewSummaryInfo()
	opts := buildOptions(cfg.Params, in.Version, log, summary)

	client, err := h.getClient(cfg)
	if err != nil {
		return exec.Fail(apperrors.ErrConfigMissing, err)
	}

	log.Debug("Поиск версии приложения", "options", opts.String())
	existing, err := client.FindVersion(ctx, in.Tenant, in.Version, in.Product, in.Application)
	if err != nil {
		log.Error("Не удалось найти версию", "error", loupe.FullMessage(err))
		return exec.Fail(apperrors.ErrCommandExec, err)
	}

	if dryrun.IsDryRun() {
		return h.writePlan(exec, in, opts, existing != nil)
	}

	var (
		saved  *loupe.ApplicationVersion
		action string
	)
	if existing == nil {
		log.Info("Создание версии приложения")
		saved, err = client.CreateVersion(ctx, in.Tenant, in.Product, in.Application, in.Version, opts)
		action = ActionCreated
	} else {
		log.Info("Обновление версии приложения", "version_id", existing.Version.ID)
		saved, err = client.UpdateVersion(ctx, in.Tenant, in.Product, in.Application, in.Version, opts)
		action = ActionUpdated
	}
	if err != nil {
		log.Error("Не удалось сохранить версию", "action", action, "error", loupe.FullMessage(err))
		return exec.Fail(apperrors.ErrCommandExec, err)
	}

	data := &Data{
		Action:      action,
		Version:     in.Version,
		Product:     in.Product,
		Application: in.Application,
		Tenant:      in.Tenant,
	}
	if saved != nil {
		data.VersionID = saved.ID
	}
	log.Info("Версия приложения сохранена", "action", action, "version_id", data.VersionID)
	return exec.Success(data, summary)
}

// writePlan выводит план без POST/PUT запросов.
func (h *Handler) writePlan(exec *shared.Execution, in input, opts loupe.VersionOptions, exists bool) error {
	find := dryrun.Step("Поиск версии", map[string]any{
		"tenant":      in.Tenant,
		"product":     in.Product,
		"application": in.Application,
		"version":     in.Version,
	})

	changes := describeOptions(opts)
	var steps []output.PlanStep
	var action string
	if exists {
		action = ActionPlannedUpdate
		steps = []output.PlanStep{
			find,
			dryrun.Skip("Создание версии", "версия уже существует"),
			dryrun.Step("Обновление версии", nil, changes...),
		}
	} else {
		action = ActionPlannedCreate
		steps = []output.PlanStep{
			find,
			dryrun.Step("Создание версии", nil, changes...),
			dryrun.Skip("Обновление версии", "версия отсутствует"),
		}
	}

	plan := dryrun.BuildPlanWithSummary(constants.ActEnsureVersion,
		fmt.Sprintf("%s %s/%s %s", action, in.Product, in.Application, in.Version), steps...)
	if !exists && opts.ReleaseTypeCaption == nil {
		plan.ValidationPassed = false
	}
	return exec.DryRun(plan)
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

// buildOptions собирает VersionOptions из параметров команды.
// DisplayVersion всегда равен версии. Нераспознанная дата выпуска
// игнорируется с предупреждением.
func buildOptions(p config.OperationParams, version string, log logging.Logger, summary *output.SummaryInfo) loupe.VersionOptions {
	opts := loupe.VersionOptions{
		Caption:               loupe.StringPtr(p.Caption),
		Description:           loupe.StringPtr(p.Description),
		DisplayVersion:        loupe.StringPtr(version),
		PromotionLevelCaption: loupe.StringPtr(p.PromotionLevel),
		ReleaseNotesURL:       loupe.StringPtr(p.ReleaseNotesURL),
		ReleaseTypeCaption:    loupe.StringPtr(p.ReleaseType),
	}

	if raw := strings.TrimSpace(p.ReleaseDate); raw != "" {
		date, err := parseReleaseDate(raw)
		if err != nil {
			log.Warn("Не удалось разобрать дату выпуска, дата не изменяется", "release_date", raw, "error", err)
			summary.AddWarning(fmt.Sprintf("дата выпуска %q не распознана", raw))
		} else {
			opts.ReleaseDate = &date
		}
	}
	return opts
}

// parseReleaseDate разбирает дату в свободном формате.
// Дата без часового пояса считается датой в UTC.
func parseReleaseDate(raw string) (time.Time, error) {
	return dateparse.ParseIn(raw, time.UTC)
}

func describeOptions(opts loupe.VersionOptions) []string {
	var changes []string
	add := func(name string, v *string) {
		if v != nil {
			changes = append(changes, name+": "+*v)
		}
	}
	add("caption", opts.Caption)
	add("description", opts.Description)
	add("displayVersion", opts.DisplayVersion)
	add("promotionLevel", opts.PromotionLevelCaption)
	if opts.ReleaseDate != nil {
		changes = append(changes, "releaseDate: "+opts.ReleaseDate.Format(time.DateOnly))
	}
	add("releaseNotesUrl", opts.ReleaseNotesURL)
	add("releaseType", opts.ReleaseTypeCaption)
	return changes
}
