// Package suggesthandler реализует команду suggest: подсказки значений
// параметров (арендаторы, продукты, приложения, типы релиза, уровни продвижения).
package suggesthandler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Kargones/loupe-ci/internal/command"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/logging"
	"github.com/Kargones/loupe-ci/internal/pkg/output"
	"github.com/Kargones/loupe-ci/internal/suggest"
)

// RegisterCmd регистрирует команду suggest.
func RegisterCmd(deps shared.Deps) error {
	return command.Register(&Handler{deps: deps.WithDefaults()})
}

// Data — результат команды.
type Data struct {
	Kind   string   `json:"kind"`
	Values []string `json:"values"`
}

// WriteText выводит значения по одному в строке.
func (d *Data) WriteText(w io.Writer) error {
	for _, v := range d.Values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

// Handler обрабатывает команду suggest.
type Handler struct {
	deps shared.Deps

	// source подменяется в тестах.
	source suggest.Source
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActSuggest
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Подсказки значений параметров (LOUPE_SUGGEST_KIND)"
}

// Execute выполняет команду.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	exec := shared.NewExecution(ctx, constants.ActSuggest)
	if cfg == nil {
		return exec.Fail(apperrors.ErrConfigMissing, errors.New("конфигурация не загружена"))
	}

	kind := cfg.Params.SuggestKind
	s := suggest.New(cfg.EffectiveCredentials(), func() (suggest.Source, error) {
		if h.source != nil {
			return h.source, nil
		}
		client, err := h.deps.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	})

	values, err := s.Suggest(ctx, kind, suggest.Query{
		Tenant:      cfg.EffectiveCredentials().Tenant,
		Product:     cfg.Params.Product,
		Application: cfg.Params.Application,
	})
	if errors.Is(err, suggest.ErrUnknownKind) {
		return exec.Fail(apperrors.ErrCommandParams, err)
	}
	if err != nil {
		h.logger().Error("Не удалось получить подсказки", "kind", kind, "error", err)
		return exec.Fail(apperrors.ErrCommandExec, err)
	}

	summary := output.NewSummaryInfo()
	summary.AddMetric("Значений", strconv.Itoa(len(values)), "")
	return exec.Success(&Data{Kind: kind, Values: values}, summary)
}

func (h *Handler) logger() logging.Logger {
	if h.deps.Logger == nil {
		return logging.NewNopLogger()
	}
	return h.deps.Logger
}
