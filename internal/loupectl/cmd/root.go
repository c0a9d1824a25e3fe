// Package cmd содержит команды loupectl — консольного клиента Loupe
// для просмотра справочников, версий и проблем.
package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/config"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/di"
	"github.com/Kargones/loupe-ci/internal/loupectl/output"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
	"github.com/Kargones/loupe-ci/internal/pkg/metrics"
)

// Options — внешние зависимости корневой команды.
type Options struct {
	Out io.Writer
	Err io.Writer

	// Connect создаёт клиент. Пустое значение означает клиент из DI-провайдеров.
	Connect shared.ClientFactory
}

// session — состояние одного запуска: флаги и загруженная конфигурация.
type session struct {
	opts Options

	configPath   string
	outputFormat string
	conn         config.ConnectionOverride

	cfg *config.Config
}

// NewRootCmd создаёт корневую команду loupectl.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	s := &session{opts: opts}

	root := &cobra.Command{
		Use:           "loupectl",
		Short:         "Консольный клиент Loupe",
		Long:          "loupectl показывает арендаторов, продукты, приложения, версии и проблемы Loupe.\nПараметры подключения берутся из LOUPE_* и файла LOUPE_CONFIG; флаги их переопределяют.",
		Version:       constants.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&s.configPath, "config", "", "путь к YAML-файлу конфигурации (по умолчанию LOUPE_CONFIG)")
	pf.StringVarP(&s.outputFormat, "output", "o", string(output.FormatTable), "формат вывода (table, json, yaml)")
	pf.StringVar(&s.conn.BaseURL, "base-url", "", "адрес Loupe")
	pf.StringVar(&s.conn.Tenant, "tenant", "", "арендатор")
	pf.StringVar(&s.conn.UserName, "username", "", "имя пользователя")
	pf.StringVar(&s.conn.Password, "password", "", "пароль")

	root.AddCommand(
		s.newTenantsCmd(),
		s.newProductsCmd(),
		s.newApplicationsCmd(),
		s.newListCmd(constants.SuggestReleaseTypes, "Типы релиза приложения", "RELEASE TYPE"),
		s.newListCmd(constants.SuggestPromotionLevels, "Уровни продвижения приложения", "PROMOTION LEVEL"),
		s.newVersionsCmd(),
		s.newIssuesCmd(),
		s.newConfigCmd(),
	)
	return root
}

// Execute запускает loupectl с аргументами командной строки.
func Execute() error {
	return NewRootCmd(Options{}).Execute()
}

// printer возвращает принтер для флага --output.
func (s *session) printer() (*output.Printer, error) {
	format, err := output.ParseFormat(s.outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(s.opts.Out, format), nil
}

// loadConfig загружает конфигурацию один раз и применяет флаги подключения.
// Флаги перекрывают и Credentials, и Connection из файла.
func (s *session) loadConfig() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}
	path := s.configPath
	if path == "" {
		path = os.Getenv(constants.EnvConfigFile)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if s.conn.BaseURL != "" {
		cfg.Connection.BaseURL = s.conn.BaseURL
	}
	if s.conn.Tenant != "" {
		cfg.Connection.Tenant = s.conn.Tenant
	}
	if s.conn.UserName != "" {
		cfg.Connection.UserName = s.conn.UserName
	}
	if s.conn.Password != "" {
		cfg.Connection.Password = s.conn.Password
	}
	s.cfg = cfg
	return cfg, nil
}

// client создаёт клиент Loupe и возвращает эффективного арендатора.
func (s *session) client() (loupe.Client, string, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, "", err
	}
	connect := s.opts.Connect
	if connect == nil {
		connect = di.ProvideClientFactory(di.ProvideLogger(cfg), metrics.NewNopCollector())
	}
	client, err := connect(cfg)
	if err != nil {
		return nil, "", err
	}
	return client, cfg.EffectiveCredentials().Tenant, nil
}

// productApp возвращает продукт и приложение из флагов или конфигурации.
func (s *session) productApp(product, application string) (string, string, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return "", "", err
	}
	product = coalesce(product, cfg.Params.Product)
	application = coalesce(application, cfg.Params.Application)

	var missing []string
	if product == "" {
		missing = append(missing, "--product")
	}
	if application == "" {
		missing = append(missing, "--application")
	}
	if len(missing) > 0 {
		return "", "", apperrors.NewAppError(apperrors.ErrCommandParams,
			"не заданы обязательные флаги: "+strings.Join(missing, ", "), nil)
	}
	return product, application, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
