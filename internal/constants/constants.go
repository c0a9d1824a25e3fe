// Package constants содержит константы, используемые в проекте loupe-ci.
// Константы сгруппированы по функциональному назначению.
package constants

// Константы сообщений приложения
const (
	// MsgAppExit - сообщение о завершении работы программы
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing - сообщение об обработке ошибки
	MsgErrProcessing = "Обработка ошибки"
)

// Константы действий (команд)
const (
	// ActEnsureVersion - создание или обновление версии приложения в Loupe
	ActEnsureVersion = "ensure-version"
	// ActEnsureApplicationVersion - устаревшее имя ActEnsureVersion
	ActEnsureApplicationVersion = "ensure-application-version"
	// ActEnumerateIssues - получение проблем версии
	ActEnumerateIssues = "enumerate-issues"
	// ActIssueSource - устаревшее имя ActEnumerateIssues
	ActIssueSource = "issue-source"
	// ActSuggest - получение вариантов значений параметров
	ActSuggest = "suggest"
	// ActHelp - список команд
	ActHelp = "help"
	// ActVersion - информация о сборке
	ActVersion = "version"
)

// Виды подсказок команды suggest.
const (
	SuggestTenants         = "tenants"
	SuggestProducts        = "products"
	SuggestApplications    = "applications"
	SuggestReleaseTypes    = "release-types"
	SuggestPromotionLevels = "promotion-levels"
)

// Константы API
const (
	// APIVersion - версия формата вывода команд
	APIVersion = "v1"
	// AppName - имя приложения в логах, метриках и User-Agent
	AppName = "loupe-ci"
)

// Переменные окружения, которые читаются вне config.Config.
const (
	// EnvCommand - имя выполняемой команды
	EnvCommand = "LOUPE_COMMAND"
	// EnvConfigFile - путь к YAML-файлу конфигурации
	EnvConfigFile = "LOUPE_CONFIG"
	// EnvOutputFormat - формат вывода: "json" или "text"
	EnvOutputFormat = "LOUPE_OUTPUT_FORMAT"
	// EnvDryRun - режим dry-run: "true" или "1"
	EnvDryRun = "LOUPE_DRY_RUN"
)

// Константы уровней логирования
const (
	// LogLevelDebug - уровень отладки
	LogLevelDebug = "debug"
	// LogLevelInfo - информационный уровень
	LogLevelInfo = "info"
	// LogLevelWarn - уровень предупреждений
	LogLevelWarn = "warn"
	// LogLevelError - уровень ошибок
	LogLevelError = "error"
	// LogLevelDefault - уровень по умолчанию
	LogLevelDefault = LogLevelInfo
)

// Коды завершения процесса.
const (
	ExitOK             = 0
	ExitUnknownCommand = 2
	ExitConfigError    = 5
	ExitCommandFailed  = 8
)
