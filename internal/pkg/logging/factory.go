package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kargones/loupe-ci/internal/constants"
)

// Форматы вывода.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Уровни логирования.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Назначения вывода.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Значения по умолчанию. Используются в DefaultConfig и в env-default конфигурации.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "/var/log/loupe-ci.log"
	DefaultMaxSize    = 100 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
	DefaultCompress   = true
)

// redactedValue подставляется вместо значений секретных атрибутов.
const redactedValue = "***"

// secretKeys — ключи атрибутов, значения которых не попадают в журнал.
var secretKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"authorization": {},
	"access_token":  {},
}

// Config содержит настройки логирования.
type Config struct {
	// Format — "json" или "text".
	Format string
	// Level — "debug", "info", "warn" или "error".
	Level string
	// Output — "stderr" или "file".
	Output string
	// FilePath — путь к файлу при Output = "file".
	FilePath string
	// MaxSize — размер файла в МБ до ротации.
	MaxSize int
	// MaxBackups — количество архивных файлов.
	MaxBackups int
	// MaxAge — срок хранения архивов в днях.
	MaxAge int
	// Compress — сжимать архивы gzip.
	Compress bool
}

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

// NewLogger создаёт Logger по конфигурации.
// Output "file" пишет в файл с ротацией через lumberjack, остальные значения ведут в stderr.
func NewLogger(config Config) Logger {
	var w io.Writer

	switch config.Output {
	case OutputFile:
		w = newFileWriter(config)
	case OutputStderr, "":
		w = os.Stderr
	default:
		_, _ = fmt.Fprintf(os.Stderr, "WARNING: неизвестный logging output %q, используется stderr\n", config.Output) //nolint:errcheck // bootstrap stderr
		w = os.Stderr
	}

	return NewLoggerWithWriter(config, w)
}

// newFileWriter создаёт writer с ротацией. При пустом пути или ошибке
// создания каталога возвращает os.Stderr.
func newFileWriter(config Config) io.Writer {
	if config.FilePath == "" {
		_, _ = os.Stderr.WriteString("WARNING: logging output=file, но путь к файлу пуст; используется stderr\n") //nolint:errcheck // bootstrap stderr
		return os.Stderr
	}

	if dir := filepath.Dir(config.FilePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "WARNING: не удалось создать каталог логов %q: %v; используется stderr\n", dir, err) //nolint:errcheck // bootstrap stderr
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// NewLoggerWithWriter создаёт Logger, пишущий в w. Используется в тестах.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(config.Level),
		ReplaceAttr: redactSecrets,
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return NewSlogAdapter(slog.New(handler))
}

// ParseLevel конвертирует строковый уровень в slog.Level.
// Неизвестное значение даёт slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	if _, ok := secretKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redactedValue)
	}
	return a
}
