package config

// LoggingConfig содержит настройки логирования.
// Значения по умолчанию совпадают с logging.DefaultConfig.
type LoggingConfig struct {
	// Level - уровень логирования (debug, info, warn, error)
	Level string `yaml:"level" env:"LOUPE_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`

	// Format - формат логов (json, text)
	Format string `yaml:"format" env:"LOUPE_LOG_FORMAT" env-default:"text" validate:"oneof=json text"`

	// Output - вывод логов (stderr, file)
	Output string `yaml:"output" env:"LOUPE_LOG_OUTPUT" env-default:"stderr" validate:"oneof=stderr file"`

	// FilePath - путь к файлу логов (если output=file)
	FilePath string `yaml:"filePath" env:"LOUPE_LOG_FILE_PATH" env-default:"/var/log/loupe-ci.log" validate:"required_if=Output file"`

	// MaxSize - максимальный размер файла лога в MB
	MaxSize int `yaml:"maxSize" env:"LOUPE_LOG_MAX_SIZE" env-default:"100" validate:"gte=0"`

	// MaxBackups - максимальное количество архивных файлов
	MaxBackups int `yaml:"maxBackups" env:"LOUPE_LOG_MAX_BACKUPS" env-default:"3" validate:"gte=0"`

	// MaxAge - максимальный возраст архивных файлов в днях
	MaxAge int `yaml:"maxAge" env:"LOUPE_LOG_MAX_AGE" env-default:"7" validate:"gte=0"`

	// Compress - сжимать ли архивные файлы
	Compress bool `yaml:"compress" env:"LOUPE_LOG_COMPRESS"`
}
