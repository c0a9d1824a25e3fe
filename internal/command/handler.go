// Package command содержит интерфейс обработчика команды и реестр команд.
// Пакеты обработчиков регистрируются через RegisterCmd(), которую
// вызывает main при старте.
package command

import (
	"context"

	"github.com/Kargones/loupe-ci/internal/config"
)

// Handler определяет интерфейс обработчика команды.
type Handler interface {
	// Name возвращает имя команды (константа из internal/constants).
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду. Результат пишется в stdout
	// в формате LOUPE_OUTPUT_FORMAT.
	Execute(ctx context.Context, cfg *config.Config) error
}
