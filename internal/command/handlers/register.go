// Package handlers регистрирует все обработчики команд в глобальном реестре.
// Регистрация явная, без init(): main вызывает RegisterAll один раз после DI.
package handlers

import (
	"github.com/Kargones/loupe-ci/internal/command/handlers/ensureversionhandler"
	"github.com/Kargones/loupe-ci/internal/command/handlers/help"
	"github.com/Kargones/loupe-ci/internal/command/handlers/issueshandler"
	"github.com/Kargones/loupe-ci/internal/command/handlers/shared"
	"github.com/Kargones/loupe-ci/internal/command/handlers/suggesthandler"
	"github.com/Kargones/loupe-ci/internal/command/handlers/version"
)

// RegisterAll регистрирует обработчики. Возвращает первую ошибку регистрации.
func RegisterAll(deps shared.Deps) error {
	if err := ensureversionhandler.RegisterCmd(deps); err != nil {
		return err
	}
	if err := issueshandler.RegisterCmd(deps); err != nil {
		return err
	}
	if err := suggesthandler.RegisterCmd(deps); err != nil {
		return err
	}
	if err := help.RegisterCmd(); err != nil {
		return err
	}
	return version.RegisterCmd()
}
