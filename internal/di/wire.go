//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kargones/loupe-ci/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
//
// При добавлении нового провайдера:
//  1. Создать функцию в providers.go
//  2. Добавить её в ProviderSet
//  3. Перегенерировать wire_gen.go: go generate ./internal/di/...
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideClientFactory,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт App по загруженному Config.
//
//	cfg, err := config.MustLoad()
//	if err != nil {
//	    return err
//	}
//	app, err := di.InitializeApp(cfg)
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
