//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/collision/internal/core/observability/log"
	"github.com/zeusync/collision/internal/core/systems/physics"
)

func ProvideLogger(level log.Level) *log.Logger {
	wire.Build(log.New)
	return nil
}

func InitializeWorld(logger *log.Logger) *physics.World {
	wire.Build(
		wire.Bind(new(log.Log), new(*log.Logger)),
		physics.NewWorld,
	)
	return nil
}
